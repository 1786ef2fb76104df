package aprovacao

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/youngemp/comissoes-api/internal/comissao"
)

// Perfis de acesso do workflow.
const (
	PerfilGestor  = "Gestor"
	PerfilDirecao = "Direção"
)

// EstoqueComissoes é o que o workflow precisa do repositório de comissões.
type EstoqueComissoes interface {
	BuscarPorID(id uint) (*comissao.Comissao, error)
	MarcarEnviada(id uint, usuarioID uint) error
	MarcarAprovada(id uint, usuarioID uint) error
	MarcarRejeitada(id uint, usuarioID uint, motivo string) error
}

// RegistroHistorico grava as transições.
type RegistroHistorico interface {
	Registrar(h *HistoricoAprovacao) error
}

// Usuario identifica quem executa a ação.
type Usuario struct {
	ID     uint
	Nome   string
	Perfil string
	Admin  bool
}

func (u Usuario) podeAprovar() bool {
	return u.Admin || u.Perfil == PerfilDirecao
}

// podeEnviar cobre quem submete comissões para aprovação: gestores, a direção
// e administradores. Corretores do portal nunca passam aqui.
func (u Usuario) podeEnviar() bool {
	return u.Admin || u.Perfil == PerfilGestor || u.Perfil == PerfilDirecao
}

// Falha descreve uma comissão que não pôde transicionar.
type Falha struct {
	ComissaoID uint   `json:"comissaoId"`
	Erro       string `json:"erro"`
}

// Resultado é o retorno das operações em lote: cada comissão transiciona ou
// falha individualmente, nunca o lote inteiro.
type Resultado struct {
	Processadas []uint  `json:"processadas"`
	Falhas      []Falha `json:"falhas"`
}

// Servico implementa o workflow de aprovação de comissões.
type Servico struct {
	Comissoes EstoqueComissoes
	Historico RegistroHistorico
	Log       *logrus.Logger
}

// NovoServico cria o serviço de workflow.
func NovoServico(comissoes EstoqueComissoes, historico RegistroHistorico, log *logrus.Logger) *Servico {
	return &Servico{Comissoes: comissoes, Historico: historico, Log: log}
}

// Enviar move comissões de Pendente (ou Rejeitada, em reenvio) para
// Pendente de Aprovação. Exige perfil Gestor, Direção ou administrador.
func (s *Servico) Enviar(ids []uint, usuario Usuario, observacoes string) (Resultado, error) {
	if !usuario.podeEnviar() {
		return Resultado{}, ErrPermissaoNegada
	}
	var res Resultado
	for _, id := range ids {
		c, err := s.Comissoes.BuscarPorID(id)
		if err != nil {
			res.Falhas = append(res.Falhas, Falha{ComissaoID: id, Erro: "comissão não encontrada"})
			continue
		}
		if c.StatusAprovacao != comissao.StatusPendente && c.StatusAprovacao != comissao.StatusRejeitada {
			res.Falhas = append(res.Falhas, Falha{ComissaoID: id, Erro: ErrEstadoInvalido.Error()})
			continue
		}
		if err := s.Comissoes.MarcarEnviada(id, usuario.ID); err != nil {
			res.Falhas = append(res.Falhas, Falha{ComissaoID: id, Erro: err.Error()})
			continue
		}
		s.registrar(c, AcaoEnviada, comissao.StatusEnviada, usuario, "", observacoes)
		res.Processadas = append(res.Processadas, id)
	}
	s.logResultado("enviar", usuario, res)
	return res, nil
}

// Aprovar move comissões de Pendente de Aprovação para Aprovada. Exige
// perfil Direção ou administrador.
func (s *Servico) Aprovar(ids []uint, usuario Usuario, observacoes string) (Resultado, error) {
	if !usuario.podeAprovar() {
		return Resultado{}, ErrPermissaoNegada
	}
	var res Resultado
	for _, id := range ids {
		c, err := s.Comissoes.BuscarPorID(id)
		if err != nil {
			res.Falhas = append(res.Falhas, Falha{ComissaoID: id, Erro: "comissão não encontrada"})
			continue
		}
		if c.StatusAprovacao != comissao.StatusEnviada {
			res.Falhas = append(res.Falhas, Falha{ComissaoID: id, Erro: ErrEstadoInvalido.Error()})
			continue
		}
		if err := s.Comissoes.MarcarAprovada(id, usuario.ID); err != nil {
			res.Falhas = append(res.Falhas, Falha{ComissaoID: id, Erro: err.Error()})
			continue
		}
		s.registrar(c, AcaoAprovada, comissao.StatusAprovada, usuario, "", observacoes)
		res.Processadas = append(res.Processadas, id)
	}
	s.logResultado("aprovar", usuario, res)
	return res, nil
}

// Rejeitar move comissões de Pendente de Aprovação para Rejeitada. Exige
// perfil Direção ou administrador e um motivo não vazio.
func (s *Servico) Rejeitar(ids []uint, usuario Usuario, motivo string) (Resultado, error) {
	if !usuario.podeAprovar() {
		return Resultado{}, ErrPermissaoNegada
	}
	if strings.TrimSpace(motivo) == "" {
		return Resultado{}, ErrMotivoObrigatorio
	}
	var res Resultado
	for _, id := range ids {
		c, err := s.Comissoes.BuscarPorID(id)
		if err != nil {
			res.Falhas = append(res.Falhas, Falha{ComissaoID: id, Erro: "comissão não encontrada"})
			continue
		}
		if c.StatusAprovacao != comissao.StatusEnviada {
			res.Falhas = append(res.Falhas, Falha{ComissaoID: id, Erro: ErrEstadoInvalido.Error()})
			continue
		}
		if err := s.Comissoes.MarcarRejeitada(id, usuario.ID, motivo); err != nil {
			res.Falhas = append(res.Falhas, Falha{ComissaoID: id, Erro: err.Error()})
			continue
		}
		s.registrar(c, AcaoRejeitada, comissao.StatusRejeitada, usuario, motivo, "")
		res.Processadas = append(res.Processadas, id)
	}
	s.logResultado("rejeitar", usuario, res)
	return res, nil
}

func (s *Servico) registrar(c *comissao.Comissao, acao, status string, usuario Usuario, motivo, observacoes string) {
	h := &HistoricoAprovacao{
		ComissaoID:  c.ID,
		SiengeID:    c.SiengeID,
		Acao:        acao,
		Status:      status,
		UsuarioID:   usuario.ID,
		UsuarioNome: usuario.Nome,
		Motivo:      motivo,
		Observacoes: observacoes,
	}
	if err := s.Historico.Registrar(h); err != nil && s.Log != nil {
		s.Log.WithError(err).WithField("comissao_id", c.ID).Warn("falha ao gravar histórico de aprovação")
	}
}

func (s *Servico) logResultado(acao string, usuario Usuario, res Resultado) {
	if s.Log == nil {
		return
	}
	s.Log.WithFields(logrus.Fields{
		"acao":        acao,
		"usuario_id":  usuario.ID,
		"processadas": len(res.Processadas),
		"falhas":      len(res.Falhas),
	}).Info("workflow de aprovação executado")
}
