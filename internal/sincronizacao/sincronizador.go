package sincronizacao

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/youngemp/comissoes-api/internal/comissao"
	"github.com/youngemp/comissoes-api/internal/contrato"
	"github.com/youngemp/comissoes-api/internal/corretor"
	"github.com/youngemp/comissoes-api/internal/empreendimento"
	"github.com/youngemp/comissoes-api/internal/itbi"
	"github.com/youngemp/comissoes-api/internal/sienge"
	"github.com/youngemp/comissoes-api/internal/valorpago"
)

// palavras que marcam um contrato ou parcela como cancelado no Sienge
var palavrasCancelamento = []string{"cancel", "distrat", "rescind"}

// FonteSienge é o que o sincronizador precisa do cliente da API.
type FonteSienge interface {
	BuscarEmpreendimentos(empresa string) ([]sienge.Empreendimento, error)
	BuscarContratos(empresa, buildingID string) ([]sienge.Contrato, error)
	BuscarCorretores(empresa string) ([]sienge.Corretor, error)
	BuscarComissoes(empresa, buildingID string) ([]sienge.Comissao, error)
	BuscarDetalheContrato(siengeID int64) (*sienge.DetalheContrato, error)
}

// EstoqueEmpreendimentos grava empreendimentos sincronizados.
type EstoqueEmpreendimentos interface {
	Upsert(e *empreendimento.Empreendimento) error
}

// EstoqueContratos grava e remove contratos sincronizados.
type EstoqueContratos interface {
	Upsert(c *contrato.Contrato) error
	DeletarPorChave(numeroContrato, buildingID string) error
	ListarTodos() ([]contrato.Contrato, error)
}

// EstoqueCorretores grava corretores sincronizados.
type EstoqueCorretores interface {
	Upsert(c *corretor.Corretor) error
}

// EstoqueITBI grava valores de ITBI por contrato.
type EstoqueITBI interface {
	Upsert(v *itbi.ITBI) error
}

// EstoqueValoresPagos grava valores pagos por contrato.
type EstoqueValoresPagos interface {
	Upsert(v *valorpago.ValorPago) error
}

// EstoqueComissoes é o que o sincronizador precisa do repositório de
// comissões.
type EstoqueComissoes interface {
	BuscarPorSiengeID(siengeID string) (*comissao.Comissao, error)
	Criar(c *comissao.Comissao) error
	AtualizarExternos(c *comissao.Comissao) error
	AtualizarStatusAprovacao(siengeID, status string) error
	MarcarStatusParcela(id uint, status string) error
	ReverterParaPendente(id uint) error
	DeletarPorSiengeID(siengeID string) error
	DeletarPorContrato(numeroContrato, buildingID string) error
	DeletarPorID(id uint) error
	ListarTodas() ([]comissao.Comissao, error)
}

// EstoqueHistorico remove o histórico de aprovação antes das comissões.
type EstoqueHistorico interface {
	DeletarPorSiengeID(siengeID string) error
	DeletarPorComissao(comissaoID uint) error
}

// RegistroExecucoes grava o log de cada execução.
type RegistroExecucoes interface {
	Registrar(l *LogSincronizacao) error
}

// ResultadoEntidade resume a sincronização de uma entidade.
type ResultadoEntidade struct {
	Total      int `json:"total"`
	Sucesso    int `json:"sucesso"`
	Erros      int `json:"erros"`
	Canceladas int `json:"canceladas,omitempty"`
}

// ResultadoEmpresa resume a sincronização de uma empresa.
type ResultadoEmpresa struct {
	Empresa         string            `json:"empresa"`
	Empreendimentos ResultadoEntidade `json:"empreendimentos"`
	Contratos       ResultadoEntidade `json:"contratos"`
	Corretores      ResultadoEntidade `json:"corretores"`
	Comissoes       ResultadoEntidade `json:"comissoes"`
}

// Sincronizador puxa os dados do Sienge e reconcilia o banco local,
// preservando o estado do workflow de aprovação das comissões.
type Sincronizador struct {
	Fonte           FonteSienge
	Empresas        []string
	Empreendimentos EstoqueEmpreendimentos
	Contratos       EstoqueContratos
	Corretores      EstoqueCorretores
	ITBI            EstoqueITBI
	ValoresPagos    EstoqueValoresPagos
	Comissoes       EstoqueComissoes
	Historico       EstoqueHistorico
	Execucoes       RegistroExecucoes
	Log             *logrus.Logger
}

func temPalavraCancelamento(texto string) bool {
	t := strings.ToLower(texto)
	for _, p := range palavrasCancelamento {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

// comissaoPaga detecta parcelas já pagas no Sienge: status de pagamento,
// valor liberado ou títulos de pagamento vinculados.
func comissaoPaga(c sienge.Comissao) bool {
	status := strings.ToUpper(c.InstallmentStatus)
	if strings.Contains(status, "PAID") || strings.Contains(status, "PAGO") {
		return true
	}
	if c.ValorLiberado > 0 {
		return true
	}
	return len(c.TitulosPagamento) > 0
}

// SincronizarTudo roda a sincronização completa para todas as empresas
// configuradas e grava o log da execução. buildingID opcional restringe a um
// empreendimento.
func (s *Sincronizador) SincronizarTudo(buildingID string) ([]ResultadoEmpresa, error) {
	inicio := time.Now()
	var resultados []ResultadoEmpresa
	var primeiroErro error

	for _, empresa := range s.Empresas {
		res, err := s.SincronizarEmpresa(empresa, buildingID)
		resultados = append(resultados, res)
		if err != nil && primeiroErro == nil {
			primeiroErro = err
		}
	}

	s.registrarExecucao(TipoCompleta, inicio, resultados, primeiroErro)
	return resultados, primeiroErro
}

// SincronizarEmpresa reconcilia todas as entidades de uma empresa. A empresa
// é sempre explícita: nenhum estado compartilhado sobrevive entre chamadas.
func (s *Sincronizador) SincronizarEmpresa(empresa, buildingID string) (ResultadoEmpresa, error) {
	log := s.Log.WithField("empresa", empresa)
	log.Info("iniciando sincronização")

	res := ResultadoEmpresa{Empresa: empresa}

	res.Empreendimentos = s.sincronizarEmpreendimentos(empresa)
	res.Contratos = s.sincronizarContratos(empresa, buildingID)
	res.Corretores = s.sincronizarCorretores(empresa)
	res.Comissoes = s.sincronizarComissoes(empresa, buildingID)

	log.WithFields(logrus.Fields{
		"empreendimentos": res.Empreendimentos.Sucesso,
		"contratos":       res.Contratos.Sucesso,
		"corretores":      res.Corretores.Sucesso,
		"comissoes":       res.Comissoes.Sucesso,
	}).Info("sincronização concluída")

	var err error
	if res.Empreendimentos.Erros+res.Contratos.Erros+res.Corretores.Erros+res.Comissoes.Erros > 0 {
		err = fmt.Errorf("sincronização da empresa %s com %d erros", empresa,
			res.Empreendimentos.Erros+res.Contratos.Erros+res.Corretores.Erros+res.Comissoes.Erros)
	}
	return res, err
}

func (s *Sincronizador) sincronizarEmpreendimentos(empresa string) ResultadoEntidade {
	var res ResultadoEntidade
	lista, err := s.Fonte.BuscarEmpreendimentos(empresa)
	if err != nil {
		s.Log.WithError(err).Error("falha ao buscar empreendimentos")
		res.Erros++
		return res
	}
	res.Total = len(lista)
	for _, e := range lista {
		m := &empreendimento.Empreendimento{
			SiengeID:  e.SiengeID,
			Nome:      e.Nome,
			Codigo:    e.Codigo,
			CompanyID: e.CompanyID,
		}
		if err := s.Empreendimentos.Upsert(m); err != nil {
			s.Log.WithError(err).WithField("sienge_id", e.SiengeID).Error("falha ao gravar empreendimento")
			res.Erros++
			continue
		}
		res.Sucesso++
	}
	return res
}

func (s *Sincronizador) sincronizarContratos(empresa, buildingID string) ResultadoEntidade {
	var res ResultadoEntidade
	lista, err := s.Fonte.BuscarContratos(empresa, buildingID)
	if err != nil {
		s.Log.WithError(err).Error("falha ao buscar contratos")
		res.Erros++
		return res
	}
	res.Total = len(lista)

	for _, c := range lista {
		if temPalavraCancelamento(c.Status) {
			s.removerContratoCancelado(c)
			res.Canceladas++
			continue
		}

		m := &contrato.Contrato{
			SiengeID:       c.SiengeID,
			NumeroContrato: c.NumeroContrato,
			BuildingID:     c.BuildingID,
			CompanyID:      c.CompanyID,
			NomeCliente:    c.NomeCliente,
			DataContrato:   c.DataContrato,
			ValorTotal:     c.ValorTotal,
			ValorAVista:    c.ValorAVista,
			Status:         c.Status,
			Unidade:        c.Unidade,
		}
		if err := s.Contratos.Upsert(m); err != nil {
			s.Log.WithError(err).WithField("contrato", c.NumeroContrato).Error("falha ao gravar contrato")
			res.Erros++
			continue
		}
		res.Sucesso++

		s.sincronizarDetalheContrato(c)
	}
	return res
}

// sincronizarDetalheContrato extrai ITBI e valor pago das condições de
// pagamento. Só grava valores maiores que zero: ausência de linha significa
// zero, e gravar zeros mascararia contratos sem detalhe disponível.
func (s *Sincronizador) sincronizarDetalheContrato(c sienge.Contrato) {
	det, err := s.Fonte.BuscarDetalheContrato(c.SiengeID)
	if err != nil {
		s.Log.WithError(err).WithField("contrato", c.NumeroContrato).Warn("detalhe do contrato indisponível")
		return
	}

	if ext := sienge.ExtrairITBI(det); ext != nil && ext.Valor > 0 {
		v := &itbi.ITBI{
			NumeroContrato: c.NumeroContrato,
			BuildingID:     c.BuildingID,
			CompanyID:      c.CompanyID,
			Valor:          ext.Valor,
			Documento:      ext.Documento,
			DataVencimento: ext.DataVencimento,
		}
		if err := s.ITBI.Upsert(v); err != nil {
			s.Log.WithError(err).WithField("contrato", c.NumeroContrato).Error("falha ao gravar itbi")
		}
	}

	if pago := sienge.ExtrairValorPago(det); pago > 0 {
		v := &valorpago.ValorPago{
			NumeroContrato: c.NumeroContrato,
			BuildingID:     c.BuildingID,
			CompanyID:      c.CompanyID,
			Valor:          pago,
		}
		if err := s.ValoresPagos.Upsert(v); err != nil {
			s.Log.WithError(err).WithField("contrato", c.NumeroContrato).Error("falha ao gravar valor pago")
		}
	}
}

// removerContratoCancelado remove o contrato e todas as suas comissões,
// histórico primeiro.
func (s *Sincronizador) removerContratoCancelado(c sienge.Contrato) {
	s.Log.WithFields(logrus.Fields{
		"contrato": c.NumeroContrato,
		"status":   c.Status,
	}).Info("contrato cancelado, removendo com comissões")

	comissoes, err := s.Comissoes.ListarTodas()
	if err == nil {
		for _, cm := range comissoes {
			if cm.NumeroContrato == c.NumeroContrato && mesmoBuilding(cm.BuildingID, c.BuildingID) {
				if err := s.Historico.DeletarPorComissao(cm.ID); err != nil {
					s.Log.WithError(err).WithField("comissao_id", cm.ID).Error("falha ao remover histórico")
				}
			}
		}
	}

	// comissões e contrato podem ter sido gravados com o building na forma
	// inteira ou na decimal, então a remoção cobre as duas
	for _, b := range variantesBuilding(c.BuildingID) {
		if err := s.Comissoes.DeletarPorContrato(c.NumeroContrato, b); err != nil {
			s.Log.WithError(err).WithField("contrato", c.NumeroContrato).Error("falha ao remover comissões do contrato")
		}
		if err := s.Contratos.DeletarPorChave(c.NumeroContrato, b); err != nil {
			s.Log.WithError(err).WithField("contrato", c.NumeroContrato).Error("falha ao remover contrato")
		}
	}
}

func (s *Sincronizador) sincronizarCorretores(empresa string) ResultadoEntidade {
	var res ResultadoEntidade
	lista, err := s.Fonte.BuscarCorretores(empresa)
	if err != nil {
		s.Log.WithError(err).Error("falha ao buscar corretores")
		res.Erros++
		return res
	}
	res.Total = len(lista)
	for _, c := range lista {
		m := &corretor.Corretor{
			SiengeID: c.SiengeID,
			Nome:     c.Nome,
			CPF:      c.CPF,
			CNPJ:     c.CNPJ,
			Email:    c.Email,
			Telefone: c.Telefone,
			Ativo:    c.Ativo,
		}
		if err := s.Corretores.Upsert(m); err != nil {
			s.Log.WithError(err).WithField("sienge_id", c.SiengeID).Error("falha ao gravar corretor")
			res.Erros++
			continue
		}
		res.Sucesso++
	}
	return res
}

// SincronizarComissoes reconcilia só as comissões de uma empresa (também
// chamado pela sincronização completa).
func (s *Sincronizador) SincronizarComissoes(empresa, buildingID string) ResultadoEntidade {
	return s.sincronizarComissoes(empresa, buildingID)
}

func (s *Sincronizador) sincronizarComissoes(empresa, buildingID string) ResultadoEntidade {
	var res ResultadoEntidade
	lista, err := s.Fonte.BuscarComissoes(empresa, buildingID)
	if err != nil {
		s.Log.WithError(err).Error("falha ao buscar comissões")
		res.Erros++
		return res
	}
	res.Total = len(lista)

	for _, sc := range lista {
		if temPalavraCancelamento(sc.InstallmentStatus) || temPalavraCancelamento(sc.SituacaoCliente) || sc.ValorCancelado > 0 {
			s.removerComissaoCancelada(sc)
			res.Canceladas++
			continue
		}
		if err := s.reconciliarComissao(sc); err != nil {
			s.Log.WithError(err).WithField("sienge_id", sc.SiengeID).Error("falha ao reconciliar comissão")
			res.Erros++
			continue
		}
		res.Sucesso++
	}
	return res
}

func (s *Sincronizador) removerComissaoCancelada(sc sienge.Comissao) {
	s.Log.WithFields(logrus.Fields{
		"sienge_id": sc.SiengeID,
		"status":    sc.InstallmentStatus,
	}).Info("comissão cancelada, removendo")

	if err := s.Historico.DeletarPorSiengeID(sc.SiengeID); err != nil {
		s.Log.WithError(err).WithField("sienge_id", sc.SiengeID).Error("falha ao remover histórico")
	}
	if err := s.Comissoes.DeletarPorSiengeID(sc.SiengeID); err != nil {
		s.Log.WithError(err).WithField("sienge_id", sc.SiengeID).Error("falha ao remover comissão")
	}
}

// reconciliarComissao insere ou atualiza uma comissão. A leitura antes da
// escrita é o que preserva o workflow local: só as colunas externas são
// sobrescritas em registros existentes.
func (s *Sincronizador) reconciliarComissao(sc sienge.Comissao) error {
	nomeEmpreendimento := sc.NomeEmpreend
	if nomeEmpreendimento == "" {
		nomeEmpreendimento = empreendimento.NomePara(normalizarBuilding(sc.BuildingID))
	}

	novo := &comissao.Comissao{
		SiengeID:           sc.SiengeID,
		NumeroContrato:     sc.NumeroContrato,
		BuildingID:         sc.BuildingID,
		CompanyID:          sc.CompanyID,
		BrokerID:           sc.BrokerID,
		BrokerNome:         sc.BrokerNome,
		NomeCliente:        sc.NomeCliente,
		NomeEmpreendimento: nomeEmpreendimento,
		Unidade:            sc.Unidade,
		Valor:              sc.Valor,
		InstallmentStatus:  sc.InstallmentStatus,
		SituacaoCliente:    sc.SituacaoCliente,
		DataComissao:       sc.DataComissao,
	}

	existente, err := s.Comissoes.BuscarPorSiengeID(sc.SiengeID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		novo.StatusAprovacao = comissao.StatusPendente
		if comissaoPaga(sc) {
			novo.StatusAprovacao = comissao.StatusAprovada
		}
		return s.Comissoes.Criar(novo)
	}

	if err := s.Comissoes.AtualizarExternos(novo); err != nil {
		return err
	}

	// parcela já paga no Sienge não fica presa em aprovação local
	if comissaoPaga(sc) && existente.StatusAprovacao != comissao.StatusAprovada {
		s.Log.WithField("sienge_id", sc.SiengeID).Info("comissão paga no Sienge, aprovando automaticamente")
		return s.Comissoes.AtualizarStatusAprovacao(sc.SiengeID, comissao.StatusAprovada)
	}
	return nil
}

func (s *Sincronizador) registrarExecucao(tipo string, inicio time.Time, resultados interface{}, execErr error) {
	if s.Execucoes == nil {
		return
	}
	detalhe, _ := json.Marshal(resultados)
	l := &LogSincronizacao{
		Tipo:         tipo,
		Empresas:     strings.Join(s.Empresas, ","),
		Sucesso:      execErr == nil,
		Resultados:   string(detalhe),
		IniciadoEm:   inicio,
		FinalizadoEm: time.Now(),
	}
	if execErr != nil {
		l.Erro = execErr.Error()
	}
	if err := s.Execucoes.Registrar(l); err != nil {
		s.Log.WithError(err).Error("falha ao gravar log de sincronização")
	}
}
