package sincronizacao

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/youngemp/comissoes-api/internal/comissao"
	"github.com/youngemp/comissoes-api/internal/contrato"
	"github.com/youngemp/comissoes-api/internal/corretor"
	"github.com/youngemp/comissoes-api/internal/empreendimento"
	"github.com/youngemp/comissoes-api/internal/itbi"
	"github.com/youngemp/comissoes-api/internal/sienge"
	"github.com/youngemp/comissoes-api/internal/valorpago"
)

type fonteFake struct {
	empreendimentos []sienge.Empreendimento
	contratos       []sienge.Contrato
	corretores      []sienge.Corretor
	comissoes       []sienge.Comissao
	detalhes        map[int64]*sienge.DetalheContrato
	erroComissoes   error
}

func (f *fonteFake) BuscarEmpreendimentos(string) ([]sienge.Empreendimento, error) {
	return f.empreendimentos, nil
}

func (f *fonteFake) BuscarContratos(string, string) ([]sienge.Contrato, error) {
	return f.contratos, nil
}

func (f *fonteFake) BuscarCorretores(string) ([]sienge.Corretor, error) {
	return f.corretores, nil
}

func (f *fonteFake) BuscarComissoes(string, string) ([]sienge.Comissao, error) {
	if f.erroComissoes != nil {
		return nil, f.erroComissoes
	}
	return f.comissoes, nil
}

func (f *fonteFake) BuscarDetalheContrato(id int64) (*sienge.DetalheContrato, error) {
	if d, ok := f.detalhes[id]; ok {
		return d, nil
	}
	return &sienge.DetalheContrato{SiengeID: id}, nil
}

type empreendimentosFake struct{ itens map[int64]empreendimento.Empreendimento }

func (f *empreendimentosFake) Upsert(e *empreendimento.Empreendimento) error {
	f.itens[e.SiengeID] = *e
	return nil
}

type contratosFake struct{ itens map[string]contrato.Contrato }

func chaveContrato(numero, building string) string { return numero + "|" + building }

func (f *contratosFake) Upsert(c *contrato.Contrato) error {
	f.itens[chaveContrato(c.NumeroContrato, c.BuildingID)] = *c
	return nil
}

func (f *contratosFake) DeletarPorChave(numero, building string) error {
	delete(f.itens, chaveContrato(numero, building))
	return nil
}

func (f *contratosFake) ListarTodos() ([]contrato.Contrato, error) {
	var lista []contrato.Contrato
	for _, c := range f.itens {
		lista = append(lista, c)
	}
	return lista, nil
}

type corretoresFake struct{ itens map[int64]corretor.Corretor }

func (f *corretoresFake) Upsert(c *corretor.Corretor) error {
	f.itens[c.SiengeID] = *c
	return nil
}

type itbiFake struct{ itens map[string]itbi.ITBI }

func (f *itbiFake) Upsert(v *itbi.ITBI) error {
	f.itens[chaveContrato(v.NumeroContrato, v.BuildingID)] = *v
	return nil
}

type valoresPagosFake struct{ itens map[string]valorpago.ValorPago }

func (f *valoresPagosFake) Upsert(v *valorpago.ValorPago) error {
	f.itens[chaveContrato(v.NumeroContrato, v.BuildingID)] = *v
	return nil
}

type comissoesFake struct {
	itens   map[string]*comissao.Comissao
	proximo uint
}

func novasComissoesFake() *comissoesFake {
	return &comissoesFake{itens: map[string]*comissao.Comissao{}}
}

func (f *comissoesFake) adicionar(c comissao.Comissao) *comissao.Comissao {
	f.proximo++
	c.ID = f.proximo
	f.itens[c.SiengeID] = &c
	return &c
}

func (f *comissoesFake) BuscarPorSiengeID(siengeID string) (*comissao.Comissao, error) {
	c, ok := f.itens[siengeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

func (f *comissoesFake) Criar(c *comissao.Comissao) error {
	f.adicionar(*c)
	return nil
}

func (f *comissoesFake) AtualizarExternos(c *comissao.Comissao) error {
	existente, ok := f.itens[c.SiengeID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existente.NumeroContrato = c.NumeroContrato
	existente.BuildingID = c.BuildingID
	existente.BrokerNome = c.BrokerNome
	existente.Valor = c.Valor
	existente.InstallmentStatus = c.InstallmentStatus
	existente.SituacaoCliente = c.SituacaoCliente
	return nil
}

func (f *comissoesFake) AtualizarStatusAprovacao(siengeID, status string) error {
	if c, ok := f.itens[siengeID]; ok {
		c.StatusAprovacao = status
	}
	return nil
}

func (f *comissoesFake) MarcarStatusParcela(id uint, status string) error {
	for _, c := range f.itens {
		if c.ID == id {
			c.InstallmentStatus = status
		}
	}
	return nil
}

func (f *comissoesFake) ReverterParaPendente(id uint) error {
	for _, c := range f.itens {
		if c.ID == id {
			c.StatusAprovacao = comissao.StatusPendente
			c.EnviadoPor = nil
			c.AprovadoPor = nil
			c.Observacoes = ""
		}
	}
	return nil
}

func (f *comissoesFake) DeletarPorSiengeID(siengeID string) error {
	delete(f.itens, siengeID)
	return nil
}

func (f *comissoesFake) DeletarPorContrato(numero, building string) error {
	// espelha o repositório real: comparação exata, sem normalização
	for chave, c := range f.itens {
		if c.NumeroContrato == numero && c.BuildingID == building {
			delete(f.itens, chave)
		}
	}
	return nil
}

func (f *comissoesFake) DeletarPorID(id uint) error {
	for chave, c := range f.itens {
		if c.ID == id {
			delete(f.itens, chave)
		}
	}
	return nil
}

func (f *comissoesFake) ListarTodas() ([]comissao.Comissao, error) {
	var lista []comissao.Comissao
	for _, c := range f.itens {
		lista = append(lista, *c)
	}
	return lista, nil
}

type historicoFake struct{ removidos []string }

func (f *historicoFake) DeletarPorSiengeID(siengeID string) error {
	f.removidos = append(f.removidos, siengeID)
	return nil
}

func (f *historicoFake) DeletarPorComissao(id uint) error {
	return nil
}

type execucoesFake struct{ logs []LogSincronizacao }

func (f *execucoesFake) Registrar(l *LogSincronizacao) error {
	f.logs = append(f.logs, *l)
	return nil
}

func logSilencioso() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func novoSincronizador(fonte *fonteFake, comissoes *comissoesFake) (*Sincronizador, *contratosFake, *itbiFake, *valoresPagosFake, *execucoesFake) {
	contratos := &contratosFake{itens: map[string]contrato.Contrato{}}
	itbis := &itbiFake{itens: map[string]itbi.ITBI{}}
	pagos := &valoresPagosFake{itens: map[string]valorpago.ValorPago{}}
	execucoes := &execucoesFake{}
	s := &Sincronizador{
		Fonte:           fonte,
		Empresas:        []string{"5"},
		Empreendimentos: &empreendimentosFake{itens: map[int64]empreendimento.Empreendimento{}},
		Contratos:       contratos,
		Corretores:      &corretoresFake{itens: map[int64]corretor.Corretor{}},
		ITBI:            itbis,
		ValoresPagos:    pagos,
		Comissoes:       comissoes,
		Historico:       &historicoFake{},
		Execucoes:       execucoes,
		Log:             logSilencioso(),
	}
	return s, contratos, itbis, pagos, execucoes
}

func TestSincronizarContratoComDetalhe(t *testing.T) {
	fonte := &fonteFake{
		contratos: []sienge.Contrato{
			{SiengeID: 10, NumeroContrato: "CT-100", BuildingID: "2003", CompanyID: "5", ValorAVista: 150000, Status: "Ativo"},
		},
		detalhes: map[int64]*sienge.DetalheContrato{
			10: {SiengeID: 10, Condicoes: []sienge.CondicaoPagamento{
				{TipoCondicao: "DC", ValorTotal: 2500, ValorPago: 2500, Documento: "ITBI-1"},
				{TipoCondicao: "AT", ValorTotal: 50000, ValorPago: 12000},
			}},
		},
	}
	s, contratos, itbis, pagos, _ := novoSincronizador(fonte, novasComissoesFake())

	res, err := s.SincronizarEmpresa("5", "")

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Contratos.Sucesso)
	assert.Contains(t, contratos.itens, "CT-100|2003")
	assert.Equal(t, 2500.0, itbis.itens["CT-100|2003"].Valor)
	assert.Equal(t, 14500.0, pagos.itens["CT-100|2003"].Valor)
}

func TestSincronizarDetalheSemValoresNaoGrava(t *testing.T) {
	// contrato sem pagamentos: nada de ITBI nem valor pago gravado
	fonte := &fonteFake{
		contratos: []sienge.Contrato{
			{SiengeID: 11, NumeroContrato: "CT-200", BuildingID: "2003", Status: "Ativo"},
		},
	}
	s, _, itbis, pagos, _ := novoSincronizador(fonte, novasComissoesFake())

	_, err := s.SincronizarEmpresa("5", "")

	assert.NoError(t, err)
	assert.Empty(t, itbis.itens)
	assert.Empty(t, pagos.itens)
}

func TestContratoCanceladoRemoveComissoes(t *testing.T) {
	comissoes := novasComissoesFake()
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", StatusAprovacao: comissao.StatusPendente})
	// gravada com o building na forma decimal, também cai na cascata
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-2", NumeroContrato: "CT-100", BuildingID: "2003.0", StatusAprovacao: comissao.StatusPendente})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-3", NumeroContrato: "CT-999", BuildingID: "2003", StatusAprovacao: comissao.StatusPendente})

	fonte := &fonteFake{
		contratos: []sienge.Contrato{
			{SiengeID: 10, NumeroContrato: "CT-100", BuildingID: "2003", Status: "Distrato em andamento"},
		},
	}
	s, contratos, _, _, _ := novoSincronizador(fonte, comissoes)
	contratos.itens["CT-100|2003"] = contrato.Contrato{NumeroContrato: "CT-100", BuildingID: "2003"}

	res, err := s.SincronizarEmpresa("5", "")

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Contratos.Canceladas)
	assert.NotContains(t, contratos.itens, "CT-100|2003")
	assert.NotContains(t, comissoes.itens, "C-1")
	assert.NotContains(t, comissoes.itens, "C-2")
	assert.Contains(t, comissoes.itens, "C-3")
}

func TestComissaoNovaEntraPendente(t *testing.T) {
	comissoes := novasComissoesFake()
	fonte := &fonteFake{
		comissoes: []sienge.Comissao{
			{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", Valor: 5000, InstallmentStatus: "AWAITING"},
		},
	}
	s, _, _, _, _ := novoSincronizador(fonte, comissoes)

	_, err := s.SincronizarEmpresa("5", "")

	assert.NoError(t, err)
	assert.Equal(t, comissao.StatusPendente, comissoes.itens["C-1"].StatusAprovacao)
}

func TestResincronizacaoPreservaWorkflow(t *testing.T) {
	// comissão aprovada localmente continua aprovada após nova sincronização
	comissoes := novasComissoesFake()
	aprovador := uint(2)
	comissoes.adicionar(comissao.Comissao{
		SiengeID:        "C-1",
		NumeroContrato:  "CT-100",
		BuildingID:      "2003",
		Valor:           5000,
		StatusAprovacao: comissao.StatusAprovada,
		AprovadoPor:     &aprovador,
	})

	fonte := &fonteFake{
		comissoes: []sienge.Comissao{
			{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", Valor: 5500, InstallmentStatus: "AWAITING"},
		},
	}
	s, _, _, _, _ := novoSincronizador(fonte, comissoes)

	_, err := s.SincronizarEmpresa("5", "")

	assert.NoError(t, err)
	c := comissoes.itens["C-1"]
	assert.Equal(t, 5500.0, c.Valor, "valor externo deve atualizar")
	assert.Equal(t, comissao.StatusAprovada, c.StatusAprovacao, "workflow local deve sobreviver")
	assert.Equal(t, &aprovador, c.AprovadoPor)
}

func TestSincronizacaoIdempotente(t *testing.T) {
	// rodar duas vezes sobre a mesma fonte não altera nada na segunda passada
	comissoes := novasComissoesFake()
	fonte := &fonteFake{
		contratos: []sienge.Contrato{
			{SiengeID: 10, NumeroContrato: "CT-100", BuildingID: "2003", CompanyID: "5", ValorAVista: 150000, Status: "Ativo"},
		},
		comissoes: []sienge.Comissao{
			{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", Valor: 5000, InstallmentStatus: "AWAITING"},
		},
	}
	s, contratos, _, _, _ := novoSincronizador(fonte, comissoes)

	_, err := s.SincronizarEmpresa("5", "")
	assert.NoError(t, err)

	depoisDaPrimeira := map[string]comissao.Comissao{}
	for k, v := range comissoes.itens {
		depoisDaPrimeira[k] = *v
	}
	qtdContratos := len(contratos.itens)

	_, err = s.SincronizarEmpresa("5", "")
	assert.NoError(t, err)

	assert.Len(t, comissoes.itens, len(depoisDaPrimeira))
	for k, v := range comissoes.itens {
		assert.Equal(t, depoisDaPrimeira[k], *v)
	}
	assert.Len(t, contratos.itens, qtdContratos)
}

func TestComissaoPagaAprovaAutomaticamente(t *testing.T) {
	comissoes := novasComissoesFake()
	comissoes.adicionar(comissao.Comissao{
		SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003",
		StatusAprovacao: comissao.StatusPendente,
	})

	fonte := &fonteFake{
		comissoes: []sienge.Comissao{
			{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", InstallmentStatus: "PAID"},
			{SiengeID: "C-2", NumeroContrato: "CT-100", BuildingID: "2003", ValorLiberado: 1200},
			{SiengeID: "C-3", NumeroContrato: "CT-100", BuildingID: "2003", TitulosPagamento: []string{"TP-9"}},
		},
	}
	s, _, _, _, _ := novoSincronizador(fonte, comissoes)

	_, err := s.SincronizarEmpresa("5", "")

	assert.NoError(t, err)
	assert.Equal(t, comissao.StatusAprovada, comissoes.itens["C-1"].StatusAprovacao)
	assert.Equal(t, comissao.StatusAprovada, comissoes.itens["C-2"].StatusAprovacao)
	assert.Equal(t, comissao.StatusAprovada, comissoes.itens["C-3"].StatusAprovacao)
}

func TestComissaoCanceladaRemovida(t *testing.T) {
	comissoes := novasComissoesFake()
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003"})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-2", NumeroContrato: "CT-100", BuildingID: "2003"})

	fonte := &fonteFake{
		comissoes: []sienge.Comissao{
			{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", InstallmentStatus: "Canceled"},
			{SiengeID: "C-2", NumeroContrato: "CT-100", BuildingID: "2003", InstallmentStatus: "AWAITING", ValorCancelado: 300},
		},
	}
	s, _, _, _, _ := novoSincronizador(fonte, comissoes)

	res, err := s.SincronizarEmpresa("5", "")

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Comissoes.Canceladas)
	assert.NotContains(t, comissoes.itens, "C-1")
	assert.NotContains(t, comissoes.itens, "C-2", "valor cancelado não zero também remove")
}

func TestSincronizarTudoRegistraLog(t *testing.T) {
	fonte := &fonteFake{}
	s, _, _, _, execucoes := novoSincronizador(fonte, novasComissoesFake())

	_, err := s.SincronizarTudo("")

	assert.NoError(t, err)
	assert.Len(t, execucoes.logs, 1)
	assert.Equal(t, TipoCompleta, execucoes.logs[0].Tipo)
	assert.True(t, execucoes.logs[0].Sucesso)
	assert.Equal(t, "5", execucoes.logs[0].Empresas)
}
