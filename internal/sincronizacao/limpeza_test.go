package sincronizacao

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/youngemp/comissoes-api/internal/comissao"
	"github.com/youngemp/comissoes-api/internal/sienge"
)

func novaLimpeza(comissoes *comissoesFake, fonte *fonteFake) *Limpeza {
	if fonte == nil {
		fonte = &fonteFake{}
	}
	return &Limpeza{
		Comissoes: comissoes,
		Historico: &historicoFake{},
		Fonte:     fonte,
		Empresas:  []string{"5"},
		Log:       logSilencioso(),
	}
}

func TestLimparDuplicadasMantemNaoCanceladaDeMenorID(t *testing.T) {
	comissoes := novasComissoesFake()
	// três cópias da mesma unidade: uma cancelada e duas ativas
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", Unidade: "Apto 101", InstallmentStatus: "Canceled"})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-2", NumeroContrato: "CT-100", BuildingID: "2003", Unidade: "Apto 101", InstallmentStatus: "AWAITING"})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-3", NumeroContrato: "CT-100", BuildingID: "2003", Unidade: "Apto 101", InstallmentStatus: "AWAITING"})

	l := novaLimpeza(comissoes, nil)
	res, err := l.LimparDuplicadas()

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Removidas)
	assert.Len(t, comissoes.itens, 1)
	// sobrevive a não cancelada de menor id (C-2, id 2)
	assert.Contains(t, comissoes.itens, "C-2")
}

func TestLimparDuplicadasAgrupaPorUnidade(t *testing.T) {
	comissoes := novasComissoesFake()
	// mesmo contrato e unidade com corretor e valor divergentes entre as
	// cópias: ainda é a mesma parcela duplicada
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", Unidade: "Apto 101", BrokerID: 7, Valor: 5000})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-2", NumeroContrato: "CT-100", BuildingID: "2003", Unidade: "Apto 101", BrokerID: 8, Valor: 5500})

	l := novaLimpeza(comissoes, nil)
	res, err := l.LimparDuplicadas()

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Removidas)
	assert.Contains(t, comissoes.itens, "C-1")
}

func TestLimparDuplicadasChaveNormalizada(t *testing.T) {
	comissoes := novasComissoesFake()
	// "2003" e "2003.0" são o mesmo empreendimento
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", Unidade: "Apto 101"})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-2", NumeroContrato: "CT-100", BuildingID: "2003.0", Unidade: "Apto 101"})

	l := novaLimpeza(comissoes, nil)
	res, err := l.LimparDuplicadas()

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Removidas)
	assert.Contains(t, comissoes.itens, "C-1")
}

func TestLimparDuplicadasNaoTocaUnidadesDistintas(t *testing.T) {
	comissoes := novasComissoesFake()
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", Unidade: "Apto 101"})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-2", NumeroContrato: "CT-100", BuildingID: "2003", Unidade: "Apto 102"})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-3", NumeroContrato: "CT-200", BuildingID: "2003", Unidade: "Apto 101"})

	l := novaLimpeza(comissoes, nil)
	res, err := l.LimparDuplicadas()

	assert.NoError(t, err)
	assert.Equal(t, 0, res.Removidas)
	assert.Len(t, comissoes.itens, 3)
}

func TestLimparDuplicadasPorStatusPrefereParcelaPaga(t *testing.T) {
	comissoes := novasComissoesFake()
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", Unidade: "Apto 101", InstallmentStatus: "AWAITING"})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-2", NumeroContrato: "CT-100", BuildingID: "2003", Unidade: "Apto 101", InstallmentStatus: "PAID"})

	l := novaLimpeza(comissoes, nil)
	res, err := l.LimparDuplicadasPorStatus()

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Removidas)
	assert.Contains(t, comissoes.itens, "C-2")
}

func TestLimparCanceladas(t *testing.T) {
	comissoes := novasComissoesFake()
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", InstallmentStatus: "Cancelada"})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-2", SituacaoCliente: "Distrato"})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-3", InstallmentStatus: "AWAITING"})

	l := novaLimpeza(comissoes, nil)
	res, err := l.LimparCanceladas()

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Removidas)
	assert.Contains(t, comissoes.itens, "C-3")
}

func TestLimparCanceladasAprovaParcelasPagas(t *testing.T) {
	comissoes := novasComissoesFake()
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", InstallmentStatus: "PAID", StatusAprovacao: comissao.StatusPendente})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-2", InstallmentStatus: "PAID", StatusAprovacao: comissao.StatusAprovada})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-3", InstallmentStatus: "AWAITING", StatusAprovacao: comissao.StatusPendente})

	l := novaLimpeza(comissoes, nil)
	res, err := l.LimparCanceladas()

	assert.NoError(t, err)
	assert.Equal(t, 0, res.Removidas)
	assert.Equal(t, 1, res.Marcadas, "só a paga ainda não aprovada muda")
	assert.Equal(t, comissao.StatusAprovada, comissoes.itens["C-1"].StatusAprovacao)
	assert.Equal(t, comissao.StatusPendente, comissoes.itens["C-3"].StatusAprovacao)
}

func TestMarcarOrfasUsaBuscaExterna(t *testing.T) {
	comissoes := novasComissoesFake()
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", InstallmentStatus: "AWAITING"})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-2", NumeroContrato: "CT-999", BuildingID: "2003", InstallmentStatus: "AWAITING"})

	// só C-1 ainda existe na API
	fonte := &fonteFake{comissoes: []sienge.Comissao{
		{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003"},
	}}

	l := novaLimpeza(comissoes, fonte)
	res, err := l.MarcarOrfas()

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Marcadas)
	assert.Len(t, comissoes.itens, 2, "órfãs são marcadas, nunca removidas")
	assert.Equal(t, StatusParcelaCancelada, comissoes.itens["C-2"].InstallmentStatus)
	assert.Equal(t, "AWAITING", comissoes.itens["C-1"].InstallmentStatus)
}

func TestMarcarOrfasIgnoraContratoLocalAusente(t *testing.T) {
	// comissão ainda viva na API não é órfã, mesmo sem contrato local
	comissoes := novasComissoesFake()
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003", InstallmentStatus: "AWAITING"})

	fonte := &fonteFake{comissoes: []sienge.Comissao{
		{SiengeID: "C-1", NumeroContrato: "CT-100", BuildingID: "2003"},
	}}

	l := novaLimpeza(comissoes, fonte)
	res, err := l.MarcarOrfas()

	assert.NoError(t, err)
	assert.Equal(t, 0, res.Marcadas)
	assert.Equal(t, "AWAITING", comissoes.itens["C-1"].InstallmentStatus)
}

func TestMarcarOrfasFalhaDeBuscaNaoMarcaNada(t *testing.T) {
	comissoes := novasComissoesFake()
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", InstallmentStatus: "AWAITING"})

	fonte := &fonteFake{erroComissoes: errors.New("timeout")}

	l := novaLimpeza(comissoes, fonte)
	res, err := l.MarcarOrfas()

	assert.Error(t, err)
	assert.Equal(t, 0, res.Marcadas)
	assert.Equal(t, "AWAITING", comissoes.itens["C-1"].InstallmentStatus)
}

func TestReverterTodasParaPendente(t *testing.T) {
	comissoes := novasComissoesFake()
	enviador := uint(3)
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-1", StatusAprovacao: comissao.StatusAprovada, EnviadoPor: &enviador})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-2", StatusAprovacao: comissao.StatusEnviada})
	comissoes.adicionar(comissao.Comissao{SiengeID: "C-3", StatusAprovacao: comissao.StatusPendente})

	l := novaLimpeza(comissoes, nil)
	res, err := l.ReverterTodasParaPendente()

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Marcadas)
	for _, c := range comissoes.itens {
		assert.Equal(t, comissao.StatusPendente, c.StatusAprovacao)
	}
	assert.Nil(t, comissoes.itens["C-1"].EnviadoPor)
}
