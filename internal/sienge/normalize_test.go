package sienge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizarComissaoNomesNovos(t *testing.T) {
	raw := map[string]any{
		"id":                   float64(12345),
		"salesContractNumber":  "CT-100",
		"enterpriseId":         float64(2003),
		"companyId":            float64(5),
		"brokerId":             float64(77),
		"brokerName":           "Maria Silva",
		"customerName":         "João Souza",
		"enterpriseName":       "Montecarlo",
		"value":                2500.50,
		"installmentStatus":    "AWAITING",
		"dueDate":              "2026-05-10",
		"releasedValue":        float64(0),
	}

	c := NormalizarComissao(raw)

	assert.Equal(t, "12345", c.SiengeID)
	assert.Equal(t, "CT-100", c.NumeroContrato)
	assert.Equal(t, "2003", c.BuildingID)
	assert.Equal(t, "5", c.CompanyID)
	assert.Equal(t, int64(77), c.BrokerID)
	assert.Equal(t, "Maria Silva", c.BrokerNome)
	assert.Equal(t, 2500.50, c.Valor)
	assert.Equal(t, "2026-05-10", c.DataComissao)
}

func TestNormalizarComissaoNomesAntigos(t *testing.T) {
	// geração anterior da API: commissionID, contractNumber, buildingId
	raw := map[string]any{
		"commissionID":    "ABC-9",
		"contractNumber":  "CT-200",
		"buildingId":      "2014",
		"commissionValue": float64(1800),
		"commissionDate":  "2025-12-01",
		"paymentBills":    []any{float64(901), "902"},
	}

	c := NormalizarComissao(raw)

	assert.Equal(t, "ABC-9", c.SiengeID)
	assert.Equal(t, "CT-200", c.NumeroContrato)
	assert.Equal(t, "2014", c.BuildingID)
	assert.Equal(t, 1800.0, c.Valor)
	assert.Equal(t, "2025-12-01", c.DataComissao)
	assert.Equal(t, []string{"901", "902"}, c.TitulosPagamento)
}

func TestNormalizarContratoComListasAninhadas(t *testing.T) {
	raw := map[string]any{
		"id":                float64(10),
		"number":            "CT-100",
		"enterpriseId":      float64(2003),
		"companyId":         float64(5),
		"contractDate":      "2026-01-15",
		"totalSellingValue": float64(350000),
		"value":             float64(120000),
		"situation":         "Ativo",
		"salesContractCustomers": []any{
			map[string]any{"name": "João Souza"},
		},
		"salesContractUnits": []any{
			map[string]any{"name": "Apto 302"},
		},
	}

	c := NormalizarContrato(raw)

	assert.Equal(t, int64(10), c.SiengeID)
	assert.Equal(t, "CT-100", c.NumeroContrato)
	assert.Equal(t, 350000.0, c.ValorTotal)
	assert.Equal(t, 120000.0, c.ValorAVista)
	assert.Equal(t, "João Souza", c.NomeCliente)
	assert.Equal(t, "Apto 302", c.Unidade)
}

func TestExtrairITBI(t *testing.T) {
	detalhe := &DetalheContrato{Condicoes: []CondicaoPagamento{
		{TipoCondicao: "AT", ValorTotal: 50000, ValorPago: 10000},
		{TipoCondicao: "DC", ValorTotal: 2500, ValorPago: 2500, Documento: "ITBI-77", DataVencimento: "2026-02-01"},
	}}

	ext := ExtrairITBI(detalhe)

	assert.NotNil(t, ext)
	assert.Equal(t, 2500.0, ext.Valor)
	assert.Equal(t, "ITBI-77", ext.Documento)
}

func TestExtrairITBIAusente(t *testing.T) {
	detalhe := &DetalheContrato{Condicoes: []CondicaoPagamento{
		{TipoCondicao: "AT", ValorTotal: 50000},
		{TipoCondicao: "DC", ValorTotal: 0},
	}}

	assert.Nil(t, ExtrairITBI(detalhe))
	assert.Nil(t, ExtrairITBI(nil))
}

func TestExtrairValorPago(t *testing.T) {
	detalhe := &DetalheContrato{Condicoes: []CondicaoPagamento{
		{TipoCondicao: "AT", ValorPago: 10000},
		{TipoCondicao: "DC", ValorPago: 2500},
		{TipoCondicao: "FI", ValorPago: 0},
	}}

	assert.Equal(t, 12500.0, ExtrairValorPago(detalhe))
	assert.Equal(t, 0.0, ExtrairValorPago(nil))
}
