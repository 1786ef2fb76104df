package gatilho

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretarRegra(t *testing.T) {
	casos := []struct {
		texto      string
		percentual string
		incluiITBI bool
	}{
		{"10% + ITBI", "10", true},
		{"10%", "10", false},
		{"5%", "5", false},
		{"6%", "6", false},
		{"2,5% + itbi", "2.5", true},
		{"7.5 % do valor à vista", "7.5", false},
		{"", "10", true},
		{"sem percentual nenhum", "10", true},
	}

	for _, c := range casos {
		t.Run(c.texto, func(t *testing.T) {
			r := InterpretarRegra(c.texto)
			assert.Equal(t, c.percentual, r.Percentual.String())
			assert.Equal(t, c.incluiITBI, r.IncluiITBI)
		})
	}
}

func TestCalcularComITBI(t *testing.T) {
	res := calcular(dadosGatilho{
		Regra:       "10% + ITBI",
		ValorAVista: 100000,
		ValorITBI:   2000,
		ValorPago:   12000,
		TemContrato: true,
	})

	assert.Equal(t, 12000.0, res.ValorGatilho)
	assert.True(t, res.AtingiuGatilho)
	assert.True(t, res.DadosCompletos)
}

func TestCalcularSemITBI(t *testing.T) {
	res := calcular(dadosGatilho{
		Regra:       "5%",
		ValorAVista: 100000,
		ValorITBI:   2000,
		ValorPago:   4999.99,
		TemContrato: true,
	})

	assert.Equal(t, 5000.0, res.ValorGatilho)
	assert.False(t, res.AtingiuGatilho)
}

func TestCalcularGatilhoExato(t *testing.T) {
	// pago igual ao gatilho conta como atingido
	res := calcular(dadosGatilho{
		Regra:       "10%",
		ValorAVista: 50000,
		ValorPago:   5000,
		TemContrato: true,
	})

	assert.Equal(t, 5000.0, res.ValorGatilho)
	assert.True(t, res.AtingiuGatilho)
}

func TestCalcularGatilhoZeroNuncaAtinge(t *testing.T) {
	res := calcular(dadosGatilho{
		Regra:       "10%",
		ValorAVista: 0,
		ValorPago:   1000,
	})

	assert.Equal(t, 0.0, res.ValorGatilho)
	assert.False(t, res.AtingiuGatilho)
}

func TestCalcularRegraVaziaUsaPadrao(t *testing.T) {
	res := calcular(dadosGatilho{
		Regra:       "",
		ValorAVista: 100000,
		ValorITBI:   1500,
	})

	assert.Equal(t, RegraPadrao, res.RegraGatilho)
	assert.Equal(t, 11500.0, res.ValorGatilho)
}
