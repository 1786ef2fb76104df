package gatilho

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/youngemp/comissoes-api/internal/comissao"
	"github.com/youngemp/comissoes-api/internal/contrato"
	"github.com/youngemp/comissoes-api/internal/itbi"
	"github.com/youngemp/comissoes-api/internal/regragatilho"
	"github.com/youngemp/comissoes-api/internal/valorpago"
)

type contratosFake struct {
	contratos []contrato.Contrato
}

func (f *contratosFake) BuscarPorNumero(numero, buildingID string) (*contrato.Contrato, error) {
	for i := range f.contratos {
		if f.contratos[i].NumeroContrato == numero && f.contratos[i].BuildingID == buildingID {
			return &f.contratos[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *contratosFake) ListarTodos() ([]contrato.Contrato, error) {
	return f.contratos, nil
}

type valoresFake struct {
	itens map[string]float64
}

func (f *valoresFake) ValorPorContrato(numero, buildingID string) (float64, error) {
	return f.itens[numero+"|"+buildingID], nil
}

type itbiFake struct{ valoresFake }

func (f *itbiFake) ListarTodos() ([]itbi.ITBI, error) {
	var lista []itbi.ITBI
	for chave, v := range f.itens {
		lista = append(lista, itbi.ITBI{NumeroContrato: parteChave(chave, 0), BuildingID: parteChave(chave, 1), Valor: v})
	}
	return lista, nil
}

type pagosFake struct{ valoresFake }

func (f *pagosFake) ListarTodos() ([]valorpago.ValorPago, error) {
	var lista []valorpago.ValorPago
	for chave, v := range f.itens {
		lista = append(lista, valorpago.ValorPago{NumeroContrato: parteChave(chave, 0), BuildingID: parteChave(chave, 1), Valor: v})
	}
	return lista, nil
}

type regrasFake struct {
	regras []regragatilho.RegraGatilho
}

func (f *regrasFake) ListarTodas() ([]regragatilho.RegraGatilho, error) {
	return f.regras, nil
}

func parteChave(chave string, i int) string {
	for j := 0; j < len(chave); j++ {
		if chave[j] == '|' {
			if i == 0 {
				return chave[:j]
			}
			return chave[j+1:]
		}
	}
	return chave
}

func TestResolverComissaoCompleta(t *testing.T) {
	r := NovoResolver(
		&contratosFake{contratos: []contrato.Contrato{
			{NumeroContrato: "CT-100", BuildingID: "2003", ValorAVista: 200000, DataContrato: "2026-01-15"},
		}},
		&valoresFake{itens: map[string]float64{"CT-100|2003": 3000}},
		&valoresFake{itens: map[string]float64{"CT-100|2003": 30000}},
	)

	res := r.Resolver("CT-100", "2003", "10% + ITBI")

	assert.Equal(t, 23000.0, res.ValorGatilho)
	assert.True(t, res.AtingiuGatilho)
	assert.Equal(t, 30000.0, res.ValorPago)
	assert.Equal(t, "2026-01-15", res.DataContrato)
	assert.True(t, res.DadosCompletos)
}

func TestResolverContratoAusente(t *testing.T) {
	// sem contrato o cálculo não falha: zeros e DadosCompletos=false
	r := NovoResolver(
		&contratosFake{},
		&valoresFake{itens: map[string]float64{}},
		&valoresFake{itens: map[string]float64{}},
	)

	res := r.Resolver("CT-999", "2003", "10%")

	assert.Equal(t, 0.0, res.ValorGatilho)
	assert.False(t, res.AtingiuGatilho)
	assert.False(t, res.DadosCompletos)
}

func TestResolverValorTotalComoFallback(t *testing.T) {
	// contrato sem valor à vista: o cálculo usa o valor total
	r := NovoResolver(
		&contratosFake{contratos: []contrato.Contrato{
			{NumeroContrato: "CT-300", BuildingID: "2003", ValorTotal: 100000},
		}},
		&valoresFake{itens: map[string]float64{}},
		&valoresFake{itens: map[string]float64{"CT-300|2003": 10000}},
	)

	res := r.Resolver("CT-300", "2003", "10%")

	assert.Equal(t, 10000.0, res.ValorGatilho)
	assert.True(t, res.AtingiuGatilho)
	assert.Equal(t, 100000.0, res.ValorAVista)
}

func TestResolverChaveNumericaNormalizada(t *testing.T) {
	// comissão referencia "2003.0" mas o contrato foi gravado como "2003"
	r := NovoResolver(
		&contratosFake{contratos: []contrato.Contrato{
			{NumeroContrato: "CT-100", BuildingID: "2003", ValorAVista: 100000},
		}},
		&valoresFake{itens: map[string]float64{}},
		&valoresFake{itens: map[string]float64{"CT-100|2003": 10000}},
	)

	res := r.Resolver("CT-100", "2003.0", "10%")

	assert.Equal(t, 10000.0, res.ValorGatilho)
	assert.True(t, res.AtingiuGatilho)
	assert.True(t, res.DadosCompletos)
}

// O caminho individual e o caminho em lote precisam produzir exatamente a
// mesma anotação para a mesma comissão.
func TestResolverELoteEquivalentes(t *testing.T) {
	contratos := &contratosFake{contratos: []contrato.Contrato{
		{NumeroContrato: "CT-100", BuildingID: "2003", ValorAVista: 200000, DataContrato: "2026-01-15"},
		{NumeroContrato: "CT-200", BuildingID: "2014", ValorAVista: 80000, DataContrato: "2026-03-02"},
		{NumeroContrato: "CT-300", BuildingID: "2003", ValorTotal: 60000, DataContrato: "2026-04-10"},
	}}
	itbis := &itbiFake{valoresFake{itens: map[string]float64{"CT-100|2003": 3000}}}
	pagos := &pagosFake{valoresFake{itens: map[string]float64{
		"CT-100|2003": 30000,
		"CT-200|2014": 4000,
	}}}

	resolver := NovoResolver(contratos, &itbis.valoresFake, &pagos.valoresFake)
	lote, err := NovaCalculadoraLote(contratos, itbis, pagos, &regrasFake{})
	assert.NoError(t, err)

	comissoes := []comissao.Comissao{
		{NumeroContrato: "CT-100", BuildingID: "2003", RegraGatilho: "10% + ITBI"},
		{NumeroContrato: "CT-200", BuildingID: "2014.0", RegraGatilho: "5%"},
		{NumeroContrato: "CT-300", BuildingID: "2003", RegraGatilho: "10%"},
		{NumeroContrato: "CT-999", BuildingID: "2003", RegraGatilho: ""},
	}

	for _, c := range comissoes {
		individual := resolver.Resolver(c.NumeroContrato, c.BuildingID, c.RegraGatilho)
		emLote := lote.Calcular(&c)
		assert.Equal(t, individual, emLote, "contrato %s", c.NumeroContrato)
	}
}

func TestLoteRegraEstruturadaTemPrioridade(t *testing.T) {
	pct := 5.0
	regraID := uint(7)
	lote, err := NovaCalculadoraLote(
		&contratosFake{contratos: []contrato.Contrato{
			{NumeroContrato: "CT-100", BuildingID: "2003", ValorAVista: 100000},
		}},
		&itbiFake{valoresFake{itens: map[string]float64{}}},
		&pagosFake{valoresFake{itens: map[string]float64{}}},
		&regrasFake{regras: []regragatilho.RegraGatilho{
			{ID: regraID, Nome: "Regra 5%", TipoRegra: regragatilho.TipoGatilho, Percentual: &pct},
		}},
	)
	assert.NoError(t, err)

	c := comissao.Comissao{
		NumeroContrato: "CT-100",
		BuildingID:     "2003",
		RegraGatilhoID: &regraID,
		RegraGatilho:   "10% + ITBI",
	}
	res := lote.Calcular(&c)

	assert.Equal(t, 5000.0, res.ValorGatilho)
	assert.Equal(t, "5%", res.RegraGatilho)
}
