package gatilho

import (
	"fmt"

	"github.com/youngemp/comissoes-api/internal/comissao"
	"github.com/youngemp/comissoes-api/internal/contrato"
	"github.com/youngemp/comissoes-api/internal/itbi"
	"github.com/youngemp/comissoes-api/internal/regragatilho"
	"github.com/youngemp/comissoes-api/internal/valorpago"
)

// ListaContratos fornece todos os contratos de uma vez.
type ListaContratos interface {
	ListarTodos() ([]contrato.Contrato, error)
}

// ListaITBI fornece todos os valores de ITBI de uma vez.
type ListaITBI interface {
	ListarTodos() ([]itbi.ITBI, error)
}

// ListaValoresPagos fornece todos os valores pagos de uma vez.
type ListaValoresPagos interface {
	ListarTodos() ([]valorpago.ValorPago, error)
}

// ListaRegras fornece todas as regras estruturadas de uma vez.
type ListaRegras interface {
	ListarTodas() ([]regragatilho.RegraGatilho, error)
}

// CalculadoraLote anota listas inteiras de comissões sem uma consulta por
// registro. Carrega contratos, ITBI, valores pagos e regras em mapas e aplica
// o mesmo cálculo do Resolver, produzindo resultados idênticos aos da
// resolução individual.
type CalculadoraLote struct {
	contratos map[string]contrato.Contrato
	itbi      map[string]float64
	pagos     map[string]float64
	regras    map[uint]regragatilho.RegraGatilho
}

// NovaCalculadoraLote carrega os dados de apoio e devolve a calculadora.
func NovaCalculadoraLote(contratos ListaContratos, itbis ListaITBI, pagos ListaValoresPagos, regras ListaRegras) (*CalculadoraLote, error) {
	calc := &CalculadoraLote{
		contratos: map[string]contrato.Contrato{},
		itbi:      map[string]float64{},
		pagos:     map[string]float64{},
		regras:    map[uint]regragatilho.RegraGatilho{},
	}

	listaContratos, err := contratos.ListarTodos()
	if err != nil {
		return nil, fmt.Errorf("carregar contratos: %w", err)
	}
	for _, c := range listaContratos {
		for _, chave := range chavesContrato(c.NumeroContrato, c.BuildingID) {
			calc.contratos[chave] = c
		}
	}

	listaITBI, err := itbis.ListarTodos()
	if err != nil {
		return nil, fmt.Errorf("carregar itbi: %w", err)
	}
	for _, v := range listaITBI {
		for _, chave := range chavesContrato(v.NumeroContrato, v.BuildingID) {
			calc.itbi[chave] = v.Valor
		}
	}

	listaPagos, err := pagos.ListarTodos()
	if err != nil {
		return nil, fmt.Errorf("carregar valores pagos: %w", err)
	}
	for _, v := range listaPagos {
		for _, chave := range chavesContrato(v.NumeroContrato, v.BuildingID) {
			calc.pagos[chave] = v.Valor
		}
	}

	if regras != nil {
		listaRegras, err := regras.ListarTodas()
		if err != nil {
			return nil, fmt.Errorf("carregar regras: %w", err)
		}
		for _, rg := range listaRegras {
			calc.regras[rg.ID] = rg
		}
	}

	return calc, nil
}

func chavesContrato(numeroContrato, buildingID string) []string {
	var chaves []string
	for _, b := range chavesBuilding(buildingID) {
		chaves = append(chaves, numeroContrato+"|"+b)
	}
	return chaves
}

func (calc *CalculadoraLote) buscar(m map[string]float64, numeroContrato, buildingID string) float64 {
	for _, chave := range chavesContrato(numeroContrato, buildingID) {
		if v, ok := m[chave]; ok && v > 0 {
			return v
		}
	}
	return 0
}

// regraDe resolve o texto da regra de uma comissão: referência estruturada
// tem prioridade sobre o texto legado.
func (calc *CalculadoraLote) regraDe(c *comissao.Comissao) string {
	if c.RegraGatilhoID != nil {
		if rg, ok := calc.regras[*c.RegraGatilhoID]; ok {
			if t := rg.Texto(); t != "" {
				return t
			}
		}
	}
	return c.RegraGatilho
}

// Calcular devolve a anotação de gatilho de uma comissão.
func (calc *CalculadoraLote) Calcular(c *comissao.Comissao) Resultado {
	d := dadosGatilho{Regra: calc.regraDe(c)}
	var dataContrato string

	for _, chave := range chavesContrato(c.NumeroContrato, c.BuildingID) {
		if ct, ok := calc.contratos[chave]; ok {
			d.ValorAVista = valorBase(&ct)
			d.TemContrato = true
			dataContrato = ct.DataContrato
			break
		}
	}
	d.ValorITBI = calc.buscar(calc.itbi, c.NumeroContrato, c.BuildingID)
	d.ValorPago = calc.buscar(calc.pagos, c.NumeroContrato, c.BuildingID)

	res := calcular(d)
	res.DataContrato = dataContrato
	return res
}

// Anotar preenche os campos transientes de gatilho de uma lista de comissões.
func (calc *CalculadoraLote) Anotar(lista []comissao.Comissao) {
	for i := range lista {
		res := calc.Calcular(&lista[i])
		aplicar(&lista[i], res)
	}
}

// AnotarUma preenche os campos transientes de uma única comissão.
func (calc *CalculadoraLote) AnotarUma(c *comissao.Comissao) {
	aplicar(c, calc.Calcular(c))
}

func aplicar(c *comissao.Comissao, res Resultado) {
	c.ValorGatilho = res.ValorGatilho
	c.AtingiuGatilho = res.AtingiuGatilho
	c.ValorPago = res.ValorPago
	c.ValorAVista = res.ValorAVista
	c.ValorITBI = res.ValorITBI
	c.DadosCompletos = res.DadosCompletos
	if c.RegraGatilho == "" {
		c.RegraGatilho = res.RegraGatilho
	}
	c.DataContrato = res.DataContrato
}
