package gatilho

import (
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/youngemp/comissoes-api/internal/contrato"
)

// FonteContratos fornece os contratos sincronizados.
type FonteContratos interface {
	BuscarPorNumero(numeroContrato, buildingID string) (*contrato.Contrato, error)
}

// FonteValores fornece um valor acumulado por contrato (ITBI ou valor pago).
type FonteValores interface {
	ValorPorContrato(numeroContrato, buildingID string) (float64, error)
}

// Resolver calcula a anotação de gatilho de uma comissão consultando as
// fontes por contrato. Nunca falha o cálculo: contrato ausente ou erro de
// consulta viram zeros com DadosCompletos=false.
type Resolver struct {
	Contratos FonteContratos
	ITBI      FonteValores
	Pagos     FonteValores
}

// NovoResolver cria um resolver sobre as fontes dadas.
func NovoResolver(contratos FonteContratos, itbi, pagos FonteValores) *Resolver {
	return &Resolver{Contratos: contratos, ITBI: itbi, Pagos: pagos}
}

// chavesBuilding gera as variações da chave de empreendimento. IDs numéricos
// chegam ora como "2003" ora como "2003.0" dependendo da origem, então a
// busca tenta a forma bruta e a forma inteira normalizada.
func chavesBuilding(buildingID string) []string {
	chaves := []string{buildingID}
	limpo := strings.TrimSpace(buildingID)
	if f, err := strconv.ParseFloat(limpo, 64); err == nil {
		norm := strconv.FormatInt(int64(f), 10)
		if norm != buildingID {
			chaves = append(chaves, norm)
		}
	}
	return chaves
}

// valorBase é o valor de referência do cálculo: à vista quando informado,
// senão o valor total do contrato.
func valorBase(c *contrato.Contrato) float64 {
	if c.ValorAVista > 0 {
		return c.ValorAVista
	}
	return c.ValorTotal
}

func (r *Resolver) buscarContrato(numeroContrato, buildingID string) *contrato.Contrato {
	for _, chave := range chavesBuilding(buildingID) {
		c, err := r.Contratos.BuscarPorNumero(numeroContrato, chave)
		if err == nil {
			return c
		}
		if err != gorm.ErrRecordNotFound {
			return nil
		}
	}
	return nil
}

func (r *Resolver) valor(fonte FonteValores, numeroContrato, buildingID string) float64 {
	for _, chave := range chavesBuilding(buildingID) {
		v, err := fonte.ValorPorContrato(numeroContrato, chave)
		if err != nil {
			return 0
		}
		if v > 0 {
			return v
		}
	}
	return 0
}

// Resolver calcula o gatilho de uma comissão identificada pelo contrato,
// aplicando a regra em texto (vazia cai na padrão).
func (r *Resolver) Resolver(numeroContrato, buildingID, regra string) Resultado {
	d := dadosGatilho{Regra: regra}
	var dataContrato string

	if c := r.buscarContrato(numeroContrato, buildingID); c != nil {
		d.ValorAVista = valorBase(c)
		d.TemContrato = true
		dataContrato = c.DataContrato
	}
	d.ValorITBI = r.valor(r.ITBI, numeroContrato, buildingID)
	d.ValorPago = r.valor(r.Pagos, numeroContrato, buildingID)

	res := calcular(d)
	res.DataContrato = dataContrato
	return res
}
