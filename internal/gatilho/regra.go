package gatilho

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// RegraPadrao é aplicada quando a comissão não tem regra cadastrada.
const RegraPadrao = "10% + ITBI"

var rePercentual = regexp.MustCompile(`(\d+[,.]?\d*)\s*%`)

// RegraInterpretada é o resultado do parse de uma regra em texto livre.
type RegraInterpretada struct {
	Percentual decimal.Decimal
	IncluiITBI bool
}

// InterpretarRegra converte uma regra em texto livre ("10% + ITBI", "5%",
// "6 % do valor à vista") em percentual e flag de ITBI. Texto vazio ou sem
// percentual reconhecível cai na regra padrão.
func InterpretarRegra(texto string) RegraInterpretada {
	t := strings.ToLower(strings.TrimSpace(texto))
	if t == "" {
		t = strings.ToLower(RegraPadrao)
	}

	m := rePercentual.FindStringSubmatch(t)
	if m == nil {
		t = strings.ToLower(RegraPadrao)
		m = rePercentual.FindStringSubmatch(t)
	}

	bruto := strings.ReplaceAll(m[1], ",", ".")
	pct, err := decimal.NewFromString(bruto)
	if err != nil {
		pct = decimal.NewFromInt(10)
	}

	return RegraInterpretada{
		Percentual: pct,
		IncluiITBI: strings.Contains(t, "itbi"),
	}
}

// dadosGatilho reúne tudo que o cálculo precisa sobre uma comissão. Tanto o
// Resolver quanto a CalculadoraLote montam esta struct e delegam a calcular,
// garantindo resultado idêntico nos dois caminhos.
type dadosGatilho struct {
	Regra       string
	ValorAVista float64
	ValorITBI   float64
	ValorPago   float64
	TemContrato bool
}

// Resultado é a anotação de gatilho de uma comissão.
type Resultado struct {
	ValorGatilho   float64
	AtingiuGatilho bool
	ValorPago      float64
	ValorAVista    float64
	ValorITBI      float64
	RegraGatilho   string
	DataContrato   string
	DadosCompletos bool
}

// calcular aplica a regra interpretada sobre os dados do contrato. Valor de
// gatilho zero nunca conta como atingido.
func calcular(d dadosGatilho) Resultado {
	regra := d.Regra
	if strings.TrimSpace(regra) == "" {
		regra = RegraPadrao
	}
	interp := InterpretarRegra(regra)

	base := decimal.NewFromFloat(d.ValorAVista).
		Mul(interp.Percentual).
		Div(decimal.NewFromInt(100))
	if interp.IncluiITBI {
		base = base.Add(decimal.NewFromFloat(d.ValorITBI))
	}
	gatilho, _ := base.Round(2).Float64()

	atingiu := gatilho > 0 && d.ValorPago >= gatilho

	return Resultado{
		ValorGatilho:   gatilho,
		AtingiuGatilho: atingiu,
		ValorPago:      d.ValorPago,
		ValorAVista:    d.ValorAVista,
		ValorITBI:      d.ValorITBI,
		RegraGatilho:   regra,
		DadosCompletos: d.TemContrato,
	}
}
