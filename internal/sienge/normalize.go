package sienge

import (
	"fmt"
	"strconv"
)

// A API do Sienge mudou o nome de vários campos na migração para a v1
// (ex.: commissionID -> id, buildingId -> enterpriseId). Em vez de espalhar
// cadeias de fallback pela lógica de negócio, cada entidade tem uma única
// função de normalização dirigida por listas de aliases, do nome mais novo
// para o mais antigo.

var (
	aliasesIDComissao     = []string{"commissionID", "commissionId", "id"}
	aliasesNumeroContrato = []string{"salesContractNumber", "contractNumber", "number"}
	aliasesBuildingID     = []string{"enterpriseID", "enterpriseId", "buildingId"}
	aliasesBrokerID       = []string{"brokerID", "brokerId"}
	aliasesValorComissao  = []string{"value", "commissionValue"}
	aliasesDataComissao   = []string{"dueDate", "commissionDate", "date"}
	aliasesValorTotal     = []string{"totalSellingValue", "value"}
)

// texto retorna o primeiro alias presente e não vazio, como string.
func texto(m map[string]any, aliases ...string) string {
	for _, k := range aliases {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			// IDs numéricos chegam como float64 no decode de JSON
			return strconv.FormatInt(int64(t), 10)
		default:
			return fmt.Sprint(t)
		}
	}
	return ""
}

// numero retorna o primeiro alias presente como float64 (0 se ausente).
func numero(m map[string]any, aliases ...string) float64 {
	for _, k := range aliases {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			return t
		case string:
			if f, err := strconv.ParseFloat(t, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// inteiro retorna o primeiro alias presente como int64 (0 se ausente).
func inteiro(m map[string]any, aliases ...string) int64 {
	for _, k := range aliases {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			return int64(t)
		case string:
			if i, err := strconv.ParseInt(t, 10, 64); err == nil {
				return i
			}
		}
	}
	return 0
}

func booleano(m map[string]any, padrao bool, aliases ...string) bool {
	for _, k := range aliases {
		if v, ok := m[k].(bool); ok {
			return v
		}
	}
	return padrao
}

// NormalizarEmpreendimento converte um registro bruto de /enterprises.
func NormalizarEmpreendimento(raw map[string]any) Empreendimento {
	return Empreendimento{
		SiengeID:  inteiro(raw, "id"),
		Nome:      texto(raw, "name"),
		Codigo:    texto(raw, "code"),
		CompanyID: texto(raw, "companyId"),
	}
}

// NormalizarContrato converte um registro bruto de /sales-contracts.
// Cliente e unidade vêm do primeiro elemento das listas aninhadas.
func NormalizarContrato(raw map[string]any) Contrato {
	c := Contrato{
		SiengeID:       inteiro(raw, "id"),
		NumeroContrato: texto(raw, "number", "contractNumber"),
		BuildingID:     texto(raw, aliasesBuildingID...),
		CompanyID:      texto(raw, "companyId"),
		DataContrato:   texto(raw, "contractDate"),
		ValorTotal:     numero(raw, aliasesValorTotal...),
		ValorAVista:    numero(raw, "value"),
		Status:         texto(raw, "situation"),
	}
	if clientes, ok := raw["salesContractCustomers"].([]any); ok && len(clientes) > 0 {
		if m, ok := clientes[0].(map[string]any); ok {
			c.NomeCliente = texto(m, "name")
		}
	}
	if unidades, ok := raw["salesContractUnits"].([]any); ok && len(unidades) > 0 {
		if m, ok := unidades[0].(map[string]any); ok {
			c.Unidade = texto(m, "name")
		}
	}
	return c
}

// NormalizarCorretor converte um registro bruto de brokers.
func NormalizarCorretor(raw map[string]any) Corretor {
	return Corretor{
		SiengeID: inteiro(raw, "id", "brokerId"),
		Nome:     texto(raw, "name"),
		CPF:      texto(raw, "cpf"),
		CNPJ:     texto(raw, "cnpj"),
		Email:    texto(raw, "email"),
		Telefone: texto(raw, "phone"),
		Ativo:    booleano(raw, true, "active"),
	}
}

// NormalizarComissao converte um registro bruto de /commissions.
func NormalizarComissao(raw map[string]any) Comissao {
	c := Comissao{
		SiengeID:          texto(raw, aliasesIDComissao...),
		NumeroContrato:    texto(raw, aliasesNumeroContrato...),
		BuildingID:        texto(raw, aliasesBuildingID...),
		CompanyID:         texto(raw, "companyId"),
		BrokerID:          inteiro(raw, aliasesBrokerID...),
		BrokerNome:        texto(raw, "brokerName"),
		NomeCliente:       texto(raw, "customerName"),
		NomeEmpreend:      texto(raw, "enterpriseName", "buildingName"),
		Unidade:           texto(raw, "unitName"),
		Valor:             numero(raw, aliasesValorComissao...),
		ValorCancelado:    numero(raw, "cancelledValue", "canceledValue"),
		ValorLiberado:     numero(raw, "releasedValue", "releaseValue"),
		InstallmentStatus: texto(raw, "installmentStatus"),
		SituacaoCliente:   texto(raw, "customerSituationType"),
		DataComissao:      texto(raw, aliasesDataComissao...),
	}
	if titulos, ok := raw["paymentBills"].([]any); ok {
		for _, t := range titulos {
			switch v := t.(type) {
			case map[string]any:
				c.TitulosPagamento = append(c.TitulosPagamento, texto(v, "billId", "id"))
			case string:
				c.TitulosPagamento = append(c.TitulosPagamento, v)
			case float64:
				c.TitulosPagamento = append(c.TitulosPagamento, strconv.FormatInt(int64(v), 10))
			}
		}
	}
	return c
}

// NormalizarDetalheContrato converte a resposta de /sales-contracts/{id},
// incluindo as linhas de paymentConditions usadas para ITBI e valor pago.
func NormalizarDetalheContrato(raw map[string]any) DetalheContrato {
	d := DetalheContrato{
		SiengeID:       inteiro(raw, "id"),
		NumeroContrato: texto(raw, "number", "contractNumber"),
		BuildingID:     texto(raw, aliasesBuildingID...),
	}
	condicoes, ok := raw["paymentConditions"].([]any)
	if !ok {
		return d
	}
	for _, c := range condicoes {
		m, ok := c.(map[string]any)
		if !ok {
			continue
		}
		d.Condicoes = append(d.Condicoes, CondicaoPagamento{
			TipoCondicao:   texto(m, "conditionTypeId", "conditionType"),
			Documento:      texto(m, "documentNumber", "document"),
			ValorTotal:     numero(m, "totalValue", "value"),
			ValorPago:      numero(m, "amountPaid", "paidValue"),
			DataVencimento: texto(m, "firstPayment", "dueDate"),
		})
	}
	return d
}

// ExtrairITBI procura a condição de pagamento do tipo "DC" (documento de
// crédito usado para o ITBI) no detalhe do contrato. Retorna nil se o
// contrato não tem ITBI lançado.
func ExtrairITBI(detalhe *DetalheContrato) *ITBIExtraido {
	if detalhe == nil {
		return nil
	}
	for _, c := range detalhe.Condicoes {
		if c.TipoCondicao == "DC" && c.ValorTotal > 0 {
			return &ITBIExtraido{
				Valor:          c.ValorTotal,
				Documento:      c.Documento,
				DataVencimento: c.DataVencimento,
			}
		}
	}
	return nil
}

// ExtrairValorPago soma os valores já pagos de todas as condições de
// pagamento do contrato.
func ExtrairValorPago(detalhe *DetalheContrato) float64 {
	if detalhe == nil {
		return 0
	}
	var total float64
	for _, c := range detalhe.Condicoes {
		total += c.ValorPago
	}
	return total
}
