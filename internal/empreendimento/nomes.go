package empreendimento

import "fmt"

// nomesConhecidos mapeia building_id para o nome comercial do
// empreendimento. A API nem sempre devolve o nome junto do contrato, então
// este dicionário é a referência única usada por todas as telas.
var nomesConhecidos = map[string]string{
	"2003": "Montecarlo",
	"2004": "Ilha dos Açores",
	"2005": "Aurora",
	"2007": "Parque Lorena I",
	"2009": "Parque Lorena II",
	"2010": "Erico Verissimo",
	"2011": "Algarve",
	"2014": "Morada da Coxilha",
}

// NomePara retorna o nome comercial de um building_id, com fallback genérico
// para ids ainda não cadastrados.
func NomePara(buildingID string) string {
	if nome, ok := nomesConhecidos[buildingID]; ok {
		return nome
	}
	return fmt.Sprintf("Empreendimento %s", buildingID)
}
