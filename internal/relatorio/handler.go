package relatorio

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/youngemp/comissoes-api/internal/comissao"
	"github.com/youngemp/comissoes-api/internal/gatilho"
)

// LinhaRelatorio agrega as comissões de um grupo (empreendimento ou corretor).
type LinhaRelatorio struct {
	Grupo            string  `json:"grupo"`
	Quantidade       int     `json:"quantidade"`
	ValorTotal       float64 `json:"valorTotal"`
	ValorAprovado    float64 `json:"valorAprovado"`
	GatilhosAtingido int     `json:"gatilhosAtingidos"`
}

// Handler monta relatórios agregados de comissões
type Handler struct {
	DB        *gorm.DB
	Comissoes *comissao.Repository
	Gatilhos  *gatilho.Handler
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:        db,
		Comissoes: comissao.NewRepository(db),
		Gatilhos:  gatilho.NewHandler(db),
	}
}

// Resumo agrega as comissões por empreendimento (padrão) ou por corretor
// (?por=corretor). Somas em decimal para não acumular erro de ponto
// flutuante.
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Comissoes.ListarTodas()
	if err != nil {
		http.Error(w, "erro ao listar comissões", http.StatusInternalServerError)
		return
	}

	calc, err := gatilho.NovaCalculadoraLote(h.Gatilhos.Contratos, h.Gatilhos.ITBI, h.Gatilhos.Pagos, h.Gatilhos.Regras)
	if err != nil {
		http.Error(w, "erro ao calcular gatilhos", http.StatusInternalServerError)
		return
	}
	calc.Anotar(lista)

	porCorretor := r.URL.Query().Get("por") == "corretor"

	type acumulador struct {
		quantidade int
		total      decimal.Decimal
		aprovado   decimal.Decimal
		atingidos  int
	}
	grupos := map[string]*acumulador{}

	for _, c := range lista {
		grupo := c.NomeEmpreendimento
		if porCorretor {
			grupo = c.BrokerNome
		}
		if grupo == "" {
			grupo = "(sem identificação)"
		}
		acc, ok := grupos[grupo]
		if !ok {
			acc = &acumulador{}
			grupos[grupo] = acc
		}
		valor := decimal.NewFromFloat(c.Valor)
		acc.quantidade++
		acc.total = acc.total.Add(valor)
		if c.StatusAprovacao == comissao.StatusAprovada {
			acc.aprovado = acc.aprovado.Add(valor)
		}
		if c.AtingiuGatilho {
			acc.atingidos++
		}
	}

	linhas := make([]LinhaRelatorio, 0, len(grupos))
	for grupo, acc := range grupos {
		total, _ := acc.total.Round(2).Float64()
		aprovado, _ := acc.aprovado.Round(2).Float64()
		linhas = append(linhas, LinhaRelatorio{
			Grupo:            grupo,
			Quantidade:       acc.quantidade,
			ValorTotal:       total,
			ValorAprovado:    aprovado,
			GatilhosAtingido: acc.atingidos,
		})
	}
	sort.Slice(linhas, func(i, j int) bool { return linhas[i].Grupo < linhas[j].Grupo })

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(linhas)
}
