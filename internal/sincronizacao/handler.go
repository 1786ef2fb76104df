package sincronizacao

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/youngemp/comissoes-api/internal/aprovacao"
	"github.com/youngemp/comissoes-api/internal/comissao"
	"github.com/youngemp/comissoes-api/internal/config"
	"github.com/youngemp/comissoes-api/internal/contrato"
	"github.com/youngemp/comissoes-api/internal/corretor"
	"github.com/youngemp/comissoes-api/internal/empreendimento"
	"github.com/youngemp/comissoes-api/internal/itbi"
	"github.com/youngemp/comissoes-api/internal/sienge"
	"github.com/youngemp/comissoes-api/internal/valorpago"
)

// Handler expõe a sincronização e as rotinas de limpeza
type Handler struct {
	DB            *gorm.DB
	Sincronizador *Sincronizador
	Limpeza       *Limpeza
	Logs          *RepositoryLog
}

// NewHandler monta o sincronizador completo sobre o banco e o cliente Sienge
func NewHandler(db *gorm.DB) *Handler {
	log := config.GetLogger()
	cliente := sienge.NovoClienteDeEnv(log)

	comissoes := comissao.NewRepository(db)
	contratos := contrato.NewRepository(db)
	historico := aprovacao.NewRepository(db)
	logs := NewRepositoryLog(db)

	return &Handler{
		DB: db,
		Sincronizador: &Sincronizador{
			Fonte:           cliente,
			Empresas:        cliente.Empresas,
			Empreendimentos: empreendimento.NewRepository(db),
			Contratos:       contratos,
			Corretores:      corretor.NewRepository(db),
			ITBI:            itbi.NewRepository(db),
			ValoresPagos:    valorpago.NewRepository(db),
			Comissoes:       comissoes,
			Historico:       historico,
			Execucoes:       logs,
			Log:             log,
		},
		Limpeza: &Limpeza{
			Comissoes: comissoes,
			Historico: historico,
			Fonte:     cliente,
			Empresas:  cliente.Empresas,
			Log:       log,
		},
		Logs: logs,
	}
}

func responderJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// Sincronizar roda a sincronização completa de todas as empresas. Aceita
// ?building= para restringir a um empreendimento.
func (h *Handler) Sincronizar(w http.ResponseWriter, r *http.Request) {
	resultados, err := h.Sincronizador.SincronizarTudo(r.URL.Query().Get("building"))
	if err != nil {
		w.WriteHeader(http.StatusMultiStatus)
	}
	responderJSON(w, resultados)
}

// SincronizarComissoes roda só a reconciliação de comissões
func (h *Handler) SincronizarComissoes(w http.ResponseWriter, r *http.Request) {
	building := r.URL.Query().Get("building")
	resultados := map[string]ResultadoEntidade{}
	for _, empresa := range h.Sincronizador.Empresas {
		resultados[empresa] = h.Sincronizador.SincronizarComissoes(empresa, building)
	}
	responderJSON(w, resultados)
}

// ListarLogs retorna as últimas execuções do sincronizador
func (h *Handler) ListarLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Logs.ListarRecentes(20)
	if err != nil {
		http.Error(w, "erro ao listar logs", http.StatusInternalServerError)
		return
	}
	responderJSON(w, logs)
}

// UltimaExecucao retorna o log da execução mais recente
func (h *Handler) UltimaExecucao(w http.ResponseWriter, r *http.Request) {
	ultimo, err := h.Logs.Ultima()
	if err != nil {
		http.Error(w, "nenhuma execução registrada", http.StatusNotFound)
		return
	}
	responderJSON(w, ultimo)
}

// LimparDuplicadas remove duplicatas pela regra canônica
func (h *Handler) LimparDuplicadas(w http.ResponseWriter, r *http.Request) {
	res, err := h.Limpeza.LimparDuplicadas()
	if err != nil {
		http.Error(w, "erro na limpeza de duplicadas", http.StatusInternalServerError)
		return
	}
	responderJSON(w, res)
}

// LimparDuplicadasPorStatus remove duplicatas priorizando parcelas pagas
func (h *Handler) LimparDuplicadasPorStatus(w http.ResponseWriter, r *http.Request) {
	res, err := h.Limpeza.LimparDuplicadasPorStatus()
	if err != nil {
		http.Error(w, "erro na limpeza de duplicadas", http.StatusInternalServerError)
		return
	}
	responderJSON(w, res)
}

// LimparCanceladas remove comissões com status de cancelamento
func (h *Handler) LimparCanceladas(w http.ResponseWriter, r *http.Request) {
	res, err := h.Limpeza.LimparCanceladas()
	if err != nil {
		http.Error(w, "erro na limpeza de canceladas", http.StatusInternalServerError)
		return
	}
	responderJSON(w, res)
}

// MarcarOrfas marca comissões sem contrato como canceladas
func (h *Handler) MarcarOrfas(w http.ResponseWriter, r *http.Request) {
	res, err := h.Limpeza.MarcarOrfas()
	if err != nil {
		http.Error(w, "erro ao marcar órfãs", http.StatusInternalServerError)
		return
	}
	responderJSON(w, res)
}

// ReverterPendentes zera o workflow de todas as comissões (somente admin)
func (h *Handler) ReverterPendentes(w http.ResponseWriter, r *http.Request) {
	res, err := h.Limpeza.ReverterTodasParaPendente()
	if err != nil {
		http.Error(w, "erro ao reverter comissões", http.StatusInternalServerError)
		return
	}
	responderJSON(w, res)
}
