package comissao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/youngemp/comissoes-api/internal/regragatilho"
)

type atualizarRegraRequest struct {
	RegraGatilhoID *uint  `json:"regraGatilhoId"`
	RegraGatilho   string `json:"regraGatilho"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository *Repository
	Regras     *regragatilho.Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(db),
		Regras:     regragatilho.NewRepository(db),
	}
}

// ListarStatusParcela retorna os status de parcela existentes na base
func (h *Handler) ListarStatusParcela(w http.ResponseWriter, r *http.Request) {
	status, err := h.Repository.StatusParcelaDistintos()
	if err != nil {
		http.Error(w, "erro ao listar status", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// AtualizarRegra troca a regra de gatilho de uma comissão. Aceita uma
// referência estruturada ou um texto livre; a referência tem prioridade.
func (h *Handler) AtualizarRegra(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}

	var req atualizarRegraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	texto := req.RegraGatilho
	if req.RegraGatilhoID != nil {
		regra, err := h.Regras.BuscarPorID(*req.RegraGatilhoID)
		if err != nil {
			http.Error(w, "regra não encontrada", http.StatusNotFound)
			return
		}
		texto = regra.Texto()
	}

	if err := h.Repository.AtualizarRegra(uint(id), req.RegraGatilhoID, texto); err != nil {
		http.Error(w, "erro ao atualizar regra", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeletarComissao remove uma comissão manualmente (somente admin)
func (h *Handler) DeletarComissao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.DeletarPorID(uint(id)); err != nil {
		http.Error(w, "erro ao remover comissão", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
