package regragatilho

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository *Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(db),
	}
}

// ListarRegras retorna as regras ativas; ?todas=true inclui desativadas
func (h *Handler) ListarRegras(w http.ResponseWriter, r *http.Request) {
	var (
		lista []RegraGatilho
		err   error
	)
	if r.URL.Query().Get("todas") == "true" {
		lista, err = h.Repository.ListarTodas()
	} else {
		lista, err = h.Repository.ListarAtivas()
	}
	if err != nil {
		http.Error(w, "erro ao listar regras", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// CriarRegra cadastra uma regra nova (somente admin)
func (h *Handler) CriarRegra(w http.ResponseWriter, r *http.Request) {
	var regra RegraGatilho
	if err := json.NewDecoder(r.Body).Decode(&regra); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if regra.TipoRegra == "" {
		regra.TipoRegra = TipoGatilho
	}
	if err := h.Repository.Criar(&regra); err != nil {
		http.Error(w, "erro ao salvar regra", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(regra)
}

// AtualizarRegra edita uma regra existente (somente admin)
func (h *Handler) AtualizarRegra(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}
	var regra RegraGatilho
	if err := json.NewDecoder(r.Body).Decode(&regra); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Atualizar(uint(id), &regra); err != nil {
		http.Error(w, "erro ao atualizar regra", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DesativarRegra faz a exclusão lógica de uma regra (somente admin)
func (h *Handler) DesativarRegra(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Desativar(uint(id)); err != nil {
		http.Error(w, "erro ao desativar regra", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
