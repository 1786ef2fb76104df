package empreendimento

import (
	"encoding/json"
	"net/http"

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

// ListarEmpreendimentos retorna todos os empreendimentos sincronizados
func (h *Handler) ListarEmpreendimentos(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarTodos()
	if err != nil {
		http.Error(w, "erro ao listar empreendimentos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}
