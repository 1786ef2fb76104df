package contrato

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

// ListarContratos retorna contratos, com filtros opcionais por
// empreendimento (?empreendimento=) e termo de busca (?busca=)
func (h *Handler) ListarContratos(w http.ResponseWriter, r *http.Request) {
	var (
		lista []Contrato
		err   error
	)

	if termo := r.URL.Query().Get("busca"); termo != "" {
		lista, err = h.Repository.BuscarPorTermo(termo, 50)
	} else if emp := r.URL.Query().Get("empreendimento"); emp != "" {
		lista, err = h.Repository.ListarPorEmpreendimento(emp)
	} else {
		lista, err = h.Repository.ListarTodos()
	}

	if err != nil {
		http.Error(w, "erro ao listar contratos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}
