package corretor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/youngemp/comissoes-api/internal/auth"
	"github.com/youngemp/comissoes-api/internal/utils"
)

type cadastroAcessoRequest struct {
	Documento string `json:"documento"`
	Email     string `json:"email"`
	Senha     string `json:"senha"`
}

type loginCorretorRequest struct {
	Documento string `json:"documento"`
	Senha     string `json:"senha"`
}

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

// ListarCorretores retorna os corretores ativos
func (h *Handler) ListarCorretores(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarAtivos()
	if err != nil {
		http.Error(w, "erro ao listar corretores", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// BuscarPorDocumento localiza um corretor pelo CPF ou CNPJ
func (h *Handler) BuscarPorDocumento(w http.ResponseWriter, r *http.Request) {
	documento := mux.Vars(r)["documento"]
	c, err := h.Repository.BuscarPorDocumento(documento)
	if err != nil {
		http.Error(w, "corretor não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// BuscarPorID localiza um corretor pelo id do Sienge
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorSiengeID(id)
	if err != nil {
		http.Error(w, "corretor não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// CadastrarAcesso cria o acesso do corretor ao portal: valida o documento
// contra a base sincronizada e grava email e senha
func (h *Handler) CadastrarAcesso(w http.ResponseWriter, r *http.Request) {
	var req cadastroAcessoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorDocumento(req.Documento)
	if err != nil {
		http.Error(w, "documento não encontrado na base de corretores", http.StatusNotFound)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}
	if err := h.Repository.AtualizarSenha(c.SiengeID, hash); err != nil {
		http.Error(w, "erro ao gravar senha", http.StatusInternalServerError)
		return
	}
	if req.Email != "" {
		if err := h.Repository.AtualizarEmail(c.SiengeID, req.Email); err != nil {
			http.Error(w, "erro ao gravar email", http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// LoginCorretor autentica um corretor pelo documento e senha cadastrados
func (h *Handler) LoginCorretor(w http.ResponseWriter, r *http.Request) {
	var req loginCorretorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorDocumento(req.Documento)
	if err != nil || c.Senha == "" {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}
	if !utils.VerificarSenha(c.Senha, req.Senha) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(c.ID, false, "Corretor")
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token":    token,
		"corretor": c,
	})
}
