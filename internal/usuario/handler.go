package usuario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/youngemp/comissoes-api/internal/auth"
	"github.com/youngemp/comissoes-api/internal/utils"
)

// request DTOs
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type criarUsuarioRequest struct {
	Nome    string `json:"nome"`
	Email   string `json:"email"`
	Senha   string `json:"senha"`
	Perfil  string `json:"perfil"`
	IsAdmin bool   `json:"isAdmin"`
}

type trocarSenhaRequest struct {
	SenhaAtual string `json:"senhaAtual"`
	SenhaNova  string `json:"senhaNova"`
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

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmail(req.Email)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(user.Senha, req.Senha) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(user.ID, user.IsAdmin, user.Perfil)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token":   token,
		"usuario": user,
	})
}

// CriarUsuario cadastra um novo usuário (somente admin). Sem senha no
// payload, uma temporária é gerada e devolvida na resposta para o admin
// repassar ao usuário.
func (h *Handler) CriarUsuario(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	senha := req.Senha
	var senhaTemporaria string
	if senha == "" {
		gerada, err := utils.GerarSenhaTemporaria()
		if err != nil {
			http.Error(w, "erro ao gerar senha temporária", http.StatusInternalServerError)
			return
		}
		senha = gerada
		senhaTemporaria = gerada
	}

	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nome:    req.Nome,
		Email:   req.Email,
		Senha:   hash,
		Perfil:  req.Perfil,
		IsAdmin: req.IsAdmin,
	}

	if err := h.Repository.Criar(&u); err != nil {
		http.Error(w, "erro ao salvar usuário", http.StatusInternalServerError)
		return
	}

	resposta := map[string]interface{}{"usuario": u}
	if senhaTemporaria != "" {
		resposta["senhaTemporaria"] = senhaTemporaria
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resposta)
}

// ListarUsuarios retorna todos os usuários
func (h *Handler) ListarUsuarios(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarTodos()
	if err != nil {
		http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// AtualizarUsuario edita nome, perfil e flag de admin
func (h *Handler) AtualizarUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}

	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	u := Usuario{Nome: req.Nome, Perfil: req.Perfil, IsAdmin: req.IsAdmin}
	if err := h.Repository.Atualizar(uint(id), &u); err != nil {
		http.Error(w, "erro ao atualizar usuário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TrocarSenha troca a própria senha validando a atual
func (h *Handler) TrocarSenha(w http.ResponseWriter, r *http.Request) {
	userID, _, _ := auth.UsuarioDoContexto(r.Context())

	var req trocarSenhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorID(userID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	if !utils.VerificarSenha(user.Senha, req.SenhaAtual) {
		http.Error(w, "senha atual incorreta", http.StatusUnauthorized)
		return
	}

	hash, err := utils.HashSenha(req.SenhaNova)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}
	if err := h.Repository.AtualizarSenha(userID, hash); err != nil {
		http.Error(w, "erro ao atualizar senha", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DesativarUsuario faz a exclusão lógica (somente admin)
func (h *Handler) DesativarUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Desativar(uint(id)); err != nil {
		http.Error(w, "erro ao desativar usuário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
