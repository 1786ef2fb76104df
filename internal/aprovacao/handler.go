package aprovacao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/youngemp/comissoes-api/internal/auth"
	"github.com/youngemp/comissoes-api/internal/comissao"
	"github.com/youngemp/comissoes-api/internal/config"
	"github.com/youngemp/comissoes-api/internal/gatilho"
	"github.com/youngemp/comissoes-api/internal/notificacao"
	"github.com/youngemp/comissoes-api/internal/usuario"
)

type loteRequest struct {
	IDs         []uint `json:"ids"`
	Motivo      string `json:"motivo,omitempty"`
	Observacoes string `json:"observacoes,omitempty"`
}

// Handler expõe o workflow de aprovação
type Handler struct {
	DB        *gorm.DB
	Servico   *Servico
	Comissoes *comissao.Repository
	Historico *Repository
	Usuarios  *usuario.Repository
	Gatilhos  *gatilho.Handler
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	comissoes := comissao.NewRepository(db)
	historico := NewRepository(db)
	return &Handler{
		DB:        db,
		Servico:   NovoServico(comissoes, historico, config.GetLogger()),
		Comissoes: comissoes,
		Historico: historico,
		Usuarios:  usuario.NewRepository(db),
		Gatilhos:  gatilho.NewHandler(db),
	}
}

func (h *Handler) usuarioDaRequisicao(r *http.Request) Usuario {
	userID, isAdmin, perfil := auth.UsuarioDoContexto(r.Context())
	u := Usuario{ID: userID, Perfil: perfil, Admin: isAdmin}
	if registro, err := h.Usuarios.BuscarPorID(userID); err == nil {
		u.Nome = registro.Nome
	}
	return u
}

// Enviar move comissões para Pendente de Aprovação (Gestor, Direção ou admin)
func (h *Handler) Enviar(w http.ResponseWriter, r *http.Request) {
	var req loteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	u := h.usuarioDaRequisicao(r)
	res, err := h.Servico.Enviar(req.IDs, u, req.Observacoes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	if len(res.Processadas) > 0 {
		go notificacao.EnviarAlertaAprovacao(len(res.Processadas), u.Nome)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Aprovar move comissões para Aprovada (Direção ou admin)
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	var req loteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	res, err := h.Servico.Aprovar(req.IDs, h.usuarioDaRequisicao(r), req.Observacoes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Rejeitar move comissões para Rejeitada com motivo obrigatório
func (h *Handler) Rejeitar(w http.ResponseWriter, r *http.Request) {
	var req loteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	res, err := h.Servico.Rejeitar(req.IDs, h.usuarioDaRequisicao(r), req.Motivo)
	if err != nil {
		status := http.StatusForbidden
		if err == ErrMotivoObrigatorio {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// ListarPendentesAprovacao retorna a fila de aprovação com gatilho calculado
func (h *Handler) ListarPendentesAprovacao(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Comissoes.ListarPorStatusAprovacao(comissao.StatusEnviada)
	if err != nil {
		http.Error(w, "erro ao listar fila de aprovação", http.StatusInternalServerError)
		return
	}

	calc, err := gatilho.NovaCalculadoraLote(h.Gatilhos.Contratos, h.Gatilhos.ITBI, h.Gatilhos.Pagos, h.Gatilhos.Regras)
	if err != nil {
		http.Error(w, "erro ao calcular gatilhos", http.StatusInternalServerError)
		return
	}
	calc.Anotar(lista)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// ListarHistorico retorna o histórico de aprovação de uma comissão
func (h *Handler) ListarHistorico(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}
	lista, err := h.Historico.ListarPorComissao(uint(id))
	if err != nil {
		http.Error(w, "erro ao listar histórico", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}
