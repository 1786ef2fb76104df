package gatilho

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/youngemp/comissoes-api/internal/comissao"
	"github.com/youngemp/comissoes-api/internal/contrato"
	"github.com/youngemp/comissoes-api/internal/itbi"
	"github.com/youngemp/comissoes-api/internal/regragatilho"
	"github.com/youngemp/comissoes-api/internal/valorpago"
)

type chaveContratoRequest struct {
	NumeroContrato string `json:"numeroContrato"`
	BuildingID     string `json:"buildingId"`
}

type buscaLoteRequest struct {
	Contratos []chaveContratoRequest `json:"contratos"`
}

type infoContrato struct {
	Contrato *contrato.Contrato `json:"contrato"`
	Gatilho  Resultado          `json:"gatilho"`
}

// Handler expõe o painel de comissões com anotação de gatilho e as consultas
// de gatilho por contrato.
type Handler struct {
	DB        *gorm.DB
	Comissoes *comissao.Repository
	Contratos *contrato.Repository
	ITBI      *itbi.Repository
	Pagos     *valorpago.Repository
	Regras    *regragatilho.Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:        db,
		Comissoes: comissao.NewRepository(db),
		Contratos: contrato.NewRepository(db),
		ITBI:      itbi.NewRepository(db),
		Pagos:     valorpago.NewRepository(db),
		Regras:    regragatilho.NewRepository(db),
	}
}

func (h *Handler) calculadora() (*CalculadoraLote, error) {
	return NovaCalculadoraLote(h.Contratos, h.ITBI, h.Pagos, h.Regras)
}

// ListarComissoes retorna comissões anotadas com o gatilho calculado.
// Filtros opcionais: ?status= (workflow), ?corretor= (id), ?nomeCorretor=
func (h *Handler) ListarComissoes(w http.ResponseWriter, r *http.Request) {
	var (
		lista []comissao.Comissao
		err   error
	)

	q := r.URL.Query()
	if status := q.Get("status"); status != "" {
		lista, err = h.Comissoes.ListarPorStatusAprovacao(status)
	} else if corretorID := q.Get("corretor"); corretorID != "" {
		id, convErr := strconv.ParseInt(corretorID, 10, 64)
		if convErr != nil {
			http.Error(w, "corretor inválido", http.StatusBadRequest)
			return
		}
		lista, err = h.Comissoes.ListarPorCorretor(id, "")
	} else if nome := q.Get("nomeCorretor"); nome != "" {
		lista, err = h.Comissoes.ListarPorCorretor(0, nome)
	} else {
		lista, err = h.Comissoes.ListarTodas()
	}
	if err != nil {
		http.Error(w, "erro ao listar comissões", http.StatusInternalServerError)
		return
	}

	calc, err := h.calculadora()
	if err != nil {
		http.Error(w, "erro ao calcular gatilhos", http.StatusInternalServerError)
		return
	}
	calc.Anotar(lista)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// InfoContrato retorna o contrato e seu gatilho calculado.
// Query: ?numero= e ?building=
func (h *Handler) InfoContrato(w http.ResponseWriter, r *http.Request) {
	numero := r.URL.Query().Get("numero")
	building := r.URL.Query().Get("building")
	if numero == "" {
		http.Error(w, "numero é obrigatório", http.StatusBadRequest)
		return
	}

	resolver := NovoResolver(h.Contratos, h.ITBI, h.Pagos)
	info := infoContrato{Gatilho: resolver.Resolver(numero, building, "")}
	if c, err := h.Contratos.BuscarPorNumero(numero, building); err == nil {
		info.Contrato = c
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// BuscaPorLote resolve o gatilho de vários contratos numa chamada só
func (h *Handler) BuscaPorLote(w http.ResponseWriter, r *http.Request) {
	var req buscaLoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	resolver := NovoResolver(h.Contratos, h.ITBI, h.Pagos)
	resultado := make(map[string]infoContrato, len(req.Contratos))
	for _, chave := range req.Contratos {
		info := infoContrato{Gatilho: resolver.Resolver(chave.NumeroContrato, chave.BuildingID, "")}
		if c, err := h.Contratos.BuscarPorNumero(chave.NumeroContrato, chave.BuildingID); err == nil {
			info.Contrato = c
		}
		resultado[chave.NumeroContrato] = info
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resultado)
}
