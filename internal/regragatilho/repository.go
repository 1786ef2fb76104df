package regragatilho

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula operações de banco para RegraGatilho.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Criar insere uma nova regra.
func (r *Repository) Criar(regra *RegraGatilho) error {
	regra.Ativo = true
	regra.CriadoEm = time.Now()
	return r.DB.Create(regra).Error
}

// BuscarPorID busca uma regra pelo id, ativa ou não. Comissões antigas
// podem referenciar regras desativadas.
func (r *Repository) BuscarPorID(id uint) (*RegraGatilho, error) {
	var regra RegraGatilho
	if err := r.DB.First(&regra, id).Error; err != nil {
		return nil, err
	}
	return &regra, nil
}

// ListarAtivas retorna as regras ativas ordenadas por nome.
func (r *Repository) ListarAtivas() ([]RegraGatilho, error) {
	var lista []RegraGatilho
	err := r.DB.Where("ativo = ?", true).Order("nome").Find(&lista).Error
	return lista, err
}

// ListarTodas retorna todas as regras, incluindo desativadas.
func (r *Repository) ListarTodas() ([]RegraGatilho, error) {
	var lista []RegraGatilho
	err := r.DB.Find(&lista).Error
	return lista, err
}

// Atualizar sobrescreve os campos editáveis de uma regra.
func (r *Repository) Atualizar(id uint, regra *RegraGatilho) error {
	return r.DB.Model(&RegraGatilho{}).Where("id = ?", id).Updates(map[string]interface{}{
		"nome":                 regra.Nome,
		"descricao":            regra.Descricao,
		"tipo_regra":           regra.TipoRegra,
		"percentual":           regra.Percentual,
		"inclui_itbi":          regra.IncluiITBI,
		"faturamento_minimo":   regra.FaturamentoMinimo,
		"percentual_auditoria": regra.PercentualAuditoria,
		"atualizado_em":        time.Now(),
	}).Error
}

// Desativar faz a exclusão lógica de uma regra.
func (r *Repository) Desativar(id uint) error {
	return r.DB.Model(&RegraGatilho{}).Where("id = ?", id).Update("ativo", false).Error
}
