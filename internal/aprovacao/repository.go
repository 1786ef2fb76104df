package aprovacao

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula operações de banco para HistoricoAprovacao.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Registrar grava uma linha de histórico.
func (r *Repository) Registrar(h *HistoricoAprovacao) error {
	h.CriadoEm = time.Now()
	return r.DB.Create(h).Error
}

// ListarPorComissao retorna o histórico de uma comissão em ordem cronológica.
func (r *Repository) ListarPorComissao(comissaoID uint) ([]HistoricoAprovacao, error) {
	var lista []HistoricoAprovacao
	err := r.DB.Where("comissao_id = ?", comissaoID).Order("criado_em").Find(&lista).Error
	return lista, err
}

// DeletarPorComissao remove o histórico de uma comissão. Precisa rodar antes
// da remoção da comissão para não deixar histórico órfão.
func (r *Repository) DeletarPorComissao(comissaoID uint) error {
	return r.DB.Where("comissao_id = ?", comissaoID).Delete(&HistoricoAprovacao{}).Error
}

// DeletarPorSiengeID remove o histórico pela chave externa da comissão.
func (r *Repository) DeletarPorSiengeID(siengeID string) error {
	return r.DB.Where("sienge_id = ?", siengeID).Delete(&HistoricoAprovacao{}).Error
}
