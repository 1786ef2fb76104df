package empreendimento

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula operações de banco para Empreendimento.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Upsert insere ou atualiza um empreendimento pela chave sienge_id.
func (r *Repository) Upsert(e *Empreendimento) error {
	e.AtualizadoEm = time.Now()
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sienge_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"nome", "codigo", "company_id", "atualizado_em"}),
	}).Create(e).Error
}

// ListarTodos retorna os empreendimentos ordenados por nome.
func (r *Repository) ListarTodos() ([]Empreendimento, error) {
	var lista []Empreendimento
	err := r.DB.Order("nome").Find(&lista).Error
	return lista, err
}
