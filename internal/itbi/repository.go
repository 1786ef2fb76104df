package itbi

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula operações de banco para ITBI.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Upsert insere ou atualiza o ITBI de um contrato pela chave composta.
func (r *Repository) Upsert(i *ITBI) error {
	i.AtualizadoEm = time.Now()
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "numero_contrato"}, {Name: "building_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_id", "valor", "documento", "data_vencimento", "atualizado_em",
		}),
	}).Create(i).Error
}

// ValorPorContrato retorna o valor de ITBI de um contrato, ou 0 se não há
// registro (ausência == zero, por convenção do sincronizador).
func (r *Repository) ValorPorContrato(numeroContrato, buildingID string) (float64, error) {
	var i ITBI
	err := r.DB.
		Where("numero_contrato = ? AND building_id = ?", numeroContrato, buildingID).
		First(&i).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return i.Valor, nil
}

// ListarTodos retorna todos os ITBIs registrados.
func (r *Repository) ListarTodos() ([]ITBI, error) {
	var lista []ITBI
	err := r.DB.Find(&lista).Error
	return lista, err
}
