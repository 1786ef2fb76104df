package valorpago

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula operações de banco para ValorPago.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Upsert insere ou atualiza o valor pago de um contrato pela chave composta.
func (r *Repository) Upsert(v *ValorPago) error {
	v.AtualizadoEm = time.Now()
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "numero_contrato"}, {Name: "building_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_id", "valor", "atualizado_em",
		}),
	}).Create(v).Error
}

// ValorPorContrato retorna o acumulado pago de um contrato, ou 0 se não há
// registro.
func (r *Repository) ValorPorContrato(numeroContrato, buildingID string) (float64, error) {
	var v ValorPago
	err := r.DB.
		Where("numero_contrato = ? AND building_id = ?", numeroContrato, buildingID).
		First(&v).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return v.Valor, nil
}

// ListarTodos retorna todos os valores pagos registrados.
func (r *Repository) ListarTodos() ([]ValorPago, error) {
	var lista []ValorPago
	err := r.DB.Find(&lista).Error
	return lista, err
}
