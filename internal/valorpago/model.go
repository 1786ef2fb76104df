package valorpago

import (
	"time"

	"gorm.io/gorm"
)

// ValorPago é o acumulado pago de um contrato, somado das condições de
// pagamento do detalhe do contrato. Um registro por contrato; valores
// zerados nunca são gravados, ausência de linha significa zero pago.
type ValorPago struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	NumeroContrato string    `gorm:"size:50;uniqueIndex:idx_valor_pago_chave" json:"numeroContrato"`
	BuildingID     string    `gorm:"size:20;uniqueIndex:idx_valor_pago_chave" json:"buildingId"`
	CompanyID      string    `gorm:"size:20" json:"companyId"`
	Valor          float64   `gorm:"not null" json:"valor"`
	AtualizadoEm   time.Time `json:"atualizadoEm"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ValorPago{})
}
