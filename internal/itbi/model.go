package itbi

import (
	"time"

	"gorm.io/gorm"
)

// ITBI é o imposto de transmissão de um contrato, extraído das condições de
// pagamento do detalhe do contrato no Sienge. Um registro por contrato;
// valores zerados nunca são gravados, ausência de linha significa ITBI zero.
type ITBI struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	NumeroContrato string    `gorm:"size:50;uniqueIndex:idx_itbi_chave" json:"numeroContrato"`
	BuildingID     string    `gorm:"size:20;uniqueIndex:idx_itbi_chave" json:"buildingId"`
	CompanyID      string    `gorm:"size:20" json:"companyId"`
	Valor          float64   `gorm:"not null" json:"valor"`
	Documento      string    `gorm:"size:100" json:"documento"`
	DataVencimento string    `gorm:"size:30" json:"dataVencimento"`
	AtualizadoEm   time.Time `json:"atualizadoEm"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ITBI{})
}
