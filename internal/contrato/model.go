package contrato

import (
	"time"

	"gorm.io/gorm"
)

// Contrato é um contrato de venda sincronizado do Sienge.
// A chave natural é composta: numero_contrato NÃO é único sozinho, apenas
// combinado com building_id. A chave de upsert é o sienge_id.
type Contrato struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SiengeID       int64     `gorm:"uniqueIndex;not null" json:"siengeId"`
	NumeroContrato string    `gorm:"size:50;index:idx_contrato_chave" json:"numeroContrato"`
	BuildingID     string    `gorm:"size:20;index:idx_contrato_chave" json:"buildingId"`
	CompanyID      string    `gorm:"size:20" json:"companyId"`
	NomeCliente    string    `gorm:"size:255" json:"nomeCliente"`
	DataContrato   string    `gorm:"size:30" json:"dataContrato"`
	ValorTotal     float64   `json:"valorTotal"`
	ValorAVista    float64   `json:"valorAVista"`
	Status         string    `gorm:"size:100" json:"status"`
	Unidade        string    `gorm:"size:100" json:"unidade"`
	AtualizadoEm   time.Time `json:"atualizadoEm"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Contrato{})
}
