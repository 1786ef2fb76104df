package empreendimento

import (
	"time"

	"gorm.io/gorm"
)

// Empreendimento é um prédio/loteamento sincronizado do Sienge.
// Criado e atualizado apenas pelo sincronizador; nunca deletado.
type Empreendimento struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SiengeID     int64     `gorm:"uniqueIndex;not null" json:"siengeId"`
	Nome         string    `gorm:"size:255" json:"nome"`
	Codigo       string    `gorm:"size:50" json:"codigo"`
	CompanyID    string    `gorm:"size:20;index" json:"companyId"`
	AtualizadoEm time.Time `json:"atualizadoEm"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Empreendimento{})
}
