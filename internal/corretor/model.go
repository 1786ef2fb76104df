package corretor

import (
	"time"

	"gorm.io/gorm"
)

// Corretor é um corretor de vendas sincronizado do Sienge. O campo Senha só
// é preenchido quando o corretor faz o cadastro de acesso ao portal; os
// demais campos pertencem ao Sienge e são sobrescritos a cada sincronização.
type Corretor struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SiengeID     int64     `gorm:"uniqueIndex;not null" json:"siengeId"`
	Nome         string    `gorm:"size:255" json:"nome"`
	CPF          string    `gorm:"size:20;index" json:"cpf"`
	CNPJ         string    `gorm:"size:20" json:"cnpj"`
	Email        string    `gorm:"size:255" json:"email"`
	Telefone     string    `gorm:"size:50" json:"telefone"`
	Ativo        bool      `gorm:"default:true" json:"ativo"`
	Senha        string    `gorm:"size:255" json:"-"`
	AtualizadoEm time.Time `json:"atualizadoEm"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Corretor{})
}
