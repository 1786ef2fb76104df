package usuario

import (
	"time"

	"gorm.io/gorm"
)

// Usuario é um usuário interno do portal de comissões (gestores e direção).
// Corretores têm acesso próprio via cadastro no pacote corretor.
type Usuario struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nome         string    `gorm:"size:255;not null" json:"nome"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Senha        string    `gorm:"size:255" json:"-"`
	Perfil       string    `gorm:"size:30;default:'Gestor'" json:"perfil"`
	IsAdmin      bool      `gorm:"default:false" json:"isAdmin"`
	Ativo        bool      `gorm:"default:true" json:"ativo"`
	CriadoEm     time.Time `json:"criadoEm"`
	AtualizadoEm time.Time `json:"atualizadoEm"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
