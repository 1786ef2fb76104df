package aprovacao

import (
	"time"

	"gorm.io/gorm"
)

// Ações registradas no histórico.
const (
	AcaoEnviada   = "enviada"
	AcaoAprovada  = "aprovada"
	AcaoRejeitada = "rejeitada"
	AcaoRevertida = "revertida"
)

// HistoricoAprovacao é o registro imutável de uma transição do workflow.
// Linhas nunca são editadas; só são removidas quando a própria comissão é
// removida (cascata de limpeza).
type HistoricoAprovacao struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ComissaoID  uint      `gorm:"index;not null" json:"comissaoId"`
	SiengeID    string    `gorm:"size:50;index" json:"siengeId"`
	Acao        string    `gorm:"size:30;not null" json:"acao"`
	Status      string    `gorm:"size:50;not null" json:"status"`
	UsuarioID   uint      `json:"usuarioId"`
	UsuarioNome string    `gorm:"size:255" json:"usuarioNome"`
	Motivo      string    `gorm:"size:500" json:"motivo"`
	Observacoes string    `gorm:"size:500" json:"observacoes"`
	CriadoEm    time.Time `json:"criadoEm"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&HistoricoAprovacao{})
}
