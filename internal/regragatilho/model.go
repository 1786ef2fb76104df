package regragatilho

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Tipos de regra suportados. "gatilho" aplica percentual sobre o valor à
// vista; "faturamento" condiciona a um faturamento mínimo.
const (
	TipoGatilho     = "gatilho"
	TipoFaturamento = "faturamento"
)

// RegraGatilho é uma regra estruturada de cálculo de gatilho, cadastrada
// pelos administradores e referenciada por Comissao.regra_gatilho_id.
// Exclusão é sempre lógica (ativo=false) para não quebrar referências.
type RegraGatilho struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Nome                string    `gorm:"size:100;not null" json:"nome"`
	Descricao           string    `gorm:"size:500" json:"descricao"`
	TipoRegra           string    `gorm:"size:30;not null;default:'gatilho'" json:"tipoRegra"`
	Percentual          *float64  `json:"percentual"`
	IncluiITBI          bool      `gorm:"default:false" json:"incluiItbi"`
	FaturamentoMinimo   *float64  `json:"faturamentoMinimo"`
	PercentualAuditoria *float64  `json:"percentualAuditoria"`
	Ativo               bool      `gorm:"default:true;index" json:"ativo"`
	CriadoEm            time.Time `json:"criadoEm"`
	AtualizadoEm        time.Time `json:"atualizadoEm"`
}

// Texto monta a descrição curta da regra no formato legado ("10% + ITBI"),
// gravada no campo texto da comissão por compatibilidade.
func (r *RegraGatilho) Texto() string {
	if r.Percentual == nil {
		return ""
	}
	if r.IncluiITBI {
		return fmt.Sprintf("%g%% + ITBI", *r.Percentual)
	}
	return fmt.Sprintf("%g%%", *r.Percentual)
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RegraGatilho{})
}
