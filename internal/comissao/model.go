package comissao

import (
	"time"

	"gorm.io/gorm"
)

// Status do fluxo de aprovação. O status de aprovação é estado LOCAL do
// workflow: a sincronização nunca o sobrescreve, exceto na criação (Pendente)
// e na regra de auto-aprovação de comissões já pagas no Sienge.
const (
	StatusPendente  = "Pendente"
	StatusEnviada   = "Pendente de Aprovação"
	StatusAprovada  = "Aprovada"
	StatusRejeitada = "Rejeitada"
)

// Comissao é uma parcela de comissão sincronizada do Sienge, enriquecida com
// o workflow local de aprovação e a regra de gatilho aplicada.
type Comissao struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	SiengeID string `gorm:"size:50;uniqueIndex;not null" json:"siengeId"`

	// Campos externos, sobrescritos a cada sincronização
	NumeroContrato     string  `gorm:"size:50;index:idx_comissao_contrato" json:"numeroContrato"`
	BuildingID         string  `gorm:"size:20;index:idx_comissao_contrato" json:"buildingId"`
	CompanyID          string  `gorm:"size:20" json:"companyId"`
	BrokerID           int64   `gorm:"index" json:"brokerId"`
	BrokerNome         string  `gorm:"size:255" json:"brokerNome"`
	NomeCliente        string  `gorm:"size:255" json:"nomeCliente"`
	NomeEmpreendimento string  `gorm:"size:255" json:"nomeEmpreendimento"`
	Unidade            string  `gorm:"size:100" json:"unidade"`
	Valor              float64 `json:"valor"`
	InstallmentStatus  string  `gorm:"size:100;index" json:"installmentStatus"`
	SituacaoCliente    string  `gorm:"size:100" json:"situacaoCliente"`
	DataComissao       string  `gorm:"size:30" json:"dataComissao"`

	// Regra de gatilho: referência estruturada com fallback em texto legado
	RegraGatilhoID *uint  `gorm:"index" json:"regraGatilhoId"`
	RegraGatilho   string `gorm:"size:100" json:"regraGatilho"`

	// Workflow local de aprovação
	StatusAprovacao    string     `gorm:"size:50;not null;default:'Pendente';index" json:"statusAprovacao"`
	EnviadoPor         *uint      `json:"enviadoPor"`
	DataEnvioAprovacao *time.Time `json:"dataEnvioAprovacao"`
	AprovadoPor        *uint      `json:"aprovadoPor"`
	DataAprovacao      *time.Time `json:"dataAprovacao"`
	AuditoriaAprovada  *bool      `json:"auditoriaAprovada"`
	Observacoes        string     `gorm:"size:500" json:"observacoes"`

	AtualizadoEm time.Time `json:"atualizadoEm"`

	// Anotações de gatilho calculadas na leitura, nunca persistidas
	ValorGatilho   float64 `gorm:"-" json:"valorGatilho"`
	AtingiuGatilho bool    `gorm:"-" json:"atingiuGatilho"`
	ValorPago      float64 `gorm:"-" json:"valorPago"`
	ValorITBI      float64 `gorm:"-" json:"valorItbi"`
	ValorAVista    float64 `gorm:"-" json:"valorAVista"`
	DataContrato   string  `gorm:"-" json:"dataContrato"`
	DadosCompletos bool    `gorm:"-" json:"dadosCompletos"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Comissao{})
}
