package sincronizacao

import (
	"time"

	"gorm.io/gorm"
)

// Tipos de execução registrados no log.
const (
	TipoCompleta  = "completa"
	TipoComissoes = "comissoes"
	TipoLimpeza   = "limpeza"
)

// LogSincronizacao é o registro imutável de uma execução do sincronizador.
// Resultados guarda o detalhamento por entidade em JSON.
type LogSincronizacao struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Tipo         string    `gorm:"size:30;not null" json:"tipo"`
	Empresas     string    `gorm:"size:100" json:"empresas"`
	Sucesso      bool      `json:"sucesso"`
	Resultados   string    `gorm:"type:jsonb" json:"resultados"`
	Erro         string    `gorm:"size:1000" json:"erro"`
	IniciadoEm   time.Time `json:"iniciadoEm"`
	FinalizadoEm time.Time `json:"finalizadoEm"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&LogSincronizacao{})
}

// RepositoryLog encapsula operações de banco para LogSincronizacao.
type RepositoryLog struct {
	DB *gorm.DB
}

// NewRepositoryLog cria um novo repositório de logs.
func NewRepositoryLog(db *gorm.DB) *RepositoryLog {
	return &RepositoryLog{DB: db}
}

// Registrar grava o log de uma execução.
func (r *RepositoryLog) Registrar(l *LogSincronizacao) error {
	return r.DB.Create(l).Error
}

// Ultima retorna a execução mais recente.
func (r *RepositoryLog) Ultima() (*LogSincronizacao, error) {
	var l LogSincronizacao
	if err := r.DB.Order("iniciado_em DESC").First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// ListarRecentes retorna as últimas execuções, mais novas primeiro.
func (r *RepositoryLog) ListarRecentes(limite int) ([]LogSincronizacao, error) {
	if limite <= 0 {
		limite = 20
	}
	var lista []LogSincronizacao
	err := r.DB.Order("iniciado_em DESC").Limit(limite).Find(&lista).Error
	return lista, err
}
