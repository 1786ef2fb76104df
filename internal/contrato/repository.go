package contrato

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula operações de banco para Contrato.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Upsert insere ou atualiza um contrato pela chave sienge_id.
func (r *Repository) Upsert(c *Contrato) error {
	c.AtualizadoEm = time.Now()
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sienge_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"numero_contrato", "building_id", "company_id", "nome_cliente",
			"data_contrato", "valor_total", "valor_a_vista", "status",
			"unidade", "atualizado_em",
		}),
	}).Create(c).Error
}

// BuscarPorNumero busca um contrato pela chave natural composta.
func (r *Repository) BuscarPorNumero(numeroContrato, buildingID string) (*Contrato, error) {
	var c Contrato
	err := r.DB.
		Where("numero_contrato = ? AND building_id = ?", numeroContrato, buildingID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListarPorEmpreendimento retorna os contratos de um empreendimento.
func (r *Repository) ListarPorEmpreendimento(buildingID string) ([]Contrato, error) {
	var lista []Contrato
	err := r.DB.
		Where("building_id = ?", buildingID).
		Order("numero_contrato").
		Find(&lista).Error
	return lista, err
}

// ListarTodos retorna todos os contratos.
func (r *Repository) ListarTodos() ([]Contrato, error) {
	var lista []Contrato
	err := r.DB.Find(&lista).Error
	return lista, err
}

// BuscarPorTermo procura por número de contrato, nome do cliente ou unidade.
func (r *Repository) BuscarPorTermo(termo string, limite int) ([]Contrato, error) {
	var lista []Contrato
	padrao := "%" + termo + "%"
	err := r.DB.
		Where("numero_contrato ILIKE ? OR nome_cliente ILIKE ? OR unidade ILIKE ?", padrao, padrao, padrao).
		Limit(limite).
		Find(&lista).Error
	return lista, err
}

// DeletarPorChave remove um contrato pela chave natural composta.
// Usado pelo sincronizador quando o Sienge reporta cancelamento/distrato.
func (r *Repository) DeletarPorChave(numeroContrato, buildingID string) error {
	return r.DB.
		Where("numero_contrato = ? AND building_id = ?", numeroContrato, buildingID).
		Delete(&Contrato{}).Error
}
