package corretor

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula operações de banco para Corretor.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Upsert insere ou atualiza um corretor pela chave sienge_id.
// A senha de acesso nunca é tocada pela sincronização.
func (r *Repository) Upsert(c *Corretor) error {
	c.AtualizadoEm = time.Now()
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sienge_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"nome", "cpf", "cnpj", "email", "telefone", "ativo", "atualizado_em",
		}),
	}).Create(c).Error
}

// ListarAtivos retorna os corretores ativos ordenados por nome.
func (r *Repository) ListarAtivos() ([]Corretor, error) {
	var lista []Corretor
	err := r.DB.Where("ativo = ?", true).Order("nome").Find(&lista).Error
	return lista, err
}

// BuscarPorSiengeID busca um corretor pelo id do Sienge.
func (r *Repository) BuscarPorSiengeID(siengeID int64) (*Corretor, error) {
	var c Corretor
	if err := r.DB.Where("sienge_id = ?", siengeID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// BuscarPorDocumento busca um corretor pelo CPF ou CNPJ, ignorando
// pontuação (pontos, traços e barras).
func (r *Repository) BuscarPorDocumento(documento string) (*Corretor, error) {
	limpo := limparDocumento(documento)

	var todos []Corretor
	if err := r.DB.Find(&todos).Error; err != nil {
		return nil, err
	}
	for i := range todos {
		if limparDocumento(todos[i].CPF) == limpo || limparDocumento(todos[i].CNPJ) == limpo {
			return &todos[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// AtualizarSenha grava o hash de senha de acesso do corretor.
func (r *Repository) AtualizarSenha(siengeID int64, hash string) error {
	return r.DB.Model(&Corretor{}).
		Where("sienge_id = ?", siengeID).
		Update("senha", hash).Error
}

// AtualizarEmail troca o e-mail de contato do corretor.
func (r *Repository) AtualizarEmail(siengeID int64, email string) error {
	return r.DB.Model(&Corretor{}).
		Where("sienge_id = ?", siengeID).
		Update("email", email).Error
}

func limparDocumento(doc string) string {
	substituidor := strings.NewReplacer(".", "", "-", "", "/", "", " ", "")
	return substituidor.Replace(doc)
}
