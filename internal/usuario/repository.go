package usuario

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Usuario.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Criar insere um usuário novo.
func (r *Repository) Criar(u *Usuario) error {
	u.Ativo = true
	u.CriadoEm = time.Now()
	return r.DB.Create(u).Error
}

// BuscarPorEmail busca um usuário ativo pelo email.
func (r *Repository) BuscarPorEmail(email string) (*Usuario, error) {
	var u Usuario
	if err := r.DB.Where("email = ? AND ativo = ?", email, true).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// BuscarPorID busca um usuário pelo id.
func (r *Repository) BuscarPorID(id uint) (*Usuario, error) {
	var u Usuario
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ListarTodos retorna todos os usuários.
func (r *Repository) ListarTodos() ([]Usuario, error) {
	var lista []Usuario
	err := r.DB.Order("nome").Find(&lista).Error
	return lista, err
}

// Atualizar sobrescreve nome, perfil e flag de admin.
func (r *Repository) Atualizar(id uint, u *Usuario) error {
	return r.DB.Model(&Usuario{}).Where("id = ?", id).Updates(map[string]interface{}{
		"nome":          u.Nome,
		"perfil":        u.Perfil,
		"is_admin":      u.IsAdmin,
		"atualizado_em": time.Now(),
	}).Error
}

// AtualizarSenha troca o hash de senha de um usuário.
func (r *Repository) AtualizarSenha(id uint, hash string) error {
	return r.DB.Model(&Usuario{}).Where("id = ?", id).Update("senha", hash).Error
}

// Desativar faz a exclusão lógica de um usuário.
func (r *Repository) Desativar(id uint) error {
	return r.DB.Model(&Usuario{}).Where("id = ?", id).Update("ativo", false).Error
}
