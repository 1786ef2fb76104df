package comissao

import (
	"time"

	"gorm.io/gorm"
)

// colunas externas, as únicas que uma re-sincronização pode sobrescrever.
// Os campos do workflow de aprovação ficam de fora por invariante.
var colunasExternas = []string{
	"numero_contrato", "building_id", "company_id", "broker_id", "broker_nome",
	"nome_cliente", "nome_empreendimento", "unidade", "valor",
	"installment_status", "situacao_cliente", "data_comissao", "atualizado_em",
}

// Repository encapsula operações de banco para Comissao.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Criar insere uma comissão nova.
func (r *Repository) Criar(c *Comissao) error {
	c.AtualizadoEm = time.Now()
	return r.DB.Create(c).Error
}

// AtualizarExternos sobrescreve apenas os campos vindos do Sienge de uma
// comissão já existente, preservando o workflow local.
func (r *Repository) AtualizarExternos(c *Comissao) error {
	c.AtualizadoEm = time.Now()
	return r.DB.Model(&Comissao{}).
		Where("sienge_id = ?", c.SiengeID).
		Select(colunasExternas).
		Updates(c).Error
}

// BuscarPorSiengeID busca uma comissão pela chave externa.
func (r *Repository) BuscarPorSiengeID(siengeID string) (*Comissao, error) {
	var c Comissao
	if err := r.DB.Where("sienge_id = ?", siengeID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// BuscarPorID busca uma comissão pelo id local.
func (r *Repository) BuscarPorID(id uint) (*Comissao, error) {
	var c Comissao
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListarTodas retorna todas as comissões.
func (r *Repository) ListarTodas() ([]Comissao, error) {
	var lista []Comissao
	err := r.DB.Find(&lista).Error
	return lista, err
}

// ListarPorStatusAprovacao retorna comissões em um status do workflow.
func (r *Repository) ListarPorStatusAprovacao(status string) ([]Comissao, error) {
	var lista []Comissao
	err := r.DB.Where("status_aprovacao = ?", status).Find(&lista).Error
	return lista, err
}

// ListarPorCorretor filtra por id ou por trecho do nome do corretor.
func (r *Repository) ListarPorCorretor(brokerID int64, nome string) ([]Comissao, error) {
	var lista []Comissao
	q := r.DB
	if brokerID != 0 {
		q = q.Where("broker_id = ?", brokerID)
	} else if nome != "" {
		q = q.Where("broker_nome ILIKE ?", "%"+nome+"%")
	}
	err := q.Find(&lista).Error
	return lista, err
}

// StatusParcelaDistintos retorna os valores distintos de installment_status.
func (r *Repository) StatusParcelaDistintos() ([]string, error) {
	var status []string
	err := r.DB.Model(&Comissao{}).
		Distinct("installment_status").
		Where("installment_status <> ''").
		Order("installment_status").
		Pluck("installment_status", &status).Error
	return status, err
}

// AtualizarRegra troca a regra de gatilho de uma comissão.
func (r *Repository) AtualizarRegra(id uint, regraID *uint, regraTexto string) error {
	return r.DB.Model(&Comissao{}).Where("id = ?", id).Updates(map[string]interface{}{
		"regra_gatilho_id": regraID,
		"regra_gatilho":    regraTexto,
		"atualizado_em":    time.Now(),
	}).Error
}

// AtualizarStatusAprovacao força um status do workflow (regra de
// auto-aprovação de comissões pagas).
func (r *Repository) AtualizarStatusAprovacao(siengeID, status string) error {
	return r.DB.Model(&Comissao{}).
		Where("sienge_id = ?", siengeID).
		Update("status_aprovacao", status).Error
}

// MarcarStatusParcela sobrescreve o installment_status de uma comissão
// (usado para marcar órfãs como CANCELLED).
func (r *Repository) MarcarStatusParcela(id uint, status string) error {
	return r.DB.Model(&Comissao{}).Where("id = ?", id).Updates(map[string]interface{}{
		"installment_status": status,
		"atualizado_em":      time.Now(),
	}).Error
}

// MarcarEnviada move a comissão para Pendente de Aprovação.
func (r *Repository) MarcarEnviada(id uint, usuarioID uint) error {
	agora := time.Now()
	return r.DB.Model(&Comissao{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status_aprovacao":     StatusEnviada,
		"enviado_por":          usuarioID,
		"data_envio_aprovacao": agora,
	}).Error
}

// MarcarAprovada move a comissão para Aprovada.
func (r *Repository) MarcarAprovada(id uint, usuarioID uint) error {
	agora := time.Now()
	return r.DB.Model(&Comissao{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status_aprovacao": StatusAprovada,
		"aprovado_por":     usuarioID,
		"data_aprovacao":   agora,
	}).Error
}

// MarcarRejeitada move a comissão para Rejeitada gravando o motivo.
func (r *Repository) MarcarRejeitada(id uint, usuarioID uint, motivo string) error {
	agora := time.Now()
	return r.DB.Model(&Comissao{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status_aprovacao": StatusRejeitada,
		"aprovado_por":     usuarioID,
		"data_aprovacao":   agora,
		"observacoes":      motivo,
	}).Error
}

// ReverterParaPendente zera o workflow de uma comissão de volta a Pendente.
func (r *Repository) ReverterParaPendente(id uint) error {
	return r.DB.Model(&Comissao{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status_aprovacao":     StatusPendente,
		"enviado_por":          nil,
		"data_envio_aprovacao": nil,
		"aprovado_por":         nil,
		"data_aprovacao":       nil,
		"observacoes":          nil,
	}).Error
}

// DeletarPorSiengeID remove uma comissão pela chave externa.
func (r *Repository) DeletarPorSiengeID(siengeID string) error {
	return r.DB.Where("sienge_id = ?", siengeID).Delete(&Comissao{}).Error
}

// DeletarPorContrato remove todas as comissões de um contrato (cascata do
// cancelamento de contrato).
func (r *Repository) DeletarPorContrato(numeroContrato, buildingID string) error {
	return r.DB.
		Where("numero_contrato = ? AND building_id = ?", numeroContrato, buildingID).
		Delete(&Comissao{}).Error
}

// DeletarPorID remove uma comissão pelo id local.
func (r *Repository) DeletarPorID(id uint) error {
	return r.DB.Delete(&Comissao{}, id).Error
}
