package sienge

// Registros canônicos extraídos da API do Sienge. A API já passou por duas
// gerações de nomes de campo; a normalização em normalize.go converte o JSON
// bruto para estas formas antes de qualquer regra de negócio tocar nos dados.

// Empreendimento é um prédio/loteamento (endpoint /enterprises).
type Empreendimento struct {
	SiengeID  int64
	Nome      string
	Codigo    string
	CompanyID string
}

// Contrato é um contrato de venda (endpoint /sales-contracts).
type Contrato struct {
	SiengeID       int64
	NumeroContrato string
	BuildingID     string
	CompanyID      string
	NomeCliente    string
	DataContrato   string
	ValorTotal     float64
	ValorAVista    float64
	Status         string
	Unidade        string
}

// Corretor vem de /commissions/configurations/brokers.
type Corretor struct {
	SiengeID int64
	Nome     string
	CPF      string
	CNPJ     string
	Email    string
	Telefone string
	Ativo    bool
}

// Comissao é uma parcela de comissão (endpoint /commissions).
type Comissao struct {
	SiengeID          string
	NumeroContrato    string
	BuildingID        string
	CompanyID         string
	BrokerID          int64
	BrokerNome        string
	NomeCliente       string
	NomeEmpreend      string
	Unidade           string
	Valor             float64
	ValorCancelado    float64
	ValorLiberado     float64
	InstallmentStatus string
	SituacaoCliente   string
	DataComissao      string
	TitulosPagamento  []string
}

// CondicaoPagamento é uma linha de paymentConditions do detalhe do contrato.
type CondicaoPagamento struct {
	TipoCondicao   string
	Documento      string
	ValorTotal     float64
	ValorPago      float64
	DataVencimento string
}

// DetalheContrato é a resposta de /sales-contracts/{id}.
type DetalheContrato struct {
	SiengeID       int64
	NumeroContrato string
	BuildingID     string
	Condicoes      []CondicaoPagamento
}

// ITBIExtraido é o resultado de ExtrairITBI.
type ITBIExtraido struct {
	Valor          float64
	Documento      string
	DataVencimento string
}
