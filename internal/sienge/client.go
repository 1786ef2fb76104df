package sienge

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const tamanhoPagina = 100

// Cliente fala com a API pública do Sienge (v1) usando basic auth.
// A empresa (companyId) é sempre um parâmetro explícito por chamada: o
// sincronizador itera as empresas configuradas sem nenhum estado mutável
// compartilhado entre iterações.
type Cliente struct {
	BaseURL  string
	Usuario  string
	Senha    string
	Empresas []string

	HTTP *http.Client
	Log  *logrus.Logger
}

// NovoClienteDeEnv monta o cliente a partir das variáveis SIENGE_*.
func NovoClienteDeEnv(log *logrus.Logger) *Cliente {
	empresasStr := os.Getenv("SIENGE_COMPANY_IDS")
	if empresasStr == "" {
		empresasStr = "5"
	}
	var empresas []string
	for _, e := range strings.Split(empresasStr, ",") {
		if e = strings.TrimSpace(e); e != "" {
			empresas = append(empresas, e)
		}
	}

	base := os.Getenv("SIENGE_BASE_URL")
	if base == "" {
		base = "https://api.sienge.com.br/youngemp/public/api/v1"
	}

	return &Cliente{
		BaseURL:  base,
		Usuario:  os.Getenv("SIENGE_USERNAME"),
		Senha:    os.Getenv("SIENGE_PASSWORD"),
		Empresas: empresas,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Log:      log,
	}
}

// envelope é o formato de resposta paginada da v1.
type envelope struct {
	ResultSetMetadata *struct {
		Count  int `json:"count"`
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
	} `json:"resultSetMetadata"`
	Results []map[string]any `json:"results"`
}

func (c *Cliente) requisitar(endpoint string, params url.Values) ([]map[string]any, error) {
	u := fmt.Sprintf("%s/%s", strings.TrimRight(c.BaseURL, "/"), endpoint)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.Usuario, c.Senha)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requisição sienge %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sienge %s: status %d", endpoint, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decodificando resposta de %s: %w", endpoint, err)
	}
	return env.Results, nil
}

// requisitarUm busca um recurso único (sem envelope de paginação).
func (c *Cliente) requisitarUm(endpoint string) (map[string]any, error) {
	u := fmt.Sprintf("%s/%s", strings.TrimRight(c.BaseURL, "/"), endpoint)
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.Usuario, c.Senha)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requisição sienge %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sienge %s: status %d", endpoint, resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decodificando resposta de %s: %w", endpoint, err)
	}
	return raw, nil
}

// paginar percorre todas as páginas de um endpoint.
func (c *Cliente) paginar(endpoint string, params url.Values) ([]map[string]any, error) {
	var todos []map[string]any
	offset := 0
	for {
		params.Set("offset", strconv.Itoa(offset))
		params.Set("limit", strconv.Itoa(tamanhoPagina))

		pagina, err := c.requisitar(endpoint, params)
		if err != nil {
			return todos, err
		}
		if len(pagina) == 0 {
			break
		}
		todos = append(todos, pagina...)
		if len(pagina) < tamanhoPagina {
			break
		}
		offset += tamanhoPagina
	}
	return todos, nil
}

// BuscarEmpreendimentos retorna os empreendimentos de uma empresa.
func (c *Cliente) BuscarEmpreendimentos(empresa string) ([]Empreendimento, error) {
	params := url.Values{"companyId": {empresa}}
	brutos, err := c.requisitar("enterprises", params)
	if err != nil {
		return nil, err
	}
	lista := make([]Empreendimento, 0, len(brutos))
	for _, raw := range brutos {
		lista = append(lista, NormalizarEmpreendimento(raw))
	}
	return lista, nil
}

// BuscarContratos retorna todos os contratos de venda de uma empresa,
// paginando automaticamente. buildingID opcional restringe a um empreendimento.
func (c *Cliente) BuscarContratos(empresa, buildingID string) ([]Contrato, error) {
	params := url.Values{"companyId": {empresa}}
	if buildingID != "" {
		params.Set("enterpriseId", buildingID)
	}
	brutos, err := c.paginar("sales-contracts", params)
	if err != nil {
		return nil, err
	}
	lista := make([]Contrato, 0, len(brutos))
	for _, raw := range brutos {
		lista = append(lista, NormalizarContrato(raw))
	}
	return lista, nil
}

// BuscarCorretores retorna os corretores cadastrados de uma empresa.
func (c *Cliente) BuscarCorretores(empresa string) ([]Corretor, error) {
	params := url.Values{"companyId": {empresa}}
	brutos, err := c.requisitar("commissions/configurations/brokers", params)
	if err != nil {
		return nil, err
	}
	lista := make([]Corretor, 0, len(brutos))
	for _, raw := range brutos {
		lista = append(lista, NormalizarCorretor(raw))
	}
	return lista, nil
}

// BuscarComissoes retorna todas as comissões de uma empresa, paginando.
func (c *Cliente) BuscarComissoes(empresa, buildingID string) ([]Comissao, error) {
	params := url.Values{"companyId": {empresa}}
	if buildingID != "" {
		params.Set("enterpriseId", buildingID)
	}
	brutos, err := c.paginar("commissions", params)
	if err != nil {
		return nil, err
	}
	lista := make([]Comissao, 0, len(brutos))
	for _, raw := range brutos {
		lista = append(lista, NormalizarComissao(raw))
	}
	return lista, nil
}

// BuscarDetalheContrato busca as condições de pagamento de um contrato.
func (c *Cliente) BuscarDetalheContrato(siengeID int64) (*DetalheContrato, error) {
	raw, err := c.requisitarUm(fmt.Sprintf("sales-contracts/%d", siengeID))
	if err != nil {
		return nil, err
	}
	d := NormalizarDetalheContrato(raw)
	return &d, nil
}
