package sincronizacao

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/youngemp/comissoes-api/internal/comissao"
	"github.com/youngemp/comissoes-api/internal/sienge"
)

// StatusParcelaCancelada é gravado nas comissões órfãs.
const StatusParcelaCancelada = "CANCELLED"

// normalizarBuilding reduz IDs numéricos à forma inteira ("2003.0" e "2003"
// são o mesmo empreendimento).
func normalizarBuilding(buildingID string) string {
	limpo := strings.TrimSpace(buildingID)
	if f, err := strconv.ParseFloat(limpo, 64); err == nil {
		return strconv.FormatInt(int64(f), 10)
	}
	return limpo
}

func mesmoBuilding(a, b string) bool {
	return normalizarBuilding(a) == normalizarBuilding(b)
}

// variantesBuilding devolve as formas sob as quais um empreendimento numérico
// pode estar gravado: a inteira e a decimal ("2003" e "2003.0").
func variantesBuilding(buildingID string) []string {
	limpo := strings.TrimSpace(buildingID)
	norm := normalizarBuilding(limpo)
	if norm != limpo {
		return []string{limpo, norm}
	}
	if _, err := strconv.ParseFloat(limpo, 64); err == nil {
		return []string{norm, norm + ".0"}
	}
	return []string{limpo}
}

// ResultadoLimpeza resume uma execução de limpeza.
type ResultadoLimpeza struct {
	Analisadas int `json:"analisadas"`
	Removidas  int `json:"removidas"`
	Marcadas   int `json:"marcadas,omitempty"`
	Erros      int `json:"erros"`
}

// FonteComissoesExternas é a visão mais recente das comissões na API,
// usada na detecção de órfãs.
type FonteComissoesExternas interface {
	BuscarComissoes(empresa, buildingID string) ([]sienge.Comissao, error)
}

// Limpeza agrupa as rotinas de manutenção do banco de comissões.
type Limpeza struct {
	Comissoes EstoqueComissoes
	Historico EstoqueHistorico
	Fonte     FonteComissoesExternas
	Empresas  []string
	Log       *logrus.Logger
}

// chaveDuplicata identifica o grupo de duplicatas de uma comissão: mesma
// unidade do mesmo contrato gravada mais de uma vez sob sienge_ids
// diferentes, ainda que corretor ou valor tenham divergido entre as cópias.
func chaveDuplicata(c comissao.Comissao) string {
	return fmt.Sprintf("%s|%s|%s",
		c.NumeroContrato, c.Unidade, normalizarBuilding(c.BuildingID))
}

func cancelada(c comissao.Comissao) bool {
	return temPalavraCancelamento(c.InstallmentStatus) || temPalavraCancelamento(c.SituacaoCliente)
}

// parcelaPaga detecta status de parcela já quitada no Sienge.
func parcelaPaga(status string) bool {
	s := strings.ToUpper(status)
	return strings.Contains(s, "PAID") || strings.Contains(s, "PAGO")
}

// LimparDuplicadas remove duplicatas mantendo uma canônica por grupo:
// registros não cancelados vêm primeiro, empate decidido pelo menor id.
func (l *Limpeza) LimparDuplicadas() (ResultadoLimpeza, error) {
	var res ResultadoLimpeza
	todas, err := l.Comissoes.ListarTodas()
	if err != nil {
		return res, err
	}
	res.Analisadas = len(todas)

	grupos := map[string][]comissao.Comissao{}
	for _, c := range todas {
		chave := chaveDuplicata(c)
		grupos[chave] = append(grupos[chave], c)
	}

	for _, grupo := range grupos {
		if len(grupo) < 2 {
			continue
		}
		sort.Slice(grupo, func(i, j int) bool {
			ci, cj := cancelada(grupo[i]), cancelada(grupo[j])
			if ci != cj {
				return !ci
			}
			return grupo[i].ID < grupo[j].ID
		})
		canonica := grupo[0]
		for _, dup := range grupo[1:] {
			if err := l.removerComissao(dup); err != nil {
				res.Erros++
				continue
			}
			l.Log.WithFields(logrus.Fields{
				"removida": dup.ID,
				"mantida":  canonica.ID,
				"contrato": dup.NumeroContrato,
			}).Info("duplicata removida")
			res.Removidas++
		}
	}
	return res, nil
}

// prioridade dos status de parcela na escolha da duplicata a manter:
// quanto menor, melhor o registro.
func pesoStatus(status string) int {
	s := strings.ToUpper(status)
	switch {
	case parcelaPaga(s):
		return 1
	case strings.Contains(s, "RELEASED") || strings.Contains(s, "LIBERAD"):
		return 2
	case strings.Contains(s, "AWAITING") || strings.Contains(s, "AGUARD"):
		return 3
	case temPalavraCancelamento(s):
		return 99
	default:
		return 50
	}
}

// LimparDuplicadasPorStatus é a variante que escolhe a canônica pelo status
// da parcela (paga > liberada > aguardando), empate decidido pelo maior
// sienge_id. Mantida como rotina separada para bases que passaram por
// reimportação com status divergentes.
func (l *Limpeza) LimparDuplicadasPorStatus() (ResultadoLimpeza, error) {
	var res ResultadoLimpeza
	todas, err := l.Comissoes.ListarTodas()
	if err != nil {
		return res, err
	}
	res.Analisadas = len(todas)

	grupos := map[string][]comissao.Comissao{}
	for _, c := range todas {
		chave := chaveDuplicata(c)
		grupos[chave] = append(grupos[chave], c)
	}

	for _, grupo := range grupos {
		if len(grupo) < 2 {
			continue
		}
		sort.Slice(grupo, func(i, j int) bool {
			pi, pj := pesoStatus(grupo[i].InstallmentStatus), pesoStatus(grupo[j].InstallmentStatus)
			if pi != pj {
				return pi < pj
			}
			return grupo[i].SiengeID > grupo[j].SiengeID
		})
		for _, dup := range grupo[1:] {
			if err := l.removerComissao(dup); err != nil {
				res.Erros++
				continue
			}
			res.Removidas++
		}
	}
	return res, nil
}

// LimparCanceladas remove comissões com status de cancelamento e força a
// aprovação das que o Sienge já reporta como pagas.
func (l *Limpeza) LimparCanceladas() (ResultadoLimpeza, error) {
	var res ResultadoLimpeza
	todas, err := l.Comissoes.ListarTodas()
	if err != nil {
		return res, err
	}
	res.Analisadas = len(todas)

	for _, c := range todas {
		if cancelada(c) {
			if err := l.removerComissao(c); err != nil {
				res.Erros++
				continue
			}
			res.Removidas++
			continue
		}
		if parcelaPaga(c.InstallmentStatus) && c.StatusAprovacao != comissao.StatusAprovada {
			if err := l.Comissoes.AtualizarStatusAprovacao(c.SiengeID, comissao.StatusAprovada); err != nil {
				l.Log.WithError(err).WithField("sienge_id", c.SiengeID).Error("falha ao aprovar comissão paga")
				res.Erros++
				continue
			}
			l.Log.WithField("sienge_id", c.SiengeID).Info("comissão paga marcada como aprovada")
			res.Marcadas++
		}
	}
	return res, nil
}

// MarcarOrfas marca como canceladas as comissões cujo sienge_id não aparece
// mais na busca completa da API. Órfãs nunca são removidas: a marcação
// preserva o registro para auditoria. Se alguma busca falhar, nada é marcado.
func (l *Limpeza) MarcarOrfas() (ResultadoLimpeza, error) {
	var res ResultadoLimpeza

	externas := map[string]bool{}
	for _, empresa := range l.Empresas {
		lista, err := l.Fonte.BuscarComissoes(empresa, "")
		if err != nil {
			l.Log.WithError(err).WithField("empresa", empresa).Error("falha ao buscar comissões na API")
			return res, err
		}
		for _, c := range lista {
			externas[c.SiengeID] = true
		}
	}

	todas, err := l.Comissoes.ListarTodas()
	if err != nil {
		return res, err
	}
	res.Analisadas = len(todas)

	for _, c := range todas {
		if externas[c.SiengeID] {
			continue
		}
		if c.InstallmentStatus == StatusParcelaCancelada {
			continue
		}
		if err := l.Comissoes.MarcarStatusParcela(c.ID, StatusParcelaCancelada); err != nil {
			l.Log.WithError(err).WithField("comissao_id", c.ID).Error("falha ao marcar órfã")
			res.Erros++
			continue
		}
		l.Log.WithFields(logrus.Fields{
			"comissao_id": c.ID,
			"contrato":    c.NumeroContrato,
		}).Info("comissão órfã marcada como cancelada")
		res.Marcadas++
	}
	return res, nil
}

// ReverterTodasParaPendente zera o workflow de todas as comissões que já
// saíram de Pendente. Ferramenta administrativa de reset.
func (l *Limpeza) ReverterTodasParaPendente() (ResultadoLimpeza, error) {
	var res ResultadoLimpeza
	todas, err := l.Comissoes.ListarTodas()
	if err != nil {
		return res, err
	}
	res.Analisadas = len(todas)

	for _, c := range todas {
		if c.StatusAprovacao == comissao.StatusPendente {
			continue
		}
		if err := l.Comissoes.ReverterParaPendente(c.ID); err != nil {
			res.Erros++
			continue
		}
		res.Marcadas++
	}
	return res, nil
}

// removerComissao apaga uma comissão junto com seu histórico de aprovação,
// nesta ordem.
func (l *Limpeza) removerComissao(c comissao.Comissao) error {
	if err := l.Historico.DeletarPorComissao(c.ID); err != nil {
		l.Log.WithError(err).WithField("comissao_id", c.ID).Error("falha ao remover histórico")
		return err
	}
	if err := l.Comissoes.DeletarPorID(c.ID); err != nil {
		l.Log.WithError(err).WithField("comissao_id", c.ID).Error("falha ao remover comissão")
		return err
	}
	return nil
}
