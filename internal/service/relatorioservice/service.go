package relatorioservice

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
)

const (
	topModelosLimite = 5
	modeloTamanco    = "Tamanco"
	modeloSandalia   = "Sandália"
	planilhaEstoque  = "Estoque"
)

// EstoqueRepository faz a varredura do estoque para os relatórios.
type EstoqueRepository interface {
	ListAll(ctx context.Context) ([]domain.Produto, error)
	CountLotesDesde(ctx context.Context, since time.Time) (int, error)
}

// Service monta os resumos do painel e a planilha de estoque.
type Service struct {
	repo   EstoqueRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria o serviço de relatórios.
func NewService(repo EstoqueRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log, now: time.Now}
}

func toContext(ctx domain.Context) context.Context {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		return context.Background()
	}
	return ctxGo
}

func inicioDoDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *Service) carregar(ctx context.Context) ([]domain.Produto, int, error) {
	produtos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	lotesHoje, err := s.repo.CountLotesDesde(ctx, inicioDoDia(s.now()))
	if err != nil {
		return nil, 0, err
	}
	return produtos, lotesHoje, nil
}

// Dashboard resume o estoque inteiro: valores, margem e rankings.
func (s *Service) Dashboard(ctx domain.Context) (domain.Dashboard, error) {
	produtos, lotesHoje, err := s.carregar(toContext(ctx))
	if err != nil {
		return domain.Dashboard{}, err
	}

	t := totalizar(produtos)
	lucro := t.valor.Sub(t.custo)
	baixo := 0
	for _, p := range produtos {
		if p.Quantidade <= domain.LimiteEstoqueBaixo {
			baixo++
		}
	}

	return domain.Dashboard{
		TotalPares:       t.pares,
		ValorTotal:       t.valor,
		CustoTotal:       t.custo,
		LucroProjetado:   lucro,
		MargemLucro:      domain.MargemLucro(lucro, t.valor),
		ModelosAtivos:    modelosAtivos(produtos),
		LowStockCount:    baixo,
		LotesHoje:        lotesHoje,
		EstoquePorGenero: estoquePorGenero(produtos),
		TopModelos:       topModelos(produtos, topModelosLimite),
	}, nil
}

// Home é o resumo da página inicial, com alertas de grade quebrada.
func (s *Service) Home(ctx domain.Context) (domain.Home, error) {
	produtos, lotesHoje, err := s.carregar(toContext(ctx))
	if err != nil {
		return domain.Home{}, err
	}

	t := totalizar(produtos)
	alertas := Alertas(produtos)

	return domain.Home{
		TotalPares:       t.pares,
		ValorTotal:       t.valor,
		LowStockCount:    len(alertas),
		LotesHoje:        lotesHoje,
		ModelosAtivos:    modelosAtivos(produtos),
		Alerts:           alertas,
		EstoquePorGenero: estoquePorGenero(produtos),
		TopModelos:       topModelos(produtos, topModelosLimite),
	}, nil
}

type totais struct {
	pares int
	valor decimal.Decimal
	custo decimal.Decimal
}

func totalizar(produtos []domain.Produto) totais {
	t := totais{valor: decimal.Zero, custo: decimal.Zero}
	for _, p := range produtos {
		qtd := decimal.NewFromInt(int64(p.Quantidade))
		t.pares += p.Quantidade
		t.valor = t.valor.Add(p.PrecoVenda.Mul(qtd))
		t.custo = t.custo.Add(p.CustoOuZero().Mul(qtd))
	}
	return t
}

func modelosAtivos(produtos []domain.Produto) int {
	vistos := make(map[string]struct{})
	for _, p := range produtos {
		if p.Modelo != "" {
			vistos[p.Modelo] = struct{}{}
		}
	}
	return len(vistos)
}

func estoquePorGenero(produtos []domain.Produto) []domain.Agregado {
	soma := make(map[domain.Genero]int)
	for _, p := range produtos {
		if p.Genero != "" {
			soma[p.Genero] += p.Quantidade
		}
	}
	out := make([]domain.Agregado, 0, len(soma))
	for g, v := range soma {
		out = append(out, domain.Agregado{Name: string(g), Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func topModelos(produtos []domain.Produto, n int) []domain.ModeloQuantidade {
	soma := make(map[string]int)
	for _, p := range produtos {
		if p.Modelo != "" {
			soma[p.Modelo] += p.Quantidade
		}
	}
	out := make([]domain.ModeloQuantidade, 0, len(soma))
	for m, q := range soma {
		out = append(out, domain.ModeloQuantidade{Name: m, Quantidade: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantidade != out[j].Quantidade {
			return out[i].Quantidade > out[j].Quantidade
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

type chaveAlerta struct {
	modelo  string
	genero  domain.Genero
	tamanho int
}

// Alertas agrupa o estoque por (modelo, gênero, tamanho) e sinaliza os grupos com
// 1 ou 2 pares. Tamanco agrupa só por tamanho.
func Alertas(produtos []domain.Produto) []domain.Alerta {
	soma := make(map[chaveAlerta]int)
	for _, p := range produtos {
		k := chaveAlerta{modelo: p.Modelo, genero: p.Genero, tamanho: p.Tamanho}
		if p.Modelo == modeloTamanco {
			k.genero = ""
		}
		soma[k] += p.Quantidade
	}

	alertas := make([]domain.Alerta, 0)
	for k, total := range soma {
		if total <= 0 || total >= domain.LimiteAlertaHome {
			continue
		}
		a := domain.Alerta{Modelo: k.modelo, Genero: k.genero, Tamanho: k.tamanho, Total: total}
		if k.modelo == modeloTamanco {
			a.Message = fmt.Sprintf("%s tamanho %d: %d unid", k.modelo, k.tamanho, total)
		} else {
			a.Message = fmt.Sprintf("%s %s tam %d: %d unid", k.modelo, k.genero, k.tamanho, total)
			a.Urgente = k.modelo == modeloSandalia && k.genero.Infantil()
		}
		alertas = append(alertas, a)
	}

	sort.Slice(alertas, func(i, j int) bool {
		if alertas[i].Urgente != alertas[j].Urgente {
			return alertas[i].Urgente
		}
		return alertas[i].Message < alertas[j].Message
	})
	return alertas
}

var cabecalhoPlanilha = []interface{}{
	"ID", "Referência", "Nome", "Modelo", "Marca", "Cor", "Gênero", "Tamanho",
	"Quantidade", "Lote", "Preço venda", "Preço custo", "Em promoção", "Preço promoção",
}

// ExportarEstoque gera a planilha XLSX com todos os SKUs. Somente ADMIN.
func (s *Service) ExportarEstoque(ctx domain.Context, principal domain.Principal) ([]byte, error) {
	if !principal.IsAdmin() {
		return nil, apperror.NewForbiddenError("Apenas administradores podem exportar o estoque.")
	}

	produtos, err := s.repo.ListAll(toContext(ctx))
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", planilhaEstoque); err != nil {
		return nil, apperror.NewInternalError("Falha ao montar planilha", err)
	}
	if err := f.SetSheetRow(planilhaEstoque, "A1", &cabecalhoPlanilha); err != nil {
		return nil, apperror.NewInternalError("Falha ao montar planilha", err)
	}

	for i, p := range produtos {
		lote := ""
		if p.Lote != nil {
			lote = *p.Lote
		}
		promo := ""
		if p.PrecoPromocao.Valid {
			promo = p.PrecoPromocao.Decimal.StringFixed(2)
		}
		custo := ""
		if p.PrecoCusto.Valid {
			custo = p.PrecoCusto.Decimal.StringFixed(2)
		}
		linha := []interface{}{
			p.ID, p.Referencia, p.Nome, p.Modelo, p.Marca, p.Cor, string(p.Genero), p.Tamanho,
			p.Quantidade, lote, p.PrecoVenda.InexactFloat64(), custo, p.EmPromocao, promo,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(planilhaEstoque, cell, &linha); err != nil {
			return nil, apperror.NewInternalError("Falha ao montar planilha", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Error("Falha ao gerar planilha de estoque.", err)
		return nil, apperror.NewInternalError("Falha ao gerar planilha", err)
	}

	s.logger.Info("Planilha de estoque exportada.", map[string]interface{}{"linhas": len(produtos), "user": principal.Name})
	return buf.Bytes(), nil
}
