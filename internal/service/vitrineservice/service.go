package vitrineservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/cache"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
)

const (
	defaultLimit = 12
	maxLimit     = 50

	// versaoKey é incrementada a cada escrita no estoque; as chaves antigas expiram sozinhas.
	versaoKey = "vitrine:versao"
)

// ProdutoRepository devolve os SKUs com estoque.
type ProdutoRepository interface {
	ListDisponiveis(ctx context.Context, f domain.VitrineFiltro) ([]domain.Produto, error)
}

// LinkBuilder gera o deep-link de contato de cada card.
type LinkBuilder interface {
	Link(p domain.VitrineProduto) string
}

// Metrics recebe hit/miss do cache.
type Metrics interface {
	VitrineCacheResult(hit bool)
}

// Service monta a vitrine pública a partir do estoque.
type Service struct {
	repo    ProdutoRepository
	cache   cache.Client
	links   LinkBuilder
	metrics Metrics
	ttl     time.Duration
	logger  logger.Logger
}

// NewService cria o serviço da vitrine.
func NewService(repo ProdutoRepository, c cache.Client, links LinkBuilder, m Metrics, ttl time.Duration, log logger.Logger) *Service {
	return &Service{repo: repo, cache: c, links: links, metrics: m, ttl: ttl, logger: log}
}

func toContext(ctx domain.Context) context.Context {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		return context.Background()
	}
	return ctxGo
}

func parseFiltro(page, limit int, filtros map[string]string) (domain.VitrineFiltro, error) {
	if page < 1 {
		page = 1
	}
	switch {
	case limit < 1:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	if page > domain.MaxPage(limit) {
		return domain.VitrineFiltro{}, apperror.NewValidationError(fmt.Sprintf("Página inválida: %d.", page))
	}
	f := domain.VitrineFiltro{Genero: strings.TrimSpace(filtros["genero"]), Page: page, Limit: limit}

	for _, c := range []struct {
		campo string
		dst   *decimal.NullDecimal
	}{{"minPreco", &f.MinPreco}, {"maxPreco", &f.MaxPreco}} {
		raw := strings.TrimSpace(filtros[c.campo])
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.VitrineFiltro{}, apperror.NewValidationError(fmt.Sprintf("%s inválido: %s.", c.campo, raw))
		}
		*c.dst = decimal.NewNullDecimal(v)
	}
	return f, nil
}

func cacheKey(versao int, f domain.VitrineFiltro) string {
	preco := func(d decimal.NullDecimal) string {
		if !d.Valid {
			return ""
		}
		return d.Decimal.String()
	}
	return fmt.Sprintf("vitrine:v%d:g=%s:min=%s:max=%s:p=%d:l=%d",
		versao, f.Genero, preco(f.MinPreco), preco(f.MaxPreco), f.Page, f.Limit)
}

// ListarVitrine devolve a página de cards. Usa o cache quando disponível; falhas do cache só são logadas.
func (s *Service) ListarVitrine(ctx domain.Context, page, limit int, filtros map[string]string) (domain.VitrinePagina, error) {
	ctxGo := toContext(ctx)

	f, err := parseFiltro(page, limit, filtros)
	if err != nil {
		return domain.VitrinePagina{}, err
	}

	versao, err := s.cache.GetInt(ctxGo, versaoKey)
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Cache da vitrine indisponível.", map[string]interface{}{"error": err.Error()})
	}
	key := cacheKey(versao, f)

	if raw, err := s.cache.Get(ctxGo, key); err == nil {
		var pagina domain.VitrinePagina
		if err := json.Unmarshal([]byte(raw), &pagina); err == nil {
			s.metrics.VitrineCacheResult(true)
			return pagina, nil
		}
		s.logger.Warn("Entrada corrompida no cache da vitrine.", map[string]interface{}{"key": key})
	}
	s.metrics.VitrineCacheResult(false)

	produtos, err := s.repo.ListDisponiveis(ctxGo, f)
	if err != nil {
		return domain.VitrinePagina{}, err
	}

	pagina := Paginar(AgruparCards(produtos), f.Page, f.Limit)
	for i := range pagina.Data {
		pagina.Data[i].LinkWhatsApp = s.links.Link(pagina.Data[i])
	}

	if payload, err := json.Marshal(pagina); err == nil {
		if err := s.cache.Set(ctxGo, key, payload, s.ttl); err != nil {
			s.logger.Warn("Falha ao gravar vitrine no cache.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return pagina, nil
}

// Invalidar muda a versão da vitrine, tornando obsoletas todas as páginas em cache.
func (s *Service) Invalidar(ctx context.Context) {
	if _, err := s.cache.Incr(ctx, versaoKey); err != nil {
		s.logger.Warn("Falha ao invalidar cache da vitrine.", map[string]interface{}{"error": err.Error()})
	}
}

// CardID é a chave visual do card: referência e cor, com espaços da cor trocados por hífen.
func CardID(referencia, cor string) string {
	return referencia + "-" + strings.Join(strings.Fields(cor), "-")
}

// AgruparCards junta os SKUs por (referência, cor). Produtos sem estoque não contribuem tamanho nem promoção.
// O resultado sai ordenado por nome.
func AgruparCards(produtos []domain.Produto) []domain.VitrineProduto {
	index := make(map[string]int)
	cards := make([]domain.VitrineProduto, 0)

	for _, p := range produtos {
		id := CardID(p.Referencia, p.Cor)
		i, ok := index[id]
		if !ok {
			cards = append(cards, domain.VitrineProduto{
				ID:                  id,
				Nome:                p.Nome,
				Modelo:              p.Modelo,
				Marca:               p.Marca,
				Cor:                 p.Cor,
				Genero:              p.Genero,
				Referencia:          p.Referencia,
				Imagem:              p.Imagem,
				PrecoVenda:          p.PrecoVenda,
				TamanhosDisponiveis: []int{},
				TamanhosDetalhados:  []domain.TamanhoDetalhe{},
			})
			i = len(cards) - 1
			index[id] = i
		}
		card := &cards[i]

		if card.Imagem == nil && p.Imagem != nil {
			card.Imagem = p.Imagem
		}
		if p.Quantidade > 0 {
			card.TamanhosDetalhados = append(card.TamanhosDetalhados, domain.TamanhoDetalhe{
				ID: p.ID, Tamanho: p.Tamanho, Quantidade: p.Quantidade,
			})
			card.EstoqueTotal += p.Quantidade

			if p.EmPromocao && p.PrecoPromocao.Valid {
				card.EmPromocao = true
				if !card.PrecoPromocao.Valid || p.PrecoPromocao.Decimal.LessThan(card.PrecoPromocao.Decimal) {
					card.PrecoPromocao = p.PrecoPromocao
				}
			}
		}
	}

	for i := range cards {
		detalhes := cards[i].TamanhosDetalhados
		sort.Slice(detalhes, func(a, b int) bool { return detalhes[a].Tamanho < detalhes[b].Tamanho })
		for _, d := range detalhes {
			n := len(cards[i].TamanhosDisponiveis)
			if n == 0 || cards[i].TamanhosDisponiveis[n-1] != d.Tamanho {
				cards[i].TamanhosDisponiveis = append(cards[i].TamanhosDisponiveis, d.Tamanho)
			}
		}
	}

	sort.SliceStable(cards, func(a, b int) bool {
		if cards[a].Nome != cards[b].Nome {
			return cards[a].Nome < cards[b].Nome
		}
		return cards[a].ID < cards[b].ID
	})
	return cards
}

// Paginar recorta os cards em memória; a página conta cards, não SKUs.
func Paginar(cards []domain.VitrineProduto, page, limit int) domain.VitrinePagina {
	total := len(cards)
	if limit < 1 {
		limit = defaultLimit
	}
	start := total
	if page >= 1 && page <= domain.MaxPage(limit) {
		start = (page - 1) * limit
	}
	if start < 0 || start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return domain.VitrinePagina{
		Data:          cards[start:end],
		TotalPages:    totalPages,
		CurrentPage:   page,
		TotalProdutos: total,
	}
}
