package productservice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/validator"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ProductRepository define o contrato que este Serviço espera da camada de persistência.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Produto, error)
	List(ctx context.Context, f domain.ProdutoFiltro) ([]domain.Produto, error)
	Resumo(ctx context.Context, f domain.ProdutoFiltro) (domain.EstoqueResumo, error)
	AgregarPor(ctx context.Context, dim domain.Dimensao, f domain.ProdutoFiltro) ([]domain.Agregado, error)
	Update(ctx context.Context, p domain.Produto) (domain.Produto, error)
	Delete(ctx context.Context, id int64) error
}

// VitrineInvalidator descarta o cache da vitrine depois de uma escrita no estoque.
type VitrineInvalidator interface {
	Invalidar(ctx context.Context)
}

// Service implementa listagem, agregação, edição e exclusão de produtos.
type Service struct {
	repo    ProductRepository
	vitrine VitrineInvalidator
	logger  logger.Logger
	now     func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, vitrine VitrineInvalidator, log logger.Logger) *Service {
	return &Service{repo: repo, vitrine: vitrine, logger: log, now: time.Now}
}

func toContext(ctx domain.Context) context.Context {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		return context.Background()
	}
	return ctxGo
}

// parseFiltro converte os parâmetros de query em filtro. Tamanho precisa ser numérico.
func parseFiltro(page, limit int, filtros map[string]string) (domain.ProdutoFiltro, error) {
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
		return domain.ProdutoFiltro{}, apperror.NewValidationError(fmt.Sprintf("Página inválida: %d.", page))
	}

	f := domain.ProdutoFiltro{
		Marca:      strings.TrimSpace(filtros["marca"]),
		Referencia: strings.TrimSpace(filtros["referencia"]),
		Genero:     strings.TrimSpace(filtros["genero"]),
		Modelo:     strings.TrimSpace(filtros["modelo"]),
		Page:       page,
		Limit:      limit,
	}
	if raw := strings.TrimSpace(filtros["tamanho"]); raw != "" {
		tam, err := strconv.Atoi(raw)
		if err != nil {
			return domain.ProdutoFiltro{}, apperror.NewValidationError(fmt.Sprintf("Tamanho inválido: %s.", raw))
		}
		f.Tamanho = &tam
	}
	return f, nil
}

// ListProdutos devolve a página filtrada e os agregados de todo o conjunto filtrado.
func (s *Service) ListProdutos(ctx domain.Context, page, limit int, filtros map[string]string) (domain.ProdutoListagem, error) {
	ctxGo := toContext(ctx)

	f, err := parseFiltro(page, limit, filtros)
	if err != nil {
		return domain.ProdutoListagem{}, err
	}

	produtos, err := s.repo.List(ctxGo, f)
	if err != nil {
		return domain.ProdutoListagem{}, err
	}
	resumo, err := s.repo.Resumo(ctxGo, f)
	if err != nil {
		return domain.ProdutoListagem{}, err
	}
	resumo.LucroProjetado = resumo.ValorEstoque.Sub(resumo.CustoEstoque)
	resumo.MargemLucro = domain.MargemLucro(resumo.LucroProjetado, resumo.ValorEstoque)

	return domain.ProdutoListagem{
		Data:          produtos,
		CurrentPage:   f.Page,
		TotalPages:    totalPages(resumo.TotalCount, f.Limit),
		EstoqueResumo: resumo,
	}, nil
}

func totalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// AgregarPorDimensao soma as quantidades por gênero, modelo ou marca.
func (s *Service) AgregarPorDimensao(ctx domain.Context, tipo string, filtros map[string]string) ([]domain.Agregado, error) {
	dim := domain.Dimensao(strings.ToLower(strings.TrimSpace(tipo)))
	switch dim {
	case domain.DimensaoGenero, domain.DimensaoModelo, domain.DimensaoMarca:
	default:
		return nil, apperror.NewValidationError(fmt.Sprintf("Tipo de agregação inválido: %s. Use genero, modelo ou marca.", tipo))
	}

	f, err := parseFiltro(1, maxLimit, filtros)
	if err != nil {
		return nil, err
	}
	return s.repo.AgregarPor(toContext(ctx), dim, f)
}

// GetProduto busca um produto pelo id.
func (s *Service) GetProduto(ctx domain.Context, id int64) (domain.Produto, error) {
	if id <= 0 {
		return domain.Produto{}, apperror.NewValidationError("O id do produto deve ser positivo.")
	}
	return s.repo.FindByID(toContext(ctx), id)
}

// AtualizarProduto sobrescreve um produto. Apenas ADMIN.
func (s *Service) AtualizarProduto(ctx domain.Context, principal domain.Principal, id int64, in domain.ProdutoUpdate) (domain.Produto, error) {
	if !principal.IsAdmin() {
		return domain.Produto{}, apperror.NewForbiddenError("Apenas administradores podem editar produtos.")
	}
	ctxGo := toContext(ctx)

	p, err := s.validarUpdate(in)
	if err != nil {
		return domain.Produto{}, err
	}
	p.ID = id

	updated, err := s.repo.Update(ctxGo, p)
	if err != nil {
		return domain.Produto{}, err
	}
	s.vitrine.Invalidar(ctxGo)

	s.logger.Info("Produto atualizado.", map[string]interface{}{"produto_id": id, "user": principal.Name})
	return updated, nil
}

func (s *Service) validarUpdate(in domain.ProdutoUpdate) (domain.Produto, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return domain.Produto{}, apperror.NewValidationError(validator.Message(errs))
	}
	if campo := primeiroEmBranco(
		"nome", in.Nome, "marca", in.Marca, "modelo", in.Modelo, "cor", in.Cor, "referencia", in.Referencia,
	); campo != "" {
		return domain.Produto{}, apperror.NewValidationError(fmt.Sprintf("Campos obrigatórios ausentes: %s.", campo))
	}
	if !in.Genero.Valido() {
		return domain.Produto{}, apperror.NewValidationError(fmt.Sprintf("Gênero inválido: %s.", in.Genero))
	}
	if !domain.ModeloValido(strings.TrimSpace(in.Modelo)) {
		return domain.Produto{}, apperror.NewValidationError(fmt.Sprintf("Modelo inválido: %s.", in.Modelo))
	}
	if in.Tamanho <= 0 {
		return domain.Produto{}, apperror.NewValidationError("O tamanho deve ser maior que zero.")
	}
	if in.Quantidade < 0 {
		return domain.Produto{}, apperror.NewValidationError("A quantidade não pode ser negativa.")
	}
	data, err := domain.ParseDataRecebimento(in.DataRecebimento)
	if err != nil {
		return domain.Produto{}, apperror.NewValidationError("Data de recebimento inválida.")
	}
	if data.After(s.now()) {
		return domain.Produto{}, apperror.NewValidationError("A data de recebimento não pode ser futura.")
	}
	if !in.PrecoVenda.Valid || !in.PrecoVenda.Decimal.IsPositive() {
		return domain.Produto{}, apperror.NewValidationError("O preço de venda deve ser maior que zero.")
	}
	if in.PrecoCusto.Valid && in.PrecoCusto.Decimal.IsNegative() {
		return domain.Produto{}, apperror.NewValidationError("O preço de custo não pode ser negativo.")
	}

	p := domain.Produto{
		Nome:            strings.TrimSpace(in.Nome),
		Marca:           strings.TrimSpace(in.Marca),
		Modelo:          strings.TrimSpace(in.Modelo),
		Cor:             strings.TrimSpace(in.Cor),
		Genero:          in.Genero,
		Referencia:      strings.TrimSpace(in.Referencia),
		Imagem:          in.Imagem,
		Tamanho:         in.Tamanho,
		Quantidade:      in.Quantidade,
		Lote:            in.Lote,
		DataRecebimento: data,
		PrecoVenda:      in.PrecoVenda.Decimal,
		PrecoCusto:      in.PrecoCusto,
		EmPromocao:      in.EmPromocao,
	}
	if in.EmPromocao {
		if !in.PrecoPromocao.Valid || !in.PrecoPromocao.Decimal.IsPositive() {
			return domain.Produto{}, apperror.NewValidationError("Informe o preço promocional.")
		}
		if in.PrecoPromocao.Decimal.GreaterThanOrEqual(p.PrecoVenda) {
			return domain.Produto{}, apperror.NewValidationError("O preço promocional deve ser menor que o preço de venda.")
		}
		p.PrecoPromocao = in.PrecoPromocao
	}
	return p, nil
}

// ExcluirProduto remove um produto sem baixas. Apenas ADMIN.
func (s *Service) ExcluirProduto(ctx domain.Context, principal domain.Principal, id int64) error {
	if !principal.IsAdmin() {
		return apperror.NewForbiddenError("Apenas administradores podem excluir produtos.")
	}
	ctxGo := toContext(ctx)

	if err := s.repo.Delete(ctxGo, id); err != nil {
		return err
	}
	s.vitrine.Invalidar(ctxGo)

	s.logger.Info("Produto excluído.", map[string]interface{}{"produto_id": id, "user": principal.Name})
	return nil
}

// primeiroEmBranco recebe pares (campo, valor) e devolve o primeiro campo só com espaços.
func primeiroEmBranco(pares ...string) string {
	for i := 0; i+1 < len(pares); i += 2 {
		if strings.TrimSpace(pares[i+1]) == "" {
			return pares[i]
		}
	}
	return ""
}
