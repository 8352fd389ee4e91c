package baixaservice

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/validator"
)

// HistoricoPageSize é o tamanho fixo da página do histórico de vendas.
const HistoricoPageSize = 20

const msgEstoqueInsuficiente = "Estoque insuficiente"

// ProdutoFinder carrega o produto vendido.
type ProdutoFinder interface {
	FindByID(ctx context.Context, id int64) (domain.Produto, error)
}

// BaixaRepository grava a venda com o decremento e consulta o histórico.
type BaixaRepository interface {
	Registrar(ctx context.Context, produtoID int64, quantidade int, valorTotal decimal.Decimal) (domain.Baixa, int, error)
	Historico(ctx context.Context, f domain.BaixaFiltro) ([]domain.BaixaDetalhe, domain.BaixaTotais, error)
}

// VitrineInvalidator descarta o cache da vitrine depois de uma escrita no estoque.
type VitrineInvalidator interface {
	Invalidar(ctx context.Context)
}

// Metrics recebe os contadores de vendas.
type Metrics interface {
	BaixaRegistrada(pares int, valor float64)
	BaixaRecusada(motivo string)
}

// Service registra vendas e consulta o histórico.
type Service struct {
	produtos ProdutoFinder
	repo     BaixaRepository
	vitrine  VitrineInvalidator
	metrics  Metrics
	logger   logger.Logger
}

// NewService cria o serviço de baixas.
func NewService(produtos ProdutoFinder, repo BaixaRepository, vitrine VitrineInvalidator, m Metrics, log logger.Logger) *Service {
	return &Service{produtos: produtos, repo: repo, vitrine: vitrine, metrics: m, logger: log}
}

func toContext(ctx domain.Context) context.Context {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		return context.Background()
	}
	return ctxGo
}

// RegistrarBaixa decrementa o estoque e grava a venda. Qualquer usuário autenticado.
func (s *Service) RegistrarBaixa(ctx domain.Context, principal domain.Principal, req domain.BaixaRequest) (domain.BaixaRegistrada, error) {
	ctxGo := toContext(ctx)

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		s.metrics.BaixaRecusada("validacao")
		return domain.BaixaRegistrada{}, apperror.NewValidationError(validator.Message(errs))
	}

	produto, err := s.produtos.FindByID(ctxGo, req.ProdutoID)
	if err != nil {
		return domain.BaixaRegistrada{}, err
	}

	if req.Quantidade <= 0 || !req.ValorTotal.Valid || req.ValorTotal.Decimal.IsNegative() {
		s.metrics.BaixaRecusada("validacao")
		return domain.BaixaRegistrada{}, apperror.NewValidationError("Quantidade deve ser maior que zero e o valor total é obrigatório.")
	}
	if req.Quantidade > produto.Quantidade {
		s.metrics.BaixaRecusada("estoque_insuficiente")
		s.logger.Warn("Baixa maior que o estoque.", map[string]interface{}{
			"produto_id": produto.ID, "estoque": produto.Quantidade, "quantidade": req.Quantidade,
		})
		return domain.BaixaRegistrada{}, apperror.NewValidationError(msgEstoqueInsuficiente)
	}

	baixa, restante, err := s.repo.Registrar(ctxGo, req.ProdutoID, req.Quantidade, req.ValorTotal.Decimal)
	if err != nil {
		// Outra venda pode ter consumido o estoque entre a leitura e o UPDATE.
		var vErr *apperror.ValidationError
		if stderrors.As(err, &vErr) && vErr.Msg == msgEstoqueInsuficiente {
			s.metrics.BaixaRecusada("estoque_insuficiente")
		}
		return domain.BaixaRegistrada{}, err
	}

	s.vitrine.Invalidar(ctxGo)
	s.metrics.BaixaRegistrada(baixa.Quantidade, baixa.ValorTotal.InexactFloat64())
	s.logger.Info("Baixa registrada.", map[string]interface{}{
		"baixa_id": baixa.ID, "produto_id": baixa.ProdutoID, "quantidade": baixa.Quantidade,
		"estoque_restante": restante, "user": principal.Name,
	})

	return domain.BaixaRegistrada{
		Message:         "Baixa registrada com sucesso.",
		EstoqueRestante: restante,
		Baixa:           baixa,
	}, nil
}

func parseData(campo, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, apperror.NewValidationError(fmt.Sprintf("%s inválida: use AAAA-MM-DD.", campo))
	}
	return &t, nil
}

// Historico lista as vendas filtradas, 20 por página, com os totais do filtro inteiro.
func (s *Service) Historico(ctx domain.Context, page int, filtros map[string]string) (domain.BaixaHistorico, error) {
	if page < 1 {
		page = 1
	}
	if page > domain.MaxPage(HistoricoPageSize) {
		return domain.BaixaHistorico{}, apperror.NewValidationError(fmt.Sprintf("Página inválida: %d.", page))
	}
	f := domain.BaixaFiltro{
		Marca:      strings.TrimSpace(filtros["marca"]),
		Referencia: strings.TrimSpace(filtros["referencia"]),
		Page:       page,
		Limit:      HistoricoPageSize,
	}
	if raw := strings.TrimSpace(filtros["tamanho"]); raw != "" {
		tam, err := strconv.Atoi(raw)
		if err != nil {
			return domain.BaixaHistorico{}, apperror.NewValidationError(fmt.Sprintf("Tamanho inválido: %s.", raw))
		}
		f.Tamanho = &tam
	}
	var err error
	if f.DataInicio, err = parseData("dataInicio", filtros["dataInicio"]); err != nil {
		return domain.BaixaHistorico{}, err
	}
	if f.DataFim, err = parseData("dataFim", filtros["dataFim"]); err != nil {
		return domain.BaixaHistorico{}, err
	}
	if f.DataInicio != nil && f.DataFim != nil && f.DataFim.Before(*f.DataInicio) {
		return domain.BaixaHistorico{}, apperror.NewValidationError("dataFim não pode ser anterior a dataInicio.")
	}

	linhas, totais, err := s.repo.Historico(toContext(ctx), f)
	if err != nil {
		return domain.BaixaHistorico{}, err
	}

	totalPages := 0
	if totais.TotalCount > 0 {
		totalPages = (totais.TotalCount + HistoricoPageSize - 1) / HistoricoPageSize
	}
	return domain.BaixaHistorico{
		Data:        linhas,
		CurrentPage: page,
		TotalPages:  totalPages,
		BaixaTotais: totais,
	}, nil
}
