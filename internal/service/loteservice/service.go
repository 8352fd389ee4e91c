package loteservice

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/validator"
)

// LoteRepository é o recorte do repositório de produtos usado pelos lotes.
type LoteRepository interface {
	ExistsSKU(ctx context.Context, referencia, cor string, tamanho int) (bool, error)
	CreateBatch(ctx context.Context, produtos []domain.Produto) ([]domain.Produto, error)
	FindByLote(ctx context.Context, lote string) ([]domain.Produto, error)
	UpdateLote(ctx context.Context, e domain.LoteEdicao) (int64, error)
}

// VitrineInvalidator descarta o cache da vitrine depois de uma escrita no estoque.
type VitrineInvalidator interface {
	Invalidar(ctx context.Context)
}

// Metrics recebe a contagem de lotes e pares recebidos.
type Metrics interface {
	LoteCriado(pares int)
}

// Service cuida da entrada de lotes e da edição em massa.
type Service struct {
	repo    LoteRepository
	vitrine VitrineInvalidator
	metrics Metrics
	logger  logger.Logger
	now     func() time.Time
	randInt func(n int) int
}

// NewService cria o serviço de lotes.
func NewService(repo LoteRepository, vitrine VitrineInvalidator, m Metrics, log logger.Logger) *Service {
	return &Service{
		repo:    repo,
		vitrine: vitrine,
		metrics: m,
		logger:  log,
		now:     time.Now,
		randInt: rand.Intn,
	}
}

func toContext(ctx domain.Context) context.Context {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		return context.Background()
	}
	return ctxGo
}

// gerarLoteID monta LOTE-YYYYMMDD-NNN com NNN entre 100 e 999. Colisões não são verificadas.
func (s *Service) gerarLoteID() string {
	return fmt.Sprintf("LOTE-%s-%03d", s.now().Format("20060102"), 100+s.randInt(900))
}

// CriarLote valida e insere todas as variações de uma vez. Qualquer falha aborta sem escrita.
func (s *Service) CriarLote(ctx domain.Context, principal domain.Principal, req domain.LoteRequest) (domain.LoteCriado, error) {
	if !principal.IsAdmin() {
		return domain.LoteCriado{}, apperror.NewForbiddenError("Apenas administradores podem cadastrar lotes.")
	}
	ctxGo := toContext(ctx)
	g := req.Genericos

	// 1. Campos compartilhados
	if msg := camposAusentes(g); msg != "" {
		return domain.LoteCriado{}, apperror.NewValidationError(msg)
	}
	if !g.Genero.Valido() {
		return domain.LoteCriado{}, apperror.NewValidationError(fmt.Sprintf("Gênero inválido: %s.", g.Genero))
	}
	if !domain.ModeloValido(strings.TrimSpace(g.Modelo)) {
		return domain.LoteCriado{}, apperror.NewValidationError(fmt.Sprintf("Modelo inválido: %s.", g.Modelo))
	}

	// 2. Data de recebimento
	dataRecebimento, err := domain.ParseDataRecebimento(strings.TrimSpace(g.DataRecebimento))
	if err != nil {
		return domain.LoteCriado{}, apperror.NewValidationError("Data de recebimento inválida.")
	}
	if dataRecebimento.After(s.now()) {
		return domain.LoteCriado{}, apperror.NewValidationError("A data de recebimento não pode ser futura.")
	}

	// 3. Preços
	if !g.PrecoVenda.Decimal.IsPositive() {
		return domain.LoteCriado{}, apperror.NewValidationError("O preço de venda deve ser maior que zero.")
	}
	if g.PrecoCusto.Valid && g.PrecoCusto.Decimal.IsNegative() {
		return domain.LoteCriado{}, apperror.NewValidationError("O preço de custo não pode ser negativo.")
	}

	// 4. Variações
	if len(req.Variacoes) == 0 {
		return domain.LoteCriado{}, apperror.NewValidationError("Informe ao menos uma variação de tamanho.")
	}
	totalPares := 0
	for i, v := range req.Variacoes {
		if v.Tamanho <= 0 || v.Quantidade <= 0 {
			return domain.LoteCriado{}, apperror.NewValidationError(
				fmt.Sprintf("Variação %d: tamanho e quantidade devem ser maiores que zero.", i+1))
		}
		totalPares += v.Quantidade
	}

	// 5. Duplicidade dentro do próprio lote
	referencia, cor := strings.TrimSpace(g.Referencia), strings.TrimSpace(g.Cor)
	vistos := make(map[int]bool, len(req.Variacoes))
	for _, v := range req.Variacoes {
		if vistos[v.Tamanho] {
			return domain.LoteCriado{}, apperror.NewValidationError(
				fmt.Sprintf("Tamanho %d repetido no lote.", v.Tamanho))
		}
		vistos[v.Tamanho] = true
	}

	// 6. Duplicidade no estoque
	for _, v := range req.Variacoes {
		existe, err := s.repo.ExistsSKU(ctxGo, referencia, cor, v.Tamanho)
		if err != nil {
			return domain.LoteCriado{}, err
		}
		if existe {
			return domain.LoteCriado{}, apperror.NewValidationError(fmt.Sprintf(
				"Já existe produto com referência %s, cor %s e tamanho %d.", referencia, cor, v.Tamanho))
		}
	}

	loteID := strings.TrimSpace(g.Lote)
	if loteID == "" {
		loteID = s.gerarLoteID()
	}
	var imagem *string
	if img := strings.TrimSpace(g.Imagem); img != "" {
		imagem = &img
	}

	produtos := make([]domain.Produto, 0, len(req.Variacoes))
	for _, v := range req.Variacoes {
		produtos = append(produtos, domain.Produto{
			Nome:            strings.TrimSpace(g.Nome),
			Marca:           strings.TrimSpace(g.Marca),
			Modelo:          strings.TrimSpace(g.Modelo),
			Cor:             cor,
			Genero:          g.Genero,
			Referencia:      referencia,
			Imagem:          imagem,
			Tamanho:         v.Tamanho,
			Quantidade:      v.Quantidade,
			Lote:            &loteID,
			DataRecebimento: dataRecebimento,
			PrecoVenda:      g.PrecoVenda.Decimal,
			PrecoCusto:      g.PrecoCusto,
		})
	}

	criados, err := s.repo.CreateBatch(ctxGo, produtos)
	if err != nil {
		return domain.LoteCriado{}, err
	}
	s.vitrine.Invalidar(ctxGo)
	s.metrics.LoteCriado(totalPares)

	s.logger.Info("Lote cadastrado.", map[string]interface{}{
		"lote": loteID, "variacoes": len(criados), "pares": totalPares, "user": principal.Name,
	})
	return domain.LoteCriado{Lote: loteID, Criados: len(criados), Produtos: criados}, nil
}

// camposAusentes lista os campos obrigatórios vazios ou só com espaços.
func camposAusentes(g domain.LoteGenericos) string {
	var faltando []string
	if errs := validator.ValidateStruct(g); len(errs) > 0 {
		for _, e := range errs {
			faltando = append(faltando, e.FailedField)
		}
	}
	for _, c := range []struct {
		nome  string
		valor string
	}{
		{"nome", g.Nome}, {"referencia", g.Referencia}, {"cor", g.Cor},
		{"modelo", g.Modelo}, {"marca", g.Marca}, {"dataRecebimento", g.DataRecebimento},
	} {
		if c.valor != "" && strings.TrimSpace(c.valor) == "" {
			faltando = append(faltando, c.nome)
		}
	}
	if !g.PrecoVenda.Valid {
		faltando = append(faltando, "precoVenda")
	}
	if len(faltando) == 0 {
		return ""
	}
	return fmt.Sprintf("Campos obrigatórios ausentes: %s.", strings.Join(faltando, ", "))
}

// EditarLote aplica preço e promoção a todo o lote. Apenas ADMIN.
func (s *Service) EditarLote(ctx domain.Context, principal domain.Principal, e domain.LoteEdicao) (domain.LoteAtualizado, error) {
	if !principal.IsAdmin() {
		return domain.LoteAtualizado{}, apperror.NewForbiddenError("Apenas administradores podem editar lotes.")
	}
	ctxGo := toContext(ctx)

	e.Lote = strings.TrimSpace(e.Lote)
	if e.Lote == "" {
		return domain.LoteAtualizado{}, apperror.NewValidationError("Campos obrigatórios ausentes: lote.")
	}
	if e.Vazia() {
		return domain.LoteAtualizado{}, apperror.NewValidationError("Nenhum campo para atualizar.")
	}
	if e.PrecoVenda.Valid && !e.PrecoVenda.Decimal.IsPositive() {
		return domain.LoteAtualizado{}, apperror.NewValidationError("O preço de venda deve ser maior que zero.")
	}
	if e.PrecoCusto.Valid && e.PrecoCusto.Decimal.IsNegative() {
		return domain.LoteAtualizado{}, apperror.NewValidationError("O preço de custo não pode ser negativo.")
	}

	ativandoPromo := e.EmPromocao != nil && *e.EmPromocao
	if ativandoPromo && !e.PrecoPromocao.Valid {
		return domain.LoteAtualizado{}, apperror.NewValidationError("Informe o preço promocional.")
	}
	if e.EmPromocao != nil && !*e.EmPromocao {
		e.PrecoPromocao = decimal.NullDecimal{}
	}
	if e.PrecoPromocao.Valid {
		if !e.PrecoPromocao.Decimal.IsPositive() {
			return domain.LoteAtualizado{}, apperror.NewValidationError("O preço promocional deve ser maior que zero.")
		}
		if err := s.checarPromocao(ctxGo, e); err != nil {
			return domain.LoteAtualizado{}, err
		}
	}

	atualizados, err := s.repo.UpdateLote(ctxGo, e)
	if err != nil {
		return domain.LoteAtualizado{}, err
	}
	if atualizados == 0 {
		return domain.LoteAtualizado{}, apperror.NewNotFoundError(fmt.Sprintf("Lote %s não encontrado.", e.Lote))
	}
	s.vitrine.Invalidar(ctxGo)

	s.logger.Info("Lote atualizado.", map[string]interface{}{"lote": e.Lote, "atualizados": atualizados, "user": principal.Name})
	return domain.LoteAtualizado{Lote: e.Lote, Atualizados: atualizados}, nil
}

// checarPromocao compara o preço promocional com o preço de venda efetivo:
// o enviado na edição ou, na falta dele, o gravado em cada produto do lote.
func (s *Service) checarPromocao(ctx context.Context, e domain.LoteEdicao) error {
	promo := e.PrecoPromocao.Decimal
	if e.PrecoVenda.Valid {
		if promo.GreaterThanOrEqual(e.PrecoVenda.Decimal) {
			return apperror.NewValidationError("O preço promocional deve ser menor que o preço de venda.")
		}
		return nil
	}

	produtos, err := s.repo.FindByLote(ctx, e.Lote)
	if err != nil {
		return err
	}
	if len(produtos) == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Lote %s não encontrado.", e.Lote))
	}
	for _, p := range produtos {
		if promo.GreaterThanOrEqual(p.PrecoVenda) {
			return apperror.NewValidationError(fmt.Sprintf(
				"O preço promocional deve ser menor que o preço de venda (R$%s no tamanho %d).",
				p.PrecoVenda.StringFixed(2), p.Tamanho))
		}
	}
	return nil
}

// BuscarLote devolve os produtos do lote e os valores atuais para edição.
func (s *Service) BuscarLote(ctx domain.Context, lote string) (domain.LoteDetalhe, error) {
	lote = strings.TrimSpace(lote)
	if lote == "" {
		return domain.LoteDetalhe{}, apperror.NewValidationError("Informe o lote.")
	}

	produtos, err := s.repo.FindByLote(toContext(ctx), lote)
	if err != nil {
		return domain.LoteDetalhe{}, err
	}
	if len(produtos) == 0 {
		return domain.LoteDetalhe{}, apperror.NewNotFoundError(fmt.Sprintf("Lote %s não encontrado.", lote))
	}

	primeiro := produtos[0]
	return domain.LoteDetalhe{
		Lote:     lote,
		Produtos: produtos,
		ValoresAtuais: domain.LoteValores{
			PrecoVenda:    primeiro.PrecoVenda,
			PrecoCusto:    primeiro.PrecoCusto,
			EmPromocao:    primeiro.EmPromocao,
			PrecoPromocao: primeiro.PrecoPromocao,
		},
	}, nil
}
