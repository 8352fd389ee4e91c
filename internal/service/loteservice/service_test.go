package loteservice_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/service/loteservice"
)

type MockLoteRepository struct {
	mock.Mock
}

func (m *MockLoteRepository) ExistsSKU(ctx context.Context, referencia, cor string, tamanho int) (bool, error) {
	args := m.Called(ctx, referencia, cor, tamanho)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoteRepository) CreateBatch(ctx context.Context, produtos []domain.Produto) ([]domain.Produto, error) {
	args := m.Called(ctx, produtos)
	switch ret := args.Get(0).(type) {
	case func([]domain.Produto) []domain.Produto:
		return ret(produtos), args.Error(1)
	case []domain.Produto:
		return ret, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoteRepository) FindByLote(ctx context.Context, lote string) ([]domain.Produto, error) {
	args := m.Called(ctx, lote)
	return args.Get(0).([]domain.Produto), args.Error(1)
}

func (m *MockLoteRepository) UpdateLote(ctx context.Context, e domain.LoteEdicao) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

type MockInvalidator struct{ mock.Mock }

func (m *MockInvalidator) Invalidar(ctx context.Context) { m.Called(ctx) }

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) LoteCriado(pares int) { m.Called(pares) }

var (
	admin       = domain.Principal{UserID: 1, Name: "ca.ltda", Role: domain.RoleAdmin}
	funcionario = domain.Principal{UserID: 2, Name: "Deise", Role: domain.RoleFuncionario}
)

func newService() (*loteservice.Service, *MockLoteRepository, *MockInvalidator, *MockMetrics) {
	repo := new(MockLoteRepository)
	inv := new(MockInvalidator)
	met := new(MockMetrics)
	return loteservice.NewService(repo, inv, met, logger.NewNop()), repo, inv, met
}

func loteSC77() domain.LoteRequest {
	return domain.LoteRequest{
		Genericos: domain.LoteGenericos{
			Nome:            "Sapatilha Conforto",
			Referencia:      "SC-77",
			Cor:             "Branco",
			Genero:          domain.GeneroFeminino,
			Modelo:          "Sapatilha",
			Marca:           "Moleca",
			DataRecebimento: "2026-03-10",
			PrecoVenda:      decimal.NewNullDecimal(decimal.RequireFromString("89.90")),
			PrecoCusto:      decimal.NewNullDecimal(decimal.RequireFromString("45.00")),
		},
		Variacoes: []domain.Variacao{{Tamanho: 35, Quantidade: 2}, {Tamanho: 36, Quantidade: 3}},
	}
}

// TestCriarLote_SharedLoteAcrossSizes cobre a entrada de um lote com dois tamanhos sem produtos prévios.
func TestCriarLote_SharedLoteAcrossSizes(t *testing.T) {
	svc, repo, inv, met := newService()

	repo.On("ExistsSKU", mock.Anything, "SC-77", "Branco", 35).Return(false, nil)
	repo.On("ExistsSKU", mock.Anything, "SC-77", "Branco", 36).Return(false, nil)
	repo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]domain.Produto")).
		Return(func(produtos []domain.Produto) []domain.Produto {
			for i := range produtos {
				produtos[i].ID = int64(i + 1)
				produtos[i].Disponivel = true
			}
			return produtos
		}, nil).Once()
	inv.On("Invalidar", mock.Anything).Return()
	met.On("LoteCriado", 5).Return()

	out, err := svc.CriarLote(context.Background(), admin, loteSC77())

	require.NoError(t, err)
	assert.Equal(t, 2, out.Criados)
	assert.Regexp(t, `^LOTE-\d{8}-[1-9]\d{2}$`, out.Lote)
	require.Len(t, out.Produtos, 2)

	total := 0
	for _, p := range out.Produtos {
		require.NotNil(t, p.Lote)
		assert.Equal(t, out.Lote, *p.Lote)
		assert.Equal(t, "SC-77", p.Referencia)
		total += p.Quantidade
	}
	assert.Equal(t, 5, total)
	repo.AssertExpectations(t)
	inv.AssertExpectations(t)
	met.AssertExpectations(t)
}

func TestCriarLote_KeepsInformedLote(t *testing.T) {
	svc, repo, inv, met := newService()
	req := loteSC77()
	req.Genericos.Lote = "  NF-2231 "

	repo.On("ExistsSKU", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(ps []domain.Produto) bool {
		return *ps[0].Lote == "NF-2231" && *ps[1].Lote == "NF-2231"
	})).Return([]domain.Produto{{}, {}}, nil)
	inv.On("Invalidar", mock.Anything).Return()
	met.On("LoteCriado", 5).Return()

	out, err := svc.CriarLote(context.Background(), admin, req)

	require.NoError(t, err)
	assert.Equal(t, "NF-2231", out.Lote)
}

// TestCriarLote_ExistingSKUAbortsWholeBatch garante que nada é gravado quando um tamanho já existe.
func TestCriarLote_ExistingSKUAbortsWholeBatch(t *testing.T) {
	svc, repo, inv, _ := newService()

	repo.On("ExistsSKU", mock.Anything, "SC-77", "Branco", 35).Return(false, nil)
	repo.On("ExistsSKU", mock.Anything, "SC-77", "Branco", 36).Return(true, nil)

	_, err := svc.CriarLote(context.Background(), admin, loteSC77())

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Msg, "tamanho 36")
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	inv.AssertNotCalled(t, "Invalidar", mock.Anything)
}

func TestCriarLote_ValidationRejectsBeforeAnyWrite(t *testing.T) {
	casos := map[string]func(*domain.LoteRequest){
		"sem nome":           func(r *domain.LoteRequest) { r.Genericos.Nome = "" },
		"cor em branco":      func(r *domain.LoteRequest) { r.Genericos.Cor = "  " },
		"sem preço de venda": func(r *domain.LoteRequest) { r.Genericos.PrecoVenda = decimal.NullDecimal{} },
		"preço zero":         func(r *domain.LoteRequest) { r.Genericos.PrecoVenda = decimal.NewNullDecimal(decimal.Zero) },
		"custo negativo":     func(r *domain.LoteRequest) { r.Genericos.PrecoCusto = decimal.NewNullDecimal(decimal.NewFromInt(-1)) },
		"gênero inválido":    func(r *domain.LoteRequest) { r.Genericos.Genero = "UNISSEX" },
		"modelo fora":        func(r *domain.LoteRequest) { r.Genericos.Modelo = "Galocha" },
		"data inválida":      func(r *domain.LoteRequest) { r.Genericos.DataRecebimento = "ontem" },
		"data futura":        func(r *domain.LoteRequest) { r.Genericos.DataRecebimento = "2999-12-31" },
		"sem variações":      func(r *domain.LoteRequest) { r.Variacoes = nil },
		"quantidade zero":    func(r *domain.LoteRequest) { r.Variacoes[1].Quantidade = 0 },
		"tamanho negativo":   func(r *domain.LoteRequest) { r.Variacoes[0].Tamanho = -35 },
		"tamanho repetido":   func(r *domain.LoteRequest) { r.Variacoes[1].Tamanho = 35 },
	}
	for nome, altera := range casos {
		t.Run(nome, func(t *testing.T) {
			svc, repo, _, _ := newService()
			req := loteSC77()
			altera(&req)

			_, err := svc.CriarLote(context.Background(), admin, req)

			var vErr *apperror.ValidationError
			assert.ErrorAs(t, err, &vErr)
			repo.AssertNotCalled(t, "ExistsSKU", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
		})
	}
}

func TestCriarLote_ListsMissingFields(t *testing.T) {
	svc, _, _, _ := newService()
	req := loteSC77()
	req.Genericos.Nome = ""
	req.Genericos.Marca = ""

	_, err := svc.CriarLote(context.Background(), admin, req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nome")
	assert.Contains(t, err.Error(), "marca")
}

func TestCriarLote_Forbidden(t *testing.T) {
	svc, repo, _, _ := newService()

	_, err := svc.CriarLote(context.Background(), funcionario, loteSC77())

	var fErr *apperror.ForbiddenError
	assert.ErrorAs(t, err, &fErr)
	repo.AssertNotCalled(t, "ExistsSKU", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCriarLote_RaceOnInsertPropagates(t *testing.T) {
	svc, repo, inv, met := newService()
	repo.On("ExistsSKU", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("CreateBatch", mock.Anything, mock.Anything).
		Return(nil, apperror.NewValidationError("Já existe produto com referência SC-77, cor Branco e tamanho 36."))

	_, err := svc.CriarLote(context.Background(), admin, loteSC77())

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
	inv.AssertNotCalled(t, "Invalidar", mock.Anything)
	met.AssertNotCalled(t, "LoteCriado", mock.Anything)
}

func boolPtr(b bool) *bool { return &b }

func TestEditarLote_PromoAgainstSubmittedPrice(t *testing.T) {
	svc, repo, _, _ := newService()

	_, err := svc.EditarLote(context.Background(), admin, domain.LoteEdicao{
		Lote:          "LOTE-1",
		PrecoVenda:    decimal.NewNullDecimal(decimal.NewFromInt(100)),
		EmPromocao:    boolPtr(true),
		PrecoPromocao: decimal.NewNullDecimal(decimal.NewFromInt(100)),
	})

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
	repo.AssertNotCalled(t, "UpdateLote", mock.Anything, mock.Anything)
}

// TestEditarLote_PromoAgainstStoredPrice cobre a promoção sem preço de venda no payload:
// vale o preço gravado de cada produto do lote.
func TestEditarLote_PromoAgainstStoredPrice(t *testing.T) {
	svc, repo, _, _ := newService()
	repo.On("FindByLote", mock.Anything, "LOTE-1").Return([]domain.Produto{
		{Tamanho: 37, PrecoVenda: decimal.NewFromInt(150)},
		{Tamanho: 38, PrecoVenda: decimal.NewFromInt(120)},
	}, nil)

	_, err := svc.EditarLote(context.Background(), admin, domain.LoteEdicao{
		Lote:          "LOTE-1",
		EmPromocao:    boolPtr(true),
		PrecoPromocao: decimal.NewNullDecimal(decimal.NewFromInt(130)),
	})

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Msg, "tamanho 38")
	repo.AssertNotCalled(t, "UpdateLote", mock.Anything, mock.Anything)
}

func TestEditarLote_PromoRequiresPrice(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.EditarLote(context.Background(), admin, domain.LoteEdicao{Lote: "LOTE-1", EmPromocao: boolPtr(true)})

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestEditarLote_NothingToUpdate(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.EditarLote(context.Background(), admin, domain.LoteEdicao{Lote: "LOTE-1"})

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestEditarLote_DisablePromotionClearsPrice(t *testing.T) {
	svc, repo, inv, _ := newService()
	repo.On("UpdateLote", mock.Anything, mock.MatchedBy(func(e domain.LoteEdicao) bool {
		return e.EmPromocao != nil && !*e.EmPromocao && !e.PrecoPromocao.Valid
	})).Return(int64(4), nil)
	inv.On("Invalidar", mock.Anything).Return()

	out, err := svc.EditarLote(context.Background(), admin, domain.LoteEdicao{
		Lote:          "LOTE-1",
		EmPromocao:    boolPtr(false),
		PrecoPromocao: decimal.NewNullDecimal(decimal.NewFromInt(50)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Atualizados)
	repo.AssertExpectations(t)
}

func TestEditarLote_UnknownLote(t *testing.T) {
	svc, repo, _, _ := newService()
	repo.On("UpdateLote", mock.Anything, mock.Anything).Return(int64(0), nil)

	_, err := svc.EditarLote(context.Background(), admin, domain.LoteEdicao{
		Lote:       "NAO-EXISTE",
		PrecoVenda: decimal.NewNullDecimal(decimal.NewFromInt(99)),
	})

	var nfErr *apperror.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestEditarLote_Forbidden(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.EditarLote(context.Background(), funcionario, domain.LoteEdicao{
		Lote:       "LOTE-1",
		PrecoVenda: decimal.NewNullDecimal(decimal.NewFromInt(99)),
	})

	var fErr *apperror.ForbiddenError
	assert.ErrorAs(t, err, &fErr)
}

func TestBuscarLote(t *testing.T) {
	svc, repo, _, _ := newService()
	repo.On("FindByLote", mock.Anything, "LOTE-1").Return([]domain.Produto{
		{Tamanho: 35, PrecoVenda: decimal.NewFromInt(90), EmPromocao: true, PrecoPromocao: decimal.NewNullDecimal(decimal.NewFromInt(80))},
		{Tamanho: 36, PrecoVenda: decimal.NewFromInt(90)},
	}, nil)
	repo.On("FindByLote", mock.Anything, "VAZIO").Return([]domain.Produto{}, nil)

	out, err := svc.BuscarLote(context.Background(), "LOTE-1")
	require.NoError(t, err)
	assert.Len(t, out.Produtos, 2)
	assert.True(t, out.ValoresAtuais.EmPromocao)
	assert.True(t, out.ValoresAtuais.PrecoPromocao.Decimal.Equal(decimal.NewFromInt(80)))

	_, err = svc.BuscarLote(context.Background(), "VAZIO")
	var nfErr *apperror.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}
