package relatorioservice_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/service/relatorioservice"
)

type MockEstoqueRepository struct{ mock.Mock }

func (m *MockEstoqueRepository) ListAll(ctx context.Context) ([]domain.Produto, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Produto), args.Error(1)
}

func (m *MockEstoqueRepository) CountLotesDesde(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func item(modelo string, genero domain.Genero, tam, qtd int, venda, custo string) domain.Produto {
	p := domain.Produto{
		Modelo: modelo, Genero: genero, Tamanho: tam, Quantidade: qtd,
		Referencia: "REF-" + modelo, Cor: "Preto", Marca: "Moleca",
		PrecoVenda: decimal.RequireFromString(venda),
	}
	if custo != "" {
		p.PrecoCusto = decimal.NewNullDecimal(decimal.RequireFromString(custo))
	}
	return p
}

func estoque() []domain.Produto {
	return []domain.Produto{
		item("Tamanco", domain.GeneroFeminino, 36, 1, "100", "60"),
		item("Tamanco", domain.GeneroInfantilFeminino, 36, 1, "80", "40"),
		item("Tamanco", domain.GeneroFeminino, 37, 3, "100", "60"),
		item("Sandália", domain.GeneroInfantilFeminino, 28, 2, "90", ""),
		item("Tênis Casual", domain.GeneroMasculino, 40, 10, "200", "120"),
		item("Tênis Casual", domain.GeneroMasculino, 41, 0, "200", "120"),
	}
}

// sinceMeiaNoite confere que a contagem de lotes parte do início do dia local.
var sinceMeiaNoite = mock.MatchedBy(func(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && !t.After(time.Now())
})

func TestAlertas_TamancoGroupsBySizeOnly(t *testing.T) {
	alertas := relatorioservice.Alertas(estoque())

	require.Len(t, alertas, 2)

	assert.True(t, alertas[0].Urgente)
	assert.Equal(t, "Sandália INFANTIL_FEMININO tam 28: 2 unid", alertas[0].Message)

	assert.False(t, alertas[1].Urgente)
	assert.Equal(t, "Tamanco tamanho 36: 2 unid", alertas[1].Message)
	assert.Equal(t, 2, alertas[1].Total)
	assert.Empty(t, alertas[1].Genero)
}

func TestAlertas_IgnoresEmptyAndHealthyGroups(t *testing.T) {
	alertas := relatorioservice.Alertas([]domain.Produto{
		item("Bota", domain.GeneroFeminino, 35, 0, "300", ""),
		item("Bota", domain.GeneroFeminino, 36, 3, "300", ""),
		item("Bota", domain.GeneroFeminino, 37, 1, "300", ""),
		item("Bota", domain.GeneroFeminino, 37, 2, "300", ""),
	})

	assert.Empty(t, alertas)
}

func TestHome(t *testing.T) {
	repo := new(MockEstoqueRepository)
	repo.On("ListAll", mock.Anything).Return(estoque(), nil)
	repo.On("CountLotesDesde", mock.Anything, sinceMeiaNoite).Return(2, nil)
	svc := relatorioservice.NewService(repo, logger.NewNop())

	home, err := svc.Home(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 17, home.TotalPares)
	assert.True(t, home.ValorTotal.Equal(decimal.NewFromInt(2660)), home.ValorTotal.String())
	assert.Equal(t, 2, home.LowStockCount)
	assert.Equal(t, 2, home.LotesHoje)
	assert.Equal(t, 3, home.ModelosAtivos)
	assert.Len(t, home.Alerts, 2)
	repo.AssertExpectations(t)
}

func TestDashboard(t *testing.T) {
	repo := new(MockEstoqueRepository)
	repo.On("ListAll", mock.Anything).Return(estoque(), nil)
	repo.On("CountLotesDesde", mock.Anything, sinceMeiaNoite).Return(1, nil)
	svc := relatorioservice.NewService(repo, logger.NewNop())

	d, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 17, d.TotalPares)
	// custo: 60 + 40 + 180 + 0 + 1200
	assert.True(t, d.CustoTotal.Equal(decimal.NewFromInt(1480)), d.CustoTotal.String())
	assert.True(t, d.LucroProjetado.Equal(decimal.NewFromInt(1180)))
	assert.Equal(t, "44.4%", d.MargemLucro)
	assert.Equal(t, 5, d.LowStockCount)
	assert.Equal(t, 1, d.LotesHoje)

	require.NotEmpty(t, d.TopModelos)
	assert.Equal(t, domain.ModeloQuantidade{Name: "Tênis Casual", Quantidade: 10}, d.TopModelos[0])
	assert.Equal(t, []domain.Agregado{
		{Name: "FEMININO", Value: 4},
		{Name: "INFANTIL_FEMININO", Value: 3},
		{Name: "MASCULINO", Value: 10},
	}, d.EstoquePorGenero)
}

func TestDashboard_EmptyStock(t *testing.T) {
	repo := new(MockEstoqueRepository)
	repo.On("ListAll", mock.Anything).Return([]domain.Produto{}, nil)
	repo.On("CountLotesDesde", mock.Anything, mock.Anything).Return(0, nil)
	svc := relatorioservice.NewService(repo, logger.NewNop())

	d, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0.0%", d.MargemLucro)
	assert.Empty(t, d.TopModelos)
}

func TestExportarEstoque(t *testing.T) {
	repo := new(MockEstoqueRepository)
	lote := "LOTE-20260301-101"
	p := item("Tênis Casual", domain.GeneroMasculino, 40, 10, "200", "120")
	p.ID, p.Lote = 7, &lote
	repo.On("ListAll", mock.Anything).Return([]domain.Produto{p}, nil)
	svc := relatorioservice.NewService(repo, logger.NewNop())

	admin := domain.Principal{UserID: 1, Name: "ca.ltda", Role: domain.RoleAdmin}
	raw, err := svc.ExportarEstoque(context.Background(), admin)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Estoque")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Referência", rows[0][1])
	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, "REF-Tênis Casual", rows[1][1])
	assert.Equal(t, lote, rows[1][9])
	assert.Equal(t, "120.00", rows[1][11])
}

func TestExportarEstoque_Forbidden(t *testing.T) {
	repo := new(MockEstoqueRepository)
	svc := relatorioservice.NewService(repo, logger.NewNop())

	_, err := svc.ExportarEstoque(context.Background(), domain.Principal{Name: "Deise", Role: domain.RoleFuncionario})

	var fErr *apperror.ForbiddenError
	assert.ErrorAs(t, err, &fErr)
	repo.AssertNotCalled(t, "ListAll", mock.Anything)
}
