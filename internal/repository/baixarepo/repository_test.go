package baixarepo

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
)

const decrementoSQL = "UPDATE produtos SET quantidade = quantidade - $1"

func newMockRepo(t *testing.T) (*BaixaRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBaixaRepository(db, time.Second, logger.NewNop()), mock
}

func TestRegistrar_DecrementsAndRecordsSale(t *testing.T) {
	repo, mock := newMockRepo(t)
	vendidoEm := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE produtos")).
		WithArgs(3, int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"quantidade", "preco_custo"}).AddRow(7, "120.00"))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO baixas")).
		WithArgs(int64(10), 3, decimal.RequireFromString("599.70"), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "data_baixa"}).AddRow(1, vendidoEm))
	mock.ExpectCommit()

	b, restante, err := repo.Registrar(context.Background(), 10, 3, decimal.RequireFromString("599.70"))

	require.NoError(t, err)
	assert.Equal(t, 7, restante)
	assert.Equal(t, int64(1), b.ID)
	assert.True(t, b.CustoUnitario.Valid)
	assert.True(t, b.CustoUnitario.Decimal.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, vendidoEm, b.DataBaixa)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrar_InsufficientStockRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE produtos")).
		WithArgs(8, int64(10)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, _, err := repo.Registrar(context.Background(), 10, 8, decimal.NewFromInt(100))

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Estoque insuficiente", vErr.Msg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrar_UnknownProduct(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE produtos")).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, _, err := repo.Registrar(context.Background(), 404, 1, decimal.NewFromInt(10))

	var nfErr *apperror.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestBuildHistoricoWhere(t *testing.T) {
	fim := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	tam := 40

	where, args := buildHistoricoWhere(domain.BaixaFiltro{Marca: "Olympikus", Tamanho: &tam, DataFim: &fim})

	assert.Equal(t, ` WHERE 1 = 1 AND p.marca ILIKE $1 ESCAPE '\' AND p.tamanho = $2 AND b.data_baixa < $3`, where)
	require.Len(t, args, 3)
	assert.Equal(t, "%Olympikus%", args[0])
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), args[2])
}

func TestBuildHistoricoWhere_EscapesWildcards(t *testing.T) {
	_, args := buildHistoricoWhere(domain.BaixaFiltro{Referencia: `a_b%c\d`})

	assert.Equal(t, []interface{}{`%a\_b\%c\\d%`}, args)
}

func TestHistorico_ComputesProfitPerLine(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count", "vendido", "pares"}).AddRow(1, "300.00", 2))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY b.data_baixa DESC")).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "produto_id", "quantidade", "valor_total", "custo_unitario", "data_baixa",
			"nome", "marca", "modelo", "cor", "referencia", "tamanho",
		}).AddRow(5, 10, 2, "300.00", "100.00", now, "Tênis Corre", "Olympikus", "Tênis", "Preto", "OL-1", 40))

	linhas, totais, err := repo.Historico(context.Background(), domain.BaixaFiltro{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, 1, totais.TotalCount)
	assert.Equal(t, 2, totais.TotalPares)
	require.Len(t, linhas, 1)
	assert.True(t, linhas[0].CustoTotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, linhas[0].Lucro.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "OL-1", linhas[0].Produto.Referencia)
	assert.NoError(t, mock.ExpectationsWereMet())
}
