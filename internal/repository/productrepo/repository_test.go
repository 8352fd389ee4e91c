package productrepo

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
)

func newMockRepo(t *testing.T) (*ProductRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProductRepository(db, time.Second, logger.NewNop()), mock
}

func loteSC77() []domain.Produto {
	lote := "LOTE-20260310-123"
	base := domain.Produto{
		Nome: "Sapatilha Conforto", Marca: "Moleca", Modelo: "Sapatilha", Cor: "Branco",
		Genero: domain.GeneroFeminino, Referencia: "SC-77", Lote: &lote,
		DataRecebimento: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		PrecoVenda:      decimal.RequireFromString("89.90"),
	}
	a, b := base, base
	a.Tamanho, a.Quantidade = 35, 2
	b.Tamanho, b.Quantidade = 36, 3
	return []domain.Produto{a, b}
}

func TestBuildFilterWhere(t *testing.T) {
	tam := 38
	w := buildFilterWhere(domain.ProdutoFiltro{Marca: "nike", Tamanho: &tam, Genero: "MASCULINO"})

	assert.Equal(t, ` WHERE marca ILIKE $1 ESCAPE '\' AND tamanho = $2 AND genero = $3`, w.sql())
	assert.Equal(t, []interface{}{"%nike%", 38, "MASCULINO"}, w.args)
}

func TestBuildFilterWhere_WildcardsAreLiteral(t *testing.T) {
	w := buildFilterWhere(domain.ProdutoFiltro{Referencia: "SC_77", Modelo: "100%"})

	assert.Equal(t, []interface{}{`%SC\_77%`, `%100\%%`}, w.args)
}

func TestBuildFilterWhere_Empty(t *testing.T) {
	w := buildFilterWhere(domain.ProdutoFiltro{Page: 2, Limit: 10})

	assert.Equal(t, "", w.sql())
	assert.Empty(t, w.args)
}

func TestCreateBatch_CommitsAllRows(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO produtos")).
		WithArgs("Sapatilha Conforto", "Moleca", "Sapatilha", "Branco", domain.GeneroFeminino, "SC-77",
			sqlmock.AnyArg(), 35, 2, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "disponivel", "created_at", "updated_at"}).AddRow(1, true, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO produtos")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "disponivel", "created_at", "updated_at"}).AddRow(2, true, now, now))
	mock.ExpectCommit()

	criados, err := repo.CreateBatch(context.Background(), loteSC77())

	require.NoError(t, err)
	require.Len(t, criados, 2)
	assert.Equal(t, int64(1), criados[0].ID)
	assert.Equal(t, int64(2), criados[1].ID)
	assert.Equal(t, *criados[0].Lote, *criados[1].Lote)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBatch_UniqueViolationRollsBackWholeBatch(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO produtos")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "disponivel", "created_at", "updated_at"}).AddRow(1, true, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO produtos")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "produtos_referencia_cor_tamanho_key"})
	mock.ExpectRollback()

	criados, err := repo.CreateBatch(context.Background(), loteSC77())

	assert.Nil(t, criados)
	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Msg, "SC-77")
	assert.Contains(t, vErr.Msg, "36")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	t.Run("sem baixas", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM produtos WHERE id = $1")).
			WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("com baixas vira conflito", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM produtos")).
			WithArgs(int64(7)).WillReturnError(&pq.Error{Code: "23503"})

		err := repo.Delete(context.Background(), 7)

		var cErr *apperror.ConflictError
		assert.ErrorAs(t, err, &cErr)
	})

	t.Run("inexistente", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM produtos")).
			WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 99)

		var nfErr *apperror.NotFoundError
		assert.ErrorAs(t, err, &nfErr)
	})
}

func TestUpdateLote_DeactivatePromotionClearsPrice(t *testing.T) {
	repo, mock := newMockRepo(t)
	inativo := false

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE produtos SET preco_venda = $1, em_promocao = $2, preco_promocao = NULL, updated_at = NOW() WHERE lote = $3")).
		WithArgs(decimal.RequireFromString("129.90"), false, "LOTE-1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.UpdateLote(context.Background(), domain.LoteEdicao{
		Lote:       "LOTE-1",
		PrecoVenda: decimal.NewNullDecimal(decimal.RequireFromString("129.90")),
		EmPromocao: &inativo,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLote_CheckViolationIsValidation(t *testing.T) {
	repo, mock := newMockRepo(t)
	ativo := true

	mock.ExpectExec(regexp.QuoteMeta("UPDATE produtos SET em_promocao = $1, preco_promocao = $2")).
		WillReturnError(&pq.Error{Code: "23514", Constraint: "produtos_promocao_check"})

	_, err := repo.UpdateLote(context.Background(), domain.LoteEdicao{
		Lote:          "LOTE-1",
		EmPromocao:    &ativo,
		PrecoPromocao: decimal.NewNullDecimal(decimal.RequireFromString("300")),
	})

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestResumo_AggregatesFilteredSet(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM produtos WHERE marca ILIKE")).
		WithArgs("%nike%").
		WillReturnRows(sqlmock.NewRows([]string{"count", "pares", "valor", "custo", "esgotados"}).
			AddRow(25, 140, "27986.00", "15000.00", 3))

	res, err := repo.Resumo(context.Background(), domain.ProdutoFiltro{Marca: "nike", Page: 3, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 25, res.TotalCount)
	assert.Equal(t, 140, res.TotalPares)
	assert.True(t, res.ValorEstoque.Equal(decimal.RequireFromString("27986")))
	assert.Equal(t, 3, res.Esgotados)
}

func TestAgregarPor_InvalidDimension(t *testing.T) {
	repo, _ := newMockRepo(t)

	_, err := repo.AgregarPor(context.Background(), domain.Dimensao("cor"), domain.ProdutoFiltro{})

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM produtos WHERE id = $1")).
		WithArgs(int64(5)).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 5)

	var nfErr *apperror.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}
