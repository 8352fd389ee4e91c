package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
)

func TestBaixa_LucroUsaCustoCongelado(t *testing.T) {
	b := domain.Baixa{
		Quantidade:    3,
		ValorTotal:    decimal.RequireFromString("599.70"),
		CustoUnitario: decimal.NewNullDecimal(decimal.RequireFromString("120.00")),
	}

	assert.True(t, b.CustoTotal().Equal(decimal.RequireFromString("360.00")))
	assert.True(t, b.Lucro().Equal(decimal.RequireFromString("239.70")))
}

func TestBaixa_SemCustoLucroIgualValor(t *testing.T) {
	b := domain.Baixa{Quantidade: 2, ValorTotal: decimal.RequireFromString("100")}

	assert.True(t, b.CustoTotal().IsZero())
	assert.True(t, b.Lucro().Equal(decimal.RequireFromString("100")))
}

func TestProduto_PrecoEfetivo(t *testing.T) {
	p := domain.Produto{PrecoVenda: decimal.RequireFromString("199.90")}
	assert.True(t, p.PrecoEfetivo().Equal(decimal.RequireFromString("199.90")))

	p.EmPromocao = true
	p.PrecoPromocao = decimal.NewNullDecimal(decimal.RequireFromString("149.90"))
	assert.True(t, p.PrecoEfetivo().Equal(decimal.RequireFromString("149.90")))
}

func TestGenero(t *testing.T) {
	assert.True(t, domain.GeneroInfantilFeminino.Valido())
	assert.True(t, domain.GeneroInfantilFeminino.Infantil())
	assert.False(t, domain.GeneroMasculino.Infantil())
	assert.False(t, domain.Genero("UNISSEX").Valido())
}

func TestModeloValido(t *testing.T) {
	assert.True(t, domain.ModeloValido("Tamanco"))
	assert.True(t, domain.ModeloValido("Chuteira Society"))
	assert.False(t, domain.ModeloValido("tamanco"))
}

func TestLoteEdicao_Vazia(t *testing.T) {
	assert.True(t, domain.LoteEdicao{Lote: "L1"}.Vazia())

	ativo := true
	assert.False(t, domain.LoteEdicao{Lote: "L1", EmPromocao: &ativo}.Vazia())
}

func TestMargemLucro(t *testing.T) {
	assert.Equal(t, "37.5%", domain.MargemLucro(decimal.NewFromInt(75), decimal.NewFromInt(200)))
	assert.Equal(t, "0.0%", domain.MargemLucro(decimal.Zero, decimal.Zero))
}

func TestParseDataRecebimento(t *testing.T) {
	d, err := domain.ParseDataRecebimento("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Day())

	d, err = domain.ParseDataRecebimento("2026-03-10T14:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 14, d.Hour())
	assert.Equal(t, time.UTC, d.Location())

	_, err = domain.ParseDataRecebimento("10/03/2026")
	assert.Error(t, err)
}

func TestFiltro_OffsetNuncaNegativo(t *testing.T) {
	assert.Equal(t, 20, domain.ProdutoFiltro{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, domain.ProdutoFiltro{Page: 0, Limit: 10}.Offset())
	assert.Equal(t, 0, domain.ProdutoFiltro{Page: math.MaxInt, Limit: 10}.Offset())
	assert.Equal(t, 0, domain.BaixaFiltro{Page: math.MaxInt, Limit: 20}.Offset())
	assert.Equal(t, math.MaxInt/20, domain.MaxPage(20))
}
