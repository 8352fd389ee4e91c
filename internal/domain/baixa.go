package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Baixa é o registro de uma venda. Criada junto com o decremento do estoque, nunca alterada.
type Baixa struct {
	ID         int64           `json:"id"`
	ProdutoID  int64           `json:"produtoId"`
	Quantidade int             `json:"quantidade"`
	ValorTotal decimal.Decimal `json:"valorTotal"`
	// CustoUnitario é o preço de custo do produto no momento da venda.
	CustoUnitario decimal.NullDecimal `json:"custoUnitario"`
	DataBaixa     time.Time           `json:"dataBaixa"`
}

// CustoTotal é o custo unitário congelado vezes a quantidade vendida.
func (b Baixa) CustoTotal() decimal.Decimal {
	if !b.CustoUnitario.Valid {
		return decimal.Zero
	}
	return b.CustoUnitario.Decimal.Mul(decimal.NewFromInt(int64(b.Quantidade)))
}

// Lucro é o valor cobrado menos o custo total.
func (b Baixa) Lucro() decimal.Decimal {
	return b.ValorTotal.Sub(b.CustoTotal())
}

// BaixaRequest é o payload de POST /v1/baixas.
type BaixaRequest struct {
	ProdutoID  int64               `json:"produtoId" validate:"required"`
	Quantidade int                 `json:"quantidade"`
	ValorTotal decimal.NullDecimal `json:"valorTotal"`
}

// BaixaRegistrada é a resposta de uma venda bem-sucedida.
type BaixaRegistrada struct {
	Message         string `json:"message"`
	EstoqueRestante int    `json:"estoqueRestante"`
	Baixa           Baixa  `json:"baixa"`
}

// BaixaFiltro define os filtros do histórico de vendas.
type BaixaFiltro struct {
	Marca      string
	Referencia string
	Tamanho    *int
	DataInicio *time.Time
	DataFim    *time.Time
	Page       int
	Limit      int
}

// Offset devolve o deslocamento SQL da página atual.
func (f BaixaFiltro) Offset() int {
	return pageOffset(f.Page, f.Limit)
}

// BaixaDetalhe é uma linha do histórico com o produto vendido e o lucro realizado.
type BaixaDetalhe struct {
	Baixa
	Produto    BaixaProduto    `json:"produto"`
	CustoTotal decimal.Decimal `json:"custoTotal"`
	Lucro      decimal.Decimal `json:"lucro"`
}

// BaixaProduto é o recorte do produto exibido no histórico.
type BaixaProduto struct {
	Nome       string `json:"nome"`
	Marca      string `json:"marca"`
	Modelo     string `json:"modelo"`
	Cor        string `json:"cor"`
	Referencia string `json:"referencia"`
	Tamanho    int    `json:"tamanho"`
}

// BaixaTotais soma o histórico filtrado inteiro.
type BaixaTotais struct {
	TotalCount   int             `json:"totalCount"`
	TotalVendido decimal.Decimal `json:"totalVendido"`
	TotalPares   int             `json:"totalPares"`
}

// BaixaHistorico é a resposta paginada de GET /v1/baixas.
type BaixaHistorico struct {
	Data        []BaixaDetalhe `json:"data"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	BaixaTotais
}
