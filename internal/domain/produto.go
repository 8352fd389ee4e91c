package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Produto é um SKU: uma combinação única de referência, cor e tamanho.
type Produto struct {
	ID              int64               `json:"id"`
	Nome            string              `json:"nome"`
	Marca           string              `json:"marca"`
	Modelo          string              `json:"modelo"`
	Cor             string              `json:"cor"`
	Genero          Genero              `json:"genero"`
	Referencia      string              `json:"referencia"`
	Imagem          *string             `json:"imagem"`
	Tamanho         int                 `json:"tamanho"`
	Quantidade      int                 `json:"quantidade"`
	Lote            *string             `json:"lote"`
	DataRecebimento time.Time           `json:"dataRecebimento"`
	PrecoVenda      decimal.Decimal     `json:"precoVenda"`
	PrecoCusto      decimal.NullDecimal `json:"precoCusto"`
	EmPromocao      bool                `json:"emPromocao"`
	PrecoPromocao   decimal.NullDecimal `json:"precoPromocao"`
	// Disponivel é calculado pelo banco (quantidade > 0).
	Disponivel bool      `json:"disponivel"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PrecoEfetivo é o preço cobrado na vitrine: o promocional quando ativo.
func (p Produto) PrecoEfetivo() decimal.Decimal {
	if p.EmPromocao && p.PrecoPromocao.Valid {
		return p.PrecoPromocao.Decimal
	}
	return p.PrecoVenda
}

// CustoOuZero devolve o preço de custo, ou zero quando não informado.
func (p Produto) CustoOuZero() decimal.Decimal {
	if p.PrecoCusto.Valid {
		return p.PrecoCusto.Decimal
	}
	return decimal.Zero
}

// Genero é a categoria de público do calçado.
type Genero string

const (
	GeneroMasculino         Genero = "MASCULINO"
	GeneroFeminino          Genero = "FEMININO"
	GeneroInfantilMasculino Genero = "INFANTIL_MASCULINO"
	GeneroInfantilFeminino  Genero = "INFANTIL_FEMININO"
)

// Valido informa se o gênero pertence ao catálogo.
func (g Genero) Valido() bool {
	switch g {
	case GeneroMasculino, GeneroFeminino, GeneroInfantilMasculino, GeneroInfantilFeminino:
		return true
	}
	return false
}

// Infantil informa se o gênero é de linha infantil.
func (g Genero) Infantil() bool {
	return g == GeneroInfantilMasculino || g == GeneroInfantilFeminino
}

// Modelos é o catálogo de categorias aceito no cadastro.
var Modelos = []string{
	"Anabela", "Ankle Boot", "Bota", "Chinelo", "Coturno", "Crocs", "Mocassim",
	"Mule", "Papete", "Plataforma", "Rasteirinha", "Sandália", "Sapatilha",
	"Sapatênis", "Scarpin", "Slide", "Tamanco", "Tênis Casual", "Tênis Esportivo",
	"Chuteira de Campo", "Chuteira Society", "Chuteira de Futsal",
}

const (
	ModeloTamanco  = "Tamanco"
	ModeloSandalia = "Sandália"
)

// ModeloValido informa se o modelo pertence ao catálogo.
func ModeloValido(modelo string) bool {
	for _, m := range Modelos {
		if m == modelo {
			return true
		}
	}
	return false
}

// ProdutoFiltro define os filtros da listagem e da agregação por dimensão.
type ProdutoFiltro struct {
	Marca      string
	Tamanho    *int
	Referencia string
	Genero     string
	Modelo     string
	Page       int
	Limit      int
}

// MaxPage é a maior página cujo deslocamento (page-1)*limit cabe em int.
func MaxPage(limit int) int {
	if limit < 1 {
		return math.MaxInt
	}
	return math.MaxInt / limit
}

// Offset devolve o deslocamento SQL da página atual.
func (f ProdutoFiltro) Offset() int {
	return pageOffset(f.Page, f.Limit)
}

func pageOffset(page, limit int) int {
	if page < 1 || limit < 1 || page > MaxPage(limit) {
		return 0
	}
	return (page - 1) * limit
}

// EstoqueResumo agrega o conjunto filtrado inteiro, não só a página.
type EstoqueResumo struct {
	TotalCount     int             `json:"totalCount"`
	TotalPares     int             `json:"totalPares"`
	ValorEstoque   decimal.Decimal `json:"valorEstoque"`
	CustoEstoque   decimal.Decimal `json:"custoEstoque"`
	LucroProjetado decimal.Decimal `json:"lucroProjetado"`
	MargemLucro    string          `json:"margemLucro"`
	Esgotados      int             `json:"esgotados"`
}

// ProdutoListagem é a resposta paginada de GET /v1/produtos.
type ProdutoListagem struct {
	Data        []Produto `json:"data"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
	EstoqueResumo
}

// Dimensao é o eixo de agregação aceito em ?tipo=.
type Dimensao string

const (
	DimensaoGenero Dimensao = "genero"
	DimensaoModelo Dimensao = "modelo"
	DimensaoMarca  Dimensao = "marca"
)

// Agregado é uma fatia {name, value} usada pelos gráficos.
type Agregado struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ProdutoUpdate é o payload de edição individual (PUT /v1/produtos/{id}).
type ProdutoUpdate struct {
	Nome            string              `json:"nome" validate:"required"`
	Marca           string              `json:"marca" validate:"required"`
	Modelo          string              `json:"modelo" validate:"required"`
	Cor             string              `json:"cor" validate:"required"`
	Genero          Genero              `json:"genero" validate:"required"`
	Referencia      string              `json:"referencia" validate:"required"`
	Imagem          *string             `json:"imagem"`
	Tamanho         int                 `json:"tamanho"`
	Quantidade      int                 `json:"quantidade"`
	Lote            *string             `json:"lote"`
	DataRecebimento string              `json:"dataRecebimento" validate:"required"`
	PrecoVenda      decimal.NullDecimal `json:"precoVenda"`
	PrecoCusto      decimal.NullDecimal `json:"precoCusto"`
	EmPromocao      bool                `json:"emPromocao"`
	PrecoPromocao   decimal.NullDecimal `json:"precoPromocao"`
}

// Context encapsula o context.Context para que o domínio não dependa do pacote context.
type Context interface{}
