package domain

import "github.com/shopspring/decimal"

// VitrineFiltro são os filtros públicos da vitrine.
type VitrineFiltro struct {
	Genero   string
	MinPreco decimal.NullDecimal
	MaxPreco decimal.NullDecimal
	Page     int
	Limit    int
}

// TamanhoDetalhe é o estoque de um tamanho dentro do card.
type TamanhoDetalhe struct {
	ID         int64 `json:"id"`
	Tamanho    int   `json:"tamanho"`
	Quantidade int   `json:"quantidade"`
}

// VitrineProduto é um card visual: todas as variações de uma referência numa cor.
type VitrineProduto struct {
	ID                  string              `json:"id"`
	Nome                string              `json:"nome"`
	Modelo              string              `json:"modelo"`
	Marca               string              `json:"marca"`
	Cor                 string              `json:"cor"`
	Genero              Genero              `json:"genero"`
	Referencia          string              `json:"referencia"`
	Imagem              *string             `json:"imagem"`
	PrecoVenda          decimal.Decimal     `json:"precoVenda"`
	EmPromocao          bool                `json:"emPromocao"`
	PrecoPromocao       decimal.NullDecimal `json:"precoPromocao"`
	TamanhosDisponiveis []int               `json:"tamanhosDisponiveis"`
	TamanhosDetalhados  []TamanhoDetalhe    `json:"tamanhosDetalhados"`
	EstoqueTotal        int                 `json:"estoqueTotal"`
	LinkWhatsApp        string              `json:"linkWhatsApp,omitempty"`
}

// PrecoExibido é o preço mostrado ao cliente.
func (v VitrineProduto) PrecoExibido() decimal.Decimal {
	if v.EmPromocao && v.PrecoPromocao.Valid {
		return v.PrecoPromocao.Decimal
	}
	return v.PrecoVenda
}

// VitrinePagina é a resposta de GET /v1/vitrine.
type VitrinePagina struct {
	Data          []VitrineProduto `json:"data"`
	TotalPages    int              `json:"totalPages"`
	CurrentPage   int              `json:"currentPage"`
	TotalProdutos int              `json:"totalProdutos"`
}
