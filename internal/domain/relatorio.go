package domain

import "github.com/shopspring/decimal"

// LimiteAlertaHome é o teto (exclusivo) de pares para alertar um grupo na home.
const LimiteAlertaHome = 3

// LimiteEstoqueBaixo é o teto (inclusivo) de pares para um SKU contar como estoque baixo.
const LimiteEstoqueBaixo = 5

// ModeloQuantidade é uma linha do ranking de modelos.
type ModeloQuantidade struct {
	Name       string `json:"name"`
	Quantidade int    `json:"quantidade"`
}

// Dashboard é o resumo completo do estoque.
type Dashboard struct {
	TotalPares       int                `json:"totalPares"`
	ValorTotal       decimal.Decimal    `json:"valorTotal"`
	CustoTotal       decimal.Decimal    `json:"custoTotal"`
	LucroProjetado   decimal.Decimal    `json:"lucroProjetado"`
	MargemLucro      string             `json:"margemLucro"`
	ModelosAtivos    int                `json:"modelosAtivos"`
	LowStockCount    int                `json:"lowStockCount"`
	LotesHoje        int                `json:"lotesHoje"`
	EstoquePorGenero []Agregado         `json:"estoquePorGenero"`
	TopModelos       []ModeloQuantidade `json:"topModelos"`
}

// Alerta é um grupo (modelo, gênero, tamanho) com poucos pares.
type Alerta struct {
	Message string `json:"message"`
	Modelo  string `json:"modelo"`
	Genero  Genero `json:"genero,omitempty"`
	Tamanho int    `json:"tamanho"`
	Total   int    `json:"total"`
	Urgente bool   `json:"urgente"`
}

// Home é o resumo da página inicial do painel.
type Home struct {
	TotalPares       int                `json:"totalPares"`
	ValorTotal       decimal.Decimal    `json:"valorTotal"`
	LowStockCount    int                `json:"lowStockCount"`
	LotesHoje        int                `json:"lotesHoje"`
	ModelosAtivos    int                `json:"modelosAtivos"`
	Alerts           []Alerta           `json:"alerts"`
	EstoquePorGenero []Agregado         `json:"estoquePorGenero"`
	TopModelos       []ModeloQuantidade `json:"topModelos"`
}

// MargemLucro formata lucro / valor como percentual com uma casa ("37.5%").
func MargemLucro(lucro, valor decimal.Decimal) string {
	if valor.IsZero() {
		return "0.0%"
	}
	return lucro.Div(valor).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
