package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LoteGenericos são os atributos compartilhados por todas as variações do lote.
type LoteGenericos struct {
	Nome            string              `json:"nome" validate:"required"`
	Referencia      string              `json:"referencia" validate:"required"`
	Cor             string              `json:"cor" validate:"required"`
	Genero          Genero              `json:"genero" validate:"required"`
	Modelo          string              `json:"modelo" validate:"required"`
	Marca           string              `json:"marca" validate:"required"`
	DataRecebimento string              `json:"dataRecebimento" validate:"required"`
	PrecoVenda      decimal.NullDecimal `json:"precoVenda"`
	PrecoCusto      decimal.NullDecimal `json:"precoCusto"`
	Lote            string              `json:"lote"`
	Imagem          string              `json:"imagem"`
}

// Variacao é um par (tamanho, quantidade) dentro do lote.
type Variacao struct {
	Tamanho    int `json:"tamanho"`
	Quantidade int `json:"quantidade"`
}

// LoteRequest é o payload de POST /v1/lotes.
type LoteRequest struct {
	Genericos LoteGenericos `json:"genericos"`
	Variacoes []Variacao    `json:"variacoes"`
}

// LoteCriado é o resultado da entrada de um lote.
type LoteCriado struct {
	Lote     string    `json:"lote"`
	Criados  int       `json:"criados"`
	Produtos []Produto `json:"produtos"`
}

// LoteEdicao é o payload de POST /v1/lotes/editar. Campos nulos não são alterados.
type LoteEdicao struct {
	Lote          string              `json:"lote" validate:"required"`
	PrecoVenda    decimal.NullDecimal `json:"precoVenda"`
	PrecoCusto    decimal.NullDecimal `json:"precoCusto"`
	EmPromocao    *bool               `json:"emPromocao"`
	PrecoPromocao decimal.NullDecimal `json:"precoPromocao"`
}

// Vazia informa se nenhum campo editável foi enviado.
func (e LoteEdicao) Vazia() bool {
	return !e.PrecoVenda.Valid && !e.PrecoCusto.Valid && e.EmPromocao == nil && !e.PrecoPromocao.Valid
}

// LoteAtualizado é a resposta da edição em massa.
type LoteAtualizado struct {
	Lote        string `json:"lote"`
	Atualizados int64  `json:"atualizados"`
}

// LoteValores são os preços atuais exibidos no formulário de edição.
type LoteValores struct {
	PrecoVenda    decimal.Decimal     `json:"precoVenda"`
	PrecoCusto    decimal.NullDecimal `json:"precoCusto"`
	EmPromocao    bool                `json:"emPromocao"`
	PrecoPromocao decimal.NullDecimal `json:"precoPromocao"`
}

// LoteDetalhe é a resposta de GET /v1/lotes/{lote}.
type LoteDetalhe struct {
	Lote          string      `json:"lote"`
	Produtos      []Produto   `json:"produtos"`
	ValoresAtuais LoteValores `json:"valoresAtuais"`
}

// ParseDataRecebimento aceita RFC3339 ou apenas a data (YYYY-MM-DD).
func ParseDataRecebimento(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("data de recebimento inválida: %q", s)
	}
	return t, nil
}
