package whatsapp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ttacon/libphonenumber"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
)

const baseURL = "https://wa.me/"

// LinkBuilder monta os deep-links de contato da vitrine para o número da loja.
type LinkBuilder struct {
	numero string // E.164 sem o "+", formato exigido pelo wa.me
}

// NewLinkBuilder valida o número da loja para a região informada (ex.: "BR").
func NewLinkBuilder(numero, regiao string) (*LinkBuilder, error) {
	p, err := libphonenumber.Parse(numero, regiao)
	if err != nil {
		return nil, fmt.Errorf("número de WhatsApp inválido: %w", err)
	}
	if !libphonenumber.IsValidNumber(p) {
		return nil, fmt.Errorf("número de WhatsApp %q não é válido para a região %s", numero, regiao)
	}

	e164 := libphonenumber.Format(p, libphonenumber.E164)
	return &LinkBuilder{numero: strings.TrimPrefix(e164, "+")}, nil
}

// Numero devolve o número normalizado usado nos links.
func (b *LinkBuilder) Numero() string {
	return b.numero
}

// Mensagem é o texto pré-preenchido para o card.
func Mensagem(p domain.VitrineProduto) string {
	tamanhos := make([]string, len(p.TamanhosDisponiveis))
	for i, t := range p.TamanhosDisponiveis {
		tamanhos[i] = strconv.Itoa(t)
	}

	return fmt.Sprintf("👋 Oi! Quero o %s %s %s (%s)\n📏 Tamanhos: %s\n💰 Preço: R$%s",
		p.Nome, p.Modelo, p.Marca, p.Cor,
		strings.Join(tamanhos, ", "),
		p.PrecoExibido().StringFixed(2),
	)
}

// Link devolve o deep-link wa.me com a mensagem do card.
func (b *LinkBuilder) Link(p domain.VitrineProduto) string {
	texto := strings.ReplaceAll(url.QueryEscape(Mensagem(p)), "+", "%20")
	return baseURL + b.numero + "?text=" + texto
}
