package product

import (
	"net/http"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/middleware"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/respond"
)

// filtrosListagem são as chaves de query aceitas na listagem e na agregação.
var filtrosListagem = []string{"marca", "tamanho", "referencia", "genero", "modelo"}

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	ListProdutos(ctx domain.Context, page, limit int, filtros map[string]string) (domain.ProdutoListagem, error)
	AgregarPorDimensao(ctx domain.Context, tipo string, filtros map[string]string) ([]domain.Agregado, error)
	GetProduto(ctx domain.Context, id int64) (domain.Produto, error)
	AtualizarProduto(ctx domain.Context, principal domain.Principal, id int64, in domain.ProdutoUpdate) (domain.Produto, error)
	ExcluirProduto(ctx domain.Context, principal domain.Principal, id int64) error
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ListProdutosHandler lida com GET /v1/produtos.
// Com ?tipo= devolve a soma de pares por dimensão em vez da página.
// @Summary Lista o estoque
// @Description Página filtrada de SKUs com totais do filtro inteiro. Com tipo=genero|modelo|marca devolve [{name, value}].
// @Tags produtos
// @Produce json
// @Param page query int false "Página (padrão 1)"
// @Param limit query int false "Itens por página (padrão 10, máx. 100)"
// @Param marca query string false "Marca (contém, sem diferenciar maiúsculas)"
// @Param tamanho query int false "Tamanho exato"
// @Param referencia query string false "Referência (contém)"
// @Param genero query string false "Gênero exato"
// @Param modelo query string false "Modelo exato"
// @Param tipo query string false "Agregação: genero, modelo ou marca"
// @Success 200 {object} domain.ProdutoListagem
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Security ApiKeyAuth
// @Router /produtos [get]
func (h *Handler) ListProdutosHandler(w http.ResponseWriter, r *http.Request) {
	filtros := respond.Filtros(r, filtrosListagem...)

	if tipo := r.URL.Query().Get("tipo"); tipo != "" {
		agregados, err := h.Service.AgregarPorDimensao(r.Context(), tipo, filtros)
		respond.Result(w, r, h.Logger, agregados, err, http.StatusOK)
		return
	}

	listagem, err := h.Service.ListProdutos(r.Context(), respond.QueryInt(r, "page"), respond.QueryInt(r, "limit"), filtros)
	respond.Result(w, r, h.Logger, listagem, err, http.StatusOK)
}

// GetProdutoHandler lida com GET /v1/produtos/{id}.
// @Summary Busca um produto
// @Tags produtos
// @Produce json
// @Param id path int true "ID do produto"
// @Success 200 {object} domain.Produto
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /produtos/{id} [get]
func (h *Handler) GetProdutoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Result(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	produto, err := h.Service.GetProduto(r.Context(), id)
	respond.Result(w, r, h.Logger, produto, err, http.StatusOK)
}

// UpdateProdutoHandler lida com PUT /v1/produtos/{id}. Somente ADMIN.
// @Summary Edita um produto
// @Description Substitui todos os campos do SKU. O par (referência, cor, tamanho) continua único.
// @Tags produtos
// @Accept json
// @Produce json
// @Param id path int true "ID do produto"
// @Param produto body domain.ProdutoUpdate true "Dados completos do produto"
// @Success 200 {object} domain.Produto
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 403 {object} domain.ErrorResponse "Apenas ADMIN"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /produtos/{id} [put]
func (h *Handler) UpdateProdutoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Result(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	var in domain.ProdutoUpdate
	if err := respond.DecodeJSON(r, &in); err != nil {
		respond.Result(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	produto, err := h.Service.AtualizarProduto(r.Context(), principal, id, in)
	respond.Result(w, r, h.Logger, produto, err, http.StatusOK)
}

// DeleteProdutoHandler lida com DELETE /v1/produtos/{id}. Somente ADMIN.
// @Summary Exclui um produto
// @Description Produtos com vendas registradas não podem ser excluídos (409).
// @Tags produtos
// @Produce json
// @Param id path int true "ID do produto"
// @Success 200 {object} map[string]string
// @Failure 403 {object} domain.ErrorResponse "Apenas ADMIN"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Produto possui baixas registradas"
// @Security ApiKeyAuth
// @Router /produtos/{id} [delete]
func (h *Handler) DeleteProdutoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Result(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	if err := h.Service.ExcluirProduto(r.Context(), principal, id); err != nil {
		respond.Result(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}
	respond.Result(w, r, h.Logger, map[string]string{"message": "Produto excluído com sucesso."}, nil, http.StatusOK)
}
