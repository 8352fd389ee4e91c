package lote

import (
	"net/http"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/middleware"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/respond"
)

// LoteService define o contrato que o Handler espera da camada de Serviço.
type LoteService interface {
	CriarLote(ctx domain.Context, principal domain.Principal, req domain.LoteRequest) (domain.LoteCriado, error)
	EditarLote(ctx domain.Context, principal domain.Principal, e domain.LoteEdicao) (domain.LoteAtualizado, error)
	BuscarLote(ctx domain.Context, lote string) (domain.LoteDetalhe, error)
}

// Handler agrupa os handlers de entrada e edição de lotes.
type Handler struct {
	Service LoteService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc LoteService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CriarLoteHandler lida com POST /v1/lotes.
// @Summary Entrada de lote
// @Description Cria um SKU por tamanho com os dados compartilhados. Tudo ou nada.
// @Tags lotes
// @Accept json
// @Produce json
// @Param lote body domain.LoteRequest true "Dados genéricos e variações (tamanho, quantidade)"
// @Success 201 {object} domain.LoteCriado
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos ou SKU duplicado"
// @Failure 403 {object} domain.ErrorResponse "Apenas ADMIN"
// @Security ApiKeyAuth
// @Router /lotes [post]
func (h *Handler) CriarLoteHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoteRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Result(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	criado, err := h.Service.CriarLote(r.Context(), principal, req)
	respond.Result(w, r, h.Logger, criado, err, http.StatusCreated)
}

// EditarLoteHandler lida com POST /v1/lotes/editar.
// @Summary Edição em massa de um lote
// @Description Altera preços e promoção de todos os SKUs do lote. Campos ausentes não mudam.
// @Tags lotes
// @Accept json
// @Produce json
// @Param edicao body domain.LoteEdicao true "Campos a alterar"
// @Success 200 {object} domain.LoteAtualizado
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 403 {object} domain.ErrorResponse "Apenas ADMIN"
// @Failure 404 {object} domain.ErrorResponse "Lote não encontrado"
// @Security ApiKeyAuth
// @Router /lotes/editar [post]
func (h *Handler) EditarLoteHandler(w http.ResponseWriter, r *http.Request) {
	var e domain.LoteEdicao
	if err := respond.DecodeJSON(r, &e); err != nil {
		respond.Result(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	out, err := h.Service.EditarLote(r.Context(), principal, e)
	respond.Result(w, r, h.Logger, out, err, http.StatusOK)
}

// BuscarLoteHandler lida com GET /v1/lotes/{lote}.
// @Summary Produtos de um lote
// @Tags lotes
// @Produce json
// @Param lote path string true "Identificador do lote"
// @Success 200 {object} domain.LoteDetalhe
// @Failure 404 {object} domain.ErrorResponse "Lote não encontrado"
// @Security ApiKeyAuth
// @Router /lotes/{lote} [get]
func (h *Handler) BuscarLoteHandler(w http.ResponseWriter, r *http.Request) {
	detalhe, err := h.Service.BuscarLote(r.Context(), r.PathValue("lote"))
	respond.Result(w, r, h.Logger, detalhe, err, http.StatusOK)
}
