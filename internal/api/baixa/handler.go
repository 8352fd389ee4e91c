package baixa

import (
	"net/http"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/middleware"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/respond"
)

// BaixaService define o contrato que o Handler espera da camada de Serviço.
type BaixaService interface {
	RegistrarBaixa(ctx domain.Context, principal domain.Principal, req domain.BaixaRequest) (domain.BaixaRegistrada, error)
	Historico(ctx domain.Context, page int, filtros map[string]string) (domain.BaixaHistorico, error)
}

// Handler agrupa os handlers de vendas.
type Handler struct {
	Service BaixaService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc BaixaService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// RegistrarBaixaHandler lida com POST /v1/baixas.
// @Summary Registra uma venda
// @Description Decrementa o estoque e grava a baixa na mesma transação.
// @Tags baixas
// @Accept json
// @Produce json
// @Param baixa body domain.BaixaRequest true "Produto, quantidade e valor total"
// @Success 200 {object} domain.BaixaRegistrada
// @Failure 400 {object} domain.ErrorResponse "Estoque insuficiente ou dados inválidos"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /baixas [post]
func (h *Handler) RegistrarBaixaHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.BaixaRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Result(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	out, err := h.Service.RegistrarBaixa(r.Context(), principal, req)
	respond.Result(w, r, h.Logger, out, err, http.StatusOK)
}

// HistoricoHandler lida com GET /v1/baixas.
// @Summary Histórico de vendas
// @Tags baixas
// @Produce json
// @Param page query int false "Página (20 por página)"
// @Param marca query string false "Marca (contém)"
// @Param referencia query string false "Referência (contém)"
// @Param tamanho query int false "Tamanho exato"
// @Param dataInicio query string false "AAAA-MM-DD"
// @Param dataFim query string false "AAAA-MM-DD, inclusivo"
// @Success 200 {object} domain.BaixaHistorico
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Security ApiKeyAuth
// @Router /baixas [get]
func (h *Handler) HistoricoHandler(w http.ResponseWriter, r *http.Request) {
	filtros := respond.Filtros(r, "marca", "referencia", "tamanho", "dataInicio", "dataFim")
	out, err := h.Service.Historico(r.Context(), respond.QueryInt(r, "page"), filtros)
	respond.Result(w, r, h.Logger, out, err, http.StatusOK)
}
