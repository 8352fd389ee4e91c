package relatorio

import (
	"fmt"
	"net/http"
	"time"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/middleware"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/respond"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RelatorioService define o contrato dos resumos do painel.
type RelatorioService interface {
	Dashboard(ctx domain.Context) (domain.Dashboard, error)
	Home(ctx domain.Context) (domain.Home, error)
	ExportarEstoque(ctx domain.Context, principal domain.Principal) ([]byte, error)
}

// Handler agrupa os relatórios.
type Handler struct {
	Service RelatorioService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc RelatorioService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// DashboardHandler lida com GET /v1/relatorios/dashboard.
// @Summary Dashboard do estoque
// @Tags relatorios
// @Produce json
// @Success 200 {object} domain.Dashboard
// @Security ApiKeyAuth
// @Router /relatorios/dashboard [get]
func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.Dashboard(r.Context())
	respond.Result(w, r, h.Logger, d, err, http.StatusOK)
}

// HomeHandler lida com GET /v1/relatorios/home.
// @Summary Resumo da home com alertas de grade
// @Tags relatorios
// @Produce json
// @Success 200 {object} domain.Home
// @Security ApiKeyAuth
// @Router /relatorios/home [get]
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	home, err := h.Service.Home(r.Context())
	respond.Result(w, r, h.Logger, home, err, http.StatusOK)
}

// ExportarEstoqueHandler lida com GET /v1/relatorios/estoque.xlsx. Somente ADMIN.
// @Summary Planilha do estoque
// @Tags relatorios
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 403 {object} domain.ErrorResponse "Apenas ADMIN"
// @Security ApiKeyAuth
// @Router /relatorios/estoque.xlsx [get]
func (h *Handler) ExportarEstoqueHandler(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	raw, err := h.Service.ExportarEstoque(r.Context(), principal)
	if err != nil {
		respond.Result(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	nome := fmt.Sprintf("estoque-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+nome+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		h.Logger.Error("Falha ao enviar planilha.", err)
	}
}
