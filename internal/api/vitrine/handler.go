package vitrine

import (
	"net/http"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/respond"
)

// VitrineService define o contrato da vitrine pública.
type VitrineService interface {
	ListarVitrine(ctx domain.Context, page, limit int, filtros map[string]string) (domain.VitrinePagina, error)
}

// Handler expõe a vitrine sem autenticação.
type Handler struct {
	Service VitrineService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc VitrineService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListarVitrineHandler lida com GET /v1/vitrine.
// @Summary Vitrine pública
// @Description Cards agrupados por referência e cor, apenas com estoque, com link de WhatsApp.
// @Tags vitrine
// @Produce json
// @Param page query int false "Página (padrão 1)"
// @Param limit query int false "Cards por página (padrão 12, máx. 50)"
// @Param genero query string false "Gênero exato"
// @Param minPreco query number false "Preço de venda mínimo"
// @Param maxPreco query number false "Preço de venda máximo"
// @Success 200 {object} domain.VitrinePagina
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Failure 429 {object} domain.ErrorResponse "Muitas requisições"
// @Router /vitrine [get]
func (h *Handler) ListarVitrineHandler(w http.ResponseWriter, r *http.Request) {
	filtros := respond.Filtros(r, "genero", "minPreco", "maxPreco")
	pagina, err := h.Service.ListarVitrine(r.Context(), respond.QueryInt(r, "page"), respond.QueryInt(r, "limit"), filtros)
	respond.Result(w, r, h.Logger, pagina, err, http.StatusOK)
}
