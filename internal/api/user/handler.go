package user

import (
	"context"
	"net/http"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/middleware"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/respond"
)

// UserService define o contrato para o login.
type UserService interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// LoginHandler lida com POST /v1/auth/login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Recebe nome e senha e emite o token. A sessão do ADMIN dura 15 minutos; a do funcionário, 8 horas.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Credenciais do usuário"
// @Success 200 {object} domain.LoginResponse "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /auth/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Result(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	resp, err := h.Service.Login(r.Context(), req)
	respond.Result(w, r, h.Logger, resp, err, http.StatusOK)
}

// MeHandler lida com GET /v1/auth/me e devolve o usuário da sessão.
// @Summary Usuário autenticado
// @Tags auth
// @Produce json
// @Success 200 {object} domain.Principal
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	respond.Result(w, r, h.Logger, principal, nil, http.StatusOK)
}
