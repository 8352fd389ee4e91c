package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/respond"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/token"
)

// ContextKey é o tipo das chaves que este pacote grava no contexto.
type ContextKey int

const (
	PrincipalKey ContextKey = iota
	RequestIDKey
)

// TokenValidator é o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware valida o Bearer token e anexa o domain.Principal ao contexto.
func NewAuthMiddleware(tokenSvc TokenValidator) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// 1. Extrair o token do header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || strings.TrimSpace(tokenString) == "" {
				respond.Error(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			// 2. Validar (assinatura, emissor, expiração)
			claims, err := tokenSvc.ValidateToken(strings.TrimSpace(tokenString))
			if err != nil {
				respond.Error(w, apperror.NewUnauthorizedError("Sessão inválida ou expirada. Faça login novamente."))
				return
			}

			// 3. Anexar o usuário autenticado
			ctx := WithPrincipal(r.Context(), claims.Principal())
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// WithPrincipal grava o usuário autenticado no contexto.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// PrincipalFromContext extrai o usuário autenticado no handler.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(domain.Principal)
	return p, ok
}

// PermissionMiddleware libera a rota apenas para os papéis informados.
// Deve rodar depois do NewAuthMiddleware.
func PermissionMiddleware(requiredRoles ...domain.UserRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				respond.Error(w, apperror.NewUnauthorizedError("Autorização necessária."))
				return
			}

			for _, role := range requiredRoles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			respond.Error(w, apperror.NewForbiddenError("Acesso negado. Você não tem a permissão necessária."))
		}
	}
}
