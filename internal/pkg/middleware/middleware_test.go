package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/cache"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/metrics"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/token"
)

type fakeValidator struct {
	claims *token.CustomClaims
	err    error
}

func (f fakeValidator) ValidateToken(string) (*token.CustomClaims, error) {
	return f.claims, f.err
}

func okHandler(t *testing.T, want *domain.Principal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if want != nil {
			p, ok := PrincipalFromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, *want, p)
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h := NewAuthMiddleware(fakeValidator{})(okHandler(t, nil))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/produtos", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	h := NewAuthMiddleware(fakeValidator{err: errors.New("expirado")})(okHandler(t, nil))
	req := httptest.NewRequest(http.MethodGet, "/v1/produtos", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_AttachesPrincipal(t *testing.T) {
	claims := &token.CustomClaims{UserID: 2, Name: "Diana", Role: "FUNCIONARIO"}
	want := domain.Principal{UserID: 2, Name: "Diana", Role: domain.RoleFuncionario}
	h := NewAuthMiddleware(fakeValidator{claims: claims})(okHandler(t, &want))
	req := httptest.NewRequest(http.MethodGet, "/v1/produtos", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPermissionMiddleware(t *testing.T) {
	adminOnly := PermissionMiddleware(domain.RoleAdmin)(okHandler(t, nil))

	t.Run("sem principal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/produtos/1", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("funcionario é proibido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/v1/produtos/1", nil)
		req = req.WithContext(WithPrincipal(req.Context(), domain.Principal{UserID: 2, Role: domain.RoleFuncionario}))
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "FORBIDDEN")
	})

	t.Run("admin passa", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/v1/produtos/1", nil)
		req = req.WithContext(WithPrincipal(req.Context(), domain.Principal{UserID: 1, Role: domain.RoleAdmin}))
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	c := cache.NewMemoryClient()
	h := RateLimiter(c, 2, time.Minute, logger.NewNop())(okHandler(t, nil))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/vitrine", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := do()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := do()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := do()
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "60", third.Header().Get("Retry-After"))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", seen)
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	m := metrics.New("loja")
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/produtos/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := Metrics(m)(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/produtos/42", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("loja", "GET", "GET /v1/produtos/{id}", "404")))
}
