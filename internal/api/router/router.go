package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/QaMarcosEd/calcadosAraujo/internal/api/baixa"
	"github.com/QaMarcosEd/calcadosAraujo/internal/api/lote"
	"github.com/QaMarcosEd/calcadosAraujo/internal/api/product"
	"github.com/QaMarcosEd/calcadosAraujo/internal/api/relatorio"
	"github.com/QaMarcosEd/calcadosAraujo/internal/api/user"
	"github.com/QaMarcosEd/calcadosAraujo/internal/api/vitrine"
	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/cache"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/metrics"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/middleware"

	// Registra a especificação OpenAPI servida em /swagger/.
	_ "github.com/QaMarcosEd/calcadosAraujo/docs"
)

// Handlers reúne os handlers já inicializados por injeção de dependências.
type Handlers struct {
	User      *user.Handler
	Product   *product.Handler
	Lote      *lote.Handler
	Baixa     *baixa.Handler
	Vitrine   *vitrine.Handler
	Relatorio *relatorio.Handler
}

// Options são as dependências de infraestrutura dos middlewares.
type Options struct {
	Tokens          middleware.TokenValidator
	Cache           cache.Client
	Metrics         *metrics.Metrics
	Logger          logger.Logger
	RateLimit       int
	RateLimitPeriod time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, opts Options) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.NewAuthMiddleware(opts.Tokens)
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.PermissionMiddleware(domain.RoleAdmin)(next))
	}
	limit := middleware.RateLimiter(opts.Cache, opts.RateLimit, opts.RateLimitPeriod, opts.Logger)

	// --- 1. Infra ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /metrics", opts.Metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Autenticação ---
	mux.Handle("POST /v1/auth/login", limit(http.HandlerFunc(h.User.LoginHandler)))
	mux.HandleFunc("GET /v1/auth/me", auth(h.User.MeHandler))

	// --- 3. Produtos ---
	mux.HandleFunc("GET /v1/produtos", auth(h.Product.ListProdutosHandler))
	mux.HandleFunc("GET /v1/produtos/{id}", auth(h.Product.GetProdutoHandler))
	mux.HandleFunc("PUT /v1/produtos/{id}", admin(h.Product.UpdateProdutoHandler))
	mux.HandleFunc("DELETE /v1/produtos/{id}", admin(h.Product.DeleteProdutoHandler))

	// --- 4. Lotes ---
	mux.HandleFunc("POST /v1/lotes", admin(h.Lote.CriarLoteHandler))
	mux.HandleFunc("POST /v1/lotes/editar", admin(h.Lote.EditarLoteHandler))
	mux.HandleFunc("GET /v1/lotes/{lote}", auth(h.Lote.BuscarLoteHandler))

	// --- 5. Baixas ---
	mux.HandleFunc("POST /v1/baixas", auth(h.Baixa.RegistrarBaixaHandler))
	mux.HandleFunc("GET /v1/baixas", auth(h.Baixa.HistoricoHandler))

	// --- 6. Vitrine (pública) ---
	mux.Handle("GET /v1/vitrine", limit(http.HandlerFunc(h.Vitrine.ListarVitrineHandler)))

	// --- 7. Relatórios ---
	mux.HandleFunc("GET /v1/relatorios/dashboard", auth(h.Relatorio.DashboardHandler))
	mux.HandleFunc("GET /v1/relatorios/home", auth(h.Relatorio.HomeHandler))
	mux.HandleFunc("GET /v1/relatorios/estoque.xlsx", admin(h.Relatorio.ExportarEstoqueHandler))

	// Metrics envolve o mux diretamente para enxergar r.Pattern.
	var handler http.Handler = middleware.Metrics(opts.Metrics)(mux)
	handler = middleware.AccessLog(opts.Logger)(handler)
	handler = middleware.RequestID(handler)
	return handler
}

// PingHandler é o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
