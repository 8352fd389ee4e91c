package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	// Nossos pacotes de infraestrutura e utilitários
	"github.com/QaMarcosEd/calcadosAraujo/config"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/cache"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/database"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/metrics"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/token"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/whatsapp"

	// Camadas para Injeção de Dependências
	"github.com/QaMarcosEd/calcadosAraujo/internal/api/baixa"
	"github.com/QaMarcosEd/calcadosAraujo/internal/api/lote"
	"github.com/QaMarcosEd/calcadosAraujo/internal/api/product"
	"github.com/QaMarcosEd/calcadosAraujo/internal/api/relatorio"
	"github.com/QaMarcosEd/calcadosAraujo/internal/api/router"
	"github.com/QaMarcosEd/calcadosAraujo/internal/api/user"
	"github.com/QaMarcosEd/calcadosAraujo/internal/api/vitrine"
	"github.com/QaMarcosEd/calcadosAraujo/internal/repository/baixarepo"
	"github.com/QaMarcosEd/calcadosAraujo/internal/repository/productrepo"
	"github.com/QaMarcosEd/calcadosAraujo/internal/repository/userrepo"
	"github.com/QaMarcosEd/calcadosAraujo/internal/service/baixaservice"
	"github.com/QaMarcosEd/calcadosAraujo/internal/service/loteservice"
	"github.com/QaMarcosEd/calcadosAraujo/internal/service/productservice"
	"github.com/QaMarcosEd/calcadosAraujo/internal/service/relatorioservice"
	"github.com/QaMarcosEd/calcadosAraujo/internal/service/userservice"
	"github.com/QaMarcosEd/calcadosAraujo/internal/service/vitrineservice"
)

// @title Calçados Araújo API
// @version 1.0
// @description Estoque, vendas e vitrine da loja.
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	// Preços saem como número no JSON, não como string.
	decimal.MarshalJSONWithoutQuotes = true

	// 1. Configuração e Logger
	cfg := config.LoadConfig()
	appLog, err := logger.NewLogger(cfg.LogLevel, cfg.Environment, cfg.ServiceName)
	if err != nil {
		log.Fatalf("❌ Falha ao iniciar logger: %v", err)
	}
	if z, ok := appLog.(*logger.ZapLogger); ok {
		defer z.Sync()
	}
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis). Sem Redis a loja continua funcionando com cache local.
	var cacheClient cache.Client
	redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
	if err != nil {
		appLog.Warn("Redis indisponível, usando cache em memória.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		cacheClient = cache.NewMemoryClient()
	} else {
		defer redisClient.Close()
		cacheClient = redisClient
		appLog.Info("Conexão Redis estabelecida.", nil)
	}

	// C. Métricas, tokens e link de WhatsApp
	appMetrics := metrics.New(cfg.ServiceName)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.AdminSessionTTL, cfg.FuncionarioSessionTTL)
	links, err := whatsapp.NewLinkBuilder(cfg.WhatsAppNumber, cfg.WhatsAppRegion)
	if err != nil {
		appLog.Fatal("Número de WhatsApp da loja inválido.", err)
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler
	productRepo := productrepo.NewProductRepository(db, cfg.DBTimeout, appLog)
	baixaRepo := baixarepo.NewBaixaRepository(db, cfg.DBTimeout, appLog)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, appLog)

	vitrineSvc := vitrineservice.NewService(productRepo, cacheClient, links, appMetrics, cfg.VitrineCacheTTL, appLog)
	productSvc := productservice.NewService(productRepo, vitrineSvc, appLog)
	loteSvc := loteservice.NewService(productRepo, vitrineSvc, appMetrics, appLog)
	baixaSvc := baixaservice.NewService(productRepo, baixaRepo, vitrineSvc, appMetrics, appLog)
	relatorioSvc := relatorioservice.NewService(productRepo, appLog)
	userSvc := userservice.NewService(userRepo, tokenSvc, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	// 4. Roteador/Servidor
	r := router.NewRouter(router.Handlers{
		User:      user.NewHandler(userSvc, appLog),
		Product:   product.NewHandler(productSvc, appLog),
		Lote:      lote.NewHandler(loteSvc, appLog),
		Baixa:     baixa.NewHandler(baixaSvc, appLog),
		Vitrine:   vitrine.NewHandler(vitrineSvc, appLog),
		Relatorio: relatorio.NewHandler(relatorioSvc, appLog),
	}, router.Options{
		Tokens:          tokenSvc,
		Cache:           cacheClient,
		Metrics:         appMetrics,
		Logger:          appLog,
		RateLimit:       cfg.RateLimitMaxRequests,
		RateLimitPeriod: cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
