package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config armazena todas as configurações da API da loja.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string
	ServiceName string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis)
	RedisAddr       string
	CacheTimeout    time.Duration
	VitrineCacheTTL time.Duration

	// Segurança (JWT). A sessão do ADMIN é bem mais curta que a do funcionário.
	JWTSecretKey          string
	AdminSessionTTL       time.Duration
	FuncionarioSessionTTL time.Duration

	// Rate Limiting das rotas públicas
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Contato da vitrine
	WhatsAppNumber string
	WhatsAppRegion string
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ServiceName: getEnv("SERVICE_NAME", "calcados-araujo"),

		// 2. Banco de Dados
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		// 3. Cache
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout:    getDurationEnv("CACHE_TIMEOUT_SEC", 2) * time.Second,
		VitrineCacheTTL: getDurationEnv("VITRINE_CACHE_TTL_SEC", 60) * time.Second,

		// 4. Segurança
		JWTSecretKey:          mustGetEnv("JWT_SECRET_KEY"),
		AdminSessionTTL:       getDurationEnv("ADMIN_SESSION_MIN", 15) * time.Minute,
		FuncionarioSessionTTL: getDurationEnv("FUNCIONARIO_SESSION_HOURS", 8) * time.Hour,

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		// 6. Vitrine
		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", "77991089772"),
		WhatsAppRegion: getEnv("WHATSAPP_REGION", "BR"),
	}

	return cfg
}

// LoadMigrationConfig carrega só o necessário para o goose e o seed.
func LoadMigrationConfig() *Config {
	return &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ServiceName: getEnv("SERVICE_NAME", "calcados-araujo"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,
	}
}

// Funções Helpers

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável numérica como time.Duration (sem unidade).
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
