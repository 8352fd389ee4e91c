package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/QaMarcosEd/calcadosAraujo/config"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/database"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/repository/userrepo"
	"github.com/QaMarcosEd/calcadosAraujo/internal/service/userservice"
)

// senha lê a senha inicial do ambiente; sem override vale a senha padrão da loja.
func senha(key, padrao string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return padrao
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadMigrationConfig()
	appLog, err := logger.NewLogger(cfg.LogLevel, cfg.Environment, cfg.ServiceName+"-seed")
	if err != nil {
		log.Fatalf("❌ Falha ao iniciar logger: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()

	// O seed não emite tokens.
	svc := userservice.NewService(userrepo.NewUserRepository(db, cfg.DBTimeout, appLog), nil, appLog)

	contas := userservice.ContasPadrao(
		senha("SEED_ADMIN_PASSWORD", "loja@2380"),
		senha("SEED_DIANA_PASSWORD", "diana@2380"),
		senha("SEED_DEISE_PASSWORD", "deise@2380"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	criadas, err := svc.Seed(ctx, contas)
	if err != nil {
		appLog.Fatal("Seed falhou.", err)
	}
	appLog.Info("Seed concluído.", map[string]interface{}{"criadas": criadas, "total": len(contas)})
}
