package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/proposalgen/proposal-backend/internal/ai"
	"github.com/proposalgen/proposal-backend/internal/config"
	"github.com/proposalgen/proposal-backend/internal/db"
	"github.com/proposalgen/proposal-backend/internal/export"
	httpHandlers "github.com/proposalgen/proposal-backend/internal/http/handlers"
	httpRouter "github.com/proposalgen/proposal-backend/internal/http/router"
	"github.com/proposalgen/proposal-backend/internal/logger"
	"github.com/proposalgen/proposal-backend/internal/repository"
	"github.com/proposalgen/proposal-backend/internal/service"
	"github.com/proposalgen/proposal-backend/internal/storage"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	migrations, err := db.MigrationsFS(cfg.DatabaseDriver, cfg.MigrationsPath)
	if err != nil {
		log.Fatalf("main: не найдены миграции: %v", err)
	}
	if err := db.RunMigrations(ctx, dbConn, migrations); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Инициализируем вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	artifactStorage, err := storage.NewArtifactStorage(cfg.Export.OutputDir)
	if err != nil {
		log.Fatalf("main: не удалось подготовить каталог выгрузок: %v", err)
	}

	if cfg.AI.APIKey == "" {
		logger.Log.Warn("main: AI_API_KEY не задан, генерация будет отклоняться")
	}
	aiClient := ai.NewClient(ai.ClientConfig{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Timeout: cfg.AI.Timeout,
		Options: ai.GenerateOptions{
			Model:       cfg.AI.Model,
			Seed:        cfg.AI.Seed,
			Temperature: cfg.AI.Temperature,
			MaxTokens:   cfg.AI.MaxTokens,
		},
	})

	renderer := export.NewRenderer(cfg.Export)
	if err := renderer.Available(); err != nil {
		logger.Log.WithError(err).Warn("main: движок PDF недоступен, выгрузка в PDF будет отклоняться")
	}
	exporter := export.NewExporter(renderer)

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	proposalRepo := repository.NewProposalRepository(dbConn)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	proposalService := service.NewProposalService(proposalRepo, aiClient, exporter, artifactStorage)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	proposalHandler := httpHandlers.NewProposalHandler(proposalService)
	healthHandler := httpHandlers.NewHealthHandler(dbConn, artifactStorage.Dir(), renderer)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, proposalHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	logger.Log.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
