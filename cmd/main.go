package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/guardian/internal/config"
	v1 "github.com/shenikar/guardian/internal/handler/http/v1"
	"github.com/shenikar/guardian/internal/location"
	"github.com/shenikar/guardian/internal/repository"
	"github.com/shenikar/guardian/internal/service"
	"github.com/shenikar/guardian/internal/session"
	"github.com/shenikar/guardian/internal/sos"
	"github.com/shenikar/guardian/internal/stream"
	"github.com/shenikar/guardian/internal/webhook"
	"github.com/shenikar/guardian/pkg/logger"
	"github.com/shenikar/guardian/pkg/postgres"
	redisclient "github.com/shenikar/guardian/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/guardian/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Guardian Safety API
// @version 1.0
// @description Personal safety companion: emergency contacts, location tracking and SOS.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Поток геолокации и поток событий клиентам
	relay := location.NewRelay(redisClient, log)
	if err := relay.Start(ctx); err != nil {
		log.Fatalf("Failed to start location relay: %v", err)
	}
	hub := stream.NewHub(redisClient, log)
	if err := hub.Start(ctx); err != nil {
		log.Fatalf("Failed to start stream hub: %v", err)
	}

	// Инициализация издателя и воркера вебхуков
	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	// Инициализация репозиториев
	profileRepo := repository.NewProfileRepository(dbpool, redisClient, cfg.ContactsCacheTTL)

	// Инициализация сервисов
	contactService := service.NewContactService(profileRepo, hub, log)
	sessions := session.NewManager(session.ManagerConfig{
		Provider: relay,
		Options: location.Options{
			HighAccuracy: cfg.LocationHighAccuracy,
			Timeout:      cfg.LocationFixTimeout,
			MaxAge:       cfg.LocationMaxAge,
		},
		Threshold:    cfg.SOSHoldThreshold,
		Scheduler:    sos.RealScheduler(),
		HistoryLimit: cfg.HistoryLimit,
		Listeners:    hub.ForUser,
		Notifier:     service.NewAlertNotifier(contactService, webhookPublisher, log),
	}, log)
	safetyService := service.NewSafetyService(sessions, contactService, relay, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(contactService, safetyService, hub, log, cfg.JWTSecret, cfg.WSAllowedOrigins)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Сессии закрываются до остановки потоков
	sessions.CloseAll()
	cancel()
	webhookWorker.Wait()

	log.Info("Server gracefully stopped")
}
