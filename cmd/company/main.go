package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/hiringboard/internal/company/auth"
	"github.com/gartstein/hiringboard/internal/company/config"
	"github.com/gartstein/hiringboard/internal/company/controller"
	gorm "github.com/gartstein/hiringboard/internal/company/db"
	"github.com/gartstein/hiringboard/internal/company/events"
	"github.com/gartstein/hiringboard/internal/company/handlers"
	"github.com/gartstein/hiringboard/internal/company/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
)

// startupTimeout bounds how long dependencies are retried at boot.
const startupTimeout = 30 * time.Second

type eventProducer interface {
	Produce(eventType events.EventType, company *models.Company)
	Close()
}

func main() {
	logger := initLogger()
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	repo, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer repo.Close()

	producer := initProducer(cfg, logger)
	defer producer.Close()

	companySvc := controller.NewCompanyService(repo, producer, logger)

	authInterceptor := auth.NewAuthInterceptor(cfg.JWTSecret,
		handlers.MethodCreateCompany,
		handlers.MethodDeleteCompany,
	)
	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger, grpc.UnaryInterceptor(authInterceptor.Unary()))
	server.RegisterGRPCHandler(handlers.NewCompanyHandler(companySvc, logger))

	gin.SetMode(gin.ReleaseMode)
	server.RegisterHTTPHandler(handlers.NewRouter(
		handlers.NewHTTPHandler(companySvc, logger),
		handlers.RouterConfig{
			JWTSecret: cfg.JWTSecret,
			RateLimit: rate.Limit(cfg.RateLimitRPS),
			RateBurst: cfg.RateLimitBurst,
			Ping:      repo.Ping,
		},
		logger,
	))

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, write endpoints are unauthenticated")
	}

	if err := server.Listen(); err != nil {
		logger.Fatal("Failed to start servers", zap.Error(err))
	}
	go func() {
		if err := server.Serve(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

func newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = startupTimeout
	return b
}

// initDatabase connects to the configured database, retrying while it comes up.
func initDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.Repository, error) {
	dbConf := &gorm.Config{
		Driver:   cfg.DBDriver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		Path:     cfg.DBPath,
	}

	var repo *gorm.Repository
	err := backoff.RetryNotify(func() error {
		var err error
		repo, err = gorm.NewRepository(dbConf)
		return err
	}, newBackOff(), func(err error, next time.Duration) {
		logger.Warn("database not ready, retrying", zap.Error(err), zap.Duration("next", next))
	})
	return repo, err
}

// initProducer returns a Kafka producer, or a no-op one when no brokers are
// configured or the topic cannot be prepared.
func initProducer(cfg *config.Config, logger *zap.Logger) eventProducer {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("no Kafka brokers configured, events disabled")
		return events.NopProducer{}
	}

	err := backoff.Retry(func() error {
		return events.EnsureTopic(cfg.KafkaBrokers, cfg.Topic, logger)
	}, newBackOff())
	if err != nil {
		logger.Error("Kafka unavailable, events disabled", zap.Error(err))
		return events.NopProducer{}
	}
	return events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down servers.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Servers stopped properly")
}
