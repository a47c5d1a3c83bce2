package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thelegendaryarticuno/myfashion/internal/backend"
	"github.com/thelegendaryarticuno/myfashion/internal/config"
	"github.com/thelegendaryarticuno/myfashion/internal/event"
	handler "github.com/thelegendaryarticuno/myfashion/internal/handler/http"
	"github.com/thelegendaryarticuno/myfashion/internal/otp"
	"github.com/thelegendaryarticuno/myfashion/internal/recent"
	"github.com/thelegendaryarticuno/myfashion/internal/service"
	"github.com/thelegendaryarticuno/myfashion/internal/session"
	"github.com/thelegendaryarticuno/myfashion/pkg/health"
	"github.com/thelegendaryarticuno/myfashion/pkg/httpclient"
	pkgkafka "github.com/thelegendaryarticuno/myfashion/pkg/kafka"
	"github.com/thelegendaryarticuno/myfashion/pkg/middleware"
	"github.com/thelegendaryarticuno/myfashion/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize tracing.
	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Initialize Redis client.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Fashion backend client behind a circuit breaker.
	clientCfg := httpclient.DefaultConfig()
	clientCfg.Timeout = time.Duration(cfg.BackendTimeoutSeconds) * time.Second
	breaker := httpclient.NewBreakerClient(
		httpclient.New(clientCfg),
		httpclient.DefaultBreakerConfig("fashion-api"),
		logger,
	)
	backendClient := backend.New(cfg.BackendBaseURL, breaker, logger)
	logger.Info("fashion backend client initialized",
		slog.String("base_url", cfg.BackendBaseURL),
	)

	// Build the dependency graph.
	otpTTL := time.Duration(cfg.OTPSessionTTLMinutes) * time.Minute
	recentTTL := time.Duration(cfg.RecentTTLHours) * time.Hour
	snapshotMaxAge := time.Duration(cfg.SnapshotMaxAgeSeconds) * time.Second

	otpSessions := otp.NewRedisRepository(rdb, otpTTL)
	recentRepo := recent.NewRedisRepository(rdb, recentTTL)
	eventProducer := event.NewProducer(producer, logger)
	tokens := session.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	flow := otp.NewFlow(backendClient, otpSessions, logger)
	storefrontService := service.NewStorefrontService(backendClient, recentRepo, eventProducer, logger, snapshotMaxAge)
	authService := service.NewAuthService(flow, tokens, eventProducer, logger)
	adminService := service.NewAdminService(backendClient, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(storefrontService, authService, adminService, tokens, healthHandler, logger, handler.RouterConfig{
		OTPRatePerSecond: cfg.OTPRatePerSecond,
		OTPBurst:         cfg.OTPBurst,
		CORS:             corsCfg,
		PprofCIDRs:       cfg.PprofCIDRs,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close Redis client.
	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	// Flush pending trace spans.
	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
