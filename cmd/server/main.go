package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"snackbar/internal/config"
	"snackbar/internal/database"
	"snackbar/internal/handlers"
	"snackbar/internal/logger"
	"snackbar/internal/middleware"
	"snackbar/internal/redis"
	"snackbar/internal/repository"
	"snackbar/internal/services"
)

func main() {
	// Exit only after serve has run its deferred cleanup.
	os.Exit(serve())
}

func serve() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Print("Failed to load configuration: ", err)
		return 1
	}

	lg, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Print("Failed to create logger: ", err)
		return 1
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return exitCode(lg, run(ctx, cfg, lg))
}

// exitCode logs a failed run and maps it onto the process exit status.
func exitCode(lg *zap.Logger, err error) int {
	if err != nil {
		lg.Error("Server failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	lg.Info("Initializing",
		zap.String("port", cfg.ServerPort),
		zap.String("storage", cfg.StorageDriver),
		zap.String("timezone", cfg.Location.String()),
	)

	// Initialize storage
	var orderRepo repository.OrderRepository
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		lg.Warn("Using in-memory order storage, orders are lost on restart")
		orderRepo = repository.NewMemoryOrderRepository()
	default:
		db, err := database.Initialize(cfg.DatabaseURL, database.Options{
			MaxOpenConns: cfg.DBMaxOpenConns,
			MaxIdleConns: cfg.DBMaxIdleConns,
			LogLevel:     cfg.DBLogLevel,
		})
		if err != nil {
			return errors.Wrap(err, "initialize database")
		}
		defer func() { _ = database.Close(db) }()
		orderRepo = repository.NewOrderRepository(db)
	}

	// Initialize login limiter
	limiter := services.NewNoopLoginLimiter()
	if cfg.RedisURL != "" {
		redisClient, err := redis.Initialize(cfg.RedisURL)
		if err != nil {
			return errors.Wrap(err, "initialize redis")
		}
		defer func() { _ = redisClient.Close() }()
		limiter = redis.NewLoginLimiter(redisClient, cfg.LoginMaxAttempts, cfg.LoginWindow)
		lg.Info("Login limiter enabled",
			zap.Int("max_attempts", cfg.LoginMaxAttempts),
			zap.Duration("window", cfg.LoginWindow),
		)
	}

	passwordHash := []byte(cfg.AdminPasswordHash)
	if len(passwordHash) == 0 {
		hash, err := services.HashPassword(cfg.AdminPassword)
		if err != nil {
			return err
		}
		passwordHash = hash
	}

	// Initialize services
	sessions := services.NewSessionRegistry(cfg.SessionTimeout, time.Now)
	orderService := services.NewOrderService(orderRepo, cfg.Location, time.Now)
	adminService := services.NewAdminService(passwordHash, sessions, limiter, lg.Named("admin"))

	// Setup routes
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.RouterConfig{
		Orders:   orderService,
		Admin:    adminService,
		Sessions: sessions,
		Store:    orderRepo,
		Metrics:  middleware.NewMetrics("api"),
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           3600,
		},
		TrustedProxies: cfg.TrustedProxies,
		Logger:         lg.Named("http"),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	lg.Info("Server stopped")
	return nil
}
