// Package cmd Application assembly: configuration, logging, database,
// services, HTTP server and graceful shutdown.
package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/juanpineyrob/dscommerce/api"
	apicatalog "github.com/juanpineyrob/dscommerce/api/catalog"
	"github.com/juanpineyrob/dscommerce/api/health"
	apiorder "github.com/juanpineyrob/dscommerce/api/order"
	apiuser "github.com/juanpineyrob/dscommerce/api/user"
	authapp "github.com/juanpineyrob/dscommerce/application/auth"
	catalogapp "github.com/juanpineyrob/dscommerce/application/catalog"
	orderapp "github.com/juanpineyrob/dscommerce/application/order"
	userapp "github.com/juanpineyrob/dscommerce/application/user"
	"github.com/juanpineyrob/dscommerce/config"
	"github.com/juanpineyrob/dscommerce/infrastructure/persistence/mysql"
	"github.com/juanpineyrob/dscommerce/infrastructure/security"
	"github.com/juanpineyrob/dscommerce/pkg/logger"
)

// App the assembled application.
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
}

// NewApp wires the whole application from configuration.
func NewApp(cfg *config.Config) *App {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env))

	db := connectDatabase(cfg)

	productRepo := mysql.NewProductRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	userRepo := mysql.NewUserRepository(db)
	txManager := mysql.NewTxManager(db)

	tokens := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	gate := authapp.NewGate()

	authService := authapp.NewService(userRepo, tokens)
	catalogService := catalogapp.NewService(productRepo, categoryRepo)
	orderService := orderapp.NewService(orderRepo, productRepo, userRepo, gate, txManager)
	userService := userapp.NewService(userRepo)

	router := api.NewRouter(
		cfg,
		health.NewController(cfg),
		apicatalog.NewController(catalogService, tokens),
		apiorder.NewController(orderService, tokens),
		apiuser.NewController(authService, userService, tokens),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{config: cfg, router: router, server: server, db: db}
}

func connectDatabase(cfg *config.Config) *gorm.DB {
	mysqlConfig := &mysql.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}

	db, err := mysqlConfig.Connect()
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Failed to ping MySQL", zap.Error(err))
	}

	logger.Info("Connected to MySQL successfully")

	// Schema management belongs to ops outside development.
	if cfg.IsDevelopment() {
		if err := mysql.Migrate(db); err != nil {
			logger.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}

	return db
}

// Run starts the HTTP server and blocks until a shutdown signal arrives.
func (a *App) Run() {
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	logger.Info("Server stopped")
	_ = logger.Sync()
}

// GetServer returns the gin engine, for tests.
func (a *App) GetServer() http.Handler {
	return a.server.Handler
}
