// Command app runs the Sitea HTTP API.
package main

//go:generate swag init -g cmd/app/main.go -d ../../ -o ../../docs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Fukolomka/Sitea/internal/auth"
	"github.com/Fukolomka/Sitea/internal/bootstrap"
	"github.com/Fukolomka/Sitea/internal/caseopening"
	"github.com/Fukolomka/Sitea/internal/catalog"
	"github.com/Fukolomka/Sitea/internal/config"
	"github.com/Fukolomka/Sitea/internal/database"
	"github.com/Fukolomka/Sitea/internal/handler"
	"github.com/Fukolomka/Sitea/internal/server"
	"github.com/Fukolomka/Sitea/internal/user"
	"github.com/Fukolomka/Sitea/internal/wallet"
)

// @title Sitea API
// @version 1.0
// @description Case opening storefront backed by Steam login.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}

	if cfg.IsProduction() {
		warnings, err := config.ValidateEnvWithWarnings()
		if err != nil {
			slog.Error("Environment validation failed", "error", err)
			_ = logFile.Close()
			os.Exit(1)
		}
		for _, w := range warnings {
			slog.Warn("Environment warning", "detail", w)
		}
	}

	if err := run(cfg, logFile); err != nil {
		slog.Error("Application failed", "error", err)
		_ = logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logFile io.Closer) error {
	ctx := context.Background()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(),
		cfg.Database.MaxConns, cfg.Database.MaxIdleTime, cfg.Database.MaxLifetime)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		version, err := database.Migrate(ctx, dbPool)
		if err != nil {
			dbPool.Close()
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		slog.Info("Database schema ready", "version", version)
	}

	repos := bootstrap.InitializeRepositories(dbPool, cfg.Database.LockTimeout)

	cache, redisClient, err := bootstrap.NewCatalogCache(ctx, cfg.Cache)
	if err != nil {
		dbPool.Close()
		return err
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		dbPool.Close()
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	catalogService := catalog.NewService(repos.Catalog, cache)
	userService := user.NewService(repos.User, user.Config{
		AdminSteamIDs: cfg.Auth.AdminSteamIDs,
		CacheSize:     cfg.Cache.Size,
		CacheTTL:      cfg.Cache.TTL,
	})
	openingService := caseopening.NewService(repos.Opening, nil, caseopening.Config{
		Timeout:        cfg.Opening.Timeout,
		SequenceLength: cfg.Opening.SequenceLength,
	})
	walletService := wallet.NewService(repos.Wallet)

	steam := auth.NewSteam(auth.SteamConfig{
		Realm:    cfg.Auth.SteamRealm,
		ReturnTo: cfg.Auth.SteamReturnTo,
		APIKey:   cfg.Auth.SteamAPIKey,
	})

	srv := server.NewServer(cfg.Server, cfg.Opening, cfg.App.Version, server.Deps{
		DBPool:         dbPool,
		Tokens:         tokens,
		CatalogService: catalogService,
		OpeningService: openingService,
		UserService:    userService,
		WalletService:  walletService,
		AuthHandlers:   handler.NewAuthHandlers(steam, userService, tokens, cfg.Server.PublicURL, cfg.Auth.CookieSecure),
		AdminCatalog:   handler.NewAdminCatalogHandler(catalog.NewLoader(), repos.Catalog, catalogService, config.ConfigPathCatalog),
	})

	components := bootstrap.ShutdownComponents{
		Server:  srv,
		DBPool:  dbPool,
		LogFile: logFile,
	}
	if redisClient != nil {
		components.Redis = redisClient
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, components)
	return runErr
}
