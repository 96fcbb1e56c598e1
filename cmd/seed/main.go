// Command seed applies migrations and loads the case catalog into Postgres.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/Fukolomka/Sitea/internal/bootstrap"
	"github.com/Fukolomka/Sitea/internal/catalog"
	"github.com/Fukolomka/Sitea/internal/config"
	"github.com/Fukolomka/Sitea/internal/database"
	"github.com/Fukolomka/Sitea/internal/database/postgres"
)

func main() {
	path := flag.String("catalog", config.ConfigPathCatalog, "path to the catalog JSON file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	defer logFile.Close()

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(),
		cfg.Database.MaxConns, cfg.Database.MaxIdleTime, cfg.Database.MaxLifetime)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	version, err := database.Migrate(ctx, pool)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	slog.Info("Database schema ready", "version", version)

	if _, err := bootstrap.SyncCatalog(ctx, catalog.NewLoader(), postgres.NewCatalogRepository(pool), *path); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
