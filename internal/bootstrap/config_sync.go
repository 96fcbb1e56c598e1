package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Fukolomka/Sitea/internal/catalog"
	"github.com/Fukolomka/Sitea/internal/repository"
)

// SyncCatalog loads the catalog file at path and upserts it into the
// database. Validation happens inside SyncToDatabase.
func SyncCatalog(ctx context.Context, loader catalog.Loader, repo repository.Catalog, path string) (*catalog.SyncResult, error) {
	slog.Info(LogMsgSyncingCatalog, "path", path)

	cfg, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadCatalogFailed, err)
	}

	result, err := loader.SyncToDatabase(ctx, cfg, repo)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSyncCatalogFailed, err)
	}

	slog.Info(LogMsgCatalogSynced,
		"items", result.ItemsUpserted,
		"cases", result.CasesUpserted)
	return result, nil
}
