package backend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Skotchmaster/cloudmart/internal/models"
	"github.com/Skotchmaster/cloudmart/internal/service"
	"github.com/Skotchmaster/cloudmart/internal/store/dynamo"
	"github.com/Skotchmaster/cloudmart/internal/store/gormstore"
	"github.com/Skotchmaster/cloudmart/internal/store/memory"
	"github.com/Skotchmaster/cloudmart/pkg/config"
	pkgdb "github.com/Skotchmaster/cloudmart/pkg/db"
)

type Mode string

const (
	ModeDocStore Mode = "docstore"
	ModePostgres Mode = "postgres"
	ModeSQLite   Mode = "sqlite"
	ModeDegraded Mode = "degraded"
)

// Backend is the single storage backend of the process. Catalog, cart and
// orders are all served by it.
type Backend struct {
	Mode    Mode
	Catalog service.CatalogStore
	Cart    service.CartStore
	Orders  service.OrderStore

	ping  func(ctx context.Context) error
	close func() error
}

// Connected reports whether a database backend is configured and answering.
func (b *Backend) Connected(ctx context.Context) bool {
	if b.Mode == ModeDegraded || b.ping == nil {
		return false
	}
	return b.ping(ctx) == nil
}

func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return models.ErrUnavailable
	}
	return b.ping(ctx)
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open picks the backend from cfg: document store, then postgres, then
// sqlite, then the in-memory degraded mode. A configured backend that cannot
// be opened is an error, never a silent fallback.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Backend, error) {
	switch {
	case cfg.DocStoreEnabled():
		return openDocStore(ctx, cfg, logger)
	case strings.TrimSpace(cfg.DatabaseURL) != "":
		return openSQL(ctx, cfg, logger, pkgdb.DriverPostgres, cfg.DatabaseURL, ModePostgres)
	case strings.TrimSpace(cfg.SQLitePath) != "":
		return openSQL(ctx, cfg, logger, pkgdb.DriverSQLite, cfg.SQLitePath, ModeSQLite)
	default:
		logger.Warn("backend_degraded", "reason", "no database configured")
		return Degraded(), nil
	}
}

func Degraded() *Backend {
	stub := memory.Unavailable{}
	return &Backend{
		Mode:    ModeDegraded,
		Catalog: memory.NewCatalog(models.SeedProducts()),
		Cart:    stub,
		Orders:  stub,
		ping:    stub.Ping,
	}
}

func openDocStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Backend, error) {
	client, err := dynamo.NewClient(ctx, dynamo.ClientConfig{
		Endpoint:  cfg.DocStoreEndpoint,
		AccessKey: cfg.DocStoreAccessKey,
		SecretKey: cfg.DocStoreSecretKey,
		Region:    cfg.DocStoreRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}

	store := dynamo.New(client, dynamo.Tables{
		Products: cfg.DocStoreProductsTable,
		Cart:     cfg.DocStoreCartTable,
		Orders:   cfg.DocStoreOrdersTable,
	})
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping document store: %w", err)
	}
	if cfg.SeedCatalog {
		if err := store.SeedProducts(ctx, models.SeedProducts()); err != nil {
			return nil, fmt.Errorf("seed document store: %w", err)
		}
	}

	logger.Info("backend_opened", "mode", ModeDocStore, "endpoint", cfg.DocStoreEndpoint)
	return &Backend{
		Mode:    ModeDocStore,
		Catalog: store,
		Cart:    store,
		Orders:  store,
		ping:    store.Ping,
	}, nil
}

func openSQL(ctx context.Context, cfg config.Config, logger *slog.Logger, driver, dsn string, mode Mode) (*Backend, error) {
	db, err := pkgdb.Open(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", mode, err)
	}

	repo := gormstore.New(db)
	if err := repo.Migrate(ctx); err != nil {
		_ = pkgdb.Close(db)
		return nil, fmt.Errorf("migrate %s: %w", mode, err)
	}
	if cfg.SeedCatalog {
		if err := repo.SeedProducts(ctx, models.SeedProducts()); err != nil {
			_ = pkgdb.Close(db)
			return nil, fmt.Errorf("seed %s: %w", mode, err)
		}
	}

	logger.Info("backend_opened", "mode", mode)
	return &Backend{
		Mode:    mode,
		Catalog: repo,
		Cart:    repo,
		Orders:  repo,
		ping:    repo.Ping,
		close:   func() error { return pkgdb.Close(db) },
	}, nil
}
