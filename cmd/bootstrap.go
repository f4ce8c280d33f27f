package cmd

import (
	"context"
	"fmt"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/lock"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/catalog/store"
	"catalog-sync/feature/catalog/woocommerce"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// buildService wires the catalog service from configuration. A nil registerer
// leaves metrics disabled.
func buildService(ctx context.Context, cfg *config.Config, logg *zap.Logger, reg prometheus.Registerer) (*catalog.Service, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logg.Info("Connected to mirror database", zap.String("driver", cfg.Database.Driver))

	st := store.New(db)
	if err := st.Prepare(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare products table: %w", err)
	}

	remote := woocommerce.NewClient(cfg.WooCommerce, logg)
	logg.Info("WooCommerce client configured", zap.Object("woocommerce", cfg.WooCommerce))

	var locker lock.Locker
	if cfg.Redis.Enabled() {
		client := lock.NewClient(cfg.Redis)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		locker = lock.NewRedisLocker(client, cfg.Redis)
		logg.Info("Cross-instance run lease enabled", zap.String("redis", cfg.Redis.Addr))
	}

	svc := catalog.NewService(remote, st, reconcile.NewGuard(locker), cfg.Sync, logg)

	if cfg.Sync.ArchiveReports {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
		svc.WithArchive(catalog.NewArchive(client, cfg.Storage.Bucket, cfg.Sync.ArchivePrefix, cfg.Sync.ArchiveKeep, logg))
		logg.Info("Report archive enabled", zap.String("bucket", cfg.Storage.Bucket), zap.String("prefix", cfg.Sync.ArchivePrefix))
	}

	if reg != nil {
		svc.WithMetrics(catalog.NewMetrics(reg))
	}

	return svc, nil
}
