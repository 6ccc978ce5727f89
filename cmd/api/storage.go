package main

import (
	"context"
	"fmt"
	"io"

	"github.com/angelmondragon/lavka-miniapp/api/controllers"
	"github.com/angelmondragon/lavka-miniapp/api/middleware"
	"github.com/angelmondragon/lavka-miniapp/pkg/blobstore"
	"github.com/angelmondragon/lavka-miniapp/pkg/config"
	"github.com/angelmondragon/lavka-miniapp/pkg/db"
	"github.com/angelmondragon/lavka-miniapp/pkg/enums"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
	"github.com/angelmondragon/lavka-miniapp/pkg/migrate"
	pkgredis "github.com/angelmondragon/lavka-miniapp/pkg/redis"
)

// storage is the backend the persisted stores and idempotency records use.
type storage struct {
	blobs       blobstore.Store
	pinger      controllers.Pinger
	idempotency pkgredis.IdempotencyStore
	closer      io.Closer
}

func (s storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func openStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage, error) {
	memoryIdempotency := middleware.NewMemoryIdempotencyStore(cfg.Session.MaxSessions, middleware.CriticalIdempotencyTTL)

	switch cfg.Storage.Driver {
	case enums.StorageDriverMemory:
		return storage{blobs: blobstore.NewMemory(), idempotency: memoryIdempotency}, nil

	case enums.StorageDriverRedis:
		client, err := pkgredis.New(ctx, cfg.Redis, cfg.Storage.Namespace, logg)
		if err != nil {
			return storage{}, fmt.Errorf("bootstrap redis: %w", err)
		}
		return storage{
			blobs:       blobstore.NewRedis(client),
			pinger:      client,
			idempotency: client,
			closer:      client,
		}, nil

	case enums.StorageDriverSQLite, enums.StorageDriverPostgres:
		client, err := db.New(ctx, cfg.Storage.Driver, cfg.DB, logg)
		if err != nil {
			return storage{}, fmt.Errorf("bootstrap database: %w", err)
		}
		if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
			_ = client.Close()
			return storage{}, fmt.Errorf("run dev migrations: %w", err)
		}
		return storage{
			blobs:       blobstore.NewSQL(client.DB()),
			pinger:      client,
			idempotency: memoryIdempotency,
			closer:      client,
		}, nil
	}
	return storage{}, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}
