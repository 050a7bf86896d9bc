package storage

import (
	"context"

	"github.com/01moynul/grocery-storefront/internal/config"
	"github.com/01moynul/grocery-storefront/internal/database"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Open builds the KV driver selected by cfg.StorageDriver. The returned
// close func releases the driver's connections and is never nil.
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (KV, func() error, error) {
	noop := func() error { return nil }
	log = log.WithField("driver", cfg.StorageDriver)

	switch cfg.StorageDriver {
	case config.DriverMemory:
		log.Warn("cart storage is in-memory, carts will not survive a restart")
		return NewMemory(), noop, nil

	case config.DriverFile:
		kv, err := NewFile(cfg.StorageDir)
		if err != nil {
			return nil, noop, err
		}
		log.WithField("dir", cfg.StorageDir).Info("cart storage ready")
		return kv, noop, nil

	case config.DriverMySQL:
		db, err := database.OpenDB(ctx, cfg.DBDSN, log)
		if err != nil {
			return nil, noop, err
		}
		kv := NewSQL(db)
		if err := kv.Migrate(ctx); err != nil {
			db.Close()
			return nil, noop, err
		}
		log.Info("cart storage ready")
		return kv, db.Close, nil

	case config.DriverRedis:
		kv := NewRedis(cfg.RedisAddr, cfg.RedisNamespace)
		if err := kv.WaitReady(ctx, 10, log); err != nil {
			kv.Close()
			return nil, noop, err
		}
		return kv, kv.Close, nil
	}

	return nil, noop, errors.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
