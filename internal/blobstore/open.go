package blobstore

import (
	"context"
	"fmt"

	"github.com/playperu/moneybags/internal/database"
	"github.com/playperu/moneybags/internal/migrations"
)

// Backend names a blob store implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

func (b Backend) Valid() bool {
	switch b {
	case BackendSQLite, BackendRedis, BackendMemory:
		return true
	}
	return false
}

type Options struct {
	Backend  Backend
	DBPath   string
	RedisURL string
}

// Open connects the configured backend. The returned close function
// releases its connection and is never nil.
func Open(ctx context.Context, opts Options) (Store, func() error, error) {
	switch opts.Backend {
	case BackendSQLite:
		db, err := database.Open(ctx, opts.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to sqlite: %w", err)
		}
		if err := migrations.Run(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		return NewSQLite(db), db.Close, nil

	case BackendRedis:
		rdb, err := OpenRedis(ctx, opts.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return NewRedis(rdb), rdb.Close, nil

	case BackendMemory:
		return NewMemory(), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", opts.Backend)
}
