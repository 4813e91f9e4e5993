package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orders-hertz/biz/model"
	"orders-hertz/conf"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrStorage marks failures of the underlying datastore.
var ErrStorage = errors.New("storage error")

// Store owns the connection pool. Callers never hold a handle outside WithSession.
type Store struct {
	db *gorm.DB
}

// Open connects to the configured datastore and creates the schema if missing.
func Open(cfg conf.Database) (*Store, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get DB instance: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMs > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMs) * time.Millisecond)
	}

	s := &Store{db: db}
	if err := s.AutoMigrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

func dialectorFor(cfg conf.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return sqlite.Open(sqliteDSN(cfg.DSN)), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN adds a busy timeout so concurrent writers wait on the file lock.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)"
}

// AutoMigrate is idempotent: it only creates the orders table when absent.
func (s *Store) AutoMigrate() error {
	if s.db == nil {
		return gorm.ErrInvalidDB
	}
	if err := s.db.AutoMigrate(&model.Order{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// WithSession runs fn in a transaction scoped to ctx. The transaction is
// committed when fn returns nil and rolled back on error or panic.
func (s *Store) WithSession(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fmt.Errorf("%w: %v", ErrStorage, gorm.ErrInvalidDB)
	}
	if err := s.db.WithContext(ctx).Transaction(fn); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
