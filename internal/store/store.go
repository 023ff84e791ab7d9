package store

import (
	"errors"
	"fmt"
	"sync/atomic"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abhisek/planwise/internal/config"
	"github.com/abhisek/planwise/internal/logger"
)

// ErrNotFound is returned when a requested record does not exist or does
// not belong to the requesting user.
var ErrNotFound = errors.New("record not found")

// Store wraps the gorm DB and exposes typed query methods.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects to the configured database and runs auto-migration.
// sqlite is the default; postgres is selected via config for deployments
// that outgrow a single file.
func Open(cfg config.DB, log *logger.Logger) (*Store, error) {
	var dial gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		path, err := cfg.SQLitePath()
		if err != nil {
			return nil, fmt.Errorf("resolve sqlite path: %w", err)
		}
		// WAL keeps concurrent API reads off the writer's back.
		dial = sqlite.Open(path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres driver selected but DATABASE_URL is empty")
		}
		dial = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown database driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, log: log.With("component", "store")}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return s, nil
}

var testDBSeq atomic.Int64

// OpenForTest opens a fresh in-memory sqlite store. Each call gets its own
// database; cache=shared only spans gorm's pooled connections.
func OpenForTest(log *logger.Logger) (*Store, error) {
	name := fmt.Sprintf("file:planwise_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, log: log}
	return s, s.migrate()
}

func (s *Store) migrate() error {
	return s.db.AutoMigrate(
		&User{},
		&Subject{},
		&Topic{},
		&Plan{},
		&Session{},
		&StudyLog{},
	)
}

// DB returns the underlying gorm handle for raw queries.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// notFound translates gorm's sentinel into the store's.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
