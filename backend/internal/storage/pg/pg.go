package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/itchan-dev/hoots/shared/config"
	"github.com/itchan-dev/hoots/shared/logger"

	_ "github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

// New connects to postgres and brings the schema up to date.
func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := Connect(cfg.Private.Pg)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(cfg.Private.Pg.URL()); err != nil {
		db.Close()
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return &Storage{db}, nil
}

func Connect(pg config.Pg) (*sql.DB, error) {
	db, err := sql.Open("postgres", pg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// withTx runs fn in a transaction, committing only if fn succeeds.
func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}
