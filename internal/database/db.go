package database

import (
	"context"
	"database/sql"
	"fmt"

	"issuetracker/internal/config"
	"issuetracker/internal/repository"
	"issuetracker/internal/repository/postgres"
	"issuetracker/internal/repository/sqlite"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the process-wide record store handle. It is opened once at
// startup and closed on shutdown.
type Store struct {
	repository.IssueStore
	close func()
}

func (s *Store) Close() { s.close() }

// Open connects the backend selected by cfg.StoreDriver and makes sure the
// issues table exists.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case "postgres", "":
		pool, err := OpenPostgres(ctx, cfg.DBURL)
		if err != nil {
			return nil, err
		}
		repo := postgres.NewIssueRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{IssueStore: repo, close: pool.Close}, nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{IssueStore: sqlite.NewIssueRepo(db), close: closeDB(db)}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func OpenPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return pool, nil
}

func closeDB(db *sql.DB) func() {
	return func() { _ = db.Close() }
}
