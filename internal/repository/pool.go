package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/limbo/galaxy/migrations"
	"github.com/limbo/galaxy/pkg/cleanup"
)

// NewPool opens and pings a connection pool. Closing the pool is registered
// as a cleanup job.
func NewPool(ctx context.Context, cfg DBConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, errors.New("creating connection pool error: " + err.Error())
	}
	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, errors.New("error while pinging connection pool: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return pool, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, cfg DBConfig) error {
	db, err := sql.Open("pgx", cfg.ConnString())
	if err != nil {
		return errors.New("opening db for migrations error: " + err.Error())
	}
	defer db.Close()
	goose.SetBaseFS(migrations.FS)
	if err = goose.SetDialect("postgres"); err != nil {
		return errors.New("setting goose dialect error: " + err.Error())
	}
	if err = goose.UpContext(ctx, db, "."); err != nil {
		return errors.New("applying migrations error: " + err.Error())
	}
	return nil
}
