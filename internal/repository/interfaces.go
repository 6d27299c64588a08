package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/galaxy/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user. Returns generated id. Fails with ErrUsernameTaken on duplicate username
	Create(ctx context.Context, user *entity.User) (uuid.UUID, error)
	// Looks up user by exact (username, password hash) pair. Used for login
	FindByCredentials(ctx context.Context, username, passwordHash string) (*entity.User, error)
	// Looks up user by uid
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
}

// OwnedRepositoryI stores records addressed by a client-supplied id.
// Every method is scoped to the owner uid; other owners' rows are invisible.
type OwnedRepositoryI[T any] interface {
	// Lists owner's records in the kind's fixed order
	List(ctx context.Context, uid uuid.UUID) ([]T, error)
	// Inserts record owned by uid. Fails with ErrDuplicateID if id is taken within the kind
	Create(ctx context.Context, uid uuid.UUID, rec *T) error
	// Applies patch to (id, uid). Zero matched rows is not an error
	Update(ctx context.Context, uid uuid.UUID, id string, patch entity.Patch[T]) error
	// Deletes (id, uid) with its dependent rows. Zero matched rows is not an error
	Delete(ctx context.Context, uid uuid.UUID, id string) error
}

// KeyedRepositoryI stores at most one record per (owner, date).
type KeyedRepositoryI[T any] interface {
	List(ctx context.Context, uid uuid.UUID) ([]T, error)
	// Inserts or fully replaces the (uid, date) record with rec's payload
	Upsert(ctx context.Context, uid uuid.UUID, date string, rec *T) error
	// Deletes the (uid, date) record if present
	Delete(ctx context.Context, uid uuid.UUID, date string) error
}

type HabitLogsRepositoryI interface {
	// Marks habit done on date. Existing marks and habits not owned by uid are silently ignored
	Set(ctx context.Context, uid uuid.UUID, habitID, date string) error
	// Removes the mark if present
	Unset(ctx context.Context, uid uuid.UUID, habitID, date string) error
	List(ctx context.Context, uid uuid.UUID) ([]entity.HabitLog, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
	SSLMode  string
}

func (pgcfg *PGCfg) ConnString() string {
	conn := fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
	if pgcfg.SSLMode != "" {
		conn += "?sslmode=" + pgcfg.SSLMode
	}
	return conn
}

const (
	pgUniqueViolation = "23505"
)
