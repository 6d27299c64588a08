package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/galaxy/internal/error_values"
	"github.com/limbo/galaxy/pkg/entity"
)

// OwnedSchema maps a record kind onto its table.
type OwnedSchema[T any] struct {
	Table string
	// Columns written on create, "id" first. user_id is appended by the repository.
	InsertColumns []string
	InsertArgs    func(rec *T) []any
	// Columns read by List, in ScanDest order.
	SelectColumns []string
	ScanDest      func(rec *T) []any
	OrderBy       string
	// Columns a patch may touch.
	Updatable []string
	// Statements run in the delete transaction with $1 = id, $2 = user_id.
	Cascade []string
}

type OwnedRepository[T any] struct {
	conn   PgConnection
	schema OwnedSchema[T]

	listQuery   string
	insertQuery string
	deleteQuery string
}

func NewOwnedRepo[T any](conn PgConnection, schema OwnedSchema[T]) *OwnedRepository[T] {
	insertCols := append(slices.Clone(schema.InsertColumns), "user_id")
	placeholders := make([]string, len(insertCols))
	for i := range insertCols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	list := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1`, strings.Join(schema.SelectColumns, ", "), schema.Table)
	if schema.OrderBy != "" {
		list += " ORDER BY " + schema.OrderBy
	}
	return &OwnedRepository[T]{
		conn:        conn,
		schema:      schema,
		listQuery:   list + ";",
		insertQuery: fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s);`, schema.Table, strings.Join(insertCols, ", "), strings.Join(placeholders, ", ")),
		deleteQuery: fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2;`, schema.Table),
	}
}

func (or *OwnedRepository[T]) List(ctx context.Context, uid uuid.UUID) ([]T, error) {
	rows, err := or.conn.Query(ctx, or.listQuery, uid)
	if err != nil {
		return nil, errors.New("listing " + or.schema.Table + " error: " + err.Error())
	}
	defer rows.Close()
	result := make([]T, 0)
	for rows.Next() {
		var rec T
		if err = rows.Scan(or.schema.ScanDest(&rec)...); err != nil {
			return nil, errors.New("scanning " + or.schema.Table + " row error: " + err.Error())
		}
		result = append(result, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected " + or.schema.Table + " rows error: " + err.Error())
	}
	return result, nil
}

func (or *OwnedRepository[T]) Create(ctx context.Context, uid uuid.UUID, rec *T) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	args := append(or.schema.InsertArgs(rec), uid)
	_, err := or.conn.Exec(ctx, or.insertQuery, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return errorvalues.ErrDuplicateID
		}
		return errors.New("creating " + or.schema.Table + " row error: " + err.Error())
	}
	return nil
}

// Update runs a single UPDATE with the patch's columns. An empty patch does
// nothing.
func (or *OwnedRepository[T]) Update(ctx context.Context, uid uuid.UUID, id string, patch entity.Patch[T]) error {
	if patch == nil {
		return nil
	}
	changes := patch.Changes()
	if len(changes) == 0 {
		return nil
	}
	sets := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes)+2)
	for i, ch := range changes {
		if !slices.Contains(or.schema.Updatable, ch.Column) {
			return fmt.Errorf("column %q of %s is not updatable", ch.Column, or.schema.Table)
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", ch.Column, i+1))
		args = append(args, ch.Value)
	}
	args = append(args, id, uid)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d AND user_id = $%d;`,
		or.schema.Table, strings.Join(sets, ", "), len(changes)+1, len(changes)+2)
	if _, err := or.conn.Exec(ctx, query, args...); err != nil {
		return errors.New("updating " + or.schema.Table + " row error: " + err.Error())
	}
	return nil
}

func (or *OwnedRepository[T]) Delete(ctx context.Context, uid uuid.UUID, id string) error {
	if len(or.schema.Cascade) == 0 {
		if _, err := or.conn.Exec(ctx, or.deleteQuery, id, uid); err != nil {
			return errors.New("deleting " + or.schema.Table + " row error: " + err.Error())
		}
		return nil
	}
	tx, err := or.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning transaction error: " + err.Error())
	}
	if _, err = tx.Exec(ctx, or.deleteQuery, id, uid); err != nil {
		tx.Rollback(ctx)
		return errors.New("deleting " + or.schema.Table + " row error: " + err.Error())
	}
	for _, stmt := range or.schema.Cascade {
		if _, err = tx.Exec(ctx, stmt, id, uid); err != nil {
			tx.Rollback(ctx)
			return errors.New("deleting dependent rows of " + or.schema.Table + " error: " + err.Error())
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing transaction error: " + err.Error())
	}
	return nil
}
