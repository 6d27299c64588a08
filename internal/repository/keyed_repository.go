package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// KeyedSchema maps a (user_id, date) keyed kind onto its table.
type KeyedSchema[T any] struct {
	Table string
	// Columns besides user_id and date, in PayloadArgs order.
	PayloadColumns []string
	PayloadArgs    func(rec *T) []any
	// Destinations for user_id, date and the payload columns.
	ScanDest func(rec *T) []any
	OrderBy  string
}

type KeyedRepository[T any] struct {
	conn   PgConnection
	schema KeyedSchema[T]

	listQuery   string
	upsertQuery string
	deleteQuery string
}

func NewKeyedRepo[T any](conn PgConnection, schema KeyedSchema[T]) *KeyedRepository[T] {
	cols := append([]string{"user_id", "date"}, schema.PayloadColumns...)
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sets := make([]string, len(schema.PayloadColumns))
	for i, c := range schema.PayloadColumns {
		sets[i] = fmt.Sprintf("%s = EXCLUDED.%s", c, c)
	}
	list := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1`, strings.Join(cols, ", "), schema.Table)
	if schema.OrderBy != "" {
		list += " ORDER BY " + schema.OrderBy
	}
	return &KeyedRepository[T]{
		conn:      conn,
		schema:    schema,
		listQuery: list + ";",
		upsertQuery: fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (user_id, date) DO UPDATE SET %s;`,
			schema.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(sets, ", ")),
		deleteQuery: fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND date = $2;`, schema.Table),
	}
}

func (kr *KeyedRepository[T]) List(ctx context.Context, uid uuid.UUID) ([]T, error) {
	rows, err := kr.conn.Query(ctx, kr.listQuery, uid)
	if err != nil {
		return nil, errors.New("listing " + kr.schema.Table + " error: " + err.Error())
	}
	defer rows.Close()
	result := make([]T, 0)
	for rows.Next() {
		var rec T
		if err = rows.Scan(kr.schema.ScanDest(&rec)...); err != nil {
			return nil, errors.New("scanning " + kr.schema.Table + " row error: " + err.Error())
		}
		result = append(result, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected " + kr.schema.Table + " rows error: " + err.Error())
	}
	return result, nil
}

// Upsert writes every payload column, so a replaced row keeps nothing of its
// previous payload.
func (kr *KeyedRepository[T]) Upsert(ctx context.Context, uid uuid.UUID, date string, rec *T) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	args := append([]any{uid, date}, kr.schema.PayloadArgs(rec)...)
	if _, err := kr.conn.Exec(ctx, kr.upsertQuery, args...); err != nil {
		return errors.New("upserting " + kr.schema.Table + " row error: " + err.Error())
	}
	return nil
}

func (kr *KeyedRepository[T]) Delete(ctx context.Context, uid uuid.UUID, date string) error {
	if _, err := kr.conn.Exec(ctx, kr.deleteQuery, uid, date); err != nil {
		return errors.New("deleting " + kr.schema.Table + " row error: " + err.Error())
	}
	return nil
}
