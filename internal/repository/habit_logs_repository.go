package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/limbo/galaxy/pkg/entity"
)

type HabitLogsRepository struct {
	conn PgConnection
}

func NewHabitLogsRepo(conn PgConnection) *HabitLogsRepository {
	return &HabitLogsRepository{
		conn: conn,
	}
}

// Set inserts the mark; duplicates are absorbed by the unique constraint.
func (lr *HabitLogsRepository) Set(ctx context.Context, uid uuid.UUID, habitID, date string) error {
	_, err := lr.conn.Exec(
		ctx,
		`INSERT INTO habit_logs (habit_id, user_id, date) VALUES ($1, $2, $3) ON CONFLICT (habit_id, user_id, date) DO NOTHING;`,
		habitID,
		uid,
		date,
	)
	if err != nil {
		return errors.New("setting habit log error: " + err.Error())
	}
	return nil
}

func (lr *HabitLogsRepository) Unset(ctx context.Context, uid uuid.UUID, habitID, date string) error {
	_, err := lr.conn.Exec(
		ctx,
		`DELETE FROM habit_logs WHERE habit_id = $1 AND user_id = $2 AND date = $3;`,
		habitID,
		uid,
		date,
	)
	if err != nil {
		return errors.New("unsetting habit log error: " + err.Error())
	}
	return nil
}

func (lr *HabitLogsRepository) List(ctx context.Context, uid uuid.UUID) ([]entity.HabitLog, error) {
	rows, err := lr.conn.Query(
		ctx,
		`SELECT habit_id, user_id, date FROM habit_logs WHERE user_id = $1 ORDER BY date, habit_id;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("listing habit logs error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.HabitLog, 0)
	for rows.Next() {
		var l entity.HabitLog
		if err = rows.Scan(&l.HabitID, &l.UserID, &l.Date); err != nil {
			return nil, errors.New("habit log row parsing error: " + err.Error())
		}
		result = append(result, l)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected habit log rows error: " + err.Error())
	}
	return result, nil
}
