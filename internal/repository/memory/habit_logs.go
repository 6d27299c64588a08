package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/limbo/galaxy/pkg/entity"
)

type HabitLogsRepository struct {
	s     *Storage
	marks map[entity.HabitLog]struct{}
}

func (lr *HabitLogsRepository) Set(ctx context.Context, uid uuid.UUID, habitID, date string) error {
	lr.s.mu.Lock()
	defer lr.s.mu.Unlock()
	mark := entity.HabitLog{HabitID: habitID, UserID: uid, Date: date}
	lr.marks[mark] = struct{}{}
	return nil
}

func (lr *HabitLogsRepository) Unset(ctx context.Context, uid uuid.UUID, habitID, date string) error {
	lr.s.mu.Lock()
	defer lr.s.mu.Unlock()
	delete(lr.marks, entity.HabitLog{HabitID: habitID, UserID: uid, Date: date})
	return nil
}

func (lr *HabitLogsRepository) List(ctx context.Context, uid uuid.UUID) ([]entity.HabitLog, error) {
	lr.s.mu.RLock()
	defer lr.s.mu.RUnlock()
	result := make([]entity.HabitLog, 0)
	for mark := range lr.marks {
		if mark.UserID == uid {
			result = append(result, mark)
		}
	}
	slices.SortFunc(result, func(a, b entity.HabitLog) int {
		return cmp.Or(
			strings.Compare(a.Date, b.Date),
			strings.Compare(a.HabitID, b.HabitID),
		)
	})
	return result, nil
}

// dropHabit removes every mark of a deleted habit. Callers hold the lock.
func (lr *HabitLogsRepository) dropHabit(uid uuid.UUID, habitID string) {
	for mark := range lr.marks {
		if mark.UserID == uid && mark.HabitID == habitID {
			delete(lr.marks, mark)
		}
	}
}
