// Package memory keeps every record kind in process memory. It implements the
// same repository interfaces as the postgres backend and is used when no
// database is configured and in service tests.
package memory

import (
	"cmp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/limbo/galaxy/pkg/entity"
)

// Storage bundles the stores of all kinds behind one lock, so a habit delete
// and its log cascade are observed atomically.
type Storage struct {
	mu  sync.RWMutex
	seq uint64
	now func() time.Time

	Users       *UsersRepository
	Expenses    *OwnedRepository[entity.Expense, *entity.Expense]
	Todos       *OwnedRepository[entity.Todo, *entity.Todo]
	Habits      *OwnedRepository[entity.Habit, *entity.Habit]
	Reminders   *OwnedRepository[entity.Reminder, *entity.Reminder]
	Goals       *OwnedRepository[entity.Goal, *entity.Goal]
	Reflections *KeyedRepository[entity.Reflection, *entity.Reflection]
	Calendar    *KeyedRepository[entity.CalendarNote, *entity.CalendarNote]
	HabitLogs   *HabitLogsRepository
}

type Option func(*Storage)

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

func New(opts ...Option) *Storage {
	s := &Storage{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.Users = &UsersRepository{s: s, byID: make(map[uuid.UUID]*userRow), byName: make(map[string]*userRow)}
	s.Expenses = newOwned(s, func(a, b *entry[entity.Expense]) int {
		return cmp.Or(
			strings.Compare(b.rec.Date, a.rec.Date),
			cmp.Compare(b.seq, a.seq),
		)
	})
	s.Todos = newOwned(s, func(a, b *entry[entity.Todo]) int {
		return cmp.Or(
			b.rec.CreatedAt.Compare(a.rec.CreatedAt),
			cmp.Compare(b.seq, a.seq),
		)
	})
	s.Todos.stamp = func(t *entity.Todo, at time.Time) {
		t.CreatedAt = at
	}
	s.Habits = newOwned(s, bySeq[entity.Habit])
	s.Reminders = newOwned(s, func(a, b *entry[entity.Reminder]) int {
		return cmp.Or(
			strings.Compare(a.rec.Datetime, b.rec.Datetime),
			cmp.Compare(a.seq, b.seq),
		)
	})
	s.Goals = newOwned(s, bySeq[entity.Goal])
	s.HabitLogs = &HabitLogsRepository{s: s, marks: make(map[entity.HabitLog]struct{})}
	s.Habits.cascade = s.HabitLogs.dropHabit
	s.Reflections = newKeyed(s, func(a, b *entity.Reflection) int {
		return strings.Compare(b.Date, a.Date)
	})
	s.Calendar = newKeyed(s, func(a, b *entity.CalendarNote) int {
		return strings.Compare(a.Date, b.Date)
	})
	return s
}

// next returns the insertion sequence number. Callers hold the write lock.
func (s *Storage) next() uint64 {
	s.seq++
	return s.seq
}

func bySeq[T any](a, b *entry[T]) int {
	return cmp.Compare(a.seq, b.seq)
}
