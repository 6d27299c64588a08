package memory

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
)

// DatedRecord is a pointer to a (owner, date) keyed record kind.
type DatedRecord[T any] interface {
	*T
	Own(uid uuid.UUID)
	SetDate(date string)
}

type dateKey struct {
	uid  uuid.UUID
	date string
}

type KeyedRepository[T any, P DatedRecord[T]] struct {
	s       *Storage
	rows    map[dateKey]T
	compare func(a, b *T) int
}

func newKeyed[T any, P DatedRecord[T]](s *Storage, compare func(a, b *T) int) *KeyedRepository[T, P] {
	return &KeyedRepository[T, P]{
		s:       s,
		rows:    make(map[dateKey]T),
		compare: compare,
	}
}

func (kr *KeyedRepository[T, P]) List(ctx context.Context, uid uuid.UUID) ([]T, error) {
	kr.s.mu.RLock()
	defer kr.s.mu.RUnlock()
	result := make([]T, 0)
	for k, rec := range kr.rows {
		if k.uid == uid {
			result = append(result, rec)
		}
	}
	slices.SortFunc(result, func(a, b T) int {
		return kr.compare(&a, &b)
	})
	return result, nil
}

func (kr *KeyedRepository[T, P]) Upsert(ctx context.Context, uid uuid.UUID, date string, rec *T) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	stored := *rec
	P(&stored).Own(uid)
	P(&stored).SetDate(date)
	kr.s.mu.Lock()
	defer kr.s.mu.Unlock()
	kr.rows[dateKey{uid: uid, date: date}] = stored
	return nil
}

func (kr *KeyedRepository[T, P]) Delete(ctx context.Context, uid uuid.UUID, date string) error {
	kr.s.mu.Lock()
	defer kr.s.mu.Unlock()
	delete(kr.rows, dateKey{uid: uid, date: date})
	return nil
}
