package memory

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/galaxy/internal/error_values"
	"github.com/limbo/galaxy/pkg/entity"
)

// Record is a pointer to an id-addressed record kind.
type Record[T any] interface {
	*T
	Key() string
	Owner() uuid.UUID
	Own(uid uuid.UUID)
}

type entry[T any] struct {
	rec T
	seq uint64
}

// OwnedRepository keeps one kind's records by id. Ids are unique across
// owners, matching the postgres primary key.
type OwnedRepository[T any, P Record[T]] struct {
	s       *Storage
	rows    map[string]*entry[T]
	compare func(a, b *entry[T]) int
	stamp   func(rec *T, at time.Time)
	cascade func(uid uuid.UUID, id string)
}

func newOwned[T any, P Record[T]](s *Storage, compare func(a, b *entry[T]) int) *OwnedRepository[T, P] {
	return &OwnedRepository[T, P]{
		s:       s,
		rows:    make(map[string]*entry[T]),
		compare: compare,
	}
}

func (or *OwnedRepository[T, P]) List(ctx context.Context, uid uuid.UUID) ([]T, error) {
	or.s.mu.RLock()
	defer or.s.mu.RUnlock()
	owned := make([]*entry[T], 0)
	for _, e := range or.rows {
		if P(&e.rec).Owner() == uid {
			owned = append(owned, e)
		}
	}
	slices.SortFunc(owned, or.compare)
	result := make([]T, 0, len(owned))
	for _, e := range owned {
		result = append(result, e.rec)
	}
	return result, nil
}

func (or *OwnedRepository[T, P]) Create(ctx context.Context, uid uuid.UUID, rec *T) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	or.s.mu.Lock()
	defer or.s.mu.Unlock()
	id := P(rec).Key()
	if _, exists := or.rows[id]; exists {
		return errorvalues.ErrDuplicateID
	}
	e := &entry[T]{rec: *rec, seq: or.s.next()}
	P(&e.rec).Own(uid)
	if or.stamp != nil {
		or.stamp(&e.rec, or.s.now())
	}
	or.rows[id] = e
	return nil
}

// Update applies patch when (id, uid) exists and silently does nothing
// otherwise.
func (or *OwnedRepository[T, P]) Update(ctx context.Context, uid uuid.UUID, id string, patch entity.Patch[T]) error {
	if patch == nil {
		return nil
	}
	or.s.mu.Lock()
	defer or.s.mu.Unlock()
	e, exists := or.rows[id]
	if !exists || P(&e.rec).Owner() != uid {
		return nil
	}
	patch.Apply(&e.rec)
	return nil
}

func (or *OwnedRepository[T, P]) Delete(ctx context.Context, uid uuid.UUID, id string) error {
	or.s.mu.Lock()
	defer or.s.mu.Unlock()
	e, exists := or.rows[id]
	if !exists || P(&e.rec).Owner() != uid {
		return nil
	}
	delete(or.rows, id)
	if or.cascade != nil {
		or.cascade(uid, id)
	}
	return nil
}
