package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/galaxy/internal/error_values"
	"github.com/limbo/galaxy/internal/repository"
	"github.com/limbo/galaxy/pkg/entity"
)

// ResourceService is the owner-scoped CRUD shared by expenses, todos, habits,
// reminders and goals.
type ResourceService[T any] struct {
	repo repository.OwnedRepositoryI[T]
	// prepare resets server-controlled fields of a new record
	prepare func(rec *T)
}

func NewResourceService[T any](repo repository.OwnedRepositoryI[T], prepare func(rec *T)) *ResourceService[T] {
	return &ResourceService[T]{
		repo:    repo,
		prepare: prepare,
	}
}

func (rs *ResourceService[T]) List(ctx context.Context, owner uuid.UUID) ([]T, error) {
	list, err := rs.repo.List(ctx, owner)
	if err != nil {
		return nil, errors.New("repository listing error: " + err.Error())
	}
	return list, nil
}

func (rs *ResourceService[T]) Create(ctx context.Context, owner uuid.UUID, rec *T) error {
	if rec == nil {
		return errorvalues.ErrInvalidInput
	}
	if rs.prepare != nil {
		rs.prepare(rec)
	}
	if err := validateStruct(rec); err != nil {
		return err
	}
	err := rs.repo.Create(ctx, owner, rec)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDuplicateID) {
			return err
		}
		return errors.New("repository creating error: " + err.Error())
	}
	return nil
}

func (rs *ResourceService[T]) Update(ctx context.Context, owner uuid.UUID, id string, patch entity.Patch[T]) error {
	if patch == nil {
		return nil
	}
	if err := validateStruct(patch); err != nil {
		return err
	}
	if err := rs.repo.Update(ctx, owner, id, patch); err != nil {
		return errors.New("repository updating error: " + err.Error())
	}
	return nil
}

func (rs *ResourceService[T]) Delete(ctx context.Context, owner uuid.UUID, id string) error {
	if err := rs.repo.Delete(ctx, owner, id); err != nil {
		return errors.New("repository deleting error: " + err.Error())
	}
	return nil
}

// Record preparations applied before validation on create.

func NewTodo(t *entity.Todo) {
	t.Done = false
}

func NewReminder(r *entity.Reminder) {
	r.Fired = false
}

func NewGoal(g *entity.Goal) {
	g.Done = false
}
