package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/galaxy/internal/error_values"
	"github.com/limbo/galaxy/internal/repository"
	"github.com/limbo/galaxy/pkg/entity"
)

type UpsertService struct {
	reflections repository.KeyedRepositoryI[entity.Reflection]
	calendar    repository.KeyedRepositoryI[entity.CalendarNote]
	habitLogs   repository.HabitLogsRepositoryI
}

func NewUpsertService(
	reflections repository.KeyedRepositoryI[entity.Reflection],
	calendar repository.KeyedRepositoryI[entity.CalendarNote],
	habitLogs repository.HabitLogsRepositoryI,
) *UpsertService {
	return &UpsertService{
		reflections: reflections,
		calendar:    calendar,
		habitLogs:   habitLogs,
	}
}

func setKeyed[T any](ctx context.Context, repo repository.KeyedRepositoryI[T], owner uuid.UUID, date string, rec *T) error {
	if err := validateStruct(rec); err != nil {
		return err
	}
	if err := repo.Upsert(ctx, owner, date, rec); err != nil {
		return errors.New("repository upserting error: " + err.Error())
	}
	return nil
}

func (us *UpsertService) SetReflection(ctx context.Context, owner uuid.UUID, r *entity.Reflection) error {
	if r == nil {
		return errorvalues.ErrInvalidInput
	}
	return setKeyed(ctx, us.reflections, owner, r.Date, r)
}

func (us *UpsertService) ListReflections(ctx context.Context, owner uuid.UUID) ([]entity.Reflection, error) {
	list, err := us.reflections.List(ctx, owner)
	if err != nil {
		return nil, errors.New("repository listing error: " + err.Error())
	}
	return list, nil
}

func (us *UpsertService) DeleteReflection(ctx context.Context, owner uuid.UUID, date string) error {
	if err := us.reflections.Delete(ctx, owner, date); err != nil {
		return errors.New("repository deleting error: " + err.Error())
	}
	return nil
}

func (us *UpsertService) SetCalendarNote(ctx context.Context, owner uuid.UUID, n *entity.CalendarNote) error {
	if n == nil {
		return errorvalues.ErrInvalidInput
	}
	return setKeyed(ctx, us.calendar, owner, n.Date, n)
}

func (us *UpsertService) ListCalendarNotes(ctx context.Context, owner uuid.UUID) ([]entity.CalendarNote, error) {
	list, err := us.calendar.List(ctx, owner)
	if err != nil {
		return nil, errors.New("repository listing error: " + err.Error())
	}
	return list, nil
}

func (us *UpsertService) DeleteCalendarNote(ctx context.Context, owner uuid.UUID, date string) error {
	if err := us.calendar.Delete(ctx, owner, date); err != nil {
		return errors.New("repository deleting error: " + err.Error())
	}
	return nil
}

func (us *UpsertService) SetToggle(ctx context.Context, owner uuid.UUID, habitID, date string, checked bool) error {
	if err := validateStruct(&entity.HabitLog{HabitID: habitID, UserID: owner, Date: date}); err != nil {
		return err
	}
	var err error
	if checked {
		err = us.habitLogs.Set(ctx, owner, habitID, date)
	} else {
		err = us.habitLogs.Unset(ctx, owner, habitID, date)
	}
	if err != nil {
		return errors.New("repository toggling error: " + err.Error())
	}
	return nil
}

func (us *UpsertService) ListToggles(ctx context.Context, owner uuid.UUID) ([]entity.HabitLog, error) {
	list, err := us.habitLogs.List(ctx, owner)
	if err != nil {
		return nil, errors.New("repository listing error: " + err.Error())
	}
	return list, nil
}
