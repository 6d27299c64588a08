package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/limbo/galaxy/pkg/entity"
)

type RegisterRequest struct {
	Username    string
	Password    string
	DisplayName string
}

type AuthServiceI interface {
	// Normalizes username, checks lengths, stores password hash. Returns created user with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Returns user for matching credentials. Any mismatch is ErrInvalidCredentials
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// ResourceServiceI is the owner-scoped CRUD of one id-addressed kind.
type ResourceServiceI[T any] interface {
	List(ctx context.Context, owner uuid.UUID) ([]T, error)
	// Validates rec and stores it under owner. Fails with ErrInvalidInput or ErrDuplicateID
	Create(ctx context.Context, owner uuid.UUID, rec *T) error
	Update(ctx context.Context, owner uuid.UUID, id string, patch entity.Patch[T]) error
	Delete(ctx context.Context, owner uuid.UUID, id string) error
}

type UpsertServiceI interface {
	SetReflection(ctx context.Context, owner uuid.UUID, r *entity.Reflection) error
	ListReflections(ctx context.Context, owner uuid.UUID) ([]entity.Reflection, error)
	DeleteReflection(ctx context.Context, owner uuid.UUID, date string) error

	SetCalendarNote(ctx context.Context, owner uuid.UUID, n *entity.CalendarNote) error
	ListCalendarNotes(ctx context.Context, owner uuid.UUID) ([]entity.CalendarNote, error)
	DeleteCalendarNote(ctx context.Context, owner uuid.UUID, date string) error

	// Marks (checked) or unmarks habitID on date. Never reports exists/not-found
	SetToggle(ctx context.Context, owner uuid.UUID, habitID, date string, checked bool) error
	ListToggles(ctx context.Context, owner uuid.UUID) ([]entity.HabitLog, error)
}
