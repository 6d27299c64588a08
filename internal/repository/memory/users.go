package memory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/galaxy/internal/error_values"
	"github.com/limbo/galaxy/pkg/entity"
)

type userRow struct {
	user entity.User
}

type UsersRepository struct {
	s      *Storage
	byID   map[uuid.UUID]*userRow
	byName map[string]*userRow
}

func (ur *UsersRepository) Create(ctx context.Context, user *entity.User) (uuid.UUID, error) {
	if user == nil {
		return uuid.UUID{}, errors.New("user is nil")
	}
	ur.s.mu.Lock()
	defer ur.s.mu.Unlock()
	if _, exists := ur.byName[user.Username]; exists {
		return uuid.UUID{}, errorvalues.ErrUsernameTaken
	}
	row := &userRow{user: *user}
	row.user.ID = uuid.New()
	ur.byID[row.user.ID] = row
	ur.byName[row.user.Username] = row
	return row.user.ID, nil
}

func (ur *UsersRepository) FindByCredentials(ctx context.Context, username, passwordHash string) (*entity.User, error) {
	ur.s.mu.RLock()
	defer ur.s.mu.RUnlock()
	row, exists := ur.byName[username]
	if !exists || row.user.PasswordHash != passwordHash {
		return nil, errorvalues.ErrUserNotFound
	}
	user := row.user
	return &user, nil
}

func (ur *UsersRepository) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	ur.s.mu.RLock()
	defer ur.s.mu.RUnlock()
	row, exists := ur.byID[uid]
	if !exists {
		return nil, errorvalues.ErrUserNotFound
	}
	user := row.user
	return &user, nil
}
