package service

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/galaxy/internal/error_values"
	"github.com/limbo/galaxy/internal/repository"
	"github.com/limbo/galaxy/pkg/entity"
	"golang.org/x/crypto/argon2"
	"golang.org/x/text/unicode/norm"
)

const (
	minUsernameLen = 3
	minPasswordLen = 4
)

type AuthService struct {
	repo   repository.UsersRepositoryI
	pepper []byte
}

func NewAuthService(usersRepo repository.UsersRepositoryI, pepper string) *AuthService {
	return &AuthService{
		repo:   usersRepo,
		pepper: []byte(pepper),
	}
}

// HashPassword derives the stored form of a password. The same password and
// pepper always give the same hash, so credentials are checked by equality.
func HashPassword(password string, pepper []byte) string {
	return hex.EncodeToString(argon2.IDKey([]byte(password), pepper, 1, 64*1024, 4, 32))
}

// NormalizeUsername trims, NFC-normalizes and lowercases a username, so
// visually identical spellings map to one account.
func NormalizeUsername(username string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(username)))
}

func (as *AuthService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	if req == nil {
		return nil, errorvalues.ErrInvalidInput
	}
	username := NormalizeUsername(req.Username)
	if utf8.RuneCountInString(username) < minUsernameLen {
		return nil, errorvalues.ErrInvalidUsername
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLen {
		return nil, errorvalues.ErrWeakPassword
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}
	user := &entity.User{
		Username:     username,
		PasswordHash: HashPassword(req.Password, as.pepper),
		DisplayName:  displayName,
	}
	id, err := as.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUsernameTaken) {
			return nil, errorvalues.ErrUsernameTaken
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	user.ID = id
	return user, nil
}

func (as *AuthService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := as.repo.FindByCredentials(ctx, NormalizeUsername(username), HashPassword(password, as.pepper))
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrInvalidCredentials
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (as *AuthService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := as.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}
