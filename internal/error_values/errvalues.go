package errorvalues

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidUsername    = errors.New("username must be 3+ characters")
	ErrWeakPassword       = errors.New("password must be 4+ characters")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("wrong username or password")
	ErrUserNotFound       = errors.New("user doesn't exist")
	ErrUnauthenticated    = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrDuplicateID        = errors.New("record with such id already exists")
)
