package entity

import "github.com/google/uuid"

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	DisplayName  string
}

// UserContext is what a live session resolves to.
type UserContext struct {
	UserID      uuid.UUID
	DisplayName string
}
