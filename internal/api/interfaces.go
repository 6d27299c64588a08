package api

import (
	"github.com/limbo/galaxy/pkg/entity"
)

type SessionAuthorityI interface {
	// Binds a new session to user. Returns token for the session cookie
	Start(user *entity.User) (string, error)
	// Returns the user bound to token or ErrUnauthenticated
	Resolve(token string) (entity.UserContext, error)
	End(token string)
}
