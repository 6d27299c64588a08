package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/galaxy/internal/error_values"
	"github.com/limbo/galaxy/internal/session"
	"github.com/limbo/galaxy/pkg/entity"
	jwtservice "github.com/limbo/galaxy/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = &entity.User{ID: uuid.New(), Username: "alice", DisplayName: "Alice"}
	bob   = &entity.User{ID: uuid.New(), Username: "bob", DisplayName: "Bob"}
)

func TestStartResolveEnd(t *testing.T) {
	a := session.New(jwtservice.New("secret"), time.Hour)

	token, err := a.Start(alice)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uc, err := a.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, entity.UserContext{UserID: alice.ID, DisplayName: "Alice"}, uc)

	a.End(token)
	_, err = a.Resolve(token)
	assert.ErrorIs(t, err, errorvalues.ErrUnauthenticated)

	// ending twice is harmless
	a.End(token)
}

func TestConcurrentSessionsPerUser(t *testing.T) {
	a := session.New(jwtservice.New("secret"), time.Hour)
	first, err := a.Start(alice)
	require.NoError(t, err)
	second, err := a.Start(alice)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	a.End(first)
	uc, err := a.Resolve(second)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, uc.UserID)
}

func TestResolveRejects(t *testing.T) {
	a := session.New(jwtservice.New("secret"), time.Hour)
	foreign, err := session.New(jwtservice.New("other"), time.Hour).Start(alice)
	require.NoError(t, err)
	unknown, err := jwtservice.New("secret").Sign(uuid.NewString(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	testCases := []struct {
		Desc  string
		Token string
	}{
		{Desc: "empty", Token: ""},
		{Desc: "garbage", Token: "abc"},
		{Desc: "signed with another secret", Token: foreign},
		{Desc: "unknown session", Token: unknown},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			_, err := a.Resolve(tc.Token)
			assert.ErrorIs(t, err, errorvalues.ErrUnauthenticated)
		})
	}
}

func TestExpiry(t *testing.T) {
	now := time.Now()
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	a := session.New(jwtservice.New("secret"), time.Hour, session.WithClock(clock))
	token, err := a.Start(bob)
	require.NoError(t, err)

	_, err = a.Resolve(token)
	require.NoError(t, err)

	mu.Lock()
	now = now.Add(30 * time.Minute)
	mu.Unlock()
	_, err = a.Resolve(token)
	require.NoError(t, err)

	mu.Lock()
	now = now.Add(31 * time.Minute)
	mu.Unlock()
	_, err = a.Resolve(token)
	assert.ErrorIs(t, err, errorvalues.ErrUnauthenticated)
}

func TestStartNilUser(t *testing.T) {
	a := session.New(jwtservice.New("secret"), 0)
	_, err := a.Start(nil)
	assert.Error(t, err)
}
