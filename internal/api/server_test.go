package api_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/limbo/galaxy/internal/api"
	"github.com/limbo/galaxy/internal/repository/memory"
	"github.com/limbo/galaxy/internal/service"
	"github.com/limbo/galaxy/internal/session"
	"github.com/limbo/galaxy/pkg/entity"
	jwtservice "github.com/limbo/galaxy/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

func newTestServer(t *testing.T) *api.Server {
	t.Helper()
	s := memory.New()
	return api.New(&api.ServicesList{
		AuthService:      service.NewAuthService(s.Users, "pepper"),
		SessionAuthority: session.New(jwtservice.New("secret"), time.Hour),
		Expenses:         service.NewResourceService[entity.Expense](s.Expenses, nil),
		Todos:            service.NewResourceService[entity.Todo](s.Todos, service.NewTodo),
		Habits:           service.NewResourceService[entity.Habit](s.Habits, nil),
		Reminders:        service.NewResourceService[entity.Reminder](s.Reminders, service.NewReminder),
		Goals:            service.NewResourceService[entity.Goal](s.Goals, service.NewGoal),
		UpsertService:    service.NewUpsertService(s.Reflections, s.Calendar, s.HabitLogs),
		Cookie:           api.CookieOpts{TTL: time.Hour},
	})
}

func do(t *testing.T, h http.Handler, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == api.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func register(t *testing.T, h http.Handler, username, password, displayName string) *http.Cookie {
	t.Helper()
	body, err := sonic.ConfigDefault.Marshal(api.RegisterRequest{
		Username:    username,
		Password:    password,
		DisplayName: displayName,
	})
	require.NoError(t, err)
	rr := do(t, h, http.MethodPost, "/api/register", string(body), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return sessionCookie(t, rr)
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, sonic.ConfigDefault.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&v))
	return v
}

func TestRegisterAndLogin(t *testing.T) {
	h := newTestServer(t)
	cookie := register(t, h, "alice", "pass1", "Alice")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	t.Run("me", func(t *testing.T) {
		rr := do(t, h, http.MethodGet, "/api/me", "", cookie)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, api.MeResponse{LoggedIn: true, DisplayName: "Alice"}, decode[api.MeResponse](t, rr))

		rr = do(t, h, http.MethodGet, "/api/me", "", nil)
		assert.Equal(t, api.MeResponse{LoggedIn: false}, decode[api.MeResponse](t, rr))
	})
	t.Run("duplicate username", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/register", `{"username":" ALICE ","password":"other"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "username already taken")
	})
	t.Run("short username", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/register", `{"username":"ab","password":"pass1"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
	t.Run("invalid body", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/register", "", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
	t.Run("login", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/login", `{"username":"Alice","password":"pass1"}`, cookie)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, api.AuthResponse{Success: true, DisplayName: "Alice"}, decode[api.AuthResponse](t, rr))
		fresh := sessionCookie(t, rr)

		rr = do(t, h, http.MethodGet, "/api/todos", "", cookie)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		rr = do(t, h, http.MethodGet, "/api/todos", "", fresh)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		wrong := do(t, h, http.MethodPost, "/api/login", `{"username":"alice","password":"nope"}`, nil)
		unknown := do(t, h, http.MethodPost, "/api/login", `{"username":"mallory","password":"pass1"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, wrong.Code, unknown.Code)
		assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	})
}

func TestLogout(t *testing.T) {
	h := newTestServer(t)
	cookie := register(t, h, "alice", "pass1", "")
	rr := do(t, h, http.MethodPost, "/api/logout", "", cookie)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, -1, sessionCookie(t, rr).MaxAge)

	rr = do(t, h, http.MethodGet, "/api/expenses", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error":"Unauthorized"`)

	rr = do(t, h, http.MethodPost, "/api/logout", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestResourceRoutesRequireSession(t *testing.T) {
	h := newTestServer(t)
	forged := &http.Cookie{Name: api.SessionCookieName, Value: "garbage"}
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/expenses"},
		{http.MethodPost, "/api/todos"},
		{http.MethodPut, "/api/goals/g1"},
		{http.MethodDelete, "/api/habits/h1"},
		{http.MethodPost, "/api/habit-logs"},
		{http.MethodGet, "/api/reflections"},
		{http.MethodDelete, "/api/calendar/2024-01-01"},
	} {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			for _, cookie := range []*http.Cookie{nil, forged} {
				rr := do(t, h, route.method, route.path, "", cookie)
				assert.Equal(t, http.StatusUnauthorized, rr.Code)
				assert.JSONEq(t, `{"code":401,"error":"Unauthorized"}`, rr.Body.String())
			}
		})
	}
}

func TestExpenseIsolation(t *testing.T) {
	h := newTestServer(t)
	alice := register(t, h, "alice", "pass1", "Alice")
	bob := register(t, h, "bob", "pass2", "Bob")

	rr := do(t, h, http.MethodPost, "/api/expenses", `{"id":"e1","amount":12.5,"category":"food","date":"2024-01-01"}`, alice)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/api/expenses", `{"id":"e1","amount":1,"category":"food","date":"2024-01-01"}`, bob)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/expenses", `{"id":"e2","amount":1,"category":"food"}`, alice)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodDelete, "/api/expenses/e1", "", bob)
	assert.Equal(t, http.StatusOK, rr.Code)

	list := decode[[]entity.Expense](t, do(t, h, http.MethodGet, "/api/expenses", "", alice))
	require.Len(t, list, 1)
	assert.Equal(t, "e1", list[0].ID)
	assert.Equal(t, 12.5, list[0].Amount)
	assert.Equal(t, "food", list[0].Category)
	assert.Equal(t, "2024-01-01", list[0].Date)

	assert.Empty(t, decode[[]entity.Expense](t, do(t, h, http.MethodGet, "/api/expenses", "", bob)))

	rr = do(t, h, http.MethodDelete, "/api/expenses/e1", "", alice)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]entity.Expense](t, do(t, h, http.MethodGet, "/api/expenses", "", alice)))
}

func TestTodoAndGoalUpdates(t *testing.T) {
	h := newTestServer(t)
	alice := register(t, h, "alice", "pass1", "")
	bob := register(t, h, "bob", "pass2", "")

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/todos", `{"id":"t1","text":"milk","done":true}`, alice).Code)
	todos := decode[[]entity.Todo](t, do(t, h, http.MethodGet, "/api/todos", "", alice))
	require.Len(t, todos, 1)
	assert.False(t, todos[0].Done)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/api/todos/t1", `{"done":true}`, bob).Code)
	todos = decode[[]entity.Todo](t, do(t, h, http.MethodGet, "/api/todos", "", alice))
	assert.False(t, todos[0].Done)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/api/todos/t1", `{"done":true}`, alice).Code)
	todos = decode[[]entity.Todo](t, do(t, h, http.MethodGet, "/api/todos", "", alice))
	assert.True(t, todos[0].Done)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/goals", `{"id":"g1","title":"marathon","target":"2024-12-31","progress":5}`, alice).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/api/goals/g1", `{"progress":50}`, alice).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/api/goals/g1", `{"progress":150}`, alice).Code)
	goals := decode[[]entity.Goal](t, do(t, h, http.MethodGet, "/api/goals", "", alice))
	require.Len(t, goals, 1)
	assert.Equal(t, "2024-12-31", goals[0].TargetDate)
	assert.Equal(t, 50, goals[0].Progress)
	assert.False(t, goals[0].Done)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/reminders", `{"id":"r1","title":"call mom","datetime":"2024-05-01T10:00"}`, alice).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/api/reminders/r1", `{"fired":true}`, alice).Code)
	reminders := decode[[]entity.Reminder](t, do(t, h, http.MethodGet, "/api/reminders", "", alice))
	require.Len(t, reminders, 1)
	assert.True(t, reminders[0].Fired)

	t.Run("kinds without patch have no update route", func(t *testing.T) {
		assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodPut, "/api/expenses/e1", `{}`, alice).Code)
		assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodPut, "/api/habits/h1", `{}`, alice).Code)
	})
}

func TestHabitLogsAndCascade(t *testing.T) {
	h := newTestServer(t)
	alice := register(t, h, "alice", "pass1", "")
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/habits", `{"id":"h1","name":"run"}`, alice).Code)

	toggle := `{"habitId":"h1","date":"2024-01-01","checked":true}`
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/habit-logs", toggle, alice).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/habit-logs", toggle, alice).Code)
	logs := decode[[]entity.HabitLog](t, do(t, h, http.MethodGet, "/api/habit-logs", "", alice))
	require.Len(t, logs, 1)
	assert.Equal(t, "h1", logs[0].HabitID)
	assert.Equal(t, "2024-01-01", logs[0].Date)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/habit-logs", `{"habitId":"h1","date":"2024-01-02","checked":true}`, alice).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/api/habits/h1", "", alice).Code)
	assert.Empty(t, decode[[]entity.HabitLog](t, do(t, h, http.MethodGet, "/api/habit-logs", "", alice)))
}

func TestReflectionsAndCalendar(t *testing.T) {
	h := newTestServer(t)
	alice := register(t, h, "alice", "pass1", "")

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/reflections", `{"date":"2024-01-01","rating":3,"note":"ok"}`, alice).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/reflections", `{"date":"2024-01-01","rating":5,"note":"great"}`, alice).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/reflections", `{"rating":5}`, alice).Code)
	refl := decode[[]entity.Reflection](t, do(t, h, http.MethodGet, "/api/reflections", "", alice))
	require.Len(t, refl, 1)
	assert.Equal(t, 5, refl[0].Rating)
	assert.Equal(t, "great", refl[0].Note)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/api/reflections/2024-01-01", "", alice).Code)
	assert.Empty(t, decode[[]entity.Reflection](t, do(t, h, http.MethodGet, "/api/reflections", "", alice)))

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/calendar", `{"date":"2024-02-14","note":"dinner","occasion":"valentine"}`, alice).Code)
	notes := decode[[]entity.CalendarNote](t, do(t, h, http.MethodGet, "/api/calendar", "", alice))
	require.Len(t, notes, 1)
	assert.Equal(t, "valentine", notes[0].Occasion)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/api/calendar/2024-02-14", "", alice).Code)
	assert.Empty(t, decode[[]entity.CalendarNote](t, do(t, h, http.MethodGet, "/api/calendar", "", alice)))
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "", nil).Code)
	do(t, h, http.MethodGet, "/api/me", "", nil)
	rr := do(t, h, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `galaxy_http_requests_total{code="200",method="GET",route="/api/me"} 1`)
}
