package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/limbo/galaxy/internal/service"
	"github.com/limbo/galaxy/pkg/entity"
)

const (
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	mx       *chi.Mux
	metrics  *Metrics
	sessions SessionAuthorityI
	cookie   CookieOpts

	authService service.AuthServiceI
	expenses    service.ResourceServiceI[entity.Expense]
	todos       service.ResourceServiceI[entity.Todo]
	habits      service.ResourceServiceI[entity.Habit]
	reminders   service.ResourceServiceI[entity.Reminder]
	goals       service.ResourceServiceI[entity.Goal]
	upserts     service.UpsertServiceI
}

type ServicesList struct {
	AuthService      service.AuthServiceI
	SessionAuthority SessionAuthorityI
	Expenses         service.ResourceServiceI[entity.Expense]
	Todos            service.ResourceServiceI[entity.Todo]
	Habits           service.ResourceServiceI[entity.Habit]
	Reminders        service.ResourceServiceI[entity.Reminder]
	Goals            service.ResourceServiceI[entity.Goal]
	UpsertService    service.UpsertServiceI
	Cookie           CookieOpts
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:          chi.NewMux(),
		metrics:     NewMetrics(),
		sessions:    servicesOptions.SessionAuthority,
		cookie:      servicesOptions.Cookie,
		authService: servicesOptions.AuthService,
		expenses:    servicesOptions.Expenses,
		todos:       servicesOptions.Todos,
		habits:      servicesOptions.Habits,
		reminders:   servicesOptions.Reminders,
		goals:       servicesOptions.Goals,
		upserts:     servicesOptions.UpsertService,
	}
	s.mountHandlers()
	return s
}

func (s *Server) mountHandlers() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware, s.metrics.Middleware, middleware.Recoverer)
	s.mx.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.mx.Handle("/metrics", s.metrics.Handler())
	s.mx.Route("/api", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.Post("/logout", s.Logout)
		r.Get("/me", s.Me)

		r.Group(func(r chi.Router) {
			r.Use(s.SessionMiddleware, s.LoggerExtensionMiddleware)

			r.Get("/expenses", listOwned(s.expenses, "expenses"))
			r.Post("/expenses", createOwned(s.expenses, "expense", decodeBody[entity.Expense]))
			r.Delete("/expenses/{id}", deleteOwned(s.expenses, "expense"))

			r.Get("/todos", listOwned(s.todos, "todos"))
			r.Post("/todos", createOwned(s.todos, "todo", decodeBody[entity.Todo]))
			r.Put("/todos/{id}", updateOwned[entity.Todo, entity.TodoPatch](s.todos, "todo"))
			r.Delete("/todos/{id}", deleteOwned(s.todos, "todo"))

			r.Get("/habits", listOwned(s.habits, "habits"))
			r.Post("/habits", createOwned(s.habits, "habit", decodeBody[entity.Habit]))
			r.Delete("/habits/{id}", deleteOwned(s.habits, "habit"))

			r.Get("/habit-logs", s.ListHabitLogs)
			r.Post("/habit-logs", s.ToggleHabitLog)

			r.Get("/reflections", s.ListReflections)
			r.Post("/reflections", s.SetReflection)
			r.Delete("/reflections/{date}", s.DeleteReflection)

			r.Get("/reminders", listOwned(s.reminders, "reminders"))
			r.Post("/reminders", createOwned(s.reminders, "reminder", decodeBody[entity.Reminder]))
			r.Put("/reminders/{id}", updateOwned[entity.Reminder, entity.ReminderPatch](s.reminders, "reminder"))
			r.Delete("/reminders/{id}", deleteOwned(s.reminders, "reminder"))

			r.Get("/goals", listOwned(s.goals, "goals"))
			r.Post("/goals", createOwned(s.goals, "goal", decodeGoal))
			r.Put("/goals/{id}", updateOwned[entity.Goal, entity.GoalPatch](s.goals, "goal"))
			r.Delete("/goals/{id}", deleteOwned(s.goals, "goal"))

			r.Get("/calendar", s.ListCalendarNotes)
			r.Post("/calendar", s.SetCalendarNote)
			r.Delete("/calendar/{date}", s.DeleteCalendarNote)
		})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mx,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("api server started", slog.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("server shutdown error: " + err.Error())
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
