package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/limbo/galaxy/internal/api"
	"github.com/limbo/galaxy/internal/repository"
	"github.com/limbo/galaxy/internal/repository/memory"
	"github.com/limbo/galaxy/internal/service"
	"github.com/limbo/galaxy/internal/session"
	"github.com/limbo/galaxy/pkg/cleanup"
	"github.com/limbo/galaxy/pkg/config"
	"github.com/limbo/galaxy/pkg/entity"
	jwtservice "github.com/limbo/galaxy/pkg/jwt_service"
)

type serveOptions struct {
	migrate bool
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply migrations before serving (postgres storage only)")
	return cmd
}

// repositories is the storage backend chosen by STORAGE.
type repositories struct {
	users       repository.UsersRepositoryI
	expenses    repository.OwnedRepositoryI[entity.Expense]
	todos       repository.OwnedRepositoryI[entity.Todo]
	habits      repository.OwnedRepositoryI[entity.Habit]
	reminders   repository.OwnedRepositoryI[entity.Reminder]
	goals       repository.OwnedRepositoryI[entity.Goal]
	reflections repository.KeyedRepositoryI[entity.Reflection]
	calendar    repository.KeyedRepositoryI[entity.CalendarNote]
	habitLogs   repository.HabitLogsRepositoryI
}

func openRepositories(ctx context.Context, cfg *config.Config, migrate bool) (*repositories, error) {
	switch kind := cfg.GetStringOr("STORAGE", "postgres"); kind {
	case "memory":
		slog.Warn("using in-memory storage, data is lost on restart")
		s := memory.New()
		return &repositories{
			users:       s.Users,
			expenses:    s.Expenses,
			todos:       s.Todos,
			habits:      s.Habits,
			reminders:   s.Reminders,
			goals:       s.Goals,
			reflections: s.Reflections,
			calendar:    s.Calendar,
			habitLogs:   s.HabitLogs,
		}, nil
	case "postgres":
		dbCfg := postgresConfig(cfg)
		if migrate {
			if err := repository.Migrate(ctx, dbCfg); err != nil {
				return nil, err
			}
		}
		pool, err := repository.NewPool(ctx, dbCfg)
		if err != nil {
			return nil, err
		}
		return &repositories{
			users:       repository.NewUsersRepo(pool),
			expenses:    repository.NewOwnedRepo(pool, repository.ExpensesSchema),
			todos:       repository.NewOwnedRepo(pool, repository.TodosSchema),
			habits:      repository.NewOwnedRepo(pool, repository.HabitsSchema),
			reminders:   repository.NewOwnedRepo(pool, repository.RemindersSchema),
			goals:       repository.NewOwnedRepo(pool, repository.GoalsSchema),
			reflections: repository.NewKeyedRepo(pool, repository.ReflectionsSchema),
			calendar:    repository.NewKeyedRepo(pool, repository.CalendarSchema),
			habitLogs:   repository.NewHabitLogsRepo(pool),
		}, nil
	default:
		return nil, errors.New("unknown STORAGE " + kind + ", want postgres or memory")
	}
}

func serve(ctx context.Context, opts *serveOptions) error {
	cfg := config.New()
	secret := cfg.GetString("SESSION_SECRET")
	if secret == "" {
		return errors.New("SESSION_SECRET is not set")
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer cleanup.CleanUp()

	repos, err := openRepositories(ctx, cfg, opts.migrate)
	if err != nil {
		return err
	}
	ttl := cfg.GetDuration("SESSION_TTL", session.DefaultTTL)
	serv := api.New(&api.ServicesList{
		AuthService:      service.NewAuthService(repos.users, cfg.GetString("PASSWORD_PEPPER")),
		SessionAuthority: session.New(jwtservice.New(secret), ttl),
		Expenses:         service.NewResourceService[entity.Expense](repos.expenses, nil),
		Todos:            service.NewResourceService[entity.Todo](repos.todos, service.NewTodo),
		Habits:           service.NewResourceService[entity.Habit](repos.habits, nil),
		Reminders:        service.NewResourceService[entity.Reminder](repos.reminders, service.NewReminder),
		Goals:            service.NewResourceService[entity.Goal](repos.goals, service.NewGoal),
		UpsertService:    service.NewUpsertService(repos.reflections, repos.calendar, repos.habitLogs),
		Cookie: api.CookieOpts{
			TTL:    ttl,
			Secure: cfg.GetBool("COOKIE_SECURE", false),
		},
	})
	if err = serv.Run(ctx, cfg.GetStringOr("API_ADDRESS", ":8080")); err != nil {
		return errors.New("server error: " + err.Error())
	}
	slog.Info("server stopped")
	return nil
}
