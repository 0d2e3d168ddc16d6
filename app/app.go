package app

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/qellagg/qella-waitlist/config"
	httpapi "github.com/qellagg/qella-waitlist/internal/api/http"
	"github.com/qellagg/qella-waitlist/internal/dependency"
	"github.com/qellagg/qella-waitlist/internal/mail"
	"github.com/qellagg/qella-waitlist/internal/store"
	"github.com/qellagg/qella-waitlist/internal/validate"
	"github.com/qellagg/qella-waitlist/internal/waitlist"
)

// App is the main application
type App struct {
	hs     *httpapi.Server
	db     dependency.Repository
	mailer dependency.Mailer
	c      *config.Config
	done   chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting waitlist backend",
		slog.String("storage", a.c.Storage.Backend),
	)

	a.db, err = newRepository(ctx, a.c)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to storage",
			slog.String("err", err.Error()),
		)
		return err
	}

	a.mailer, err = mail.New(&a.c.Mailer, a.db.Mail())
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to create mailer",
			slog.String("err", err.Error()),
		)
		return err
	}
	if err := a.mailer.Start(ctx); err != nil {
		return fmt.Errorf("cannot start mail worker: %w", err)
	}

	svc := waitlist.New(a.db, a.mailer, validate.New(a.c.Validate))

	a.hs = httpapi.New(&a.c.HTTP, svc)
	if err := a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// newRepository selects the store realization. Both backends implement the
// same Repository contract; mysql is the canonical one.
func newRepository(ctx context.Context, c *config.Config) (dependency.Repository, error) {
	switch c.Storage.Backend {
	case "", "mysql":
		return store.New(ctx, c.DB)
	case "bunt":
		return c.Bunt.InitDB()
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		_ = a.hs.Stop(ctx)
	}
	if a.mailer != nil {
		_ = a.mailer.Stop()
	}
	if a.db != nil {
		a.db.Close()
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
