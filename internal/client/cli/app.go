package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gobarber/internal/client/models"
	"github.com/dmitrijs2005/gobarber/internal/client/services"
	"github.com/dmitrijs2005/gobarber/internal/client/session"
	"github.com/dmitrijs2005/gobarber/internal/logging"
)

// SessionStore is the part of *session.Store the screens use.
type SessionStore interface {
	Wait(ctx context.Context) error
	State() session.State
	CurrentUser() (models.User, bool)
	Token() (string, bool)
	SignIn(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
}

type App struct {
	store   SessionStore
	auth    services.AuthService
	profile services.ProfileService
	logger  logging.Logger

	reader *bufio.Reader
	out    io.Writer
	closer io.Closer
}

func NewApp(store SessionStore, auth services.AuthService, profile services.ProfileService, logger logging.Logger) *App {
	return &App{
		store:   store,
		auth:    auth,
		profile: profile,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run blocks until the persisted session is restored, then serves the REPL
// until EOF or "exit". A failed restore is reported and the REPL starts
// signed out.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to GoBarber (type 'help' for commands)")
	a.println("Loading...")

	if err := a.store.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		a.logger.Error(ctx, "session restore failed", "error", err)
		a.println("Could not restore your session, please sign in again.")
	}

	if user, ok := a.store.CurrentUser(); ok {
		a.println("Signed in as", user.Name)
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.store.State() == session.Authenticated
}

func (a *App) status() string {
	if user, ok := a.store.CurrentUser(); ok {
		return fmt.Sprintf("(%s)", user.Email)
	}
	return ""
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
