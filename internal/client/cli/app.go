package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/client/config"
	"github.com/dmitrijs2005/mybank/internal/client/dashboards"
	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mybank/internal/client/services"
	"github.com/dmitrijs2005/mybank/internal/client/session"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

type App struct {
	role         models.Role
	auth         services.AuthService
	recovery     *services.RecoveryService
	registration *services.RegistrationService
	env          dashboards.Env
	board        dashboards.Dashboard
	// forms keeps the inputs of each action between submissions, so a
	// selected account survives a successful deposit.
	forms  map[string]views.Form
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger
}

// NewApp builds the console for cfg.Role on top of an opened store and a
// backend client. Output goes to stdout, input comes from stdin.
func NewApp(cfg *config.Config, c client.Client, store metadata.Repository, log logging.Logger) *App {
	gate := session.NewGate(store, log)
	return &App{
		role:         models.Role(cfg.Role),
		auth:         services.NewAuthService(c, gate, log),
		recovery:     services.NewRecoveryService(store, log),
		registration: services.NewRegistrationService(store, cfg.DataDir, log),
		env: dashboards.Env{
			Client:    c,
			Renderer:  NewTermRenderer(os.Stdout),
			Scheduler: views.RealScheduler(),
			Log:       log,
			Delays: dashboards.Delays{
				Update:  cfg.UpdateDelay,
				Refresh: cfg.RefreshDelay,
				Create:  cfg.CreateDelay,
			},
		},
		forms:  make(map[string]views.Form),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		log:    log,
	}
}

// Run resumes a stored session when there is one and serves the REPL until
// the user exits.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintf(a.out, "MyBank %s console (type 'help' for commands)\n", a.role.Title())
	defer a.closeBoard()

	s, err := a.auth.Current(ctx, a.role)
	switch {
	case err == nil:
		if err := a.open(ctx, s); err != nil {
			return err
		}
	case errors.Is(err, session.ErrNoSession):
		fmt.Fprintln(a.out, "Not logged in. Type 'login' to sign in.")
	default:
		return err
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.board != nil
}

// open builds the dashboard for s and enters its home page.
func (a *App) open(ctx context.Context, s *models.Session) error {
	board, err := dashboards.New(a.role, s, a.env)
	if err != nil {
		return err
	}
	a.board = board
	fmt.Fprintf(a.out, "Welcome, %s\n", s.DisplayName(a.role))
	return board.Start(ctx)
}

func (a *App) closeBoard() {
	if a.board != nil {
		a.board.Close()
		a.board = nil
	}
	clear(a.forms)
}

// status is shown in the prompt: role, display name and active page.
func (a *App) status() string {
	if a.board == nil {
		return string(a.role)
	}
	name := a.board.Session().DisplayName(a.role)
	return fmt.Sprintf("%s: %s @ %s", a.role, name, a.board.Router().Active())
}

// form returns the kept inputs of the named action.
func (a *App) form(name string) views.Form {
	f, ok := a.forms[name]
	if !ok {
		f = views.Form{}
		a.forms[name] = f
	}
	return f
}
