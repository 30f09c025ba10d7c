package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/client/dashboards"
	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mybank/internal/client/services"
	"github.com/dmitrijs2005/mybank/internal/client/session"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/client/views/viewstest"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

type fakeAuth struct {
	session   *models.Session
	loginErr  error
	logoutErr error
	current   *models.Session

	email     string
	password  string
	loggedOut bool
}

func (f *fakeAuth) Login(_ context.Context, _ models.Role, email, password string) (*models.Session, error) {
	f.email, f.password = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.session, nil
}

func (f *fakeAuth) Logout(context.Context, models.Role) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.loggedOut = true
	return nil
}

func (f *fakeAuth) Current(context.Context, models.Role) (*models.Session, error) {
	if f.current == nil {
		return nil, session.ErrNoSession
	}
	return f.current, nil
}

type testApp struct {
	*App
	auth     *fakeAuth
	client   *viewstest.Client
	renderer *viewstest.Renderer
	sched    *viewstest.Scheduler
	out      *bytes.Buffer
	store    metadata.Repository
}

// newTestApp builds an App for role reading its answers from input.
func newTestApp(t *testing.T, role models.Role, input string) *testApp {
	t.Helper()

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := metadata.NewSQLiteRepository(db)

	log := logging.Discard()
	ta := &testApp{
		auth:     &fakeAuth{},
		client:   viewstest.NewClient(),
		renderer: viewstest.NewRenderer(),
		sched:    viewstest.NewScheduler(),
		out:      &bytes.Buffer{},
		store:    store,
	}
	ta.App = &App{
		role:         role,
		auth:         ta.auth,
		recovery:     services.NewRecoveryService(store, log),
		registration: services.NewRegistrationService(store, t.TempDir(), log),
		env: dashboards.Env{
			Client:    ta.client,
			Renderer:  ta.renderer,
			Scheduler: ta.sched,
			Log:       log,
		},
		forms:  make(map[string]views.Form),
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    ta.out,
		log:    log,
	}
	return ta
}

// openAs opens the dashboard directly, as a resumed session would.
func (ta *testApp) openAs(t *testing.T, s *models.Session) {
	t.Helper()
	require.NoError(t, ta.open(context.Background(), s))
}

// stubPasswords answers password prompts with pws in order, then with "".
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(string, io.Writer) ([]byte, error) {
		if len(pws) == 0 {
			return []byte{}, nil
		}
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func capturePrintln(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&buf, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &buf
}

func lines(answers ...string) string {
	return strings.Join(answers, "\n") + "\n"
}
