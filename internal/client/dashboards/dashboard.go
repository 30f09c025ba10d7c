// Package dashboards assembles the views of the three role dashboards:
// the pages each role can visit, the panels behind its lists and the
// actions behind its forms.
package dashboards

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/common"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

// Delays controls how long success messages stay before dependent views
// reload.
type Delays struct {
	// Update is the wait before an edit page returns to its list.
	Update time.Duration
	// Refresh is the wait before the customer views reload after a mutation.
	Refresh time.Duration
	// Create is the wait before admin lists reload after a creation.
	Create time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Update:  views.DefaultUpdateDelay,
		Refresh: 2000 * time.Millisecond,
		Create:  1000 * time.Millisecond,
	}
}

// Env carries what every dashboard is built from.
type Env struct {
	Client    client.Client
	Renderer  views.Renderer
	Scheduler views.Scheduler
	Log       logging.Logger
	Delays    Delays
}

// Dashboard is the role-independent surface of an opened dashboard.
type Dashboard interface {
	Role() models.Role
	Session() *models.Session
	Router() *views.Router
	// Start loads the reference data and enters the home page.
	Start(ctx context.Context) error
	Close()
}

// New builds the dashboard of role for an authenticated session.
func New(role models.Role, s *models.Session, env Env) (Dashboard, error) {
	if s == nil {
		return nil, fmt.Errorf("open %s dashboard: no session", role)
	}
	switch role {
	case models.RoleAdmin:
		return NewAdmin(s, env), nil
	case models.RoleCustomer:
		return NewCustomer(s, env), nil
	case models.RoleTeller:
		return NewTeller(s, env), nil
	}
	return nil, fmt.Errorf("%w: %q", common.ErrUnknownRole, role)
}

type base struct {
	role    models.Role
	session *models.Session
	router  *views.Router
	timers  *views.Lifetime
	deps    views.Deps
	delays  Delays
}

func newBase(role models.Role, s *models.Session, env Env) base {
	log := env.Log.With("role", string(role))
	router := views.NewRouter(env.Renderer, log)
	timers := views.NewLifetime(env.Scheduler)
	if env.Delays == (Delays{}) {
		env.Delays = DefaultDelays()
	}
	return base{
		role:    role,
		session: s,
		router:  router,
		timers:  timers,
		delays:  env.Delays,
		deps: views.Deps{
			Client:    env.Client,
			Renderer:  env.Renderer,
			Router:    router,
			Scheduler: timers,
			Log:       log,
		},
	}
}

func (b *base) Role() models.Role        { return b.role }
func (b *base) Session() *models.Session { return b.session }
func (b *base) Router() *views.Router    { return b.router }
func (b *base) Deps() views.Deps         { return b.deps }
func (b *base) userID() int64            { return b.session.UserID }
func (b *base) log() logging.Logger      { return b.deps.Log }
func (b *base) render() views.Renderer   { return b.deps.Renderer }
func (b *base) client() client.Client    { return b.deps.Client }

// Close stops the delayed refreshes and returns of the session before
// cancelling the active page.
func (b *base) Close() {
	b.timers.Close()
	b.router.Close()
}

func branchID(br models.Branch) int64     { return br.BranchID }
func branchLabel(br models.Branch) string { return br.Label() }

func accountID(a models.Account) int64     { return a.AccountID }
func accountLabel(a models.Account) string { return a.Label() }

func int64s(v int64) string { return strconv.FormatInt(v, 10) }

func optInt(v *int64) string {
	if v == nil {
		return ""
	}
	return int64s(*v)
}

// offered returns id as a select value, or "" when s does not offer it.
func offered(s *views.Select, id *int64) string {
	v := optInt(id)
	if !s.Has(v) {
		return ""
	}
	return v
}

// branchCell resolves a branch id through the cache, falling back to a name
// the record already carries.
func branchCell(cache *views.ReferenceCache[models.Branch], id *int64, fallback string) string {
	if id != nil {
		if br, ok := cache.Find(*id); ok {
			return br.Label()
		}
	}
	return models.Text(fallback)
}
