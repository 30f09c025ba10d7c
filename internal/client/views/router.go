package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/mybank/internal/common"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

// LoadFunc fetches the data of a page. ctx is cancelled when the page is
// left.
type LoadFunc func(ctx context.Context)

// Router keeps exactly one page active.
type Router struct {
	renderer Renderer
	log      logging.Logger

	mu     sync.Mutex
	pages  map[string]LoadFunc
	order  []string
	active string
	cancel context.CancelFunc
}

func NewRouter(renderer Renderer, log logging.Logger) *Router {
	return &Router{
		renderer: renderer,
		log:      log,
		pages:    make(map[string]LoadFunc),
	}
}

// Register adds page. load may be nil for pages without data. Registering
// a page twice replaces its load callback.
func (r *Router) Register(page string, load LoadFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pages[page]; !ok {
		r.order = append(r.order, page)
	}
	r.pages[page] = load
}

// Switch activates page and runs its load callback once. The context of the
// previously active page is cancelled first.
func (r *Router) Switch(ctx context.Context, page string) error {
	r.mu.Lock()
	load, ok := r.pages[page]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}
	if r.cancel != nil {
		r.cancel()
	}
	pageCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.active = page
	r.mu.Unlock()

	r.log.Debug(ctx, "page switched", "page", page)
	r.renderer.PageChanged(page)

	if load != nil {
		load(pageCtx)
	}
	return nil
}

// Start enters the default page.
func (r *Router) Start(ctx context.Context) error {
	return r.Switch(ctx, common.DefaultPage)
}

func (r *Router) Active() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// IsActive reports whether any of pages is the active one.
func (r *Router) IsActive(pages ...string) bool {
	active := r.Active()
	for _, p := range pages {
		if p == active {
			return true
		}
	}
	return false
}

// Pages lists the registered pages in registration order.
func (r *Router) Pages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Close cancels the active page.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
