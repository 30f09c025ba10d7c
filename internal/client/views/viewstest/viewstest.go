// Package viewstest provides a recording Renderer and a manually driven
// Scheduler for tests of code built on views.
package viewstest

import (
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/mybank/internal/client/views"
)

// Renderer records everything rendered.
type Renderer struct {
	mu       sync.Mutex
	pages    []string
	views    map[string][]views.View
	statuses map[string][]views.Status
	forms    map[string]views.Form
}

func NewRenderer() *Renderer {
	return &Renderer{
		views:    make(map[string][]views.View),
		statuses: make(map[string][]views.Status),
		forms:    make(map[string]views.Form),
	}
}

func (r *Renderer) PageChanged(page string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = append(r.pages, page)
}

func (r *Renderer) RenderView(area string, v views.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[area] = append(r.views[area], v)
}

func (r *Renderer) RenderStatus(area string, s views.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[area] = append(r.statuses[area], s)
}

func (r *Renderer) RenderForm(area string, f views.Form) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms[area] = f.Clone()
}

// Pages returns the page switches in order.
func (r *Renderer) Pages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.pages...)
}

// Views returns every view rendered into area.
func (r *Renderer) Views(area string) []views.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]views.View(nil), r.views[area]...)
}

// LastView returns the current content of area.
func (r *Renderer) LastView(area string) (views.View, bool) {
	vs := r.Views(area)
	if len(vs) == 0 {
		return views.View{}, false
	}
	return vs[len(vs)-1], true
}

func (r *Renderer) Statuses(area string) []views.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]views.Status(nil), r.statuses[area]...)
}

// LastStatus returns the current status line of area.
func (r *Renderer) LastStatus(area string) (views.Status, bool) {
	ss := r.Statuses(area)
	if len(ss) == 0 {
		return views.Status{}, false
	}
	return ss[len(ss)-1], true
}

func (r *Renderer) Form(area string) views.Form {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.forms[area].Clone()
}

// Scheduler queues delayed calls until Fire is called.
type Scheduler struct {
	mu      sync.Mutex
	pending []*timer
}

type timer struct {
	s       *Scheduler
	delay   time.Duration
	f       func()
	stopped bool
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func NewScheduler() *Scheduler { return &Scheduler{} }

func (s *Scheduler) AfterFunc(d time.Duration, f func()) views.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &timer{s: s, delay: d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Delays lists the delays of the calls still pending.
func (s *Scheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []time.Duration
	for _, t := range s.pending {
		if !t.stopped {
			out = append(out, t.delay)
		}
	}
	return out
}

func (s *Scheduler) Pending() int {
	return len(s.Delays())
}

// Fire runs every pending call, shortest delay first, and returns how many
// ran. Calls scheduled while firing stay pending.
func (s *Scheduler) Fire() int {
	s.mu.Lock()
	due := s.pending
	s.pending = nil
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].delay < due[j].delay })

	n := 0
	for _, t := range due {
		s.mu.Lock()
		stopped := t.stopped
		t.stopped = true
		s.mu.Unlock()
		if stopped {
			continue
		}
		t.f()
		n++
	}
	return n
}
