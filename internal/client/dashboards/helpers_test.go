package dashboards

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/views"
	"github.com/dmitrijs2005/mybank/internal/client/views/viewstest"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

type request struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

type reply struct {
	status int
	body   any
}

func ok(data any) reply {
	return reply{status: http.StatusOK, body: map[string]any{"status": "success", "data": data}}
}

func rejected(msg string) reply {
	return reply{status: http.StatusBadRequest, body: map[string]any{"status": "error", "message": msg}}
}

// backend is a scripted banking API. Unknown routes answer 404.
type backend struct {
	mu       sync.Mutex
	handlers map[string]func(request) reply
	requests []request
}

func (b *backend) on(method, path string, h func(request) reply) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[method+" "+path] = h
}

func (b *backend) reply(method, path string, r reply) {
	b.on(method, path, func(request) reply { return r })
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := request{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query()}
	if r.Method == http.MethodPost {
		_ = json.NewDecoder(r.Body).Decode(&req.Body)
	}

	b.mu.Lock()
	b.requests = append(b.requests, req)
	h := b.handlers[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	rep := reply{status: http.StatusNotFound, body: map[string]any{"status": "error", "message": "not found"}}
	if h != nil {
		rep = h(req)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_ = json.NewEncoder(w).Encode(rep.body)
}

// to returns the requests sent to path, in order.
func (b *backend) to(path string) []request {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []request
	for _, r := range b.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

type fixture struct {
	backend   *backend
	renderer  *viewstest.Renderer
	scheduler *viewstest.Scheduler
	env       Env
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := &backend{handlers: make(map[string]func(request) reply)}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	c, err := client.NewHTTPClient(srv.URL, 2*time.Second, logging.Discard())
	require.NoError(t, err)

	f := &fixture{
		backend:   b,
		renderer:  viewstest.NewRenderer(),
		scheduler: viewstest.NewScheduler(),
	}
	f.env = Env{
		Client:    c,
		Renderer:  f.renderer,
		Scheduler: f.scheduler,
		Log:       logging.Discard(),
		Delays:    DefaultDelays(),
	}
	return f
}

func (f *fixture) lastView(t *testing.T, area string) views.View {
	t.Helper()
	v, ok := f.renderer.LastView(area)
	require.True(t, ok, "nothing rendered into %s", area)
	return v
}

func (f *fixture) lastStatus(t *testing.T, area string) views.Status {
	t.Helper()
	s, ok := f.renderer.LastStatus(area)
	require.True(t, ok, "no status rendered into %s", area)
	return s
}

func ptr[T any](v T) *T { return &v }

func branches() []models.Branch {
	return []models.Branch{
		{BranchID: 1, BranchName: "Downtown", City: "Toronto"},
		{BranchID: 2, BranchName: "Uptown"},
	}
}

func optionValues(s *views.Select) []string {
	var out []string
	for _, o := range s.Options() {
		out = append(out, o.Value)
	}
	return out
}
