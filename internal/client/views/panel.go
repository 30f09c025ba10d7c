package views

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/common"
)

const DefaultUpdateDelay = 1500 * time.Millisecond

// Column renders one table column of T.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Filters narrow a list load. Empty values are not sent.
type Filters struct {
	Search    string
	BranchID  string
	AccountID string
}

func (f Filters) query() url.Values {
	q := url.Values{}
	if v := strings.TrimSpace(f.Search); v != "" {
		q.Set("search", v)
	}
	if v := strings.TrimSpace(f.BranchID); v != "" {
		q.Set("branchId", v)
	}
	if v := strings.TrimSpace(f.AccountID); v != "" {
		q.Set("accountId", v)
	}
	return q
}

// Schema describes one entity managed by a Panel.
type Schema[T any] struct {
	// Entity is the lower-case singular name used in prompts.
	Entity string
	// Area names the list area handed to the Renderer.
	Area     string
	ListPage string
	EditPage string

	ListPath string
	// ExtraQuery adds fixed parameters (the teller id) to every list load.
	ExtraQuery func() url.Values
	// EditSourcePath is refetched by Edit; ListPath is used when empty.
	EditSourcePath string
	RemovePath     string
	// RemoveKey is the JSON key carrying the id in the removal body.
	RemoveKey  string
	UpdatePath string

	ID      func(T) int64
	Columns []Column[T]
	// Sort, when set, orders a loaded list before rendering.
	Sort func([]T)
	// AfterLoad sees every successfully loaded list.
	AfterLoad func(ctx context.Context, items []T)

	FormOf  func(T) Form
	Fields  []Field
	IDField string

	LoadingMessage string
	EmptyMessage   string
	LoadFallback   string
	RemoveFallback string
	RemoveSuccess  string
	UpdateFallback string
	UpdateSuccess  string
	UpdateDelay    time.Duration
}

// Panel implements list, edit, delete and update for one Schema.
type Panel[T any] struct {
	schema Schema[T]
	deps   Deps
	gen    Generation

	mu      sync.Mutex
	filters Filters
	items   []T
	form    Form
}

func NewPanel[T any](schema Schema[T], deps Deps) *Panel[T] {
	if schema.EditSourcePath == "" {
		schema.EditSourcePath = schema.ListPath
	}
	if schema.UpdateDelay == 0 {
		schema.UpdateDelay = DefaultUpdateDelay
	}
	if schema.LoadingMessage == "" {
		schema.LoadingMessage = "Loading..."
	}
	return &Panel[T]{schema: schema, deps: deps}
}

func (p *Panel[T]) Schema() Schema[T] { return p.schema }

// Mount registers the list page, reloading with the last filters, and the
// edit page.
func (p *Panel[T]) Mount(r *Router) {
	if p.schema.ListPage != "" {
		r.Register(p.schema.ListPage, func(ctx context.Context) { _ = p.Reload(ctx) })
	}
	if p.schema.EditPage != "" {
		r.Register(p.schema.EditPage, nil)
	}
}

func (p *Panel[T]) Filters() Filters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

// SetFilters replaces the filters used by the next Reload.
func (p *Panel[T]) SetFilters(f Filters) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filters = f
}

// Items returns the last rendered list.
func (p *Panel[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.items...)
}

// EditForm returns a copy of the form filled by the last Edit.
func (p *Panel[T]) EditForm() Form {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form.Clone()
}

func (p *Panel[T]) Reload(ctx context.Context) error {
	return p.LoadList(ctx, p.Filters())
}

func (p *Panel[T]) listQuery(filters Filters) url.Values {
	q := filters.query()
	if p.schema.ExtraQuery != nil {
		for k, vs := range p.schema.ExtraQuery() {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
	}
	return q
}

// LoadList renders loading and then exactly one of error, empty or table.
// A response overtaken by a newer load or by leaving the page is dropped.
func (p *Panel[T]) LoadList(ctx context.Context, filters Filters) error {
	p.mu.Lock()
	p.filters = filters
	p.mu.Unlock()

	tok := p.gen.Next()
	area := p.schema.Area
	p.deps.Renderer.RenderView(area, Loading(p.schema.LoadingMessage))

	res := p.deps.Client.Get(ctx, p.schema.ListPath, p.listQuery(filters))
	if ctx.Err() != nil || !p.gen.Current(tok) {
		p.deps.Log.Debug(ctx, "dropping superseded list response", "area", area)
		return nil
	}

	items, err := client.DecodeList[T](res)
	if err != nil {
		msg := p.schema.LoadFallback
		if !res.OK() {
			msg = res.Display(p.schema.LoadFallback)
		}
		p.deps.Log.Warn(ctx, "list load failed", "area", area, "error", err)
		p.deps.Renderer.RenderView(area, Failed(msg))
		return err
	}

	if p.schema.Sort != nil {
		p.schema.Sort(items)
	}
	if p.schema.AfterLoad != nil {
		p.schema.AfterLoad(ctx, items)
	}

	p.mu.Lock()
	p.items = items
	p.mu.Unlock()

	if len(items) == 0 {
		p.deps.Renderer.RenderView(area, Empty(p.schema.EmptyMessage))
		return nil
	}
	p.deps.Renderer.RenderView(area, Rows(p.table(items)))
	return nil
}

func (p *Panel[T]) table(items []T) Table {
	t := Table{Headers: make([]string, len(p.schema.Columns))}
	for i, c := range p.schema.Columns {
		t.Headers[i] = c.Header
	}
	for _, it := range items {
		row := make([]string, len(p.schema.Columns))
		for i, c := range p.schema.Columns {
			v := c.Value(it)
			if v == "" {
				v = common.Placeholder
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Edit refetches the records, fills the edit form with the one matching id
// and switches to the edit page. Failures are only logged.
func (p *Panel[T]) Edit(ctx context.Context, id int64) (Form, error) {
	res := p.deps.Client.Get(ctx, p.schema.EditSourcePath, nil)
	items, err := client.DecodeList[T](res)
	if err != nil {
		p.deps.Log.Warn(ctx, "edit lookup failed", "entity", p.schema.Entity, "id", id, "error", err)
		return nil, err
	}

	for _, it := range items {
		if p.schema.ID(it) != id {
			continue
		}
		form := p.schema.FormOf(it)
		p.mu.Lock()
		p.form = form.Clone()
		p.mu.Unlock()

		p.deps.Renderer.RenderStatus(p.schema.EditPage, Status{})
		p.deps.Renderer.RenderForm(p.schema.EditPage, form)
		if err := p.deps.Router.Switch(ctx, p.schema.EditPage); err != nil {
			return nil, err
		}
		return form, nil
	}

	p.deps.Log.Warn(ctx, "record to edit not found", "entity", p.schema.Entity, "id", id)
	return nil, fmt.Errorf("%s %d: %w", p.schema.Entity, id, ErrNotFound)
}

// DeletePrompt is the confirmation question asked by Delete.
func (p *Panel[T]) DeletePrompt(id int64) string {
	return fmt.Sprintf("Are you sure you want to delete %s %d?", p.schema.Entity, id)
}

// Delete removes the record after confirmation and reloads the list with
// the last filters.
func (p *Panel[T]) Delete(ctx context.Context, id int64, confirm ConfirmFunc) error {
	if !confirm(p.DeletePrompt(id)) {
		return common.ErrorCancelled
	}

	area := p.schema.Area
	res := p.deps.Client.Post(ctx, p.schema.RemovePath, map[string]any{p.schema.RemoveKey: id})
	if !res.OK() {
		p.deps.Log.Warn(ctx, "delete failed", "entity", p.schema.Entity, "id", id, "error", res.Err())
		p.deps.Renderer.RenderStatus(area, Status{Kind: StatusError, Message: res.Display(p.schema.RemoveFallback)})
		return res.Err()
	}

	p.deps.Log.Info(ctx, "record deleted", "entity", p.schema.Entity, "id", id)
	p.deps.Renderer.RenderStatus(area, Status{Kind: StatusSuccess, Message: p.schema.RemoveSuccess})
	return p.Reload(ctx)
}

// Update submits the edit form. On success the list page is re-entered
// after the schema delay, which reloads the list once.
func (p *Panel[T]) Update(ctx context.Context, form Form) error {
	area := p.schema.EditPage
	fail := func(err error, msg string) error {
		p.deps.Renderer.RenderStatus(area, Status{Kind: StatusError, Message: msg})
		return err
	}

	if form.Get(p.schema.IDField) == "" {
		err := invalid(p.schema.IDField, "Missing "+p.schema.Entity+" id")
		return fail(err, UserMessage(err))
	}

	body, err := BuildPayload(p.schema.Fields, form)
	if err != nil {
		return fail(err, UserMessage(err))
	}

	p.deps.Renderer.RenderStatus(area, Status{Kind: StatusProcessing, Message: "Saving..."})
	res := p.deps.Client.Post(ctx, p.schema.UpdatePath, body)
	if !res.OK() {
		p.deps.Log.Warn(ctx, "update failed", "entity", p.schema.Entity, "error", res.Err())
		return fail(res.Err(), res.Display(p.schema.UpdateFallback))
	}

	p.deps.Log.Info(ctx, "record updated", "entity", p.schema.Entity, "id", form.Get(p.schema.IDField))
	p.deps.Renderer.RenderStatus(area, Status{Kind: StatusSuccess, Message: p.schema.UpdateSuccess})

	bg := context.WithoutCancel(ctx)
	p.deps.Scheduler.AfterFunc(p.schema.UpdateDelay, func() {
		if err := p.deps.Router.Switch(bg, p.schema.ListPage); err != nil {
			p.deps.Log.Error(bg, "return to list failed", "page", p.schema.ListPage, "error", err)
		}
	})
	return nil
}
