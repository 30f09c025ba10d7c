package views

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Action declares one mutating form: what to check, what to send and what
// to refresh afterwards.
type Action struct {
	// Name is the status area of the action.
	Name   string
	Path   string
	Fields []Field
	Rules  []Rule
	// Extra computes additional body values such as the caller's id. An
	// error is reported like a validation failure.
	Extra func(ctx context.Context, form Form) (map[string]any, error)

	Processing string
	// Success builds the success message from the response payload.
	Success  func(data json.RawMessage) string
	Fallback string

	// ClearAll clears every field on success, not only the one-shot ones.
	ClearAll bool
	// Refresh runs once per success, immediately when RefreshDelay is zero
	// and after the delay otherwise. A positive delay also clears the
	// success status when it expires.
	Refresh      []func(ctx context.Context)
	RefreshDelay time.Duration
}

// Message returns a Success builder with a fixed text.
func Message(msg string) func(json.RawMessage) string {
	return func(json.RawMessage) string { return msg }
}

// CreatedWithID returns a Success builder reading "<what> (ID: n)" from the
// key field of the created record.
func CreatedWithID(what, key string) func(json.RawMessage) string {
	return func(data json.RawMessage) string {
		var rec map[string]any
		id := "?"
		if err := json.Unmarshal(data, &rec); err == nil {
			switch v := rec[key].(type) {
			case float64:
				if v != 0 {
					id = fmt.Sprintf("%.0f", v)
				}
			case string:
				if v != "" {
					id = v
				}
			}
		}
		return fmt.Sprintf("%s (ID: %s)", what, id)
	}
}

// ActionHandler submits an Action. It is safe for concurrent use.
type ActionHandler struct {
	action Action
	deps   Deps

	mu     sync.Mutex
	status Status
	// gen identifies the latest submission; a delayed clear of an older
	// one is skipped.
	gen Generation
}

func NewActionHandler(action Action, deps Deps) *ActionHandler {
	if action.Processing == "" {
		action.Processing = "Processing..."
	}
	if action.Success == nil {
		action.Success = Message("Done")
	}
	return &ActionHandler{action: action, deps: deps}
}

func (h *ActionHandler) Action() Action { return h.action }

func (h *ActionHandler) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

func (h *ActionHandler) setStatus(s Status) {
	h.mu.Lock()
	h.status = s
	h.mu.Unlock()
	h.deps.Renderer.RenderStatus(h.action.Name, s)
}

// Submit validates form, sends one request and reports the outcome in the
// action's status area. On success the one-shot fields of form are cleared
// in place; on failure form is left untouched. Nothing is retried.
func (h *ActionHandler) Submit(ctx context.Context, form Form) error {
	a := h.action
	tok := h.gen.Next()

	body, err := BuildPayload(a.Fields, form)
	if err == nil {
		err = Validate(form, a.Rules...)
	}
	if err == nil && a.Extra != nil {
		var extra map[string]any
		extra, err = a.Extra(ctx, form)
		for k, v := range extra {
			body[k] = v
		}
	}
	if err != nil {
		h.setStatus(Status{Kind: StatusError, Message: UserMessage(err)})
		return err
	}

	h.setStatus(Status{Kind: StatusProcessing, Message: a.Processing})

	res := h.deps.Client.Post(ctx, a.Path, body)
	if !res.OK() {
		h.deps.Log.Warn(ctx, "action failed", "action", a.Name, "error", res.Err())
		h.setStatus(Status{Kind: StatusError, Message: res.Display(a.Fallback)})
		return res.Err()
	}

	h.deps.Log.Info(ctx, "action succeeded", "action", a.Name)
	ClearFields(form, a.Fields, a.ClearAll)
	h.setStatus(Status{Kind: StatusSuccess, Message: a.Success(res.Data)})

	bg := context.WithoutCancel(ctx)
	if a.RefreshDelay <= 0 {
		h.refresh(bg)
		return nil
	}
	h.deps.Scheduler.AfterFunc(a.RefreshDelay, func() {
		if h.gen.Current(tok) {
			h.setStatus(Status{})
		}
		h.refresh(bg)
	})
	return nil
}

func (h *ActionHandler) refresh(ctx context.Context) {
	for _, fn := range h.action.Refresh {
		fn(ctx)
	}
}
