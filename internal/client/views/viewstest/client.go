package viewstest

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/mybank/internal/client/client"
)

// Call is one request seen by Client.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// JSON returns the body as the transport would have encoded it.
func (c Call) JSON() string {
	b, err := json.Marshal(c.Body)
	if err != nil {
		return ""
	}
	return string(b)
}

type HandlerFunc func(ctx context.Context, call Call) client.Result

// Client is a scripted client.Client. Requests without a handler are
// Unreachable.
type Client struct {
	mu       sync.Mutex
	handlers map[string]HandlerFunc
	calls    []Call
}

func NewClient() *Client {
	return &Client{handlers: make(map[string]HandlerFunc)}
}

// Handle sets the answer for method and path.
func (c *Client) Handle(method, path string, h HandlerFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[method+" "+path] = h
}

// Reply answers method and path with a fixed result.
func (c *Client) Reply(method, path string, res client.Result) {
	c.Handle(method, path, func(context.Context, Call) client.Result { return res })
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) client.Result {
	return c.do(ctx, Call{Method: "GET", Path: path, Query: query})
}

func (c *Client) Post(ctx context.Context, path string, body any) client.Result {
	return c.do(ctx, Call{Method: "POST", Path: path, Body: body})
}

func (c *Client) do(ctx context.Context, call Call) client.Result {
	c.mu.Lock()
	c.calls = append(c.calls, call)
	h := c.handlers[call.Method+" "+call.Path]
	c.mu.Unlock()

	if h == nil {
		return client.Unreachable(errors.New("no handler for " + call.Method + " " + call.Path))
	}
	return h(ctx, call)
}

func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// CallsTo returns the calls made to path.
func (c *Client) CallsTo(path string) []Call {
	var out []Call
	for _, call := range c.Calls() {
		if call.Path == path {
			out = append(out, call)
		}
	}
	return out
}

// OkJSON is an Ok result carrying v encoded as JSON.
func OkJSON(v any) client.Result {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return client.Ok(b)
}
