package client

import (
	"context"
	"net/url"
)

// Client is the backend contract used by every view. Implementations never
// return a Go error: failures are folded into the Result.
type Client interface {
	Get(ctx context.Context, path string, query url.Values) Result
	Post(ctx context.Context, path string, body any) Result
}
