package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmitrijs2005/mybank/internal/logging"
)

const (
	requestIDHeader      = "X-Request-ID"
	idempotencyKeyHeader = "Idempotency-Key"

	maxBodyBytes = 4 << 20
)

// HTTPClient talks to the banking backend over HTTP/JSON.
type HTTPClient struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	log     logging.Logger
	newID   func() string
}

// NewHTTPClient builds a client for baseURL. Every call is bounded by
// timeout; a zero timeout leaves only the caller's context in charge.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse server url: %q is not absolute", baseURL)
	}

	return &HTTPClient{
		base:    u,
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		timeout: timeout,
		log:     log,
		newID:   uuid.NewString,
	}, nil
}

func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values) Result {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return c.do(ctx, http.MethodGet, u, nil)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body any) Result {
	payload, err := json.Marshal(body)
	if err != nil {
		return Unreachable(fmt.Errorf("encode request: %w", err))
	}
	return c.do(ctx, http.MethodPost, c.base.JoinPath(path), payload)
}

func (c *HTTPClient) do(ctx context.Context, method string, u *url.URL, payload []byte) Result {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return Unreachable(fmt.Errorf("build request: %w", err))
	}

	reqID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, reqID)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(idempotencyKeyHeader, c.newID())
	}

	log := c.log.With("method", method, "path", u.Path, "request_id", reqID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return Unreachable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn(ctx, "read response failed", "status", resp.StatusCode, "error", err)
		return Unreachable(fmt.Errorf("read response: %w", err))
	}

	res := decodeEnvelope(resp.StatusCode, raw)
	log.Debug(ctx, "request done", "status", resp.StatusCode, "result", res.Kind.String(), "elapsed", time.Since(started))
	return res
}
