package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/mybank/internal/common"
)

// Kind tags a Result.
type Kind int

const (
	KindOK Kind = iota
	KindRejected
	KindUnreachable
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindRejected:
		return "rejected"
	default:
		return "unreachable"
	}
}

// Result is a decoded backend response.
type Result struct {
	Kind    Kind
	Message string
	Data    json.RawMessage
	cause   error
}

// Ok wraps a success payload.
func Ok(data json.RawMessage) Result {
	return Result{Kind: KindOK, Data: data}
}

// Rejected is a business failure with the server-supplied message.
func Rejected(message string) Result {
	return Result{Kind: KindRejected, Message: message}
}

// Unreachable is a transport or parse failure.
func Unreachable(cause error) Result {
	return Result{Kind: KindUnreachable, cause: cause}
}

func (r Result) OK() bool { return r.Kind == KindOK }

// Err returns nil for KindOK, a *BusinessError for KindRejected and an
// error wrapping ErrUnavailable for KindUnreachable.
func (r Result) Err() error {
	switch r.Kind {
	case KindOK:
		return nil
	case KindRejected:
		return &BusinessError{Message: r.Message}
	default:
		if r.cause != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, r.cause)
		}
		return ErrUnavailable
	}
}

// Display is the text shown to the user for a failed Result: the server
// message when there is one, fallback otherwise, and the generic network
// error for transport failures.
func (r Result) Display(fallback string) string {
	switch r.Kind {
	case KindRejected:
		if r.Message != "" {
			return r.Message
		}
		return fallback
	case KindUnreachable:
		return common.NetworkErrorMessage
	default:
		return ""
	}
}

// Decode unmarshals Data into v. A missing or null payload leaves v alone.
func (r Result) Decode(v any) error {
	if !r.OK() {
		return r.Err()
	}
	if len(r.Data) == 0 || bytes.Equal(bytes.TrimSpace(r.Data), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// DecodeList unmarshals a list payload. A payload that is not a JSON array
// (including a missing one) yields ErrNotAList.
func DecodeList[T any](r Result) ([]T, error) {
	if !r.OK() {
		return nil, r.Err()
	}
	trimmed := bytes.TrimSpace(r.Data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotAList
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return items, nil
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeEnvelope classifies a raw HTTP answer.
func decodeEnvelope(statusCode int, body []byte) Result {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Unreachable(fmt.Errorf("status %d: malformed body: %w", statusCode, err))
	}
	if statusCode < 200 || statusCode > 299 || env.Status != "success" {
		return Rejected(env.Message)
	}
	return Ok(env.Data)
}
