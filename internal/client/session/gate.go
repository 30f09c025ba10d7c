// Package session decides whether a role is logged in. The session record
// lives in the local metadata store under the role's storage key and is
// written verbatim from the login response.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mybank/internal/client/models"
	"github.com/dmitrijs2005/mybank/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

var (
	// ErrNoSession means the role is not logged in: the record is absent,
	// unreadable or carries no positive userId.
	ErrNoSession = errors.New("no active session")
	// ErrInvalidSession is returned by Save for a payload that would not
	// pass Check.
	ErrInvalidSession = errors.New("invalid session payload")
)

type Gate struct {
	store metadata.Repository
	log   logging.Logger
}

func NewGate(store metadata.Repository, log logging.Logger) *Gate {
	return &Gate{store: store, log: log}
}

func parse(raw []byte) (*models.Session, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var s models.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	if s.UserID <= 0 {
		return nil, false
	}
	return &s, true
}

// Check returns the stored session of role or ErrNoSession. Store failures
// are returned wrapped.
func (g *Gate) Check(ctx context.Context, role models.Role) (*models.Session, error) {
	raw, err := g.store.Get(ctx, role.StorageKey())
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if raw == nil {
		return nil, ErrNoSession
	}
	s, ok := parse(raw)
	if !ok {
		g.log.Warn(ctx, "ignoring malformed session record", "role", role)
		return nil, ErrNoSession
	}
	return s, nil
}

// Save stores the login payload of role as received.
func (g *Gate) Save(ctx context.Context, role models.Role, raw json.RawMessage) (*models.Session, error) {
	s, ok := parse(raw)
	if !ok {
		return nil, ErrInvalidSession
	}
	if err := g.store.Set(ctx, role.StorageKey(), raw); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// Clear logs role out.
func (g *Gate) Clear(ctx context.Context, role models.Role) error {
	if err := g.store.Delete(ctx, role.StorageKey()); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
