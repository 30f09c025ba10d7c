package views

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/mybank/internal/client/client"
	"github.com/dmitrijs2005/mybank/internal/common"
	"github.com/dmitrijs2005/mybank/internal/logging"
)

type Option struct {
	Value string
	Label string
}

// Select is a dropdown whose options come from a ReferenceCache. The
// placeholder, when set, is offered as the empty choice.
type Select struct {
	Name        string
	Placeholder string

	mu      sync.RWMutex
	options []Option
	value   string
}

func NewSelect(name, placeholder string) *Select {
	return &Select{Name: name, Placeholder: placeholder}
}

// Options returns the current choices, placeholder first.
func (s *Select) Options() []Option {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Option, 0, len(s.options)+1)
	if s.Placeholder != "" {
		out = append(out, Option{Label: s.Placeholder})
	}
	return append(out, s.options...)
}

func (s *Select) Value() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Has reports whether v is one of the non-placeholder options.
func (s *Select) Has(v string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.has(v)
}

func (s *Select) has(v string) bool {
	for _, o := range s.options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Set chooses v. The empty value selects the placeholder.
func (s *Select) Set(v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v != "" && !s.has(v) {
		return fmt.Errorf("%w %q for %s", ErrUnknownOption, v, s.Name)
	}
	s.value = v
	return nil
}

// fill rebuilds the option list and keeps the previous value only if it is
// still offered.
func (s *Select) fill(options []Option) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.options = options
	if !s.has(s.value) {
		s.value = ""
	}
}

// ReferenceCache holds a read-mostly collection (branches, accounts) and
// keeps the selects registered with it in sync.
type ReferenceCache[T any] struct {
	name  string
	fetch func(ctx context.Context) client.Result
	id    func(T) int64
	label func(T) string
	log   logging.Logger
	gen   Generation

	mu      sync.RWMutex
	items   []T
	selects []*Select
}

func NewReferenceCache[T any](
	name string,
	fetch func(ctx context.Context) client.Result,
	id func(T) int64,
	label func(T) string,
	log logging.Logger,
) *ReferenceCache[T] {
	return &ReferenceCache[T]{name: name, fetch: fetch, id: id, label: label, log: log}
}

// Register attaches s and fills it with the current collection.
func (c *ReferenceCache[T]) Register(s *Select) *Select {
	c.mu.Lock()
	c.selects = append(c.selects, s)
	options := c.optionsLocked()
	c.mu.Unlock()

	s.fill(options)
	return s
}

// Load fetches the collection. On failure the previous collection and the
// selects are left as they were. The result of a load overtaken by a newer
// Load or Replace is dropped.
func (c *ReferenceCache[T]) Load(ctx context.Context) error {
	tok := c.gen.Next()

	res := c.fetch(ctx)
	items, err := client.DecodeList[T](res)
	if err != nil {
		c.log.Warn(ctx, "reference data load failed", "cache", c.name, "error", err)
		return fmt.Errorf("load %s: %w", c.name, err)
	}

	if !c.gen.Current(tok) {
		c.log.Debug(ctx, "dropping superseded reference data", "cache", c.name)
		return nil
	}
	c.apply(items)
	return nil
}

// Replace installs a collection fetched elsewhere.
func (c *ReferenceCache[T]) Replace(items []T) {
	c.gen.Next()
	c.apply(items)
}

func (c *ReferenceCache[T]) apply(items []T) {
	c.mu.Lock()
	c.items = append([]T(nil), items...)
	options := c.optionsLocked()
	selects := append([]*Select(nil), c.selects...)
	c.mu.Unlock()

	for _, s := range selects {
		s.fill(options)
	}
}

func (c *ReferenceCache[T]) optionsLocked() []Option {
	options := make([]Option, 0, len(c.items))
	for _, it := range c.items {
		options = append(options, Option{
			Value: strconv.FormatInt(c.id(it), 10),
			Label: c.label(it),
		})
	}
	return options
}

func (c *ReferenceCache[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

func (c *ReferenceCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *ReferenceCache[T]) Find(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if c.id(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Label resolves id to its display name.
func (c *ReferenceCache[T]) Label(id int64) string {
	it, ok := c.Find(id)
	if !ok {
		return common.Placeholder
	}
	return c.label(it)
}

// LabelOf is Label for an optional id.
func (c *ReferenceCache[T]) LabelOf(id *int64) string {
	if id == nil {
		return common.Placeholder
	}
	return c.Label(*id)
}
