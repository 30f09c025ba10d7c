package views

import "sync/atomic"

// Generation hands out load tokens. Only the most recently issued token is
// current; a load whose token went stale must drop its result.
type Generation struct {
	n atomic.Uint64
}

func (g *Generation) Next() uint64 {
	return g.n.Add(1)
}

func (g *Generation) Current(tok uint64) bool {
	return g.n.Load() == tok
}
