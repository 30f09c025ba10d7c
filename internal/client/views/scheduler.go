package views

import (
	"sync"
	"time"
)

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs delayed work. The production implementation is backed by
// time.AfterFunc; tests substitute a manual one.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

// RealScheduler returns the time.AfterFunc backed Scheduler.
func RealScheduler() Scheduler { return realScheduler{} }

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Lifetime is a Scheduler bound to one dashboard session. Close stops every
// pending call; nothing scheduled through it runs after Close.
type Lifetime struct {
	next Scheduler

	mu      sync.Mutex
	closed  bool
	seq     uint64
	pending map[uint64]Timer
}

func NewLifetime(next Scheduler) *Lifetime {
	return &Lifetime{next: next, pending: make(map[uint64]Timer)}
}

func (l *Lifetime) AfterFunc(d time.Duration, f func()) Timer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return stoppedTimer{}
	}
	l.seq++
	id := l.seq
	l.pending[id] = l.next.AfterFunc(d, func() {
		if l.take(id) != nil {
			f()
		}
	})
	return lifetimeTimer{l: l, id: id}
}

// take removes the call id from the pending set and returns its timer, or
// nil when it was stopped or the lifetime is closed.
func (l *Lifetime) take(id uint64) Timer {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.pending[id]
	if !ok || l.closed {
		return nil
	}
	delete(l.pending, id)
	return t
}

// Pending reports how many calls are still waiting.
func (l *Lifetime) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Close stops every pending call. It is idempotent.
func (l *Lifetime) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	for id, t := range l.pending {
		t.Stop()
		delete(l.pending, id)
	}
}

type lifetimeTimer struct {
	l  *Lifetime
	id uint64
}

func (t lifetimeTimer) Stop() bool {
	inner := t.l.take(t.id)
	if inner == nil {
		return false
	}
	return inner.Stop()
}

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return false }
