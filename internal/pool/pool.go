// Package pool recycles per-parse scratch buffers.
package pool

import (
	"sync"
)

// Pool is a typed wrapper around sync.Pool with an optional reset hook.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T) // called on Put, before the object is reused
}

// New returns a pool creating objects with factory.
func New[T any](factory func() *T, reset func(*T)) *Pool[T] {
	return &Pool[T]{
		pool:  sync.Pool{New: func() any { return factory() }},
		reset: reset,
	}
}

// Get returns a recycled object or a new one.
func (p *Pool[T]) Get() *T {
	return p.pool.Get().(*T)
}

// Put resets obj and makes it available for reuse.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	if p.reset != nil {
		p.reset(obj)
	}
	p.pool.Put(obj)
}

// SlicePool recycles slices, dropping ones that grew beyond maxCap.
type SlicePool[E any] struct {
	*Pool[[]E]
	maxCap int
}

// NewSlice returns a pool of empty slices with the given initial capacity.
// Returned slices have their elements zeroed so pooled pointers do not
// keep values alive.
func NewSlice[E any](capacity, maxCap int) *SlicePool[E] {
	return &SlicePool[E]{
		Pool: New(
			func() *[]E {
				s := make([]E, 0, capacity)
				return &s
			},
			func(s *[]E) {
				clear(*s)
				*s = (*s)[:0] // Reset length but keep capacity
			},
		),
		maxCap: maxCap,
	}
}

// Put returns s unless it outgrew the pool.
func (p *SlicePool[E]) Put(s *[]E) {
	if s == nil || (p.maxCap > 0 && cap(*s) > p.maxCap) {
		return
	}
	p.Pool.Put(s)
}
