// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"bytes"
	"strings"
	"sync"
)

// Pool is a generics wrapper around [sync.Pool] to provide strongly-typed object pooling.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// New returns a new [Pool] for T, and will use fn to construct new T's when the pool is empty.
func New[T any](fn func() T) *Pool[T] {
	return NewWithReset(fn, nil)
}

// NewWithReset is like [New] but calls reset on every object passed to [Pool.Put].
func NewWithReset[T any](fn func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return fn()
			},
		},
		reset: reset,
	}
}

// Get gets a T from the pool, or creates a new one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put returns x into the pool.
func (p *Pool[T]) Put(x T) {
	if p.reset != nil {
		p.reset(x)
	}
	p.pool.Put(x)
}

// maxPooledSize is the largest buffer capacity kept for reuse. Larger buffers are dropped on reset.
const maxPooledSize = 64 << 10

// Buffer provides the [*bytes.Buffer] pooling objects.
var Buffer = NewWithReset(func() *bytes.Buffer {
	return &bytes.Buffer{}
}, func(b *bytes.Buffer) {
	if b.Cap() > maxPooledSize {
		*b = bytes.Buffer{}
		return
	}
	b.Reset()
})

// String provides the [*strings.Builder] pooling objects.
var String = NewWithReset(func() *strings.Builder {
	return &strings.Builder{}
}, func(sb *strings.Builder) {
	sb.Reset()
})
