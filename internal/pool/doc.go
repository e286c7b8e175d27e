// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides strongly-typed object pooling for the string and byte buffers used while
// building prompts and request bodies.
//
// The package wraps [sync.Pool] with a generic [Pool] type. Pools created with [NewWithReset]
// reset every object before it goes back to the pool, so callers never observe data from a
// previous invocation:
//
//	sb := pool.String.Get()
//	defer pool.String.Put(sb)
//	sb.WriteString("**Conversation History:** ")
//
// Never keep a reference to a pooled object (or to a slice of its internal buffer) after Put.
package pool
