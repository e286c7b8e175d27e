// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package retrieval

import (
	"context"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/go-a2a/ragagent/types"
)

// InMemory is a keyword matching retriever over a fixed set of passages.
//
// It is meant for prototyping and tests. Passages are scored by the number of
// distinct query words they contain.
type InMemory struct {
	mu       sync.RWMutex
	passages []types.Passage
	words    []map[string]struct{}
	topK     int
}

var _ types.Retriever = (*InMemory)(nil)

// NewInMemory creates a new [InMemory] retriever that returns at most topK passages.
func NewInMemory(topK int, passages ...types.Passage) *InMemory {
	if topK < 1 {
		topK = 1
	}
	m := &InMemory{topK: topK}
	m.Add(passages...)
	return m
}

// Name implements [types.Retriever].
func (m *InMemory) Name() string { return "memory" }

// Add indexes passages.
func (m *InMemory) Add(passages ...types.Passage) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range passages {
		m.passages = append(m.passages, p)
		m.words = append(m.words, wordSet(p.Text))
	}
}

// Len returns the number of indexed passages.
func (m *InMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.passages)
}

// Retrieve implements [types.Retriever].
func (m *InMemory) Retrieve(ctx context.Context, query string) (types.RetrievedContext, error) {
	if err := ctx.Err(); err != nil {
		return types.RetrievedContext{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	queryWords := wordSet(query)
	if len(queryWords) == 0 {
		return types.RetrievedContext{}, nil
	}

	type hit struct {
		idx   int
		score int
	}
	var hits []hit
	for i, words := range m.words {
		score := 0
		for w := range queryWords {
			if _, ok := words[w]; ok {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, hit{idx: i, score: score})
		}
	}
	slices.SortStableFunc(hits, func(a, b hit) int { return b.score - a.score })
	if len(hits) > m.topK {
		hits = hits[:m.topK]
	}

	passages := make([]types.Passage, 0, len(hits))
	for _, h := range hits {
		p := m.passages[h.idx]
		p.Score = float64(h.score) / float64(len(queryWords))
		passages = append(passages, p)
	}

	return types.RetrievedContext{Passages: passages}, nil
}

func wordSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
