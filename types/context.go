// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"strings"
)

// Passage is a single piece of text returned by a retrieval backend.
type Passage struct {
	// ID is the backend identifier of the passage, if any.
	ID string `json:"id,omitempty"`

	// Text is the passage content.
	Text string `json:"text"`

	// Score is the backend relevance score. Higher is more relevant unless the backend says otherwise.
	Score float64 `json:"score,omitempty"`

	// Source names the document the passage was cut from.
	Source string `json:"source,omitempty"`

	// Metadata holds backend specific attributes.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RetrievedContext is the text a retrieval backend returned for one query.
//
// The zero value means "nothing found" and is used for failed retrievals as well.
type RetrievedContext struct {
	// Passages are the bounded top-K passages, in backend order.
	Passages []Passage

	// Raw is the unparsed backend payload. It is used as the context text when no passage could be extracted.
	Raw string
}

// IsEmpty reports whether rc carries no usable text.
func (rc RetrievedContext) IsEmpty() bool {
	return strings.TrimSpace(rc.Text()) == ""
}

// Text returns the context as plain text.
func (rc RetrievedContext) Text() string {
	if len(rc.Passages) == 0 {
		return rc.Raw
	}

	texts := make([]string, 0, len(rc.Passages))
	for _, p := range rc.Passages {
		if t := strings.TrimSpace(p.Text); t != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return rc.Raw
	}
	return strings.Join(texts, "\n\n")
}
