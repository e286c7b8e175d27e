// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"slices"
)

// Answer is the final string returned to the caller of an agent.
type Answer = string

// Positions of the entries of a composed prompt.
const (
	PromptSystem = iota
	PromptContext
	PromptHistory
	PromptQuery

	// PromptSize is the number of entries of a composed prompt.
	PromptSize
)

// Prompt is an ordered sequence of role-tagged messages handed whole to a generator.
//
// A Prompt is immutable once built; accessors return copies.
type Prompt struct {
	messages []Message
}

// NewPrompt returns a [Prompt] holding a copy of msgs in the given order.
func NewPrompt(msgs ...Message) *Prompt {
	return &Prompt{
		messages: slices.Clone(msgs),
	}
}

// Len returns the number of entries in the prompt.
func (p *Prompt) Len() int {
	if p == nil {
		return 0
	}
	return len(p.messages)
}

// At returns the i-th entry of the prompt, or the zero [Message] when i is out of range.
func (p *Prompt) At(i int) Message {
	if i < 0 || i >= p.Len() {
		return Message{}
	}
	return p.messages[i]
}

// System returns the system policy entry.
func (p *Prompt) System() Message {
	return p.At(PromptSystem)
}

// Context returns the retrieved context entry.
func (p *Prompt) Context() Message {
	return p.At(PromptContext)
}

// History returns the serialized conversation history entry.
func (p *Prompt) History() Message {
	return p.At(PromptHistory)
}

// Query returns the user query entry.
func (p *Prompt) Query() Message {
	return p.At(PromptQuery)
}

// Messages returns a copy of the prompt entries.
func (p *Prompt) Messages() []Message {
	if p == nil {
		return nil
	}
	return slices.Clone(p.messages)
}

// Roles returns the role of every entry, in order.
func (p *Prompt) Roles() []Role {
	roles := make([]Role, p.Len())
	for i := range roles {
		roles[i] = p.messages[i].Role
	}
	return roles
}
