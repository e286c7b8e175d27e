// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/ragagent/internal/pool"
	"github.com/go-a2a/ragagent/types"
)

// Positions of the entries of a composed prompt.
const (
	SystemIndex  = types.PromptSystem
	ContextIndex = types.PromptContext
	HistoryIndex = types.PromptHistory
	QueryIndex   = types.PromptQuery

	// Size is the number of entries of a composed prompt.
	Size = types.PromptSize
)

const (
	// ContextPreamble frames the retrieved context entry.
	ContextPreamble = "Here is the relevant context I found:\n\n"

	// HistoryPreamble frames the conversation history entry.
	HistoryPreamble = "**Conversation History:** "
)

// Composer builds prompts for one organisation.
type Composer struct {
	org          Organization
	instructions string
}

// NewComposer returns a [Composer] for org.
func NewComposer(org Organization) *Composer {
	org = org.orDefault()
	return &Composer{
		org:          org,
		instructions: org.Instructions(),
	}
}

var defaultComposer = NewComposer(DefaultOrganization)

// Compose builds a prompt with the [DefaultOrganization] policy.
func Compose(query string, rc types.RetrievedContext, history types.History) *types.Prompt {
	return defaultComposer.Compose(query, rc, history)
}

// Organization returns the organisation of c.
func (c *Composer) Organization() Organization {
	return c.org
}

// Instructions returns the system policy text of c.
func (c *Composer) Instructions() string {
	return c.instructions
}

// Compose builds the prompt for query from rc and history.
//
// An empty rc still yields a context entry, holding only the preamble.
func (c *Composer) Compose(query string, rc types.RetrievedContext, history types.History) *types.Prompt {
	return types.NewPrompt(
		types.SystemMessage(c.instructions),
		types.AssistantMessage(ContextPreamble+rc.Text()),
		types.AssistantMessage(HistoryPreamble+SerializeHistory(history)),
		types.UserMessage(query),
	)
}

// IndexInstructions returns the system instruction used by the index query engine.
func (c *Composer) IndexInstructions(history types.History) string {
	return c.org.IndexInstructions(SerializeHistory(history))
}

// SerializeHistory renders history as a JSON array of {role, content} objects.
//
// A nil history renders as "[]". Serialization never fails: if the history cannot be encoded
// as JSON the turns are rendered one per line instead.
func SerializeHistory(history types.History) string {
	if len(history) == 0 {
		return "[]"
	}

	sb := pool.String.Get()
	defer pool.String.Put(sb)

	if err := json.MarshalWrite(sb, history, jsontext.AllowInvalidUTF8(true)); err == nil {
		return sb.String()
	}

	sb.Reset()
	for i, msg := range history {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(msg.Role)
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
	}
	return sb.String()
}
