// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Role represents the role of a participant in a conversation.
type Role = string

const (
	// RoleSystem is the role of the system instructions.
	RoleSystem Role = "system"

	// RoleUser is the role of the user.
	RoleUser Role = "user"

	// RoleAssistant is the role of the assistant.
	RoleAssistant Role = "assistant"

	// RoleModel is the Gemini wire name of the assistant role.
	RoleModel Role = "model"
)

// Message represents a single role-tagged conversation entry.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage returns a new system [Message].
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage returns a new user [Message].
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage returns a new assistant [Message].
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// History is the chronological list of prior conversation turns.
//
// A nil History is a valid empty history.
type History []Message

// Len returns the number of turns in the history.
func (h History) Len() int {
	return len(h)
}

// Clone returns a deep copy of h which shares no memory with h.
//
// Clone never returns nil, so every invocation gets its own fresh (possibly empty) history.
func (h History) Clone() (History, error) {
	out := make(History, 0, len(h))
	if len(h) == 0 {
		return out, nil
	}
	if err := deepcopy.Copy(&out, h); err != nil {
		return nil, fmt.Errorf("copy history: %w", err)
	}
	return out, nil
}

// Validate reports an error if any turn carries an unknown role.
func (h History) Validate() error {
	for i, msg := range h {
		switch msg.Role {
		case RoleSystem, RoleUser, RoleAssistant, RoleModel:
		default:
			return &InvalidRoleError{Index: i, Role: msg.Role}
		}
	}
	return nil
}
