// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

// State is the stage an invocation is in.
type State int

const (
	StateInit State = iota
	StateRetrieving
	StateComposing
	StateGenerating
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateInit:       "INIT",
	StateRetrieving: "RETRIEVING",
	StateComposing:  "COMPOSING",
	StateGenerating: "GENERATING",
	StateDone:       "DONE",
	StateFailed:     "FAILED",
}

// String implements [fmt.Stringer].
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// Terminal reports whether s ends an invocation.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
