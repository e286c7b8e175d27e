// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned by a [Model] when the backend answered without any text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// InvalidRoleError is the error type for a history turn with an unknown role.
type InvalidRoleError struct {
	Index int
	Role  Role
}

// Error returns a string representation of the [InvalidRoleError].
func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("history[%d]: invalid role %q", e.Index, e.Role)
}
