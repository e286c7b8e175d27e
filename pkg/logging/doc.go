// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging utilities using Go's standard slog package.
//
// Loggers are stored in and retrieved from [context.Context] values so that one invocation of
// the agent logs every stage with the same attributes (for example its invocation ID):
//
//	logger, err := logging.New("debug", "text", os.Stderr)
//	if err != nil {
//		return err
//	}
//	ctx = logging.NewContext(ctx, logger.With("invocation_id", id))
//
//	logging.FromContext(ctx).InfoContext(ctx, "retrieved context", slog.Int("passages", n))
//
// When no logger is found in the context, FromContext returns [slog.Default].
//
// Retrieval backends log raw queries and raw service responses at debug level. Those records
// are not redacted, so keep the level at info or above where queries may contain personal data.
package logging
