// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-a2a/ragagent/pkg/logging"
)

func TestContext(t *testing.T) {
	if got := logging.FromContext(t.Context()); got != slog.Default() {
		t.Error("FromContext without logger should return slog.Default()")
	}

	logger := slog.New(slog.DiscardHandler)
	ctx := logging.NewContext(t.Context(), logger)
	if got := logging.FromContext(ctx); got != logger {
		t.Error("FromContext did not return the stored logger")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
		check   func(t *testing.T, out string)
	}{
		{
			name:   "json debug",
			level:  "debug",
			format: "json",
			check: func(t *testing.T, out string) {
				if !strings.Contains(out, `"msg":"hello"`) {
					t.Errorf("expected JSON record, got %q", out)
				}
			},
		},
		{
			name:   "text default level",
			level:  "",
			format: "text",
			check: func(t *testing.T, out string) {
				if !strings.Contains(out, "msg=hello") {
					t.Errorf("expected text record, got %q", out)
				}
			},
		},
		{
			name:    "bad level",
			level:   "loud",
			wantErr: true,
		},
		{
			name:    "bad format",
			level:   "info",
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := logging.New(tt.level, tt.format, &buf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			logger.Info("hello")
			tt.check(t, buf.String())
		})
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("warn", "json", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info record should be filtered at warn level, got %q", buf.String())
	}
}
