// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command ragagent answers one question with the retrieval augmented chat agent.
//
// Usage:
//
//	ragagent [-config config.yaml] [-history history.json] [-variant groq|llamacloud] question...
//
// The question is read from stdin when no argument is given. Credentials are read from the
// environment and from a .env file in the working directory.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/go-a2a/ragagent/agent"
	"github.com/go-a2a/ragagent/config"
	"github.com/go-a2a/ragagent/pkg/logging"
	"github.com/go-a2a/ragagent/types"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ragagent: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath     string
		historyPath string
		variant     string
		logLevel    string
		verbose     bool
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&historyPath, "history", "", "Path to a JSON array of {role, content} prior turns")
	flag.StringVar(&variant, "variant", "", "Agent variant: groq or llamacloud")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flag.BoolVar(&verbose, "v", false, "Print the invocation state and index answer")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg.LoadEnv()
	if variant != "" {
		cfg.Variant = variant
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return err
	}

	query, err := readQuery(flag.Args(), os.Stdin)
	if err != nil {
		return err
	}

	history, err := readHistory(historyPath)
	if err != nil {
		return err
	}

	a, err := agent.New(cfg, agent.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logging.NewContext(ctx, logger)

	resp := a.Run(ctx, query, history)
	if verbose {
		logger.InfoContext(ctx, "invocation finished",
			slog.String("invocation_id", resp.InvocationID),
			slog.String("state", resp.State.String()),
			slog.String("index_answer", resp.IndexAnswer),
		)
	}
	fmt.Println(resp.Answer)

	return nil
}

// readQuery joins args, or reads all of r when args is empty.
func readQuery(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	var sb strings.Builder
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read query: %w", err)
	}
	return sb.String(), nil
}

func readHistory(path string) (types.History, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var history types.History
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", path, err)
	}
	if err := history.Validate(); err != nil {
		return nil, err
	}
	return history, nil
}
