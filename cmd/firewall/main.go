// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Command firewall is the batch CLI and HTTP service entrypoint for the
// AI hallucination firewall: it validates LLM-authored source snippets
// against ground-truth registries, signatures, and deprecation tables.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/config"
	"github.com/tranhoangtu-it/hallucination-firewall/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logLevel string
		logDir   string
	)

	root := &cobra.Command{
		Use:   "firewall",
		Short: "Validate LLM-authored source against ground-truth APIs",
		Long: `firewall checks source code snippets — typically produced by large
language models — against ground-truth sources, flagging fabricated
package names, nonexistent APIs, misused call signatures, and deprecated
interfaces.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.LevelInfo
			switch logLevel {
			case "debug":
				level = logging.LevelDebug
			case "warn":
				level = logging.LevelWarn
			case "error":
				level = logging.LevelError
			}
			// CIMode comes from FIREWALL_CI/CI env vars: a pipeline runner has
			// no terminal reading stderr, so its logs are JSON from the start
			// rather than text a human would otherwise prefer.
			cfg, err := config.Resolve()
			json := err == nil && cfg.CIMode

			logger := logging.New(logging.Config{
				Level:   level,
				Service: "firewall",
				JSON:    json,
				LogDir:  logDir,
			})
			slog.SetDefault(logger.Slog())
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logDir, "log-dir", "", "also write JSON logs to this directory")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newInitCmd())

	return root
}
