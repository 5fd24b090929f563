// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/config"
)

const starterConfig = `[firewall]
languages = ["python", "javascript"]
severity_threshold = "warning"
cache_ttl_seconds = 3600
cache_dir = "~/.cache/hallucination-firewall"
output_format = "terminal"
fail_on_network_error = false

[firewall.registries]
pypi_enabled = true
npm_enabled = true
timeout_seconds = 10
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter .firewall.toml in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd)
		},
	}
}

func runInit(cmd *cobra.Command) error {
	if _, err := os.Stat(config.ConfigFileName); err == nil {
		return fmt.Errorf("%s already exists", config.ConfigFileName)
	}

	if err := os.WriteFile(config.ConfigFileName, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", config.ConfigFileName, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.ConfigFileName)
	return nil
}
