// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/config"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/report"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/urlfetch"
)

func newCheckCmd() *cobra.Command {
	var (
		markdownMode bool
		outputFormat string
		sourceURL    string
	)

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Validate one or more files, or stdin with '-'",
		Long: `check validates Python, JavaScript, or TypeScript source files against
ground-truth registries, call signatures, and deprecation rules. Pass one
or more file paths, "-" to read from stdin, --markdown to extract and
validate fenced code blocks from LLM markdown output, or --url to fetch
markdown from a remote location (http/https only, internal and loopback
hosts are refused).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, markdownMode, outputFormat, sourceURL)
		},
	}

	cmd.Flags().BoolVar(&markdownMode, "markdown", false, "treat input as markdown and extract fenced code blocks")
	cmd.Flags().StringVar(&outputFormat, "format", "", "output format: terminal, json, sarif (default from config)")
	cmd.Flags().StringVar(&sourceURL, "url", "", "fetch markdown from this URL instead of a file or stdin (implies --markdown)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, markdownMode bool, outputFormatFlag, sourceURL string) error {
	cfg, err := config.Resolve()
	if err != nil {
		return fmt.Errorf("resolving config: %w", err)
	}

	orchestrator, closeFn, err := buildOrchestrator(cfg)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}
	defer closeFn()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var results []issue.ValidationResult

	switch {
	case sourceURL != "":
		body, err := urlfetch.Fetch(ctx, sourceURL)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", sourceURL, err)
		}
		report := orchestrator.ValidateMarkdown(ctx, string(body))
		results = report.Results
	case markdownMode:
		results, err = checkMarkdownSources(ctx, orchestrator, args, cmd.InOrStdin())
	default:
		results, err = checkFileSources(ctx, orchestrator, args, cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	format := report.Format(outputFormatFlag)
	if format == "" {
		format = report.Format(cfg.OutputFormat)
	}
	color := format == report.FormatTerminal && isTerminal(os.Stdout)

	if err := report.Write(cmd.OutOrStdout(), results, format, color); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if report.ExitCode(results) != 0 {
		os.Exit(1)
	}
	return nil
}

func checkFileSources(ctx context.Context, o orchestratorLike, args []string, stdin io.Reader) ([]issue.ValidationResult, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("check requires at least one file path or '-' for stdin")
	}

	var results []issue.ValidationResult
	for _, path := range args {
		if path == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			results = append(results, o.ValidateCode(ctx, data, "<stdin>.py"))
			continue
		}
		results = append(results, o.ValidateFile(ctx, path))
	}
	return results, nil
}

func checkMarkdownSources(ctx context.Context, o orchestratorLike, args []string, stdin io.Reader) ([]issue.ValidationResult, error) {
	var text string
	switch {
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", args[0], err)
		}
		text = string(data)
	}

	report := o.ValidateMarkdown(ctx, text)
	return report.Results, nil
}

// orchestratorLike is the subset of pipeline.Orchestrator's contract the
// check command depends on, kept narrow so the command logic above can be
// exercised against a fake in tests without a real cache/registry stack.
type orchestratorLike interface {
	ValidateCode(ctx context.Context, source []byte, filePath string) issue.ValidationResult
	ValidateFile(ctx context.Context, path string) issue.ValidationResult
	ValidateMarkdown(ctx context.Context, text string) issue.LLMValidationReport
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
