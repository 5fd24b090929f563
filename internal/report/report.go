// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package report renders ValidationResults for the batch CLI surface:
// terminal (colorized), JSON, and SARIF.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
)

// Format names the supported output formats.
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatJSON     Format = "json"
	FormatSARIF    Format = "sarif"
)

// ANSI color codes for the terminal renderer. Disabled entirely when the
// destination is not a TTY by callers passing color=false.
const (
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGreen  = "\033[32m"
	colorReset  = "\033[0m"
)

// Write dispatches to the renderer for format.
func Write(w io.Writer, results []issue.ValidationResult, format Format, color bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatSARIF:
		return writeSARIF(w, results)
	default:
		return writeTerminal(w, results, color)
	}
}

func writeJSON(w io.Writer, results []issue.ValidationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeTerminal(w io.Writer, results []issue.ValidationResult, color bool) error {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + colorReset
	}

	for _, r := range results {
		status := paint(colorGreen, "PASS")
		if !r.Passed {
			status = paint(colorRed, "FAIL")
		}
		if _, err := fmt.Fprintf(w, "%s  %s (%s)\n", status, r.File, r.Language); err != nil {
			return err
		}

		for _, iss := range r.Issues {
			label := iss.Severity.String()
			code := colorBlue
			switch iss.Severity {
			case issue.SeverityError:
				code = colorRed
			case issue.SeverityWarning:
				code = colorYellow
			}
			line := fmt.Sprintf("  %s:%d:%d  %s  [%s] %s", r.File, iss.Location.Line, iss.Location.Column, paint(code, strings.ToUpper(label)), iss.Kind.String(), iss.Message)
			if iss.Suggestion != "" {
				line += "\n    suggestion: " + iss.Suggestion
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	errors, warnings := 0, 0
	for _, r := range results {
		errors += r.ErrorCount()
		warnings += r.WarningCount()
	}
	_, err := fmt.Fprintf(w, "\n%d file(s) checked, %d error(s), %d warning(s)\n", len(results), errors, warnings)
	return err
}

// ExitCode returns 1 iff any result failed.
func ExitCode(results []issue.ValidationResult) int {
	for _, r := range results {
		if !r.Passed {
			return 1
		}
	}
	return 0
}
