// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package pipeline is the orchestrator: it sequences the AST, import,
// signature, and deprecation layers over one source file and aggregates
// their issues into a ValidationResult.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/astscan"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/deprecation"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/importcheck"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/signature"
)

// maxFileSize rejects any file larger than 5 MiB.
const maxFileSize = 5 * 1024 * 1024

// Orchestrator sequences the validation layers over one source file.
// Construct with New, injecting an already-configured import Checker
// (itself constructed with cache-backed registry clients) so the
// orchestrator never reaches directly into the cache or network layers —
// avoiding a cyclic dependency between the two.
type Orchestrator struct {
	imports *importcheck.Checker
	now     func() time.Time
}

// New builds an Orchestrator. imports may be nil to disable Layer 2
// entirely (e.g. offline batch runs with registries disabled).
func New(imports *importcheck.Checker) *Orchestrator {
	return &Orchestrator{imports: imports, now: time.Now}
}

// Close releases resources owned by the orchestrator's collaborators.
// The orchestrator itself holds no direct handle (the cache and registry
// clients are owned by whoever constructed the Checker), so Close is a
// no-op retained for interface symmetry with the other long-lived
// collaborators it sits alongside.
func (o *Orchestrator) Close() error {
	return nil
}

// ValidateCode runs the full layered pipeline over source, identified by
// filePath for language detection and issue locations.
func (o *Orchestrator) ValidateCode(ctx context.Context, source []byte, filePath string) issue.ValidationResult {
	lang := astscan.DetectLanguage(filePath)
	result := issue.ValidationResult{
		File:      filePath,
		Language:  lang.String(),
		CheckedAt: o.now().UTC().Format(time.RFC3339),
	}

	// Layer 1 — syntax gate. A broken AST cannot be trusted by any
	// deeper layer, so a syntax error short-circuits the whole pipeline.
	syntaxIssues := astscan.ValidateSyntax(ctx, source, lang, filePath)
	if len(syntaxIssues) > 0 {
		result.Issues = syntaxIssues
		result.Passed = false
		return result
	}

	var issues []issue.Issue

	// Layer 2 — imports (Python and JS/TS only).
	if o.imports != nil && (lang == issue.LanguagePython || lang == issue.LanguageJavaScript || lang == issue.LanguageTypeScript) {
		issues = append(issues, o.imports.Check(ctx, source, lang, filePath)...)
	}

	// Layer 3 — signatures (Python only).
	if lang == issue.LanguagePython {
		issues = append(issues, signature.CheckSignatures(ctx, source, lang, filePath)...)
	}

	// Layer 4 — deprecations (Python only).
	if lang == issue.LanguagePython {
		issues = append(issues, deprecation.Check(ctx, source, lang, filePath)...)
	}

	result.Issues = issues
	result.Passed = countErrors(issues) == 0
	return result
}

// ValidateFile reads path and delegates to ValidateCode, additionally
// enforcing the 5 MiB size cap and UTF-8 decodability requirement.
// Both failure modes recover locally into a single error-severity issue
// rather than propagating a Go error, matching the file-level-failure
// taxonomy.
func (o *Orchestrator) ValidateFile(ctx context.Context, path string) issue.ValidationResult {
	info, err := os.Stat(path)
	if err != nil {
		return fileFailure(path, o.now(), fmt.Sprintf("Cannot stat file: %s", err))
	}
	if info.Size() > maxFileSize {
		return fileFailure(path, o.now(), fmt.Sprintf("File exceeds maximum size of %d bytes", maxFileSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fileFailure(path, o.now(), fmt.Sprintf("Cannot read file: %s", err))
	}
	if !isValidUTF8(data) {
		return fileFailure(path, o.now(), "File is not valid UTF-8")
	}

	return o.ValidateCode(ctx, data, path)
}

func fileFailure(path string, now time.Time, message string) issue.ValidationResult {
	return issue.ValidationResult{
		File:     path,
		Language: issue.LanguageUnknown.String(),
		Issues: []issue.Issue{{
			Severity:   issue.SeverityError,
			Kind:       issue.KindSyntaxError,
			Location:   issue.SourceLocation{File: path, Line: 0, Column: 0},
			Message:    message,
			Confidence: 1.0,
			Source:     "pipeline",
		}},
		Passed:    false,
		CheckedAt: now.UTC().Format(time.RFC3339),
	}
}

func countErrors(issues []issue.Issue) int {
	n := 0
	for _, i := range issues {
		if i.Severity == issue.SeverityError {
			n++
		}
	}
	return n
}

func isValidUTF8(data []byte) bool {
	return utf8.Valid(data)
}
