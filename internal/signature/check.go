// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package signature

import (
	"context"
	"fmt"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/astscan"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
)

// CheckSignatures is Layer 3 of the validation pipeline: it extracts
// Python call sites, resolves each against the knowledge table and
// local-AST fallback, and validates call shape against whatever resolves.
// Non-Python input and unresolved signatures yield no issues — both are
// fail-open outcomes, not errors.
func CheckSignatures(ctx context.Context, source []byte, lang issue.Language, filePath string) []issue.Issue {
	if lang != issue.LanguagePython {
		return nil
	}

	calls := astscan.ExtractCalls(ctx, source)
	if len(calls) == 0 {
		return nil
	}
	aliases := astscan.ExtractImportAliases(ctx, source, lang)

	var issues []issue.Issue
	for _, call := range calls {
		sig, ok := Resolve(call.Name, source, aliases)
		if !ok {
			continue
		}

		for _, verr := range Validate(call, sig) {
			issues = append(issues, issue.Issue{
				Severity:   issue.SeverityWarning,
				Kind:       issue.ParseKind(verr.kind),
				Location:   issue.SourceLocation{File: filePath, Line: call.Line + 1, Column: 0},
				Message:    fmt.Sprintf("%s(): %s", call.Name, verr.message),
				Confidence: 0.8,
				Source:     "signature_checker",
			})
		}
	}
	return issues
}
