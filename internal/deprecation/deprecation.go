// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package deprecation flags calls to deprecated Python stdlib APIs using a
// static dotted-name rule table, reusing the same call-site extraction as
// internal/signature.
package deprecation

import (
	"context"
	"fmt"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/astscan"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
)

// Rule is a single deprecation entry.
type Rule struct {
	Pattern     string // dotted name, e.g. "os.popen"
	Replacement string
	Since       string
	Severity    issue.Severity
}

// Rules is the static deprecation table.
var Rules = buildRules([]Rule{
	{Pattern: "os.popen", Replacement: "subprocess.run()", Since: "3.0", Severity: issue.SeverityWarning},
	{Pattern: "os.system", Replacement: "subprocess.run()", Since: "3.0", Severity: issue.SeverityWarning},
	{Pattern: "unittest.makeSuite", Replacement: "TestLoader.loadTestsFromTestCase()", Since: "3.11", Severity: issue.SeverityWarning},
	{Pattern: "unittest.getTestCaseNames", Replacement: "TestLoader.getTestCaseNames()", Since: "3.11", Severity: issue.SeverityWarning},
	{Pattern: "unittest.findTestCases", Replacement: "TestLoader.discover()", Since: "3.11", Severity: issue.SeverityWarning},
	{Pattern: "typing.Dict", Replacement: "dict", Since: "3.9", Severity: issue.SeverityWarning},
	{Pattern: "typing.List", Replacement: "list", Since: "3.9", Severity: issue.SeverityWarning},
	{Pattern: "typing.Tuple", Replacement: "tuple", Since: "3.9", Severity: issue.SeverityWarning},
	{Pattern: "typing.Set", Replacement: "set", Since: "3.9", Severity: issue.SeverityWarning},
	{Pattern: "typing.FrozenSet", Replacement: "frozenset", Since: "3.9", Severity: issue.SeverityWarning},
	{Pattern: "typing.Optional", Replacement: "X | None", Since: "3.10", Severity: issue.SeverityWarning},
	{Pattern: "imp.find_module", Replacement: "importlib.util.find_spec()", Since: "3.4", Severity: issue.SeverityWarning},
	{Pattern: "imp.load_module", Replacement: "importlib.import_module()", Since: "3.4", Severity: issue.SeverityWarning},
})

func buildRules(rules []Rule) map[string]Rule {
	m := make(map[string]Rule, len(rules))
	for _, r := range rules {
		m[r.Pattern] = r
	}
	return m
}

// Check is Layer 4 of the validation pipeline: it flags any call site
// whose dotted name matches a deprecation rule. Python only; non-Python
// input yields no issues.
func Check(ctx context.Context, source []byte, lang issue.Language, filePath string) []issue.Issue {
	if lang != issue.LanguagePython {
		return nil
	}

	calls := astscan.ExtractCalls(ctx, source)
	var issues []issue.Issue
	for _, call := range calls {
		rule, ok := Rules[call.Name]
		if !ok {
			continue
		}
		issues = append(issues, issue.Issue{
			Severity:   rule.Severity,
			Kind:       issue.KindDeprecatedAPI,
			Location:   issue.SourceLocation{File: filePath, Line: call.Line + 1, Column: 0},
			Message:    fmt.Sprintf("'%s()' is deprecated since Python %s", call.Name, rule.Since),
			Suggestion: fmt.Sprintf("Use %s instead", rule.Replacement),
			Confidence: 0.95,
			Source:     "deprecation_checker",
		})
	}
	return issues
}
