// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package issue defines the data model shared by every validation layer:
// the Issue/ValidationResult pair produced by the pipeline, the Language
// and CodeBlock types produced by language detection and markdown
// extraction, and the small tagged-variant enums (Severity, Kind) used
// throughout.
//
// Design principles:
//   - Tagged variants (Severity, Kind, Language) are small int-backed types
//     with a name table, String(), MarshalJSON/UnmarshalJSON, and a Parse*
//     constructor — never bare strings passed around uncontrolled.
//   - No map[string]interface{} - concrete types only.
//   - All exported fields are json-tagged in snake_case so a ValidationResult
//     can be returned directly as an HTTP response body.
package issue

import (
	"encoding/json"
	"fmt"
)

// Severity is the tagged variant for how serious a validation issue is.
type Severity int

const (
	// SeverityError marks an issue that fails validation outright.
	SeverityError Severity = iota
	// SeverityWarning marks an issue that does not fail validation by itself.
	SeverityWarning
	// SeverityInfo marks an advisory issue.
	SeverityInfo
)

var severityNames = map[Severity]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
}

// String returns the string representation of the Severity.
//
// Returns "warning" for unrecognized values, matching the default
// severity threshold.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "warning"
}

// MarshalJSON implements json.Marshaler for Severity.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler for Severity, accepting both
// the canonical string form and a legacy numeric form.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = ParseSeverity(str)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("Severity must be string or int: %w", err)
	}
	*s = Severity(n)
	return nil
}

// ParseSeverity converts a string to a Severity, defaulting to
// SeverityWarning for unrecognized input.
func ParseSeverity(s string) Severity {
	for k, name := range severityNames {
		if name == s {
			return k
		}
	}
	return SeverityWarning
}

// Kind is the tagged variant for the category of hallucination a validation
// issue represents.
type Kind int

const (
	KindNonexistentPackage Kind = iota
	KindNonexistentMethod
	KindWrongSignature
	KindDeprecatedAPI
	KindInvalidImport
	KindSyntaxError
	KindVersionMismatch
	KindMissingRequiredArg
	KindUnknownParameter
)

var kindNames = map[Kind]string{
	KindNonexistentPackage: "nonexistent_package",
	KindNonexistentMethod:  "nonexistent_method",
	KindWrongSignature:     "wrong_signature",
	KindDeprecatedAPI:      "deprecated_api",
	KindInvalidImport:      "invalid_import",
	KindSyntaxError:        "syntax_error",
	KindVersionMismatch:    "version_mismatch",
	KindMissingRequiredArg: "missing_required_arg",
	KindUnknownParameter:   "unknown_parameter",
}

// String returns the canonical name of the Kind, e.g. "syntax_error".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON implements json.Marshaler for Kind.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler for Kind, accepting both the
// canonical string form and a legacy numeric form.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*k = ParseKind(str)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("Kind must be string or int: %w", err)
	}
	*k = Kind(n)
	return nil
}

// ParseKind converts a string to a Kind. Unrecognized input maps to
// KindNonexistentPackage, the zero value: callers that need to
// distinguish "unparsed" from a real kind should check the string against
// kindNames themselves before calling ParseKind.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return k
		}
	}
	return KindNonexistentPackage
}

// Language is the tagged variant for the programming languages this
// firewall understands.
type Language int

const (
	LanguageUnknown Language = iota
	LanguagePython
	LanguageJavaScript
	LanguageTypeScript
)

var languageNames = map[Language]string{
	LanguageUnknown:    "unknown",
	LanguagePython:     "python",
	LanguageJavaScript: "javascript",
	LanguageTypeScript: "typescript",
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON implements json.Marshaler for Language.
func (l Language) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON implements json.Unmarshaler for Language.
func (l *Language) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("Language must be a string: %w", err)
	}
	*l = ParseLanguage(str)
	return nil
}

// ParseLanguage converts a string to a Language, defaulting to
// LanguageUnknown for unrecognized input.
func ParseLanguage(s string) Language {
	for l, name := range languageNames {
		if name == s {
			return l
		}
	}
	return LanguageUnknown
}

// SourceLocation pinpoints an Issue within a source file.
//
// Line is 1-based; Column is 0-based. EndLine/EndColumn are optional and
// nil when the issue does not span a range.
type SourceLocation struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   *int   `json:"end_line,omitempty"`
	EndColumn *int   `json:"end_column,omitempty"`
}

// Issue is a single validation finding.
type Issue struct {
	Severity   Severity       `json:"severity"`
	Kind       Kind           `json:"issue_type"`
	Location   SourceLocation `json:"location"`
	Message    string         `json:"message"`
	Suggestion string         `json:"suggestion,omitempty"`
	Confidence float64        `json:"confidence"`
	Source     string         `json:"source,omitempty"`
}

// ValidationResult is the complete outcome of validating one source file
// or code block.
type ValidationResult struct {
	File      string  `json:"file"`
	Language  string  `json:"language"`
	Issues    []Issue `json:"issues"`
	Passed    bool    `json:"passed"`
	CheckedAt string  `json:"checked_at"`
}

// ErrorCount returns the number of error-severity issues. It is a derived
// accessor, never itself serialized as a field.
func (r ValidationResult) ErrorCount() int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity issues.
func (r ValidationResult) WarningCount() int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// CodeBlock is a single fenced code block extracted from LLM markdown
// output by internal/markdown.
type CodeBlock struct {
	Language    string `json:"language"`
	Code        string `json:"code"`
	LineNumber  int    `json:"line_number"`
	BlockIndex  int    `json:"block_index"`
	RawTag      string `json:"raw_tag"`
}

// LLMValidationReport aggregates validation results across every code
// block extracted from one piece of LLM markdown output.
type LLMValidationReport struct {
	TotalBlocks  int                 `json:"total_blocks"`
	BlocksPassed int                 `json:"blocks_passed"`
	BlocksFailed int                 `json:"blocks_failed"`
	Results      []ValidationResult  `json:"results"`
}

// Passed reports whether every block passed. It is a derived accessor.
func (r LLMValidationReport) Passed() bool {
	return r.BlocksFailed == 0
}
