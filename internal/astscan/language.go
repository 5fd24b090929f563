// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package astscan is the AST analyzer: syntax validation, import
// extraction, import-alias extraction, and call-site extraction over
// Python/JavaScript/TypeScript source using tree-sitter grammars.
//
// Every exported function in this package follows the same contract: on
// any internal parser failure it returns an empty result, never an error.
// A hostile or malformed source file must never poison a validation run,
// so each call gets its own parser instance and honors context.Context
// at parse boundaries.
package astscan

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
)

// grammarFor resolves the tree-sitter grammar for a Language. TypeScript
// reuses the JavaScript grammar rather than loading the separate
// typescript grammar package, since this analyzer only needs the
// import/call-site shapes the two dialects share.
func grammarFor(lang issue.Language) *sitter.Language {
	switch lang {
	case issue.LanguagePython:
		return python.GetLanguage()
	case issue.LanguageJavaScript, issue.LanguageTypeScript:
		return javascript.GetLanguage()
	default:
		return nil
	}
}

// DetectLanguage maps a file path's extension to a Language. Comparison
// is case-insensitive.
func DetectLanguage(filePath string) issue.Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".py", ".pyi":
		return issue.LanguagePython
	case ".js", ".jsx", ".mjs":
		return issue.LanguageJavaScript
	case ".ts", ".tsx":
		return issue.LanguageTypeScript
	default:
		return issue.LanguageUnknown
	}
}
