// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package astscan

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
)

// ValidateSyntax parses source with the grammar for language and walks the
// resulting tree for ERROR nodes and missing nodes, emitting one
// syntax_error issue per occurrence.
//
// On any parser failure, or for a language with no grammar (Language
// unknown), ValidateSyntax returns nil — analyzer failures must never
// poison the pipeline.
func ValidateSyntax(ctx context.Context, source []byte, lang issue.Language, filePath string) []issue.Issue {
	grammar := grammarFor(lang)
	if grammar == nil {
		return nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil
	}
	defer tree.Close()

	var issues []issue.Issue
	collectSyntaxErrors(tree.RootNode(), filePath, &issues)
	return issues
}

func collectSyntaxErrors(node *sitter.Node, filePath string, issues *[]issue.Issue) {
	if node == nil {
		return
	}

	if node.Type() == "ERROR" || node.IsMissing() {
		startLine := int(node.StartPoint().Row) + 1
		startCol := int(node.StartPoint().Column)
		endLine := int(node.EndPoint().Row) + 1
		endCol := int(node.EndPoint().Column)

		*issues = append(*issues, issue.Issue{
			Severity: issue.SeverityError,
			Kind:     issue.KindSyntaxError,
			Location: issue.SourceLocation{
				File:      filePath,
				Line:      startLine,
				Column:    startCol,
				EndLine:   &endLine,
				EndColumn: &endCol,
			},
			Message:    "Syntax error: unexpected " + node.Type() + " node",
			Confidence: 1.0,
			Source:     "tree-sitter",
		})
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectSyntaxErrors(node.Child(i), filePath, issues)
	}
}
