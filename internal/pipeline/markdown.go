// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package pipeline

import (
	"context"
	"fmt"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/markdown"
)

// checkedLanguages is the set of markdown block languages this firewall
// actually runs through the pipeline; every other language is reported as
// passed without further analysis.
var checkedLanguages = map[string]bool{
	"python":     true,
	"javascript": true,
	"typescript": true,
}

// ValidateMarkdown extracts fenced code blocks from text and runs each
// checkable block through the full pipeline, aggregating into an
// LLMValidationReport. Blocks in unsupported languages are reported as
// passed without being sent to the pipeline.
func (o *Orchestrator) ValidateMarkdown(ctx context.Context, text string) issue.LLMValidationReport {
	blocks := markdown.Extract(text)

	report := issue.LLMValidationReport{TotalBlocks: len(blocks)}
	for _, block := range blocks {
		var result issue.ValidationResult
		if checkedLanguages[block.Language] {
			filePath := fmt.Sprintf("<block-%d>%s", block.BlockIndex, extensionFor(block.Language))
			result = o.ValidateCode(ctx, []byte(block.Code), filePath)
		} else {
			result = issue.ValidationResult{
				File:     fmt.Sprintf("<block-%d>", block.BlockIndex),
				Language: block.Language,
				Passed:   true,
			}
		}

		report.Results = append(report.Results, result)
		if result.Passed {
			report.BlocksPassed++
		} else {
			report.BlocksFailed++
		}
	}
	return report
}

func extensionFor(language string) string {
	switch language {
	case "python":
		return ".py"
	case "javascript":
		return ".js"
	case "typescript":
		return ".ts"
	default:
		return ""
	}
}
