// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package markdown extracts fenced code blocks from LLM-authored markdown
// output, the Layer 0 input surface ahead of the validation pipeline.
//
// Implemented with the standard library regexp package (RE2 supports the
// needed DOTALL flag without backreferences) rather than a full markdown
// grammar: structural parsing for symbol extraction (headings, links,
// lists) is a heavier and different job than this package's flat
// fenced-block split.
package markdown

import (
	"encoding/json"
	"regexp"
	"strings"
)

// MaxBlocks caps the number of fenced blocks extracted from one document;
// anything past this is silently dropped.
const MaxBlocks = 100

// MaxInputSize rejects (yields zero blocks for) any input larger than this.
const MaxInputSize = 10 * 1024 * 1024

var fencePattern = regexp.MustCompile("(?s)```([^\n`]*)\n(.*?)```")

// Block is a single fenced code block extracted from markdown text.
type Block struct {
	Language   string // normalized language, e.g. "python"
	Code       string // trailing whitespace stripped, leading preserved
	LineNumber int    // 1-based source line of the opening fence
	BlockIndex int    // 0-based index among extracted blocks
	RawTag     string // the fence tag exactly as written
}

var tagAliases = map[string]string{
	"py": "python", "python3": "python",
	"js": "javascript", "jsx": "javascript",
	"ts": "typescript", "tsx": "typescript",
	"sh": "bash", "shell": "bash", "zsh": "bash",
}

// Extract splits text into fenced code blocks. Input larger than
// MaxInputSize yields zero blocks; only the first MaxBlocks fences found
// are kept.
func Extract(text string) []Block {
	if len(text) > MaxInputSize {
		return nil
	}

	matches := fencePattern.FindAllStringSubmatchIndex(text, -1)
	var blocks []Block
	for _, m := range matches {
		if len(blocks) >= MaxBlocks {
			break
		}
		tagStart, tagEnd := m[2], m[3]
		codeStart, codeEnd := m[4], m[5]
		fenceStart := m[0]

		rawTag := strings.TrimSpace(text[tagStart:tagEnd])
		code := strings.TrimRight(text[codeStart:codeEnd], " \t\r\n")
		line := strings.Count(text[:fenceStart], "\n") + 1

		lang := normalizeTag(rawTag)
		if lang == "" {
			lang = detectLanguage(code)
		}

		blocks = append(blocks, Block{
			Language:   lang,
			Code:       code,
			LineNumber: line,
			BlockIndex: len(blocks),
			RawTag:     rawTag,
		})
	}
	return blocks
}

func normalizeTag(tag string) string {
	lower := strings.ToLower(strings.TrimSpace(tag))
	if lower == "" {
		return ""
	}
	if canonical, ok := tagAliases[lower]; ok {
		return canonical
	}
	switch lower {
	case "python", "javascript", "typescript", "bash", "json", "sql", "xml", "text", "yaml", "html", "css":
		return lower
	default:
		return lower
	}
}

// detectLanguage applies a fixed content-heuristic order when a block
// carries no fence tag. A non-empty tag that has no alias is kept as
// written (lowercased) and never reaches this heuristic.
func detectLanguage(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "text"
	}

	if isValidJSON(trimmed) {
		return "json"
	}

	head := code
	if len(head) > 200 {
		head = head[:200]
	}
	upperHead := strings.ToUpper(head)
	for _, kw := range []string{"SELECT", "INSERT", "UPDATE", "DELETE", "CREATE TABLE", "ALTER TABLE"} {
		if strings.Contains(upperHead, kw) {
			return "sql"
		}
	}

	if strings.HasPrefix(trimmed, "#!") || strings.Contains(code, "\n$ ") || strings.HasPrefix(trimmed, "$ ") {
		return "bash"
	}

	lookahead := trimmed
	if len(lookahead) > 100 {
		lookahead = lookahead[:100]
	}
	if strings.HasPrefix(trimmed, "<") && strings.Contains(lookahead, ">") {
		return "xml"
	}

	if containsAnyToken(code, "import", "from", "def") {
		return "python"
	}
	if containsAnyToken(code, "function", "const", "let", "var", "=>") {
		return "javascript"
	}

	return "text"
}

func isValidJSON(s string) bool {
	var v any
	return json.Unmarshal([]byte(s), &v) == nil
}

func containsAnyToken(code string, tokens ...string) bool {
	fields := strings.FieldsFunc(code, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '_')
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	for _, t := range tokens {
		if t == "=>" {
			if strings.Contains(code, "=>") {
				return true
			}
			continue
		}
		if set[t] {
			return true
		}
	}
	return false
}
