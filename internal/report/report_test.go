// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
)

func sampleResults() []issue.ValidationResult {
	return []issue.ValidationResult{
		{
			File:     "a.py",
			Language: "python",
			Passed:   false,
			Issues: []issue.Issue{{
				Severity:   issue.SeverityError,
				Kind:       issue.KindNonexistentPackage,
				Location:   issue.SourceLocation{File: "a.py", Line: 0, Column: 0},
				Message:    "Package 'totally_fake_xyz' does not exist",
				Confidence: 0.9,
				Source:     "PyPI registry",
			}},
		},
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, ExitCode(sampleResults()))
	assert.Equal(t, 0, ExitCode([]issue.ValidationResult{{Passed: true}}))
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResults(), FormatJSON, false))

	var decoded []issue.ValidationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "a.py", decoded[0].File)
	assert.Equal(t, "nonexistent_package", string(mustMarshalKind(decoded[0].Issues[0].Kind)))
}

func mustMarshalKind(k issue.Kind) []byte {
	b, _ := json.Marshal(k)
	var s string
	_ = json.Unmarshal(b, &s)
	return []byte(s)
}

func TestWriteTerminalNoColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResults(), FormatTerminal, false))
	out := buf.String()
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "a.py")
	assert.NotContains(t, out, "\033[")
}

func TestWriteSARIFHasOneRuleAndResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResults(), FormatSARIF, false))

	var doc sarifLog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Runs, 1)
	require.Len(t, doc.Runs[0].Results, 1)
	assert.Equal(t, "nonexistent_package", doc.Runs[0].Results[0].RuleID)
	assert.Equal(t, 1, doc.Runs[0].Results[0].Locations[0].PhysicalLocation.Region.StartColumn)
}
