// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMarkdownSQLBlockSkipsPipeline(t *testing.T) {
	o := New(nil)
	doc := "```python\nimport os\n```\n```sql\nSELECT 1;\n```"
	report := o.ValidateMarkdown(context.Background(), doc)

	require.Len(t, report.Results, 2)
	assert.Equal(t, "sql", report.Results[1].Language)
	assert.True(t, report.Results[1].Passed)
}

func TestValidateMarkdown105BlocksCapsAt100(t *testing.T) {
	o := New(nil)
	var doc string
	for i := 0; i < 105; i++ {
		doc += "```python\nx = 1\n```\n"
	}
	report := o.ValidateMarkdown(context.Background(), doc)
	assert.Equal(t, 100, report.TotalBlocks)
	assert.Len(t, report.Results, 100)
}
