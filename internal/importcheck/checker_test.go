// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package importcheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
)

type fakeRegistry struct {
	missing map[string]bool
}

func (f *fakeRegistry) PackageExists(_ context.Context, name string) bool {
	return !f.missing[name]
}

func TestCheckerSkipsStdlib(t *testing.T) {
	c := New(&fakeRegistry{}, &fakeRegistry{})
	issues := c.Check(context.Background(), []byte("import os\nimport sys\n"), issue.LanguagePython, "a.py")
	assert.Empty(t, issues)
}

func TestCheckerFlagsNonexistentPackage(t *testing.T) {
	c := New(&fakeRegistry{missing: map[string]bool{"totally_fake_xyz": true}}, nil)
	issues := c.Check(context.Background(), []byte("import totally_fake_xyz\n"), issue.LanguagePython, "a.py")
	if assert.Len(t, issues, 1) {
		assert.Equal(t, issue.KindNonexistentPackage, issues[0].Kind)
		assert.Equal(t, issue.SeverityError, issues[0].Severity)
		assert.Equal(t, 0, issues[0].Location.Line)
		assert.Equal(t, "PyPI registry", issues[0].Source)
	}
}

func TestCheckerJSStripsNodePrefixAndSkipsBuiltins(t *testing.T) {
	c := New(nil, &fakeRegistry{})
	issues := c.Check(context.Background(), []byte(`import fs from "node:fs";`), issue.LanguageJavaScript, "a.js")
	assert.Empty(t, issues)
}

func TestCheckerNilRegistryDisablesLanguage(t *testing.T) {
	c := New(nil, nil)
	issues := c.Check(context.Background(), []byte("import totally_fake_xyz\n"), issue.LanguagePython, "a.py")
	assert.Empty(t, issues)
}
