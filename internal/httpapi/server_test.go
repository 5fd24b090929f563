// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/pipeline"
)

func TestHealthBeforePipelineReady(t *testing.T) {
	s := New(nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "initializing", body["status"])
}

func TestValidateBeforePipelineReadyIs503(t *testing.T) {
	s := New(nil)
	body, _ := json.Marshal(validateRequest{Code: "x = 1"})
	req := httptest.NewRequest(http.MethodPost, "/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestValidateSyntaxError(t *testing.T) {
	s := New(pipeline.New(nil))
	body, _ := json.Marshal(validateRequest{Code: "def foo(\n", Language: "python"})
	req := httptest.NewRequest(http.MethodPost, "/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result issue.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Passed)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "syntax_error", result.Issues[0].Kind.String())
}

func TestRateLimiterRejectsOverBudget(t *testing.T) {
	rl := newIPRateLimiter()
	allowed := 0
	for i := 0; i < requestsPerWindow+5; i++ {
		if rl.Allow("1.2.3.4") {
			allowed++
		}
	}
	assert.Equal(t, requestsPerWindow, allowed)
}
