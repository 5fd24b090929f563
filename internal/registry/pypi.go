// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package registry holds the PyPI and npm clients that back import
// existence checks. Both clients are fail-open: a network error never
// produces a false "package not found" result, since that would turn a
// transient outage into a flood of false positives.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/cache"
)

const pypiBaseURL = "https://pypi.org/pypi"

// PackageInfo is the projected metadata returned by GetPackageInfo.
type PackageInfo struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	Summary        string `json:"summary,omitempty"`
	RequiresPython string `json:"requires_python,omitempty"`
	Description    string `json:"description,omitempty"`
}

// PyPI queries pypi.org for package existence and metadata, caching both.
type PyPI struct {
	client *http.Client
	cache  *cache.Cache
}

// NewPyPI builds a PyPI client with the given request timeout, sharing
// cache with other registry clients.
func NewPyPI(timeout time.Duration, c *cache.Cache) *PyPI {
	return &PyPI{client: &http.Client{Timeout: timeout}, cache: c}
}

// NormalizeName lowercases and hyphenates a raw import name the way PyPI's
// own index does, so "My_Package" and "my-package" resolve identically.
func NormalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", "-"))
}

// PackageExists reports whether packageName resolves on PyPI. Empty names
// are never packages. Network failures fail open (return true, uncached).
func (p *PyPI) PackageExists(ctx context.Context, packageName string) bool {
	if strings.TrimSpace(packageName) == "" {
		return false
	}
	normalized := NormalizeName(packageName)

	key := "pypi:exists:" + normalized
	if cached, ok := p.cache.Get(key); ok {
		if b, ok := cached.(bool); ok {
			return b
		}
	}

	exists, err := p.fetchExists(ctx, normalized)
	if err != nil {
		return true
	}
	if err := p.cache.Set(key, exists); err != nil {
		slog.Warn("pypi: failed to cache existence result", slog.String("package", normalized), slog.Any("error", err))
	}
	return exists
}

// GetPackageInfo returns projected PyPI metadata, or nil when the package
// doesn't exist or the request fails.
func (p *PyPI) GetPackageInfo(ctx context.Context, packageName string) *PackageInfo {
	key := "pypi:info:" + packageName
	if cached, ok := p.cache.Get(key); ok {
		if m, ok := cached.(map[string]any); ok {
			return packageInfoFromMap(m)
		}
	}

	info, err := p.fetchInfo(ctx, packageName)
	if err != nil || info == nil {
		return nil
	}
	p.cache.Set(key, info)
	return info
}

func (p *PyPI) fetchExists(ctx context.Context, packageName string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json", pypiBaseURL, packageName), nil)
	if err != nil {
		return false, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

func (p *PyPI) fetchInfo(ctx context.Context, packageName string) (*PackageInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json", pypiBaseURL, packageName), nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var payload struct {
		Info struct {
			Name           string `json:"name"`
			Version        string `json:"version"`
			Summary        string `json:"summary"`
			RequiresPython string `json:"requires_python"`
		} `json:"info"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &PackageInfo{
		Name:           payload.Info.Name,
		Version:        payload.Info.Version,
		Summary:        payload.Info.Summary,
		RequiresPython: payload.Info.RequiresPython,
	}, nil
}

func packageInfoFromMap(m map[string]any) *PackageInfo {
	str := func(k string) string {
		if v, ok := m[k].(string); ok {
			return v
		}
		return ""
	}
	return &PackageInfo{
		Name:           str("name"),
		Version:        str("version"),
		Summary:        str("summary"),
		RequiresPython: str("requires_python"),
		Description:    str("description"),
	}
}
