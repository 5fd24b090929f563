// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/cache"
)

const npmRegistryURL = "https://registry.npmjs.org"

// NPM queries registry.npmjs.org for package existence and metadata.
type NPM struct {
	client *http.Client
	cache  *cache.Cache
}

// NewNPM builds an npm client with the given request timeout.
func NewNPM(timeout time.Duration, c *cache.Cache) *NPM {
	return &NPM{client: &http.Client{Timeout: timeout}, cache: c}
}

// PackageExists reports whether packageName resolves on npm. Empty names
// are never packages. Network failures fail open.
func (n *NPM) PackageExists(ctx context.Context, packageName string) bool {
	if strings.TrimSpace(packageName) == "" {
		return false
	}

	key := "npm:exists:" + packageName
	if cached, ok := n.cache.Get(key); ok {
		if b, ok := cached.(bool); ok {
			return b
		}
	}

	exists, err := n.fetchExists(ctx, packageName)
	if err != nil {
		return true
	}
	n.cache.Set(key, exists)
	return exists
}

// GetPackageInfo returns projected npm metadata, or nil when absent.
func (n *NPM) GetPackageInfo(ctx context.Context, packageName string) *PackageInfo {
	key := "npm:info:" + packageName
	if cached, ok := n.cache.Get(key); ok {
		if m, ok := cached.(map[string]any); ok {
			return packageInfoFromMap(m)
		}
	}

	info, err := n.fetchInfo(ctx, packageName)
	if err != nil || info == nil {
		return nil
	}
	n.cache.Set(key, info)
	return info
}

func (n *NPM) fetchExists(ctx context.Context, packageName string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", npmRegistryURL, packageName), nil)
	if err != nil {
		return false, err
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

func (n *NPM) fetchInfo(ctx context.Context, packageName string) (*PackageInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", npmRegistryURL, packageName), nil)
	if err != nil {
		return nil, err
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var payload struct {
		Name     string `json:"name"`
		DistTags struct {
			Latest string `json:"latest"`
		} `json:"dist-tags"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	name := payload.Name
	if name == "" {
		name = packageName
	}
	return &PackageInfo{
		Name:        name,
		Version:     payload.DistTags.Latest,
		Description: payload.Description,
	}, nil
}
