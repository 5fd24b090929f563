// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package main

import (
	"fmt"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/cache"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/config"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/importcheck"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/pipeline"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/registry"
)

// buildOrchestrator wires a Cache, the configured registry clients, and
// an importcheck.Checker into one pipeline.Orchestrator. The orchestrator
// itself never reaches into the cache or network layers directly.
func buildOrchestrator(cfg config.Config) (*pipeline.Orchestrator, func() error, error) {
	cacheDir, err := cfg.ExpandedCacheDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving cache directory: %w", err)
	}

	c, err := cache.Open(cacheDir, cfg.CacheTTL())
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}

	var pypi importcheck.PackageExistence
	if cfg.Registries.PyPIEnabled {
		pypi = registry.NewPyPI(cfg.RegistryTimeout(), c)
	}
	var npm importcheck.PackageExistence
	if cfg.Registries.NPMEnabled {
		npm = registry.NewNPM(cfg.RegistryTimeout(), c)
	}

	checker := importcheck.New(pypi, npm)
	orchestrator := pipeline.New(checker)

	closeFn := func() error {
		if err := orchestrator.Close(); err != nil {
			return err
		}
		return c.Close()
	}
	return orchestrator, closeFn, nil
}
