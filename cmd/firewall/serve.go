// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/config"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/httpapi"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the long-running HTTP validation service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	cfg, err := config.Resolve()
	if err != nil {
		return fmt.Errorf("resolving config: %w", err)
	}

	orchestrator, closeFn, err := buildOrchestrator(cfg)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}
	defer closeFn()

	server := &http.Server{
		Addr:    addr,
		Handler: httpapi.New(orchestrator).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting HTTP server", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-sigCh:
		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
