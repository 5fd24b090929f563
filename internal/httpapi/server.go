// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package httpapi is the HTTP boundary around the validation pipeline:
// POST /validate, GET /health, GET /metrics, and per-IP rate limiting.
// Wired with github.com/gin-gonic/gin.
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/issue"
	"github.com/tranhoangtu-it/hallucination-firewall/internal/pipeline"
)

// Version is the module's user-visible version string, surfaced by
// GET /health.
const Version = "0.1.0"

// Server is the long-running HTTP service wrapping one Orchestrator. Its
// long-lived instance is owned here at the HTTP boundary; the core
// package itself (internal/pipeline) stays purely instance-based.
type Server struct {
	engine  *gin.Engine
	pipe    *pipeline.Orchestrator
	metrics *Metrics
	limiter *ipRateLimiter
}

// New builds a Server around an already-constructed Orchestrator.
// pipe may be nil before the orchestrator finishes initializing; in that
// state POST /validate answers 503 and GET /health reports status
// "initializing".
func New(pipe *pipeline.Orchestrator) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:  engine,
		pipe:    pipe,
		metrics: NewMetrics(),
		limiter: newIPRateLimiter(),
	}

	engine.POST("/validate", s.rateLimited(s.handleValidate))
	engine.GET("/health", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	return s
}

// Handler returns the underlying http.Handler for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) rateLimited(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			s.metrics.RateLimitRejected.Inc()
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		next(c)
	}
}

type validateRequest struct {
	Code     string `json:"code" binding:"required"`
	FilePath string `json:"file_path"`
	Language string `json:"language"`
}

// handleValidate implements POST /validate. file_path defaults to "<api>",
// and an explicit language appends that language's extension to the
// synthetic file path so language detection has something to key off.
func (s *Server) handleValidate(c *gin.Context) {
	if s.pipe == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pipeline not initialized"})
		return
	}

	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filePath := req.FilePath
	if filePath == "" {
		filePath = "<api>"
	}
	if req.Language != "" {
		filePath += extensionFor(req.Language)
	}

	start := time.Now()
	result := s.pipe.ValidateCode(c.Request.Context(), []byte(req.Code), filePath)
	s.metrics.RequestDuration.WithLabelValues("/validate").Observe(time.Since(start).Seconds())
	s.metrics.ValidationsTotal.WithLabelValues(result.Language, strconv.FormatBool(result.Passed)).Inc()
	for _, iss := range result.Issues {
		s.metrics.IssuesTotal.WithLabelValues(iss.Kind.String()).Inc()
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealth(c *gin.Context) {
	status := "ok"
	if s.pipe == nil {
		status = "initializing"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "version": Version})
}

func extensionFor(language string) string {
	switch issue.ParseLanguage(language) {
	case issue.LanguagePython:
		return ".py"
	case issue.LanguageJavaScript:
		return ".js"
	case issue.LanguageTypeScript:
		return ".ts"
	default:
		return ""
	}
}
