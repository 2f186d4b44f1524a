package http

import (
	"context"

	"venuedesk_backend/internal/events"
	"venuedesk_backend/platform/config"
	"venuedesk_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (DB ping).
	Health HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// RateLimit is the per-IP request limiter applied to /api/v1.
	RateLimitPerSecond float64
	RateLimitBurst     int
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
