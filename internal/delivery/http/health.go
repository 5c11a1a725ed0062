// Package http contains HTTP delivery handlers
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DatabaseHealthChecker is satisfied by *sql.DB
type DatabaseHealthChecker interface {
	PingContext(ctx context.Context) error
}

// BotHealthChecker reports whether the Telegram update loop is running
type BotHealthChecker interface {
	IsHealthy() bool
}

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     HealthStatus      `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components"`
}

// HealthHandler handles HTTP health check requests
type HealthHandler struct {
	database DatabaseHealthChecker
	bot      BotHealthChecker
	logger   zerolog.Logger
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(database DatabaseHealthChecker, bot BotHealthChecker, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		database: database,
		bot:      bot,
		logger:   logger,
	}
}

// ServeHTTP implements http.Handler interface
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	components := h.checkComponents(ctx)
	status := determineOverallStatus(components)

	response := HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: components,
	}

	statusCode := http.StatusOK
	if status == HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	logEvent := h.logger.Debug()
	if status != HealthStatusHealthy {
		logEvent = h.logger.Warn()
	}
	logEvent.
		Str("status", string(status)).
		Int("status_code", statusCode).
		Interface("components", components).
		Msg("Health check completed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// Headers are already sent, an encode failure can only be logged
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode health check response")
	}
}

func (h *HealthHandler) checkComponents(ctx context.Context) []ComponentHealth {
	components := make([]ComponentHealth, 0, 2)

	dbHealth := ComponentHealth{Name: "database", Healthy: true}
	if err := h.database.PingContext(ctx); err != nil {
		dbHealth.Healthy = false
		dbHealth.Message = "Database ping failed: " + err.Error()
	}
	components = append(components, dbHealth)

	botHealth := ComponentHealth{Name: "telegram_bot", Healthy: h.bot.IsHealthy()}
	if !botHealth.Healthy {
		botHealth.Message = "Telegram update loop is not running"
	}
	components = append(components, botHealth)

	return components
}

// determineOverallStatus determines overall health status based on component health
func determineOverallStatus(components []ComponentHealth) HealthStatus {
	allHealthy := true
	anyHealthy := false

	for _, component := range components {
		if !component.Healthy {
			allHealthy = false
		} else {
			anyHealthy = true
		}
	}

	if allHealthy {
		return HealthStatusHealthy
	} else if anyHealthy {
		return HealthStatusDegraded
	}

	return HealthStatusUnhealthy
}
