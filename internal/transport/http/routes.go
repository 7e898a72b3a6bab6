package http

import (
	"net/http"
	"time"

	"github.com/picstash/picstash/internal/logger"
)

// RouterConfig holds configuration for the HTTP router
type RouterConfig struct {
	Logger         *logger.Logger
	EnableCORS     bool
	AllowedOrigins []string
	RateLimiter    Limiter // nil disables rate limiting
	MaxBodySize    int64   // in bytes
}

// DefaultRouterConfig returns sensible defaults
func DefaultRouterConfig(logg *logger.Logger) RouterConfig {
	return RouterConfig{
		Logger:         logg,
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		RateLimiter:    NewMemoryLimiter(100, time.Minute),
		MaxBodySize:    1 << 20, // 1 MB
	}
}

// NewRouter creates a new HTTP router with middleware stack applied
func NewRouter(config RouterConfig, photoHandler *PhotoHandler, eventHandler *EventHandler) http.Handler {
	mux := http.NewServeMux()

	registerRoutes(mux, photoHandler, eventHandler)

	// Build middleware stack (order matters - first applied is outermost)
	middlewares := []Middleware{
		// Outermost: Request ID for tracing
		RequestID(),
		// Recovery from panics
		Recover(config.Logger),
		// Request logging
		Logging(config.Logger),
		// Security headers
		SecureHeaders(),
		// Request body size limit
		MaxBodySize(config.MaxBodySize),
	}

	if config.EnableCORS {
		corsConfig := DefaultCORSConfig()
		corsConfig.AllowedOrigins = config.AllowedOrigins
		middlewares = append(middlewares, CORS(corsConfig))
	}

	if config.RateLimiter != nil {
		middlewares = append(middlewares, RateLimit(config.RateLimiter))
	}

	return Chain(mux, middlewares...)
}

// registerRoutes sets up all API routes on the mux
func registerRoutes(mux *http.ServeMux, photoHandler *PhotoHandler, eventHandler *EventHandler) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Readiness check
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	// Photo routes
	mux.HandleFunc("POST /api/uploads", photoHandler.CreateUpload)
	mux.HandleFunc("GET /api/photos", photoHandler.List)
	mux.HandleFunc("DELETE /api/photos/{photoId}", photoHandler.Delete)
	mux.HandleFunc("DELETE /api/photos", photoHandler.Delete)

	// Object-store event webhook
	mux.HandleFunc("POST /internal/events/s3", eventHandler.HandleS3Event)
}
