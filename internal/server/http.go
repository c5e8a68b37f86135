package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/triviahub/trivia-api/internal/api"
	"github.com/triviahub/trivia-api/internal/config"
	"github.com/triviahub/trivia-api/internal/logging"
	"github.com/triviahub/trivia-api/internal/metrics"
)

// NewHTTPServer wires the trivia routes plus health and metrics endpoints.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, rdb *redis.Client, handlers *api.HTTPHandlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pool.Ping(r.Context()); err != nil {
			logger.Error().Err(err).Msg("postgres ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		if err := rdb.Ping(r.Context()).Err(); err != nil {
			logger.Error().Err(err).Msg("redis ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("GET /categories", handlers.ListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", handlers.ListByCategory)
	mux.HandleFunc("GET /questions", handlers.ListQuestions)
	mux.HandleFunc("POST /questions", handlers.CreateOrSearchQuestion)
	mux.HandleFunc("DELETE /questions/{id}", handlers.DeleteQuestion)
	mux.HandleFunc("POST /quizzes", handlers.NextQuizQuestion)

	handler := corsMiddleware(cfg.CORS, requestMiddleware(logger, mux))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestMiddleware attaches a request-scoped logger with a request id,
// records metrics, and writes an access log line per request.
func requestMiddleware(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		reqLogger := logger.With().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()
		ctx := logging.IntoContext(r.Context(), reqLogger)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(rec, r.WithContext(ctx))

		elapsed := time.Since(start)
		route := routeLabel(r.URL.Path)
		metrics.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.RequestDuration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())

		reqLogger.Info().
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Msg("request handled")
	})
}

// routeLabel collapses path parameters so metrics stay low-cardinality.
func routeLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if _, err := strconv.Atoi(p); err == nil {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func corsMiddleware(cfg config.CORS, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && originAllowed(cfg.AllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ","))
			w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ","))
			w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
