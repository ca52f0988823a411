package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"fleetrental-backend/internal/logger"
	"fleetrental-backend/internal/metrics"
	"fleetrental-backend/internal/security"
)

// RequestIDMiddleware tags every request with an id for log correlation. An
// incoming X-Request-ID is honored so the host runtime can propagate its own.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}

// MetricsMiddleware records per-route request durations.
func MetricsMiddleware(collector *metrics.Collector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			collector.ObserveRequest(route, time.Since(start))
			logger.Debug("Request served",
				"method", r.Method, "route", route,
				"request_id", RequestID(r.Context()),
				"duration_ms", time.Since(start).Milliseconds())
		})
	}
}

// AuthMiddleware validates the bearer token and exposes the account address
// it is bound to via the request context.
func AuthMiddleware(tokens security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeErrorMessage(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				writeErrorMessage(w, http.StatusUnauthorized, "authorization header must be a bearer token")
				return
			}

			claims, err := tokens.ValidateToken(tokenString)
			if err != nil {
				writeErrorMessage(w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCallerAddress(r.Context(), claims.Address)))
		})
	}
}
