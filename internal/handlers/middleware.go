package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"derdiedas/internal/metrics"
	"derdiedas/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	DrillSessionContextKey ContextKey = "drill_session"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	log            *zap.Logger
	metrics        *metrics.Metrics
	limiter        *security.RateLimiter
	csrf           *security.CSRFGenerator
	adminTokenHash string
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(log *zap.Logger, m *metrics.Metrics, limiter *security.RateLimiter, csrf *security.CSRFGenerator, adminTokenHash string) *Middleware {
	return &Middleware{
		log:            log,
		metrics:        m,
		limiter:        limiter,
		csrf:           csrf,
		adminTokenHash: adminTokenHash,
	}
}

// RequireDrillSession resolves the drill session cookie into the request context
func (m *Middleware) RequireDrillSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := security.SessionIDFromRequest(r)
		if !ok {
			respondWithError(w, m.log, http.StatusNotFound, ErrNoActiveSession, "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), DrillSessionContextKey, id)
		next(w, r.WithContext(ctx))
	}
}

// CSRFProtect requires the CSRF header to match the drill session.
// It must run inside RequireDrillSession.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := GetDrillSessionID(r.Context())
		if !m.csrf.Valid(id, r.Header.Get(security.CSRFHeader)) {
			respondWithError(w, m.log, http.StatusForbidden, ErrInvalidCSRFToken, "", nil)
			return
		}
		next(w, r)
	}
}

// RequireAdmin checks the bearer token against ADMIN_TOKEN_HASH
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.adminTokenHash == "" {
			respondWithError(w, m.log, http.StatusForbidden, ErrForbidden, "", nil)
			return
		}
		token, ok := security.BearerToken(r)
		if !ok || !security.CheckToken(m.adminTokenHash, token) {
			m.log.Warn("rejected admin request", zap.String("ip", security.GetClientIP(r)), zap.String("path", r.URL.Path))
			w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
			respondWithError(w, m.log, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit rejects clients that exceed the configured request budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, wait := m.limiter.Allow(security.GetClientIP(r))
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			respondWithError(w, m.log, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging logs every request and records it in the HTTP metrics
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		m.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed))
	})
}

// GetDrillSessionID retrieves the drill session ID from the request context
func GetDrillSessionID(ctx context.Context) string {
	id, _ := ctx.Value(DrillSessionContextKey).(string)
	return id
}
