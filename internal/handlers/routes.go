package handlers

import (
	"net/http"

	"derdiedas/internal/metrics"
)

// Routes wires every endpoint onto a ServeMux wrapped in request logging
func Routes(mw *Middleware, drill *DrillHandler, admin *AdminHandler, health *HealthHandler, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// Drill session routes
	mux.HandleFunc("POST /api/sessions", mw.RateLimit(drill.StartSession))
	mux.HandleFunc("GET /api/session", mw.RequireDrillSession(drill.GetSession))
	mux.HandleFunc("POST /api/session/guess", mw.RateLimit(mw.RequireDrillSession(mw.CSRFProtect(drill.Guess))))
	mux.HandleFunc("POST /api/session/submit", mw.RateLimit(mw.RequireDrillSession(mw.CSRFProtect(drill.Submit))))
	mux.HandleFunc("POST /api/session/restart", mw.RateLimit(mw.RequireDrillSession(mw.CSRFProtect(drill.Restart))))
	mux.HandleFunc("DELETE /api/session", mw.RequireDrillSession(mw.CSRFProtect(drill.EndSession)))

	// Admin routes
	mux.HandleFunc("POST /admin/words/import", mw.RateLimit(mw.RequireAdmin(admin.ImportWords)))
	mux.HandleFunc("GET /admin/words/export", mw.RateLimit(mw.RequireAdmin(admin.ExportWords)))

	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.Handle("GET /metrics", m.Handler())

	return mw.Logging(mux)
}
