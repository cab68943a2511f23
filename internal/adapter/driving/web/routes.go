package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Pages under /app/ require a session; every POST requires a CSRF token.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("POST /auth", requireCSRF(h.Auth))
	mux.HandleFunc("POST /logout", requireCSRF(h.Logout))

	mux.HandleFunc("GET /app/add", h.requireSession(h.AddForm))
	mux.HandleFunc("POST /app/readings", requireCSRF(h.requireSession(h.AddReading)))
	mux.HandleFunc("GET /app/readings", h.requireSession(h.ListReadings))
	mux.HandleFunc("POST /app/readings/progress", requireCSRF(h.requireSession(h.UpdateProgress)))
	mux.HandleFunc("GET /app/export", h.requireSession(h.Export))
	mux.HandleFunc("GET /app/export/reading_list.csv", h.requireSession(h.ExportDownload))
}
