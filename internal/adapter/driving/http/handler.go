// Package httphandler implements the JSON REST API driving adapter.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/readtrack/internal/application"
	"github.com/ericfisherdev/readtrack/internal/auth"
	"github.com/ericfisherdev/readtrack/internal/domain/model"
	"github.com/ericfisherdev/readtrack/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	authSvc    *application.AuthService
	readingSvc *application.ReadingService
	healthSvc  *application.HealthService
	issuer     *auth.Issuer
	logger     *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	authSvc *application.AuthService,
	readingSvc *application.ReadingService,
	healthSvc *application.HealthService,
	issuer *auth.Issuer,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		authSvc:    authSvc,
		readingSvc: readingSvc,
		healthSvc:  healthSvc,
		issuer:     issuer,
		logger:     logger,
	}
}

// RegisterAPIRoutes registers all REST API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /api/v1/auth/register", h.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	mux.HandleFunc("GET /api/v1/readings", requireAuth(h.issuer, h.ListReadings))
	mux.HandleFunc("POST /api/v1/readings", requireAuth(h.issuer, h.AddReading))
	mux.HandleFunc("GET /api/v1/readings/{title}", requireAuth(h.issuer, h.GetReading))
	mux.HandleFunc("PUT /api/v1/readings/{title}/progress", requireAuth(h.issuer, h.UpdateProgress))
	mux.HandleFunc("GET /api/v1/export", requireAuth(h.issuer, h.Export))
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// Register creates a new account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.authSvc.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, application.ErrInvalidCredentialsInput), errors.Is(err, application.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, driven.ErrAccountAlreadyExists):
		writeError(w, http.StatusConflict, "username already exists")
		return
	case err != nil:
		h.logger.Error("failed to register account", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{Username: strings.TrimSpace(req.Username)})
}

// Login verifies credentials and returns a bearer token. Unknown usernames
// and wrong passwords get the same response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := h.authSvc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("failed to authenticate", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.issuer.Sign(strings.TrimSpace(req.Username))
	if err != nil {
		h.logger.Error("failed to sign session token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.issuer.TTL()).UTC().Format(time.RFC3339),
	})
}

// ListReadings returns the caller's entries, filtered by ?type= and ordered by ?sort=.
func (h *Handler) ListReadings(w http.ResponseWriter, r *http.Request) {
	username := usernameFrom(r.Context())

	filter := r.URL.Query().Get("type")
	if filter == "" {
		filter = application.FilterAll
	}
	sortKey, err := application.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sort: expected Title, Type or Progress")
		return
	}

	entries, err := h.readingSvc.List(r.Context(), username, filter, sortKey)
	if err != nil {
		h.writeServiceError(w, "failed to list readings", err)
		return
	}

	resp := make([]ReadingResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toReadingResponse(e))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetReading returns a single entry by title.
func (h *Handler) GetReading(w http.ResponseWriter, r *http.Request) {
	entry, err := h.readingSvc.Get(r.Context(), usernameFrom(r.Context()), r.PathValue("title"))
	if err != nil {
		h.writeServiceError(w, "failed to get reading", err)
		return
	}

	writeJSON(w, http.StatusOK, toReadingResponse(entry))
}

// AddReading saves a new entry with zero progress. An existing entry with the
// same title is overwritten.
func (h *Handler) AddReading(w http.ResponseWriter, r *http.Request) {
	var req AddReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.readingSvc.Add(r.Context(), usernameFrom(r.Context()), application.NewEntryInput{
		Title:      req.Title,
		Type:       req.Type,
		TotalParts: req.TotalParts,
	})
	if err != nil {
		h.writeServiceError(w, "failed to add reading", err)
		return
	}

	writeJSON(w, http.StatusCreated, toReadingResponse(entry))
}

// UpdateProgress sets the current part of an existing entry.
func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CurrentPart == nil {
		writeError(w, http.StatusBadRequest, "current_part is required")
		return
	}

	entry, err := h.readingSvc.UpdateProgress(r.Context(), usernameFrom(r.Context()), r.PathValue("title"), *req.CurrentPart)
	if err != nil {
		h.writeServiceError(w, "failed to update progress", err)
		return
	}

	writeJSON(w, http.StatusOK, toReadingResponse(entry))
}

// Export streams the caller's entries as a CSV attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.readingSvc.Export(r.Context(), usernameFrom(r.Context()))
	if err != nil {
		h.writeServiceError(w, "failed to export readings", err)
		return
	}

	w.Header().Set("Content-Type", application.ExportContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+application.ExportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Health reports storage reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.healthSvc.Check(r.Context())

	status := http.StatusOK
	if report.Status != application.HealthStatusOK {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, toHealthResponse(report))
}

// writeServiceError maps application and domain sentinels to HTTP statuses.
// Anything unrecognized is logged and reported as a 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidNumber), errors.Is(err, model.ErrInvalidEntry):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, "reading not found")
	case errors.Is(err, application.ErrNothingToExport):
		writeError(w, http.StatusNotFound, "nothing to export yet")
	case errors.Is(err, driven.ErrAccountNotFound):
		writeError(w, http.StatusUnauthorized, "account not found")
	default:
		h.logger.Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
