package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/readtrack/internal/application"
	"github.com/ericfisherdev/readtrack/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// CredentialsRequest is the JSON body for register and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Username string `json:"username"`
}

// LoginResponse carries the bearer token for subsequent requests.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// AddReadingRequest is the JSON body for adding a title. A null or absent
// total_parts means the title is ongoing.
type AddReadingRequest struct {
	Title      string `json:"title"`
	Type       string `json:"type"`
	TotalParts *int   `json:"total_parts"`
}

// UpdateProgressRequest is the JSON body for the progress endpoint.
type UpdateProgressRequest struct {
	CurrentPart *int `json:"current_part"`
}

// ReadingResponse is the JSON representation of a reading entry.
type ReadingResponse struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	TotalParts  *int   `json:"total_parts"`
	CurrentPart int    `json:"current_part"`
	Status      string `json:"status"`
	Ongoing     bool   `json:"ongoing"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Time    string `json:"time"`
}

// toReadingResponse converts a domain ReadingEntry to its JSON representation.
func toReadingResponse(e model.ReadingEntry) ReadingResponse {
	resp := ReadingResponse{
		Title:       e.Title,
		Type:        string(e.Type),
		TotalParts:  e.TotalParts,
		CurrentPart: e.CurrentPart,
		Status:      e.Status(),
		Ongoing:     e.IsOngoing(),
	}
	if !e.UpdatedAt.IsZero() {
		resp.UpdatedAt = e.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// toHealthResponse converts an application HealthReport to its JSON representation.
func toHealthResponse(r application.HealthReport) HealthResponse {
	return HealthResponse{
		Status:  r.Status,
		Storage: r.Storage,
		Time:    r.Time.Format(time.RFC3339),
	}
}
