package web

import (
	"context"
	"net/http"
	"time"
)

const sessionCookieName = "readtrack_session"

type ctxKey int

const usernameKey ctxKey = iota

// setSession stores a signed session token for username in an HttpOnly cookie.
func (h *Handler) setSession(w http.ResponseWriter, username string) error {
	token, err := h.issuer.Sign(username)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.issuer.TTL()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// clearSession expires the session cookie.
func (h *Handler) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionUsername returns the username of a valid session cookie, or "".
func (h *Handler) sessionUsername(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	username, err := h.issuer.Parse(cookie.Value)
	if err != nil {
		return ""
	}
	return username
}

// requireSession redirects to the login page when there is no valid session
// and otherwise stores the username in the request context.
func (h *Handler) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := h.sessionUsername(r)
		if username == "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), usernameKey, username)))
	}
}

// usernameFrom returns the username placed by requireSession.
func usernameFrom(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}
