// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/readtrack/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/readtrack/internal/application"
	"github.com/ericfisherdev/readtrack/internal/auth"
	"github.com/ericfisherdev/readtrack/internal/domain/model"
	"github.com/ericfisherdev/readtrack/internal/domain/port/driven"
)

// notices maps the ?notice= codes set by redirects to their messages. Unknown
// codes render nothing.
var notices = map[string]string{
	"registered": "Account created. Please log in.",
	"added":      "Entry added.",
	"updated":    "Progress updated.",
	"logout":     "Logged out.",
}

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	authSvc       *application.AuthService
	readingSvc    *application.ReadingService
	issuer        *auth.Issuer
	secureCookies bool
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. secureCookies
// marks the session cookie Secure and should be set when served over TLS.
func NewHandler(
	authSvc *application.AuthService,
	readingSvc *application.ReadingService,
	issuer *auth.Issuer,
	secureCookies bool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		authSvc:       authSvc,
		readingSvc:    readingSvc,
		issuer:        issuer,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// render writes the component with status, logging render failures.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, "path", r.URL.Path, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, title, nav string) vm.PageViewModel {
	return vm.PageViewModel{
		Title:     title,
		Username:  usernameFrom(r.Context()),
		CSRFToken: csrfToken(w, r, h.secureCookies),
		ActiveNav: nav,
		Notice:    notices[r.URL.Query().Get("notice")],
	}
}

// Home renders the login/register page, or redirects to the reading list
// when a session is already active.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if h.sessionUsername(r) != "" {
		http.Redirect(w, r, "/app/readings", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, AuthPage(vm.AuthPageViewModel{
		PageViewModel: h.page(w, r, "Login / Register", ""),
		Action:        "login",
	}))
}

// Auth handles the login/register form. The "action" field selects which.
func (h *Handler) Auth(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	action := r.FormValue("action")

	fail := func(status int, msg string) {
		page := h.page(w, r, "Login / Register", "")
		page.Notice = ""
		page.Error = msg
		h.render(w, r, status, AuthPage(vm.AuthPageViewModel{
			PageViewModel: page,
			Username:      username,
			Action:        action,
		}))
	}

	switch action {
	case "register":
		err := h.authSvc.Register(r.Context(), username, password)
		switch {
		case err == nil:
			http.Redirect(w, r, "/?notice=registered", http.StatusSeeOther)
		case errors.Is(err, driven.ErrAccountAlreadyExists):
			fail(http.StatusConflict, "Username already exists.")
		case errors.Is(err, application.ErrInvalidCredentialsInput):
			fail(http.StatusBadRequest, "Username and password are required.")
		case errors.Is(err, application.ErrPasswordTooLong):
			fail(http.StatusBadRequest, "Password must be at most 72 bytes.")
		default:
			h.internalError(w, r, "failed to register account", err)
		}

	case "login", "":
		ok, err := h.authSvc.Authenticate(r.Context(), username, password)
		if err != nil {
			h.internalError(w, r, "failed to authenticate", err)
			return
		}
		if !ok {
			fail(http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		if err := h.setSession(w, username); err != nil {
			h.internalError(w, r, "failed to sign session", err)
			return
		}
		h.logger.Info("user logged in", "username", username)
		http.Redirect(w, r, "/app/readings", http.StatusSeeOther)

	default:
		fail(http.StatusBadRequest, "Unknown action.")
	}
}

// Logout clears the session and returns to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSession(w)
	http.Redirect(w, r, "/?notice=logout", http.StatusSeeOther)
}

// AddForm renders the add-entry page.
func (h *Handler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, AddPage(vm.AddPageViewModel{
		PageViewModel: h.page(w, r, "Add Reading", "add"),
		Types:         typeOptions(string(model.ReadingTypeComic)),
	}))
}

// AddReading handles the add-entry form.
func (h *Handler) AddReading(w http.ResponseWriter, r *http.Request) {
	username := usernameFrom(r.Context())
	title := r.FormValue("title")
	typ := r.FormValue("type")
	totalText := r.FormValue("total_parts")

	fail := func(msg string) {
		page := h.page(w, r, "Add Reading", "add")
		page.Error = msg
		h.render(w, r, http.StatusBadRequest, AddPage(vm.AddPageViewModel{
			PageViewModel: page,
			Types:         typeOptions(typ),
			Title:         title,
			TotalParts:    totalText,
		}))
	}

	total, err := application.ParseTotalParts(totalText)
	if err != nil {
		fail("Please enter a valid number.")
		return
	}

	_, err = h.readingSvc.Add(r.Context(), username, application.NewEntryInput{
		Title:      title,
		Type:       typ,
		TotalParts: total,
	})
	switch {
	case err == nil:
		http.Redirect(w, r, "/app/add?notice=added", http.StatusSeeOther)
	case errors.Is(err, model.ErrInvalidEntry):
		fail("Please enter a title and choose a type.")
	default:
		h.internalError(w, r, "failed to add reading", err)
	}
}

type listQuery struct {
	filter   string
	sort     application.SortKey
	selected string
}

func parseListQuery(values url.Values) listQuery {
	q := listQuery{filter: values.Get("type"), selected: values.Get("selected")}
	if q.filter == "" {
		q.filter = application.FilterAll
	}
	key, err := application.ParseSortKey(values.Get("sort"))
	if err != nil {
		key = application.SortByTitle
	}
	q.sort = key
	return q
}

func (q listQuery) url(extra url.Values) string {
	v := url.Values{}
	v.Set("type", q.filter)
	v.Set("sort", string(q.sort))
	for k, vals := range extra {
		v[k] = vals
	}
	return "/app/readings?" + v.Encode()
}

// ListReadings renders the view & update page.
func (h *Handler) ListReadings(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, http.StatusOK, parseListQuery(r.URL.Query()), "")
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, status int, q listQuery, errMsg string) {
	entries, err := h.readingSvc.List(r.Context(), usernameFrom(r.Context()), q.filter, q.sort)
	if err != nil {
		h.internalError(w, r, "failed to list readings", err)
		return
	}

	page := h.page(w, r, "View & Update", "view")
	page.Error = errMsg
	if errMsg != "" {
		page.Notice = ""
	}

	view := vm.ListPageViewModel{
		PageViewModel: page,
		FilterOptions: filterOptions(q.filter),
		SortOptions:   sortOptions(q.sort),
		Filter:        q.filter,
		Sort:          string(q.sort),
		Entries:       toEntryViewModels(entries),
	}

	if len(entries) > 0 {
		selected := entries[0]
		for _, e := range entries {
			if e.Title == q.selected {
				selected = e
				break
			}
		}
		sel := toEntryViewModel(selected)
		view.Selected = &sel
		view.SelectOptions = selectOptions(entries, selected.Title)
	}

	h.render(w, r, status, ListPage(view))
}

// UpdateProgress handles the progress form and returns to the same view.
func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	q := parseListQuery(r.PostForm)
	title := r.PostForm.Get("title")
	q.selected = title

	current, err := application.ParseCurrentPart(r.PostForm.Get("current_part"))
	if err != nil {
		h.renderList(w, r, http.StatusBadRequest, q, "Please enter a valid number.")
		return
	}

	_, err = h.readingSvc.UpdateProgress(r.Context(), usernameFrom(r.Context()), title, current)
	switch {
	case err == nil:
		http.Redirect(w, r, q.url(url.Values{
			"selected": {title},
			"notice":   {"updated"},
		}), http.StatusSeeOther)
	case errors.Is(err, application.ErrEntryNotFound):
		h.renderList(w, r, http.StatusNotFound, q, "That entry no longer exists.")
	case errors.Is(err, application.ErrInvalidNumber):
		h.renderList(w, r, http.StatusBadRequest, q, "Please enter a valid number.")
	default:
		h.internalError(w, r, "failed to update progress", err)
	}
}

// Export renders the export page with a download link.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	entries, err := h.readingSvc.List(r.Context(), usernameFrom(r.Context()), application.FilterAll, application.SortByTitle)
	if err != nil {
		h.internalError(w, r, "failed to list readings", err)
		return
	}
	h.render(w, r, http.StatusOK, ExportPage(vm.ExportPageViewModel{
		PageViewModel: h.page(w, r, "Export", "export"),
		EntryCount:    len(entries),
		DownloadURL:   "/app/export/" + application.ExportFilename,
	}))
}

// ExportDownload serves the CSV attachment.
func (h *Handler) ExportDownload(w http.ResponseWriter, r *http.Request) {
	data, err := h.readingSvc.Export(r.Context(), usernameFrom(r.Context()))
	if errors.Is(err, application.ErrNothingToExport) {
		http.Error(w, "nothing to export yet", http.StatusNotFound)
		return
	}
	if err != nil {
		h.internalError(w, r, "failed to export readings", err)
		return
	}

	w.Header().Set("Content-Type", application.ExportContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+application.ExportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
