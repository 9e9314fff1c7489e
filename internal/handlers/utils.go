package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/members-club/webserver/internal/auth"
	"github.com/members-club/webserver/internal/store"
	"github.com/members-club/webserver/internal/validate"
	"github.com/rs/zerolog/log"
)

const (
	genericErrorMsg = "Oops, something went wrong! Try again later."
	logoutErrorMsg  = "Could not log you out! Try again later."
	notFoundTitle   = "Not Found"
	errorView       = "error"
)

// Renderer is the out-of-scope view collaborator: a template name plus a
// data mapping.
type Renderer interface {
	Render(w io.Writer, name string, data map[string]any) error
}

// responder adapts Outcome-returning handlers to http.HandlerFunc and owns
// the outward error presentation.
type responder struct {
	view Renderer
}

func (rs responder) adapt(fn func(w http.ResponseWriter, r *http.Request) Outcome) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := fn(w, r)
		switch out.kind {
		case outcomeHandled:
		case outcomeNotFound:
			rs.renderNotFound(w, r)
		case outcomeError:
			rs.renderFailure(w, r, out.err)
		}
	}
}

// render writes an HTML page. The data map always carries the acting user
// so templates can show the right chrome.
func (rs responder) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["formData"]; !ok {
		data["formData"] = map[string]string{}
	}
	if _, ok := data["validationErrors"]; !ok {
		data["validationErrors"] = validate.Errors{}
	}
	data["user"] = auth.UserFrom(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rs.view.Render(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("template render failed")
	}
}

func (rs responder) renderNotFound(w http.ResponseWriter, r *http.Request) {
	rs.render(w, r, http.StatusNotFound, errorView, map[string]any{
		"title": notFoundTitle,
		"error": "The requested page does not exist.",
	})
}

// renderFailure maps server errors to their outward shape. Detail stays in
// the logs; the page gets a generic message.
func (rs responder) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	var sessionErr *auth.SessionError
	if errors.As(err, &sessionErr) {
		log.Error().Err(err).Msg("session operation failed")
		rs.render(w, r, http.StatusInternalServerError, errorView, map[string]any{
			"title": "Server Error",
			"error": logoutErrorMsg,
		})
		return
	}

	log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	rs.render(w, r, http.StatusInternalServerError, errorView, map[string]any{
		"title": "Server Error",
		"error": genericErrorMsg,
	})
}

// requireAuth behaves exactly like a missing route for anonymous callers,
// so protected resources do not reveal their existence.
func (rs responder) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UserFrom(r.Context()) == nil {
			rs.renderNotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// formData echoes the untrusted input back into a re-rendered form.
func formData(r *http.Request, fields ...string) map[string]string {
	data := make(map[string]string, len(fields))
	for _, field := range fields {
		data[field] = r.PostFormValue(field)
	}
	return data
}

// isNotFound folds the store sentinel into the handler's Outcome space.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
