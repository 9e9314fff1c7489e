package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/members-club/webserver/internal/auth"
	"github.com/members-club/webserver/internal/services"
	"github.com/members-club/webserver/internal/store"
	"github.com/members-club/webserver/internal/validate"
)

const (
	signupTitle  = "Sign Up"
	loginTitle   = "Log In"
	profileTitle = "Update Profile"
	userFormView = "user-form"

	duplicateUsernameMsg = "This username is already exists!"
)

// UserHandler serves signup, login/logout, the author page and the
// self-service account routes.
type UserHandler struct {
	responder
	users *services.UserService
	posts *services.PostService
	auth  *auth.Service
}

func NewUserHandler(view Renderer, users *services.UserService, posts *services.PostService, authService *auth.Service) *UserHandler {
	return &UserHandler{
		responder: responder{view: view},
		users:     users,
		posts:     posts,
		auth:      authService,
	}
}

// UserRouter registers the user routes on the given router.
func UserRouter(r chi.Router, handler *UserHandler) {
	r.Get("/signup", handler.adapt(handler.GetSignup))
	r.Post("/signup", handler.adapt(handler.PostSignup))
	r.Get("/login", handler.adapt(handler.GetLogin))
	r.Post("/login", handler.adapt(handler.PostLogin))
	r.Get("/logout", handler.adapt(handler.GetLogout))

	r.Group(func(r chi.Router) {
		r.Use(handler.requireAuth)
		r.Get("/update", handler.adapt(handler.GetUpdate))
		r.Post("/update", handler.adapt(handler.PostUpdate))
		r.Post("/delete/{id}", handler.adapt(handler.PostDelete))
	})

	r.Get("/{id}", handler.adapt(handler.GetUser))
}

func (h *UserHandler) GetSignup(w http.ResponseWriter, r *http.Request) Outcome {
	h.render(w, r, http.StatusOK, userFormView, map[string]any{
		"title":        signupTitle,
		"withFullname": true,
	})
	return Handled()
}

func (h *UserHandler) PostSignup(w http.ResponseWriter, r *http.Request) Outcome {
	echoed := formData(r, "username", "fullname")
	if errs := validate.Check(r.PostFormValue, validate.SignupFields()); len(errs) > 0 {
		h.render(w, r, http.StatusBadRequest, userFormView, map[string]any{
			"title":            signupTitle,
			"withFullname":     true,
			"formData":         echoed,
			"validationErrors": errs,
		})
		return Handled()
	}

	err := h.users.Signup(
		r.Context(),
		r.PostFormValue("fullname"),
		r.PostFormValue("username"),
		r.PostFormValue("password"),
		r.PostFormValue("admin_secret"),
	)
	if err != nil {
		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			h.render(w, r, http.StatusConflict, userFormView, map[string]any{
				"title":        signupTitle,
				"withFullname": true,
				"formData":     echoed,
				"error":        duplicateUsernameMsg,
			})
			return Handled()
		}
		return Fail(err)
	}

	// A fresh signup is also a login.
	user, err := h.users.GetByUsername(r.Context(), r.PostFormValue("username"))
	if err != nil {
		return Fail(err)
	}
	return h.establishAndRedirect(w, r, user.ID)
}

func (h *UserHandler) GetLogin(w http.ResponseWriter, r *http.Request) Outcome {
	h.render(w, r, http.StatusOK, userFormView, map[string]any{"title": loginTitle})
	return Handled()
}

func (h *UserHandler) PostLogin(w http.ResponseWriter, r *http.Request) Outcome {
	user, err := h.auth.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, auth.ErrUnknownUser) || errors.Is(err, auth.ErrBadCredentials) {
			h.render(w, r, http.StatusUnauthorized, userFormView, map[string]any{
				"title":    loginTitle,
				"formData": formData(r, "username"),
				"error":    err.Error(),
			})
			return Handled()
		}
		return Fail(err)
	}
	return h.establishAndRedirect(w, r, user.ID)
}

func (h *UserHandler) GetLogout(w http.ResponseWriter, r *http.Request) Outcome {
	if sid, ok := h.auth.SessionID(r); ok {
		if err := h.auth.Logout(r.Context(), sid); err != nil {
			return Fail(err)
		}
	}
	h.auth.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return Handled()
}

// GetUser renders a member's page: their posts if any, otherwise the bare
// account, otherwise not found.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) Outcome {
	id, ok := validate.ParseID(chi.URLParam(r, "id"))
	if !ok {
		return NotFound()
	}

	posts, err := h.posts.ListByAuthor(r.Context(), id)
	if err != nil {
		return Fail(err)
	}

	title := ""
	if len(posts) > 0 {
		title = strings.ToUpper(posts[0].Author)
	} else {
		user, err := h.users.GetByID(r.Context(), id)
		if err != nil {
			if isNotFound(err) {
				return NotFound()
			}
			return Fail(err)
		}
		title = strings.ToUpper(user.Username)
	}

	h.render(w, r, http.StatusOK, "index", map[string]any{
		"title": title,
		"posts": posts,
	})
	return Handled()
}

func (h *UserHandler) GetUpdate(w http.ResponseWriter, r *http.Request) Outcome {
	actor := auth.UserFrom(r.Context())
	h.render(w, r, http.StatusOK, userFormView, map[string]any{
		"title":        profileTitle,
		"withFullname": true,
		"formData": map[string]string{
			"username": actor.Username,
			"fullname": actor.FullName,
		},
	})
	return Handled()
}

func (h *UserHandler) PostUpdate(w http.ResponseWriter, r *http.Request) Outcome {
	actor := auth.UserFrom(r.Context())
	echoed := formData(r, "username", "fullname")

	if errs := validate.Check(r.PostFormValue, validate.ProfileFields()); len(errs) > 0 {
		h.render(w, r, http.StatusBadRequest, userFormView, map[string]any{
			"title":            profileTitle,
			"withFullname":     true,
			"formData":         echoed,
			"validationErrors": errs,
		})
		return Handled()
	}

	err := h.users.UpdateProfile(r.Context(), actor, services.ProfileUpdate{
		FullName:    r.PostFormValue("fullname"),
		Username:    r.PostFormValue("username"),
		Password:    r.PostFormValue("password"),
		AdminSecret: r.PostFormValue("admin_secret"),
	})
	if err != nil {
		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			h.render(w, r, http.StatusConflict, userFormView, map[string]any{
				"title":        profileTitle,
				"withFullname": true,
				"formData":     echoed,
				"error":        duplicateUsernameMsg,
			})
			return Handled()
		}
		if isNotFound(err) {
			return NotFound()
		}
		return Fail(err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
	return Handled()
}

// PostDelete removes an account. Self-deletion tears down the acting
// session first; an admin deleting another member leaves that member's
// sessions to fail closed on their next request.
func (h *UserHandler) PostDelete(w http.ResponseWriter, r *http.Request) Outcome {
	id, ok := validate.ParseID(chi.URLParam(r, "id"))
	if !ok {
		return NotFound()
	}
	actor := auth.UserFrom(r.Context())

	if actor != nil && actor.ID == id {
		if sid, ok := h.auth.SessionID(r); ok {
			if err := h.auth.Logout(r.Context(), sid); err != nil {
				return Fail(err)
			}
		}
		h.auth.ClearCookie(w)
	}

	if err := h.users.DeleteAccount(r.Context(), actor, id); err != nil {
		if isNotFound(err) {
			return NotFound()
		}
		return Fail(err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
	return Handled()
}

func (h *UserHandler) establishAndRedirect(w http.ResponseWriter, r *http.Request, userID int) Outcome {
	sid, err := h.auth.Establish(r.Context(), userID)
	if err != nil {
		return Fail(err)
	}
	h.auth.SetCookie(w, sid)
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return Handled()
}
