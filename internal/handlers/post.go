package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/members-club/webserver/internal/auth"
	"github.com/members-club/webserver/internal/services"
	"github.com/members-club/webserver/internal/validate"
	"github.com/members-club/webserver/types"
)

const (
	indexTitle      = "Members Only"
	addPostTitle    = "Add Post"
	updatePostTitle = "Update Post"
	postFormView    = "post-form"
	indexView       = "index"
)

// PostHandler serves the post listing and the authenticated post CRUD
// routes.
type PostHandler struct {
	responder
	posts *services.PostService
}

func NewPostHandler(view Renderer, posts *services.PostService) *PostHandler {
	return &PostHandler{responder: responder{view: view}, posts: posts}
}

// PostRouter registers the post routes on the given router.
func PostRouter(r chi.Router, handler *PostHandler) {
	r.Get("/", handler.adapt(handler.GetAllPosts))

	r.Group(func(r chi.Router) {
		r.Use(handler.requireAuth)
		r.Get("/add", handler.adapt(handler.GetCreatePost))
		r.Post("/add", handler.adapt(handler.PostCreatePost))
		r.Get("/update/{id}", handler.adapt(handler.GetUpdatePost))
		r.Post("/update/{id}", handler.adapt(handler.PostUpdatePost))
		r.Post("/delete/{id}", handler.adapt(handler.PostDeletePost))
	})

	r.Get("/{id}", handler.adapt(handler.GetPost))
}

func (h *PostHandler) GetAllPosts(w http.ResponseWriter, r *http.Request) Outcome {
	posts, err := h.posts.ListAll(r.Context())
	if err != nil {
		return Fail(err)
	}
	h.render(w, r, http.StatusOK, indexView, map[string]any{
		"title": indexTitle,
		"posts": posts,
	})
	return Handled()
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) Outcome {
	id, ok := validate.ParseID(chi.URLParam(r, "id"))
	if !ok {
		return NotFound()
	}
	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			return NotFound()
		}
		return Fail(err)
	}
	h.render(w, r, http.StatusOK, indexView, map[string]any{
		"title":    post.Title,
		"posts":    []types.Post{post},
		"fullPost": true,
	})
	return Handled()
}

func (h *PostHandler) GetCreatePost(w http.ResponseWriter, r *http.Request) Outcome {
	h.render(w, r, http.StatusOK, postFormView, map[string]any{"title": addPostTitle})
	return Handled()
}

func (h *PostHandler) PostCreatePost(w http.ResponseWriter, r *http.Request) Outcome {
	if errs := validate.Check(r.PostFormValue, validate.PostFields()); len(errs) > 0 {
		h.render(w, r, http.StatusBadRequest, postFormView, map[string]any{
			"title":            addPostTitle,
			"formData":         formData(r, "title", "body"),
			"validationErrors": errs,
		})
		return Handled()
	}

	actor := auth.UserFrom(r.Context())
	err := h.posts.Create(r.Context(), actor, r.PostFormValue("title"), r.PostFormValue("body"))
	if err != nil {
		if isNotFound(err) {
			return NotFound()
		}
		return Fail(err)
	}
	http.Redirect(w, r, "/posts", http.StatusSeeOther)
	return Handled()
}

func (h *PostHandler) GetUpdatePost(w http.ResponseWriter, r *http.Request) Outcome {
	id, ok := validate.ParseID(chi.URLParam(r, "id"))
	if !ok {
		return NotFound()
	}
	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			return NotFound()
		}
		return Fail(err)
	}
	// The edit form reveals no more than the post page, but an actor who
	// cannot mutate gets the same page a missing id would yield.
	if !auth.CanMutatePost(auth.UserFrom(r.Context()), post) {
		return NotFound()
	}

	h.render(w, r, http.StatusOK, postFormView, map[string]any{
		"title": updatePostTitle,
		"formData": map[string]string{
			"title": post.Title,
			"body":  post.Body,
		},
	})
	return Handled()
}

func (h *PostHandler) PostUpdatePost(w http.ResponseWriter, r *http.Request) Outcome {
	id, ok := validate.ParseID(chi.URLParam(r, "id"))
	if !ok {
		return NotFound()
	}
	if errs := validate.Check(r.PostFormValue, validate.PostFields()); len(errs) > 0 {
		h.render(w, r, http.StatusBadRequest, postFormView, map[string]any{
			"title":            updatePostTitle,
			"formData":         formData(r, "title", "body"),
			"validationErrors": errs,
		})
		return Handled()
	}

	actor := auth.UserFrom(r.Context())
	err := h.posts.Update(r.Context(), actor, id, r.PostFormValue("title"), r.PostFormValue("body"))
	if err != nil {
		if isNotFound(err) {
			return NotFound()
		}
		return Fail(err)
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusSeeOther)
	return Handled()
}

func (h *PostHandler) PostDeletePost(w http.ResponseWriter, r *http.Request) Outcome {
	id, ok := validate.ParseID(chi.URLParam(r, "id"))
	if !ok {
		return NotFound()
	}
	actor := auth.UserFrom(r.Context())
	if err := h.posts.Delete(r.Context(), actor, id); err != nil {
		if isNotFound(err) {
			return NotFound()
		}
		return Fail(err)
	}
	http.Redirect(w, r, "/posts", http.StatusSeeOther)
	return Handled()
}
