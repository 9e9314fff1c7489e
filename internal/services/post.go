package services

import (
	"context"
	"time"

	"github.com/members-club/webserver/internal/auth"
	"github.com/members-club/webserver/internal/store"
	"github.com/members-club/webserver/types"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	GetByID(ctx context.Context, id int) (types.Post, error)
	ListWithAuthors(ctx context.Context, filters []store.Filter, limit int) ([]types.Post, error)
	ListByAuthor(ctx context.Context, userID int) ([]types.Post, error)
	Create(ctx context.Context, post types.Post) error
	Update(ctx context.Context, id int, assigns []store.Assignment) error
	Delete(ctx context.Context, id int) error
}

// PostService encapsulates post use-cases, including the ownership checks
// on mutation. A failed check comes back as store.ErrNotFound so an
// unauthorized caller learns nothing a stranger would not.
type PostService struct {
	repo PostRepository
}

func NewPostService(repo PostRepository) *PostService {
	return &PostService{repo: repo}
}

// ListAll returns every post with its author, most recently updated first.
func (s *PostService) ListAll(ctx context.Context) ([]types.Post, error) {
	return s.repo.ListWithAuthors(ctx, nil, 0)
}

func (s *PostService) GetByID(ctx context.Context, id int) (types.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PostService) ListByAuthor(ctx context.Context, userID int) ([]types.Post, error) {
	return s.repo.ListByAuthor(ctx, userID)
}

func (s *PostService) Create(ctx context.Context, actor *types.User, title, body string) error {
	if actor == nil {
		return store.ErrNotFound
	}
	return s.repo.Create(ctx, types.Post{UserID: actor.ID, Title: title, Body: body})
}

// Update rewrites a post's title and body. The updated timestamp moves
// only when the content actually changed.
func (s *PostService) Update(ctx context.Context, actor *types.User, id int, title, body string) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanMutatePost(actor, post) {
		return store.ErrNotFound
	}
	if post.Title == title && post.Body == body {
		return nil
	}
	return s.repo.Update(ctx, id, []store.Assignment{
		{Column: "post_title", Value: title},
		{Column: "post_body", Value: body},
		{Column: "updated_at", Value: time.Now()},
	})
}

func (s *PostService) Delete(ctx context.Context, actor *types.User, id int) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanMutatePost(actor, post) {
		return store.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
