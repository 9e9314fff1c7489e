package store

import (
	"context"

	"github.com/members-club/webserver/types"
)

const (
	postsTable   = "posts"
	postIDColumn = "post_id"

	// Joined read for post listings; the join condition keeps user_id
	// identical on both sides.
	postsWithAuthors = "users JOIN posts ON users.user_id = posts.user_id"

	updatedAtColumn = "updated_at"
)

// PostRepository handles persistence for posts on top of the generic store.
type PostRepository struct {
	store   *Store
	ceiling int
}

// NewPostRepository wires the repository with its retention ceiling.
func NewPostRepository(store *Store, ceiling int) *PostRepository {
	return &PostRepository{store: store, ceiling: ceiling}
}

// GetByID returns one post joined with its author.
func (r *PostRepository) GetByID(ctx context.Context, id int) (types.Post, error) {
	row, err := r.store.ReadOne(ctx, postsWithAuthors, []Filter{{Column: "posts.post_id", Value: id}})
	if err != nil {
		return types.Post{}, err
	}
	return postFromRow(row), nil
}

// ListWithAuthors returns posts joined with their owning users, most
// recently updated first. Filters are optional.
func (r *PostRepository) ListWithAuthors(ctx context.Context, filters []Filter, limit int) ([]types.Post, error) {
	opts := SelectOptions{OrderBy: updatedAtColumn, Descending: true, Limit: limit}
	rows, err := r.store.ReadMany(ctx, postsWithAuthors, filters, opts)
	if err != nil {
		return nil, err
	}
	posts := make([]types.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, postFromRow(row))
	}
	return posts, nil
}

// ListByAuthor returns one member's posts, most recently updated first.
func (r *PostRepository) ListByAuthor(ctx context.Context, userID int) ([]types.Post, error) {
	return r.ListWithAuthors(ctx, []Filter{{Column: "users.user_id", Value: userID}}, 0)
}

// Create inserts the post and then trims the table to its ceiling.
func (r *PostRepository) Create(ctx context.Context, post types.Post) error {
	err := r.store.Create(ctx, postsTable, []Assignment{
		{Column: "user_id", Value: post.UserID},
		{Column: "post_title", Value: post.Title},
		{Column: "post_body", Value: post.Body},
	})
	if err != nil {
		return err
	}
	r.store.TrimToLimit(ctx, postsTable, postIDColumn, r.ceiling)
	return nil
}

// Update applies the given assignments to one post.
func (r *PostRepository) Update(ctx context.Context, id int, assigns []Assignment) error {
	affected, err := r.store.Update(ctx, postsTable, []Filter{{Column: postIDColumn, Value: id}}, assigns)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	affected, err := r.store.Delete(ctx, postsTable, []Filter{{Column: postIDColumn, Value: id}})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func postFromRow(row Row) types.Post {
	return types.Post{
		ID:        row.Int(postIDColumn),
		UserID:    row.Int("user_id"),
		Title:     row.String("post_title"),
		Body:      row.String("post_body"),
		CreatedAt: row.Time("created_at"),
		UpdatedAt: row.Time(updatedAtColumn),
		Author:    row.String("username"),
	}
}
