package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/members-club/webserver/internal/store"
	"github.com/members-club/webserver/types"
)

type memPostRepo struct {
	posts   map[int]types.Post
	nextID  int
	updates map[int][]store.Assignment
}

func newMemPostRepo(posts ...types.Post) *memPostRepo {
	repo := &memPostRepo{
		posts:   map[int]types.Post{},
		nextID:  1,
		updates: map[int][]store.Assignment{},
	}
	for _, post := range posts {
		repo.posts[post.ID] = post
		if post.ID >= repo.nextID {
			repo.nextID = post.ID + 1
		}
	}
	return repo
}

func (m *memPostRepo) GetByID(_ context.Context, id int) (types.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return types.Post{}, store.ErrNotFound
	}
	return post, nil
}

func (m *memPostRepo) ListWithAuthors(_ context.Context, filters []store.Filter, limit int) ([]types.Post, error) {
	posts := make([]types.Post, 0, len(m.posts))
	for _, post := range m.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].UpdatedAt.After(posts[j].UpdatedAt)
	})
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (m *memPostRepo) ListByAuthor(_ context.Context, userID int) ([]types.Post, error) {
	var posts []types.Post
	for _, post := range m.posts {
		if post.UserID == userID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (m *memPostRepo) Create(_ context.Context, post types.Post) error {
	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = post
	return nil
}

func (m *memPostRepo) Update(_ context.Context, id int, assigns []store.Assignment) error {
	if _, ok := m.posts[id]; !ok {
		return store.ErrNotFound
	}
	m.updates[id] = assigns
	return nil
}

func (m *memPostRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

var (
	owner    = &types.User{ID: 10, Username: "batman"}
	stranger = &types.User{ID: 11, Username: "joker"}
	admin    = &types.User{ID: 12, Username: "alfred", IsAdmin: true}
)

func seedPost() types.Post {
	return types.Post{
		ID:        1,
		UserID:    owner.ID,
		Title:     "My last fight",
		Body:      "Blah blah blah",
		UpdatedAt: time.Now().Add(-time.Hour),
	}
}

func TestUpdateByStrangerLooksLikeMissingPost(t *testing.T) {
	repo := newMemPostRepo(seedPost())
	svc := NewPostService(repo)
	ctx := context.Background()

	err := svc.Update(ctx, stranger, 1, "new title", "new body")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	// Identical outcome to a post that does not exist at all.
	missingErr := svc.Update(ctx, stranger, 999, "new title", "new body")
	if !errors.Is(missingErr, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", missingErr)
	}
	if len(repo.updates) != 0 {
		t.Error("unauthorized update must not touch storage")
	}
}

func TestUpdateByAnonymousLooksLikeMissingPost(t *testing.T) {
	repo := newMemPostRepo(seedPost())
	svc := NewPostService(repo)

	if err := svc.Update(context.Background(), nil, 1, "t t t", "body"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateByOwnerAndAdmin(t *testing.T) {
	repo := newMemPostRepo(seedPost())
	svc := NewPostService(repo)
	ctx := context.Background()

	if err := svc.Update(ctx, owner, 1, "new title", "new body"); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if err := svc.Update(ctx, admin, 1, "admin title", "admin body"); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestUpdateRefreshesTimestampOnlyOnChange(t *testing.T) {
	post := seedPost()
	repo := newMemPostRepo(post)
	svc := NewPostService(repo)
	ctx := context.Background()

	// Same title and body: a no-op, updated_at untouched.
	if err := svc.Update(ctx, owner, 1, post.Title, post.Body); err != nil {
		t.Fatal(err)
	}
	if len(repo.updates) != 0 {
		t.Fatal("unchanged content must not issue an update")
	}

	if err := svc.Update(ctx, owner, 1, post.Title, "fresh body"); err != nil {
		t.Fatal(err)
	}
	assigns := repo.updates[1]
	if len(assigns) != 3 {
		t.Fatalf("got %d assignments, want title, body and updated_at", len(assigns))
	}
	columns := map[string]bool{}
	for _, a := range assigns {
		columns[a.Column] = true
	}
	for _, column := range []string{"post_title", "post_body", "updated_at"} {
		if !columns[column] {
			t.Errorf("missing assignment for %s", column)
		}
	}
}

func TestDeleteByStrangerLooksLikeMissingPost(t *testing.T) {
	repo := newMemPostRepo(seedPost())
	svc := NewPostService(repo)
	ctx := context.Background()

	if err := svc.Delete(ctx, stranger, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if _, ok := repo.posts[1]; !ok {
		t.Fatal("post must survive an unauthorized delete")
	}

	if err := svc.Delete(ctx, admin, 1); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if _, ok := repo.posts[1]; ok {
		t.Error("admin delete must remove the post")
	}
}

func TestCreateRequiresActor(t *testing.T) {
	repo := newMemPostRepo()
	svc := NewPostService(repo)

	if err := svc.Create(context.Background(), nil, "title", "body"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := svc.Create(context.Background(), owner, "title", "body"); err != nil {
		t.Fatal(err)
	}
	if len(repo.posts) != 1 {
		t.Error("authenticated create must persist the post")
	}
}
