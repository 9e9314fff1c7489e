package store

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestBuildInsert(t *testing.T) {
	query, args := BuildInsert("users", []Assignment{
		{Column: "fullname", Value: "Bruce Willis"},
		{Column: "username", Value: "batman"},
		{Column: "password", Value: "hash"},
	})

	want := "INSERT INTO users (fullname, username, password) VALUES ($1, $2, $3)"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{"Bruce Willis", "batman", "hash"}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildSelect(t *testing.T) {
	tests := []struct {
		name    string
		filters []Filter
		opts    SelectOptions
		want    string
		args    []any
	}{
		{
			name: "no filters selects all",
			want: "SELECT * FROM posts",
		},
		{
			name:    "filters joined with AND",
			filters: []Filter{{Column: "user_id", Value: 7}, {Column: "post_id", Value: 3}},
			want:    "SELECT * FROM posts WHERE user_id = $1 AND post_id = $2",
			args:    []any{7, 3},
		},
		{
			name: "order and limit",
			opts: SelectOptions{OrderBy: "updated_at", Descending: true, Limit: 5},
			want: "SELECT * FROM posts ORDER BY updated_at DESC LIMIT 5",
		},
		{
			name:    "filter with ascending order",
			filters: []Filter{{Column: "user_id", Value: 1}},
			opts:    SelectOptions{OrderBy: "post_id"},
			want:    "SELECT * FROM posts WHERE user_id = $1 ORDER BY post_id",
			args:    []any{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := BuildSelect("posts", tt.filters, tt.opts)
			if query != tt.want {
				t.Errorf("query = %q, want %q", query, tt.want)
			}
			if len(tt.args) == 0 && len(args) != 0 {
				t.Errorf("args = %v, want none", args)
			}
			if len(tt.args) > 0 && !reflect.DeepEqual(args, tt.args) {
				t.Errorf("args = %v, want %v", args, tt.args)
			}
		})
	}
}

func TestBuildUpdateParameterIndices(t *testing.T) {
	query, args := BuildUpdate("posts",
		[]Filter{{Column: "post_id", Value: 1}, {Column: "user_id", Value: 2}},
		[]Assignment{
			{Column: "post_title", Value: "a"},
			{Column: "post_body", Value: "b"},
			{Column: "updated_at", Value: "c"},
		},
	)

	want := "UPDATE posts SET post_title = $3, post_body = $4, updated_at = $5 WHERE post_id = $1 AND user_id = $2"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	// Filters bind first, assignments continue the counter.
	if !reflect.DeepEqual(args, []any{1, 2, "a", "b", "c"}) {
		t.Errorf("args = %v", args)
	}

	// Every placeholder index must be distinct.
	seen := map[string]bool{}
	for i := 1; i <= len(args); i++ {
		ph := fmt.Sprintf("$%d", i)
		if !strings.Contains(query, ph) {
			t.Errorf("query is missing placeholder %s", ph)
		}
		if seen[ph] {
			t.Errorf("placeholder %s bound twice", ph)
		}
		seen[ph] = true
	}
}

func TestBuildDelete(t *testing.T) {
	query, args := BuildDelete("users_sessions", []Filter{{Column: "sid", Value: "abc"}})
	want := "DELETE FROM users_sessions WHERE sid = $1"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{"abc"}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildTrimKeepsNewestRows(t *testing.T) {
	query := BuildTrim("posts", "post_id")
	want := "DELETE FROM posts WHERE post_id NOT IN (SELECT post_id FROM posts ORDER BY post_id DESC LIMIT $1)"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
}
