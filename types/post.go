package types

import "time"

// Post is a member's text post. Author is only populated on reads that join
// the owning user row.
type Post struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author string `json:"author,omitempty"`
}
