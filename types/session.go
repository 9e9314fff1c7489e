package types

import "time"

// Session maps an opaque server-side session id to the authenticated user.
// It is persisted in the users_sessions table and expires 24h after its
// last write.
type Session struct {
	ID        string
	UserID    int
	ExpiresAt time.Time
}
