package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/members-club/webserver/types"
)

const (
	sessionsTable = "users_sessions"
	sidColumn     = "sid"
)

// sessionPayload is the JSON document stored in the sess column.
type sessionPayload struct {
	UserID int `json:"user_id"`
}

// SessionRepository persists sessions in the users_sessions table so they
// survive process restarts.
type SessionRepository struct {
	store *Store
}

func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Get resolves a session id. Expired sessions are removed on sight and
// reported as absent.
func (r *SessionRepository) Get(ctx context.Context, sid string) (types.Session, error) {
	row, err := r.store.ReadOne(ctx, sessionsTable, []Filter{{Column: sidColumn, Value: sid}})
	if err != nil {
		return types.Session{}, err
	}

	session := types.Session{ID: sid, ExpiresAt: row.Time("expire")}
	var payload sessionPayload
	if err := json.Unmarshal([]byte(row.String("sess")), &payload); err != nil {
		return types.Session{}, ErrNotFound
	}
	session.UserID = payload.UserID

	if time.Now().After(session.ExpiresAt) {
		_, _ = r.store.Delete(ctx, sessionsTable, []Filter{{Column: sidColumn, Value: sid}})
		return types.Session{}, ErrNotFound
	}
	return session, nil
}

// Create persists a new session record.
func (r *SessionRepository) Create(ctx context.Context, session types.Session) error {
	sess, err := json.Marshal(sessionPayload{UserID: session.UserID})
	if err != nil {
		return &StorageError{cause: err}
	}
	return r.store.Create(ctx, sessionsTable, []Assignment{
		{Column: sidColumn, Value: session.ID},
		{Column: "sess", Value: string(sess)},
		{Column: "expire", Value: session.ExpiresAt},
	})
}

// Touch pushes the expiry forward, implicitly renewing the session.
func (r *SessionRepository) Touch(ctx context.Context, sid string, expiresAt time.Time) error {
	_, err := r.store.Update(ctx, sessionsTable,
		[]Filter{{Column: sidColumn, Value: sid}},
		[]Assignment{{Column: "expire", Value: expiresAt}},
	)
	return err
}

// Delete destroys a session record.
func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	_, err := r.store.Delete(ctx, sessionsTable, []Filter{{Column: sidColumn, Value: sid}})
	return err
}
