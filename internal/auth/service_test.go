package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/members-club/webserver/config"
	"github.com/members-club/webserver/internal/store"
	"github.com/members-club/webserver/types"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	users map[int]types.User
}

func (m *memUsers) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := m.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (types.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

type memSessions struct {
	sessions map[string]types.Session
}

func (m *memSessions) Get(_ context.Context, sid string) (types.Session, error) {
	session, ok := m.sessions[sid]
	if !ok || time.Now().After(session.ExpiresAt) {
		return types.Session{}, store.ErrNotFound
	}
	return session, nil
}

func (m *memSessions) Create(_ context.Context, session types.Session) error {
	m.sessions[session.ID] = session
	return nil
}

func (m *memSessions) Touch(_ context.Context, sid string, expiresAt time.Time) error {
	if session, ok := m.sessions[sid]; ok {
		session.ExpiresAt = expiresAt
		m.sessions[sid] = session
	}
	return nil
}

func (m *memSessions) Delete(_ context.Context, sid string) error {
	delete(m.sessions, sid)
	return nil
}

func newTestService(t *testing.T) (*Service, *memUsers, *memSessions) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	users := &memUsers{users: map[int]types.User{
		1: {ID: 1, Username: "batman", FullName: "Bruce Willis", PasswordHash: string(hash)},
	}}
	sessions := &memSessions{sessions: map[string]types.Session{}}
	svc := NewService(users, sessions, config.SessionConfig{Secret: "keyboard cat"})
	return svc, users, sessions
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "joker", "whatever")
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("got %v, want ErrUnknownUser", err)
	}
	if err.Error() != "Incorrect username" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "batman", "wrong")
	if !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("got %v, want ErrBadCredentials", err)
	}
	if err.Error() != "Incorrect username or password." {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestLoginIsCaseSensitive(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.Login(context.Background(), "Batman", "correct horse"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("got %v, want ErrUnknownUser for a case-mismatched username", err)
	}
}

func TestLoginSuccessStripsHash(t *testing.T) {
	svc, _, _ := newTestService(t)

	user, err := svc.Login(context.Background(), "batman", "correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != 1 {
		t.Errorf("user.ID = %d", user.ID)
	}
	if user.PasswordHash != "" {
		t.Error("password hash must not leave the auth boundary")
	}
}

func TestEstablishRestoreLogout(t *testing.T) {
	svc, _, sessions := newTestService(t)
	ctx := context.Background()

	sid, err := svc.Establish(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}

	before := sessions.sessions[sid].ExpiresAt

	user := svc.Restore(ctx, sid)
	if user == nil || user.ID != 1 {
		t.Fatalf("Restore = %v, want user 1", user)
	}
	if user.PasswordHash != "" {
		t.Error("restored user must not carry the password hash")
	}
	if !sessions.sessions[sid].ExpiresAt.After(before.Add(-time.Second)) {
		t.Error("restore must renew the session expiry")
	}

	if err := svc.Logout(ctx, sid); err != nil {
		t.Fatal(err)
	}
	if svc.Restore(ctx, sid) != nil {
		t.Error("a destroyed session must not restore")
	}
}

func TestRestoreFailsClosedWhenUserGone(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	sid, err := svc.Establish(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}

	delete(users.users, 1)
	if svc.Restore(ctx, sid) != nil {
		t.Error("a session whose user is gone must restore to anonymous")
	}
}

func TestRestoreFailsClosedOnUnknownSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	if svc.Restore(context.Background(), "no-such-session") != nil {
		t.Error("unknown session id must restore to anonymous")
	}
}
