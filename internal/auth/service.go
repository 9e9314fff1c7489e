package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/members-club/webserver/config"
	"github.com/members-club/webserver/internal/store"
	"github.com/members-club/webserver/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// UserSource resolves users for credential checks and session restore.
type UserSource interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
}

// SessionStore persists sessions across process restarts.
type SessionStore interface {
	Get(ctx context.Context, sid string) (types.Session, error)
	Create(ctx context.Context, session types.Session) error
	Touch(ctx context.Context, sid string, expiresAt time.Time) error
	Delete(ctx context.Context, sid string) error
}

// Service owns the authentication session flow. It is constructed once at
// startup; nothing here is ambient global state.
type Service struct {
	users    UserSource
	sessions SessionStore
	secret   []byte
	secure   bool
	sameSite http.SameSite
	ttl      time.Duration
}

func NewService(users UserSource, sessions SessionStore, cfg config.SessionConfig) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		secret:   []byte(cfg.Secret),
		secure:   cfg.CookieSecure,
		sameSite: parseSameSite(cfg.SameSite),
		ttl:      cookieMaxAge,
	}
}

// Login checks the credentials against the stored hash. The lookup is a
// case-sensitive exact match.
func (s *Service) Login(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrUnknownUser
		}
		return types.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrBadCredentials
	}
	user.PasswordHash = ""
	return user, nil
}

// Establish persists a fresh session for the user and returns its id.
func (s *Service) Establish(ctx context.Context, userID int) (string, error) {
	session := types.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", &SessionError{cause: err}
	}
	return session.ID, nil
}

// Restore resolves a session id back to its user, renewing the expiry on
// the way. Any miss fails closed: the request proceeds unauthenticated.
func (s *Service) Restore(ctx context.Context, sid string) *types.User {
	session, err := s.sessions.Get(ctx, sid)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error().Err(err).Msg("session lookup failed")
		}
		return nil
	}
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error().Err(err).Int("user_id", session.UserID).Msg("session user lookup failed")
		}
		return nil
	}
	if err := s.sessions.Touch(ctx, sid, time.Now().Add(s.ttl)); err != nil {
		log.Warn().Err(err).Msg("session renewal failed")
	}
	user.PasswordHash = ""
	return &user
}

// Logout destroys the session. Failure is a retryable server error.
func (s *Service) Logout(ctx context.Context, sid string) error {
	if err := s.sessions.Delete(ctx, sid); err != nil {
		return &SessionError{cause: err}
	}
	return nil
}

// SetCookie writes the signed session cookie.
func (s *Service) SetCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signSessionID(sid, s.secret),
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: s.sameSite,
	})
}

// ClearCookie expires the session cookie.
func (s *Service) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: s.sameSite,
	})
}

// SessionID recovers the verified session id from the request cookie.
func (s *Service) SessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return verifySessionID(cookie.Value, s.secret)
}

// Middleware restores the acting user into the request context on every
// request carrying a valid session cookie.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sid, ok := s.SessionID(r); ok {
			if user := s.Restore(r.Context(), sid); user != nil {
				r = r.WithContext(withUser(r.Context(), user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

type contextKey string

const contextUserKey contextKey = "user"

func withUser(ctx context.Context, user *types.User) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

// UserFrom returns the acting user, or nil for anonymous requests.
func UserFrom(ctx context.Context) *types.User {
	user, _ := ctx.Value(contextUserKey).(*types.User)
	return user
}
