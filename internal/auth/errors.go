package auth

import "errors"

// Login failure messages deliberately differ: an unknown username is named
// as such, while a wrong password gets the combined message. This mirrors
// the product's chosen behavior even though mutation routes elsewhere
// collapse into a uniform not-found.
var (
	ErrUnknownUser    = errors.New("Incorrect username")
	ErrBadCredentials = errors.New("Incorrect username or password.")
)

// SessionError reports a failure to establish or destroy a session. It is
// a retryable server error, distinct from an authentication failure.
type SessionError struct {
	cause error
}

func (e *SessionError) Error() string {
	return "session failure: " + e.cause.Error()
}

func (e *SessionError) Unwrap() error {
	return e.cause
}
