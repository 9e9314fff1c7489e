package handlers

// Outcome is the explicit result of a handler step, replacing
// error-as-control-flow: Handled means the response was written, NotFound
// asks the dispatcher for the uniform not-found page, and Fail carries a
// server error to classify.
type Outcome struct {
	kind outcomeKind
	err  error
}

type outcomeKind int

const (
	outcomeHandled outcomeKind = iota
	outcomeNotFound
	outcomeError
)

// Handled signals the response has been written.
func Handled() Outcome {
	return Outcome{kind: outcomeHandled}
}

// NotFound signals the uniform not-found fallthrough. Unauthorized
// mutations deliberately take this path too.
func NotFound() Outcome {
	return Outcome{kind: outcomeNotFound}
}

// Fail signals a server error for the dispatcher to classify and render.
func Fail(err error) Outcome {
	return Outcome{kind: outcomeError, err: err}
}
