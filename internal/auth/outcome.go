package auth

import "github.com/prateek4576/mytodoapp/internal/user"

// Rejection reasons rendered back to the login form. The two are
// deliberately distinct so the form can tell an unknown account apart
// from a bad password.
const (
	ReasonUnregisteredEmail = "unregistered email"
	ReasonIncorrectPassword = "incorrect password"
)

// OutcomeKind tags the result of a strategy invocation.
type OutcomeKind int

const (
	// KindSuccess carries an authenticated principal.
	KindSuccess OutcomeKind = iota
	// KindRejected is an expected authentication failure, safe to render.
	KindRejected
	// KindError is an unexpected failure (store unreachable, provider
	// error) and must reach the generic failure handler.
	KindError
)

// Outcome is the tagged result of a strategy invocation. It is consumed
// synchronously by the route layer and never persisted.
type Outcome struct {
	Kind      OutcomeKind
	Principal *user.User
	Reason    string
	Err       error
}

// Success returns an Outcome carrying the authenticated principal.
func Success(p *user.User) Outcome {
	return Outcome{Kind: KindSuccess, Principal: p}
}

// Reject returns an expected-failure Outcome with a renderable reason.
func Reject(reason string) Outcome {
	return Outcome{Kind: KindRejected, Reason: reason}
}

// Fail returns an unexpected-failure Outcome wrapping the cause.
func Fail(err error) Outcome {
	return Outcome{Kind: KindError, Err: err}
}
