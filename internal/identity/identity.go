package identity

import "context"

// Identity is the result of a login check.
type Identity struct {
	LoggedIn bool
	UserID   string
}

// Checker answers whether the current caller is logged in.
type Checker interface {
	CheckLogin(ctx context.Context) (Identity, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) (Identity, error)

func (f CheckerFunc) CheckLogin(ctx context.Context) (Identity, error) {
	return f(ctx)
}

// Static always reports the same user. An empty UserID is anonymous.
type Static struct {
	UserID string
}

func (s Static) CheckLogin(context.Context) (Identity, error) {
	return Identity{LoggedIn: s.UserID != "", UserID: s.UserID}, nil
}

// Anonymous never reports a logged in caller.
var Anonymous Checker = Static{}

type tokenKey struct{}

// WithToken stores the caller's bearer token on ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token stored by WithToken.
func TokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey{}).(string); ok {
		return v
	}
	return ""
}
