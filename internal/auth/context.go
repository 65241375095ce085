package auth

import "context"

type ctxKey string

const userKey ctxKey = "userClaims"

// Claims is the verified token payload. Role and project membership are
// re-resolved from the directory on every request; the claims only identify
// the session.
type Claims struct {
	Subject string
	Role    string
	JWTID   string
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, userKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(userKey).(Claims); ok {
		return v
	}
	return Claims{}
}

func Subject(ctx context.Context) string {
	return FromContext(ctx).Subject
}
