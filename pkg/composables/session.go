package composables

import (
	"context"
	"strings"
	"time"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/constants"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// Session is an authenticated gateway session: the backend bearer token plus
// the resolved user snapshot. The token never leaves the gateway.
type Session struct {
	ID        string
	Token     string
	Usuario   sigeledapi.Usuario
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// TieneRol reports whether the session's user holds any of the given roles,
// matched case-insensitively against role code or name. An empty allow-list
// admits every authenticated user.
func (s *Session) TieneRol(roles ...string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, wanted := range roles {
		for _, rol := range s.Usuario.Roles {
			if strings.EqualFold(rol.Codigo, wanted) || strings.EqualFold(rol.Nombre, wanted) {
				return true
			}
		}
	}
	return false
}

// WithSession returns a new context carrying the resolved session.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, session)
}

// UseSession returns the session from the context.
// If no session was resolved, the second return value will be false.
func UseSession(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(constants.SessionKey).(*Session)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}

// Token implements sigeledapi.TokenSource over the context session, so the
// backend client forwards the caller's own credentials.
type SessionTokenSource struct{}

func (SessionTokenSource) Token(ctx context.Context) (string, error) {
	session, ok := UseSession(ctx)
	if !ok {
		return "", nil
	}
	return session.Token, nil
}
