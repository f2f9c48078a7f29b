package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/configuration"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/httpapi"
)

// SessionResolver looks up an established gateway session by its id.
type SessionResolver interface {
	Resolve(ctx context.Context, sid string) (*composables.Session, bool)
}

// Authorize resolves the caller's session from the sid cookie or a bearer
// header and stores it in the context. Resolution failures fall through
// silently; RequireAuthenticated draws the line.
func Authorize(resolver SessionResolver) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := sessionID(r, conf.SidCookieKey)
			if sid == "" {
				next.ServeHTTP(w, r)
				return
			}
			session, ok := resolver.Resolve(r.Context(), sid)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithSession(r.Context(), session)))
		})
	}
}

// RequireAuthenticated rejects requests without a resolved session.
func RequireAuthenticated() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := composables.UseSession(r.Context()); !ok {
				_ = httpapi.WriteUnauthenticated(w, r.URL.RequestURI())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles gates a subtree behind an allow-list of role codes or names,
// matched case-insensitively. An empty allow-list admits any authenticated
// user.
func RequireRoles(roles ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := composables.UseSession(r.Context())
			if !ok {
				_ = httpapi.WriteUnauthenticated(w, r.URL.RequestURI())
				return
			}
			if !session.TieneRol(roles...) {
				_ = httpapi.WriteForbidden(w, r.URL.RequestURI())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionID(r *http.Request, cookieKey string) string {
	if cookie, err := r.Cookie(cookieKey); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
