package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type resolverStub struct {
	sessions map[string]*composables.Session
}

func (r *resolverStub) Resolve(ctx context.Context, sid string) (*composables.Session, bool) {
	sess, ok := r.sessions[sid]
	return sess, ok
}

func sessionConRoles(codigos ...string) *composables.Session {
	roles := make(sigeledapi.Roles, 0, len(codigos))
	for _, c := range codigos {
		roles = append(roles, sigeledapi.Rol{Codigo: c})
	}
	return &composables.Session{
		ID:        "sid-1",
		Token:     "tok",
		Usuario:   sigeledapi.Usuario{ID: 1, Roles: roles},
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func newGuardedRouter(resolver SessionResolver, roles ...string) *mux.Router {
	r := mux.NewRouter()
	r.Use(Authorize(resolver))
	guarded := r.PathPrefix("/privado").Subrouter()
	guarded.Use(RequireRoles(roles...))
	guarded.HandleFunc("", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return r
}

func TestRequireRolesSinSesion(t *testing.T) {
	router := newGuardedRouter(&resolverStub{}, "admin")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/privado", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_AUTENTICADO")
}

func TestRequireRolesSinRol(t *testing.T) {
	resolver := &resolverStub{sessions: map[string]*composables.Session{
		"sid-1": sessionConRoles("docente"),
	}}
	router := newGuardedRouter(resolver, "admin", "rrhh")

	req := httptest.NewRequest(http.MethodGet, "/privado", nil)
	req.Header.Set("Authorization", "Bearer sid-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ACCESO_DENEGADO")
}

func TestRequireRolesConRol(t *testing.T) {
	resolver := &resolverStub{sessions: map[string]*composables.Session{
		"sid-1": sessionConRoles("RRHH"),
	}}
	// matching is case-insensitive on either code or name
	router := newGuardedRouter(resolver, "admin", "rrhh")

	req := httptest.NewRequest(http.MethodGet, "/privado", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesListaVaciaAdmiteAutenticados(t *testing.T) {
	resolver := &resolverStub{sessions: map[string]*composables.Session{
		"sid-1": sessionConRoles("docente"),
	}}
	router := newGuardedRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/privado", nil)
	req.Header.Set("Authorization", "Bearer sid-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthenticated(t *testing.T) {
	resolver := &resolverStub{sessions: map[string]*composables.Session{
		"sid-1": sessionConRoles(),
	}}
	r := mux.NewRouter()
	r.Use(Authorize(resolver))
	privado := r.PathPrefix("/mios").Subrouter()
	privado.Use(RequireAuthenticated())
	privado.HandleFunc("", func(w http.ResponseWriter, req *http.Request) {
		_, ok := composables.UseSession(req.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mios", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/mios", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-1"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorizeIgnoraSidDesconocido(t *testing.T) {
	router := newGuardedRouter(&resolverStub{}, "admin")

	req := httptest.NewRequest(http.MethodGet, "/privado", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-viejo"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
