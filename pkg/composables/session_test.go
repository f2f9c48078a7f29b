package composables

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

func sessionWithRoles(roles ...sigeledapi.Rol) *Session {
	return &Session{
		ID:      "s1",
		Token:   "tok",
		Usuario: sigeledapi.Usuario{ID: 1, Roles: roles},
	}
}

func TestSession_TieneRol_MatchesCodeAndName(t *testing.T) {
	s := sessionWithRoles(sigeledapi.Rol{Codigo: "RRHH", Nombre: "Recursos Humanos"})

	assert.True(t, s.TieneRol("rrhh"), "code match is case-insensitive")
	assert.True(t, s.TieneRol("recursos humanos"), "name match is case-insensitive")
	assert.False(t, s.TieneRol("ADMIN"))
	assert.True(t, s.TieneRol("ADMIN", "RRHH"), "any of the allow-list suffices")
}

func TestSession_TieneRol_EmptyAllowListAdmitsAll(t *testing.T) {
	s := sessionWithRoles()
	assert.True(t, s.TieneRol())
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(2*time.Minute)))
}

func TestSessionTokenSource(t *testing.T) {
	ctx := context.Background()

	token, err := SessionTokenSource{}.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "no session resolves to an unauthenticated request")

	ctx = WithSession(ctx, &Session{Token: "backend-token"})
	token, err = SessionTokenSource{}.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", token)
}

func TestUseSession_Missing(t *testing.T) {
	_, ok := UseSession(context.Background())
	assert.False(t, ok)
}
