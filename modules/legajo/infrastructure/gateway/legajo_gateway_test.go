package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/fetch"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type backendEspia struct {
	*httptest.Server
	tokens []string
}

func newBackendEspia(t *testing.T, body string) *backendEspia {
	t.Helper()
	espia := &backendEspia{}
	espia.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		espia.tokens = append(espia.tokens, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(espia.Close)
	return espia
}

func clienteDePrueba(t *testing.T, baseURL string) *sigeledapi.Client {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	client, err := sigeledapi.New(sigeledapi.Config{
		BaseURL: baseURL,
		Tokens:  composables.SessionTokenSource{},
		Logger:  log,
	})
	require.NoError(t, err)
	return client
}

func cacheDePrueba() *fetch.Cache {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return fetch.NewCache(fetch.NewMemoryStore(), time.Minute, log)
}

func ctxConUsuario(id int, token string) context.Context {
	return composables.WithSession(context.Background(), &composables.Session{
		ID:        "sid-" + token,
		Token:     token,
		Usuario:   sigeledapi.Usuario{ID: id},
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

func TestDocumentosGatewayCacheaPorUsuario(t *testing.T) {
	backend := newBackendEspia(t, `[{"id_documento": 1, "tipo_documento": "DNI"}]`)
	g := NewDocumentosGateway(clienteDePrueba(t, backend.URL), cacheDePrueba())

	docs, err := g.PorPersona(ctxConUsuario(1, "token-user-1"), 5)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	// same user hits the cache
	_, err = g.PorPersona(ctxConUsuario(1, "token-user-1"), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer token-user-1"}, backend.tokens)

	// another user must reach the backend with their own credentials
	_, err = g.PorPersona(ctxConUsuario(2, "token-user-2"), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer token-user-1", "Bearer token-user-2"}, backend.tokens)
}

func TestLegajoGatewayCacheaPorUsuario(t *testing.T) {
	backend := newBackendEspia(t, `{"id_persona": 5, "okPersona": true}`)
	g := NewLegajoGateway(clienteDePrueba(t, backend.URL), cacheDePrueba())

	estado, err := g.Estado(ctxConUsuario(1, "token-user-1"), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, estado.PersonaID)

	_, err = g.Estado(ctxConUsuario(2, "token-user-2"), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer token-user-1", "Bearer token-user-2"}, backend.tokens)
}
