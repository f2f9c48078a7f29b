package sigeledapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{
		BaseURL: srv.URL,
		Tokens:  StaticToken(token),
	})
	require.NoError(t, err)
	return client
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}), "tok-123")

	_, err := client.Contratos.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_Login_NoBearerWithEmptyToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"backend-token","user":{"id_usuario":7,"email":"a@b.c","roles":["RRHH"]}}`))
	}), "")

	resp, err := client.Auth.Login(context.Background(), Credenciales{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "backend-token", resp.Token)
	assert.Equal(t, 7, resp.Usuario.ID)
	require.Len(t, resp.Usuario.Roles, 1)
	assert.Equal(t, "RRHH", resp.Usuario.Roles[0].Codigo)
}

func TestClient_StructuredErrorPayload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"el contrato tiene items vigentes","code":"CONTRATO_VIGENTE"}`))
	}), "tok")

	err := client.Contratos.Delete(context.Background(), 42)
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "el contrato tiene items vigentes", apiErr.Message)
	assert.Equal(t, "CONTRATO_VIGENTE", apiErr.Code)
}

func TestClient_PlainTextError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}), "tok")

	_, err := client.Dashboard.AdminStats(context.Background())
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestClient_Export_FilenameFromDisposition(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/contratos/15/export", r.URL.Path)
		require.Equal(t, "pdf", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="contrato-lopez.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	}), "tok")

	descarga, err := client.Contratos.Export(context.Background(), 15, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "contrato-lopez.pdf", descarga.Nombre)
	assert.Equal(t, "application/pdf", descarga.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), descarga.Datos)
}

func TestClient_Export_FallbackFilename(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// headers only, so no Content-Type gets sniffed from a body
		w.WriteHeader(http.StatusOK)
	}), "tok")

	descarga, err := client.Contratos.Export(context.Background(), 9, "word")
	require.NoError(t, err)
	assert.Equal(t, "contrato_9.docx", descarga.Nombre)
	assert.Equal(t, "application/octet-stream", descarga.ContentType)
	assert.Empty(t, descarga.Datos)
}

func TestClient_RejectsBadBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "localhost:8080"})
	require.Error(t, err)
}

func TestNewAPIErrorTruncaEnLimiteDeRuna(t *testing.T) {
	// 255 bytes of padding put the two-byte "á" astride the 256-byte limit
	body := strings.Repeat("x", 255) + "áéí"

	apiErr := newAPIError(http.StatusBadGateway, []byte(body))
	assert.True(t, utf8.ValidString(apiErr.Message))
	assert.Equal(t, strings.Repeat("x", 255), apiErr.Message)

	corto := newAPIError(http.StatusBadGateway, []byte("falló la validación"))
	assert.Equal(t, "falló la validación", corto.Message)
}

func TestFilenameFromDisposition(t *testing.T) {
	assert.Equal(t, "a.pdf", filenameFromDisposition(`attachment; filename="a.pdf"`))
	assert.Equal(t, "", filenameFromDisposition(""))
	assert.Equal(t, "", filenameFromDisposition("attachment"))
	// Path traversal in backend-supplied names is stripped down to the base.
	assert.Equal(t, "evil.pdf", filenameFromDisposition(`attachment; filename="../../evil.pdf"`))
}
