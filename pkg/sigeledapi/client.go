package sigeledapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

// TokenSource supplies the bearer token attached to every outgoing request.
// An empty token means the request goes out unauthenticated (login).
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token, mostly for CLI use and tests.
type StaticToken string

func (s StaticToken) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Tokens     TokenSource
	Logger     *logrus.Logger
	HTTPClient *http.Client
}

// Client is the single configured request client for the SIGELED backend.
// Resource groups hang off it, one per backend namespace.
type Client struct {
	base   *url.URL
	http   *http.Client
	tokens TokenSource
	log    *logrus.Logger

	Auth           *AuthService
	Usuarios       *UsuariosService
	Roles          *RolesService
	Personas       *PersonasService
	Documentos     *DocumentosService
	Contratos      *ContratosService
	PerfilTarifas  *PerfilTarifasService
	Legajo         *LegajoService
	Dashboard      *DashboardService
	Notificaciones *NotificacionesService
	AIChat         *AIChatService
	Reportes       *ReportesService
}

func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid backend base URL")
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.Errorf("invalid backend base URL scheme %q", base.Scheme)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}

	c := &Client{
		base:   base,
		http:   httpClient,
		tokens: cfg.Tokens,
		log:    log,
	}
	c.Auth = &AuthService{client: c}
	c.Usuarios = &UsuariosService{client: c}
	c.Roles = &RolesService{client: c}
	c.Personas = &PersonasService{client: c}
	c.Documentos = &DocumentosService{client: c}
	c.Contratos = &ContratosService{client: c}
	c.PerfilTarifas = &PerfilTarifasService{client: c}
	c.Legajo = &LegajoService{client: c}
	c.Dashboard = &DashboardService{client: c}
	c.Notificaciones = &NotificacionesService{client: c}
	c.AIChat = &AIChatService{client: c}
	c.Reportes = &ReportesService{client: c}
	return c, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "resolve bearer token")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// do executes the request and decodes a JSON response into out when out is
// non-nil. Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Debug("backend request failed")
		return newAPIError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}

// download fetches a binary payload, naming it from Content-Disposition when
// present, else from the deterministic fallback.
func (c *Client) download(ctx context.Context, path string, query url.Values, fallbackName string) (*Descarga, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", path)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, newAPIError(resp.StatusCode, raw)
	}

	datos, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s payload", path)
	}

	nombre := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if nombre == "" {
		nombre = fallbackName
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Descarga{
		Nombre:      nombre,
		ContentType: contentType,
		Datos:       datos,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func unmarshalBody(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return errors.Wrap(err, "decode response body")
	}
	return nil
}

func idPath(prefix string, id int) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
