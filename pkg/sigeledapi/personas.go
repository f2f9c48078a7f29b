package sigeledapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"
)

type PersonasService struct {
	client *Client
}

func (s *PersonasService) List(ctx context.Context) ([]Persona, error) {
	var out []Persona
	if err := s.client.get(ctx, "/personas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PersonasService) Get(ctx context.Context, id int) (*Persona, error) {
	var out Persona
	if err := s.client.get(ctx, idPath("/personas", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type PersonaAlta struct {
	Nombre          string `json:"nombre" validate:"required"`
	Apellido        string `json:"apellido" validate:"required"`
	NumeroDocumento string `json:"numero_documento" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	Telefono        string `json:"telefono"`
}

func (s *PersonasService) Create(ctx context.Context, data PersonaAlta) (*Persona, error) {
	var out Persona
	if err := s.client.post(ctx, "/personas", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PersonasService) Update(ctx context.Context, id int, data PersonaAlta) (*Persona, error) {
	var out Persona
	if err := s.client.patch(ctx, idPath("/personas", id), data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PersonasService) Identificaciones(ctx context.Context, personaID int) ([]Identificacion, error) {
	var out []Identificacion
	if err := s.client.get(ctx, idPath("/persona-identificaciones", personaID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PersonasService) Domicilios(ctx context.Context, personaID int) ([]Domicilio, error) {
	var out []Domicilio
	if err := s.client.get(ctx, idPath("/persona-domicilios", personaID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PersonasService) Titulos(ctx context.Context, personaID int) ([]Titulo, error) {
	var out []Titulo
	if err := s.client.get(ctx, idPath("/persona-titulos", personaID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type DocumentosService struct {
	client *Client
}

func (s *DocumentosService) List(ctx context.Context, personaID int) ([]Documento, error) {
	query := url.Values{}
	query.Set("id_persona", fmt.Sprintf("%d", personaID))
	var out []Documento
	if err := s.client.get(ctx, "/persona-doc", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upload sends a document file as multipart form data.
func (s *DocumentosService) Upload(ctx context.Context, personaID int, tipo, filename string, contenido io.Reader) (*Documento, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("id_persona", fmt.Sprintf("%d", personaID)); err != nil {
		return nil, err
	}
	if err := form.WriteField("tipo_documento", tipo); err != nil {
		return nil, err
	}
	part, err := form.CreateFormFile("archivo", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, contenido); err != nil {
		return nil, errors.Wrap(err, "copy upload payload")
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.endpoint("/persona-doc", nil), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	if s.client.tokens != nil {
		token, err := s.client.tokens.Token(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "resolve bearer token")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := s.client.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "POST /persona-doc")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, newAPIError(resp.StatusCode, raw)
	}

	var out Documento
	if err := unmarshalBody(resp.Body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type DocumentoVerificacion struct {
	Estado        string `json:"estado_verificacion" validate:"required"`
	Observaciones string `json:"observaciones"`
}

func (s *DocumentosService) ActualizarEstado(ctx context.Context, id int, data DocumentoVerificacion) (*Documento, error) {
	var out Documento
	if err := s.client.patch(ctx, idPath("/persona-doc", id), data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DocumentosService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, idPath("/persona-doc", id))
}

// Archivo downloads the stored file behind a document record.
func (s *DocumentosService) Archivo(ctx context.Context, id int) (*Descarga, error) {
	return s.client.download(ctx, idPath("/persona-doc", id)+"/archivo", nil, fmt.Sprintf("documento_%d.pdf", id))
}

type LegajoService struct {
	client *Client
}

func (s *LegajoService) Estado(ctx context.Context, personaID int) (*LegajoEstado, error) {
	var out LegajoEstado
	if err := s.client.get(ctx, idPath("/legajo", personaID)+"/estado", nil, &out); err != nil {
		return nil, err
	}
	if out.PersonaID == 0 {
		out.PersonaID = personaID
	}
	return &out, nil
}
