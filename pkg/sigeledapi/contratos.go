package sigeledapi

import (
	"context"
	"fmt"
	"net/url"
)

type ContratosService struct {
	client *Client
}

func (s *ContratosService) List(ctx context.Context) ([]Contrato, error) {
	var out []Contrato
	if err := s.client.get(ctx, "/contratos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MisContratos lists the contracts belonging to the authenticated person.
func (s *ContratosService) MisContratos(ctx context.Context) ([]Contrato, error) {
	var out []Contrato
	if err := s.client.get(ctx, "/contratos/mis-contratos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ContratosService) Por(ctx context.Context, id int) (*Contrato, error) {
	var out Contrato
	if err := s.client.get(ctx, idPath("/contratos", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ContratosService) Empleados(ctx context.Context) ([]Contrato, error) {
	var out []Contrato
	if err := s.client.get(ctx, "/contratos/empleados", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type ContratoProfesorAlta struct {
	PersonaID      int     `json:"id_persona" validate:"required,gt=0"`
	IDPeriodo      int     `json:"id_periodo" validate:"required,gt=0"`
	FechaInicio    string  `json:"fecha_inicio" validate:"required"`
	FechaFin       string  `json:"fecha_fin" validate:"required"`
	HorasSemanales float64 `json:"horas_semanales" validate:"required,gt=0"`
	Items          []Item  `json:"items" validate:"required,min=1"`
}

func (s *ContratosService) CrearProfesor(ctx context.Context, data ContratoProfesorAlta) (*Contrato, error) {
	var out Contrato
	if err := s.client.post(ctx, "/contratos/profesor/crear", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ContratosService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, idPath("/contratos", id))
}

// Export fetches the contract rendered as pdf or word. The fallback name is
// deterministic so repeated exports of one contract collide predictably.
func (s *ContratosService) Export(ctx context.Context, id int, formato string) (*Descarga, error) {
	ext := "pdf"
	if formato == "word" {
		ext = "docx"
	}
	query := url.Values{}
	query.Set("format", formato)
	return s.client.download(
		ctx,
		idPath("/contratos", id)+"/export",
		query,
		fmt.Sprintf("contrato_%d.%s", id, ext),
	)
}

type PerfilTarifasService struct {
	client *Client
}

func (s *PerfilTarifasService) List(ctx context.Context) ([]Perfil, error) {
	var out []Perfil
	if err := s.client.get(ctx, "/contratos/perfil-tarifas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PerfilTarifasService) Actualizar(ctx context.Context, tarifaID int, data TarifaActualizacion) (*Tarifa, error) {
	var out Tarifa
	if err := s.client.put(ctx, idPath("/contratos/perfil-tarifas", tarifaID), data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
