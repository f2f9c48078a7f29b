package services

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type ReportesFuente interface {
	JSON(ctx context.Context, nombre string, params url.Values, out any) error
	PDF(ctx context.Context, nombre string, params url.Values) (*sigeledapi.Descarga, error)
	Escalafonario(ctx context.Context) (*sigeledapi.Descarga, error)
}

// reportesConocidos limits the proxy to the reports the dashboard actually
// renders so arbitrary backend paths cannot be reached through it.
var reportesConocidos = map[string]struct{}{
	"contratos-por-periodo": {},
	"docentes-por-carrera":  {},
	"escalafonario":         {},
	"tarifas-vigentes":      {},
}

type ReporteService struct {
	fuente ReportesFuente
}

func NewReporteService(fuente ReportesFuente) *ReporteService {
	return &ReporteService{fuente: fuente}
}

func (s *ReporteService) JSON(ctx context.Context, nombre string, params url.Values) (json.RawMessage, error) {
	if _, ok := reportesConocidos[nombre]; !ok {
		return nil, errors.Errorf("reporte desconocido: %q", nombre)
	}
	var out json.RawMessage
	if err := s.fuente.JSON(ctx, nombre, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ReporteService) PDF(ctx context.Context, nombre string, params url.Values) (*sigeledapi.Descarga, error) {
	if _, ok := reportesConocidos[nombre]; !ok {
		return nil, errors.Errorf("reporte desconocido: %q", nombre)
	}
	return s.fuente.PDF(ctx, nombre, params)
}

func (s *ReporteService) Escalafonario(ctx context.Context) (*sigeledapi.Descarga, error) {
	return s.fuente.Escalafonario(ctx)
}
