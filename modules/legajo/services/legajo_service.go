package services

import (
	"context"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/legajo/domain/legajo"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type LegajoFuente interface {
	Estado(ctx context.Context, personaID int) (*sigeledapi.LegajoEstado, error)
}

// EstadoLegajo is the backend checklist plus the derived completeness
// figures.
type EstadoLegajo struct {
	sigeledapi.LegajoEstado
	Porcentaje int      `json:"porcentaje"`
	Completo   bool     `json:"completo"`
	Pendientes []string `json:"pendientes,omitempty"`
}

type LegajoService struct {
	fuente LegajoFuente
}

func NewLegajoService(fuente LegajoFuente) *LegajoService {
	return &LegajoService{fuente: fuente}
}

func (s *LegajoService) Estado(ctx context.Context, personaID int) (*EstadoLegajo, error) {
	estado, err := s.fuente.Estado(ctx, personaID)
	if err != nil {
		return nil, err
	}
	return &EstadoLegajo{
		LegajoEstado: *estado,
		Porcentaje:   legajo.Completitud(*estado),
		Completo:     legajo.Completo(*estado),
		Pendientes:   legajo.ItemsPendientes(*estado),
	}, nil
}
