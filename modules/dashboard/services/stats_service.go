package services

import (
	"context"

	contratossvc "github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type AdminStatsFuente interface {
	AdminStats(ctx context.Context) (*sigeledapi.AdminStats, error)
}

// VistaDashboard is the composed dashboard document. Each source degrades
// independently: a failed non-essential source leaves zero-values plus its
// error message for the client to render inline.
type VistaDashboard struct {
	Stats        *sigeledapi.AdminStats       `json:"stats,omitempty"`
	StatsError   string                       `json:"stats_error,omitempty"`
	Resumen      *contratossvc.ResumenGeneral `json:"resumen,omitempty"`
	ResumenError string                       `json:"resumen_error,omitempty"`
}

type StatsService struct {
	fuente  AdminStatsFuente
	resumen *contratossvc.ResumenService
}

func NewStatsService(fuente AdminStatsFuente, resumen *contratossvc.ResumenService) *StatsService {
	return &StatsService{fuente: fuente, resumen: resumen}
}

// Vista never fails outright: both sources are attempted and partial
// results are returned with the failing side's error surfaced.
func (s *StatsService) Vista(ctx context.Context) *VistaDashboard {
	vista := &VistaDashboard{}

	stats, err := s.fuente.AdminStats(ctx)
	if err != nil {
		vista.StatsError = errorMensaje(err)
	} else {
		vista.Stats = stats
	}

	resumen, err := s.resumen.Resumen(ctx)
	if err != nil {
		vista.ResumenError = errorMensaje(err)
	} else {
		vista.Resumen = resumen
	}

	return vista
}

func errorMensaje(err error) string {
	if apiErr, ok := sigeledapi.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return "no se pudo obtener la información"
}
