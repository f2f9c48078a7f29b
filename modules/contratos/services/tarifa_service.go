package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/domain/contrato"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/domain/tarifa"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/eventbus"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type TarifasFuente interface {
	Perfiles(ctx context.Context) ([]sigeledapi.Perfil, error)
	Actualizar(ctx context.Context, tarifaID int, data sigeledapi.TarifaActualizacion) (*sigeledapi.Tarifa, error)
}

type TarifaService struct {
	fuente    TarifasFuente
	publisher eventbus.EventBus
	validate  *validator.Validate
}

func NewTarifaService(fuente TarifasFuente, publisher eventbus.EventBus) *TarifaService {
	return &TarifaService{
		fuente:    fuente,
		publisher: publisher,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *TarifaService) Perfiles(ctx context.Context) ([]sigeledapi.Perfil, error) {
	return s.fuente.Perfiles(ctx)
}

func (s *TarifaService) Actualizar(ctx context.Context, tarifaID int, data sigeledapi.TarifaActualizacion) (*sigeledapi.Tarifa, error) {
	if err := s.validate.Struct(data); err != nil {
		return nil, errors.Wrap(err, "tarifa inválida")
	}
	actualizada, err := s.fuente.Actualizar(ctx, tarifaID, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(TarifaActualizadaEvent{TarifaID: tarifaID, Tarifa: actualizada})
	return actualizada, nil
}

// ResumenService folds contracts and profile rates into the dashboard
// roll-up.
type ResumenService struct {
	contratos ContratosFuente
	tarifas   TarifasFuente
	now       func() time.Time
}

func NewResumenService(contratos ContratosFuente, tarifas TarifasFuente) *ResumenService {
	return &ResumenService{contratos: contratos, tarifas: tarifas, now: time.Now}
}

// ResumenGeneral recomputes the aggregation over both sources. The counters
// include the "por comenzar" figure backed by the future-start predicate.
type ResumenGeneral struct {
	tarifa.Resumen

	TotalContratos       int
	ContratosActivos     int
	ContratosProximos    int
	ContratosPorComenzar int
	ContratosFinalizados int
}

func (s *ResumenService) Resumen(ctx context.Context) (*ResumenGeneral, error) {
	contratos, err := s.contratos.Todos(ctx)
	if err != nil {
		return nil, err
	}
	perfiles, err := s.tarifas.Perfiles(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := &ResumenGeneral{
		Resumen:        tarifa.Resumir(perfiles, contratos, now),
		TotalContratos: len(contratos),
	}
	for _, c := range contratos {
		switch contrato.EstadoAt(c, now) {
		case contrato.EstadoActivo:
			out.ContratosActivos++
		case contrato.EstadoProximo:
			out.ContratosProximos++
		case contrato.EstadoFinalizado:
			out.ContratosFinalizados++
		}
		if contrato.ComienzaPronto(c, now) {
			out.ContratosPorComenzar++
		}
	}
	return out, nil
}
