package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/domain/contrato"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/eventbus"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// ContratosFuente is the read/write surface the service needs; the
// infrastructure gateway implements it over the backend plus query cache.
type ContratosFuente interface {
	Todos(ctx context.Context) ([]sigeledapi.Contrato, error)
	MisContratos(ctx context.Context) ([]sigeledapi.Contrato, error)
	Por(ctx context.Context, id int) (*sigeledapi.Contrato, error)
	Empleados(ctx context.Context) ([]sigeledapi.Contrato, error)
	CrearProfesor(ctx context.Context, data sigeledapi.ContratoProfesorAlta) (*sigeledapi.Contrato, error)
	Eliminar(ctx context.Context, id int) error
	Exportar(ctx context.Context, id int, formato string) (*sigeledapi.Descarga, error)
}

// ContratoConEstado is a contract annotated with its derived lifecycle
// state. The state is never stored, always recomputed.
type ContratoConEstado struct {
	sigeledapi.Contrato
	Estado contrato.Estado
}

type ContratoService struct {
	fuente    ContratosFuente
	publisher eventbus.EventBus
	validate  *validator.Validate
	now       func() time.Time
}

func NewContratoService(fuente ContratosFuente, publisher eventbus.EventBus) *ContratoService {
	return &ContratoService{
		fuente:    fuente,
		publisher: publisher,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		now:       time.Now,
	}
}

func (s *ContratoService) anotar(contratos []sigeledapi.Contrato) []ContratoConEstado {
	now := s.now()
	out := make([]ContratoConEstado, 0, len(contratos))
	for _, c := range contratos {
		out = append(out, ContratoConEstado{Contrato: c, Estado: contrato.EstadoAt(c, now)})
	}
	return out
}

func (s *ContratoService) Todos(ctx context.Context) ([]ContratoConEstado, error) {
	contratos, err := s.fuente.Todos(ctx)
	if err != nil {
		return nil, err
	}
	return s.anotar(contratos), nil
}

func (s *ContratoService) MisContratos(ctx context.Context) ([]ContratoConEstado, error) {
	contratos, err := s.fuente.MisContratos(ctx)
	if err != nil {
		return nil, err
	}
	return s.anotar(contratos), nil
}

func (s *ContratoService) Por(ctx context.Context, id int) (*ContratoConEstado, error) {
	c, err := s.fuente.Por(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ContratoConEstado{Contrato: *c, Estado: contrato.EstadoAt(*c, s.now())}, nil
}

func (s *ContratoService) Empleados(ctx context.Context) ([]ContratoConEstado, error) {
	contratos, err := s.fuente.Empleados(ctx)
	if err != nil {
		return nil, err
	}
	return s.anotar(contratos), nil
}

func (s *ContratoService) CrearProfesor(ctx context.Context, data sigeledapi.ContratoProfesorAlta) (*sigeledapi.Contrato, error) {
	if err := s.validate.Struct(data); err != nil {
		return nil, errors.Wrap(err, "contrato inválido")
	}
	creado, err := s.fuente.CrearProfesor(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ContratoCreadoEvent{Contrato: *creado})
	return creado, nil
}

func (s *ContratoService) Eliminar(ctx context.Context, id int) error {
	if err := s.fuente.Eliminar(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(ContratoEliminadoEvent{ID: id})
	return nil
}

var formatosExport = map[string]struct{}{"pdf": {}, "word": {}}

func (s *ContratoService) Exportar(ctx context.Context, id int, formato string) (*sigeledapi.Descarga, error) {
	if _, ok := formatosExport[formato]; !ok {
		return nil, errors.Errorf("formato no soportado: %q", formato)
	}
	return s.fuente.Exportar(ctx, id, formato)
}
