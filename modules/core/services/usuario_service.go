package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/eventbus"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type UsuariosFuente interface {
	List(ctx context.Context) ([]sigeledapi.Usuario, error)
	Create(ctx context.Context, data sigeledapi.UsuarioAlta) (*sigeledapi.Usuario, error)
	Update(ctx context.Context, id int, data sigeledapi.UsuarioCambio) (*sigeledapi.Usuario, error)
}

type UsuarioCreadoEvent struct {
	Usuario sigeledapi.Usuario
}

type UsuarioActualizadoEvent struct {
	Usuario sigeledapi.Usuario
}

type UsuarioService struct {
	fuente    UsuariosFuente
	publisher eventbus.EventBus
	validate  *validator.Validate
}

func NewUsuarioService(fuente UsuariosFuente, publisher eventbus.EventBus) *UsuarioService {
	return &UsuarioService{
		fuente:    fuente,
		publisher: publisher,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *UsuarioService) Listar(ctx context.Context) ([]sigeledapi.Usuario, error) {
	return s.fuente.List(ctx)
}

func (s *UsuarioService) Crear(ctx context.Context, data sigeledapi.UsuarioAlta) (*sigeledapi.Usuario, error) {
	if err := s.validate.Struct(data); err != nil {
		return nil, errors.Wrap(err, "usuario inválido")
	}
	usuario, err := s.fuente.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(UsuarioCreadoEvent{Usuario: *usuario})
	return usuario, nil
}

func (s *UsuarioService) Actualizar(ctx context.Context, id int, data sigeledapi.UsuarioCambio) (*sigeledapi.Usuario, error) {
	if err := s.validate.Struct(data); err != nil {
		return nil, errors.Wrap(err, "cambio inválido")
	}
	usuario, err := s.fuente.Update(ctx, id, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(UsuarioActualizadoEvent{Usuario: *usuario})
	return usuario, nil
}
