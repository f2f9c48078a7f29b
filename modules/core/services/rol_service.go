package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/eventbus"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type RolesFuente interface {
	List(ctx context.Context) ([]sigeledapi.Rol, error)
	Create(ctx context.Context, data sigeledapi.RolAlta) (*sigeledapi.Rol, error)
	Delete(ctx context.Context, id int) error
}

type RolCreadoEvent struct {
	Rol sigeledapi.Rol
}

type RolEliminadoEvent struct {
	ID int
}

type RolService struct {
	fuente    RolesFuente
	publisher eventbus.EventBus
	validate  *validator.Validate
}

func NewRolService(fuente RolesFuente, publisher eventbus.EventBus) *RolService {
	return &RolService{
		fuente:    fuente,
		publisher: publisher,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *RolService) Listar(ctx context.Context) ([]sigeledapi.Rol, error) {
	return s.fuente.List(ctx)
}

func (s *RolService) Crear(ctx context.Context, data sigeledapi.RolAlta) (*sigeledapi.Rol, error) {
	if err := s.validate.Struct(data); err != nil {
		return nil, errors.Wrap(err, "rol inválido")
	}
	rol, err := s.fuente.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(RolCreadoEvent{Rol: *rol})
	return rol, nil
}

func (s *RolService) Eliminar(ctx context.Context, id int) error {
	if err := s.fuente.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(RolEliminadoEvent{ID: id})
	return nil
}
