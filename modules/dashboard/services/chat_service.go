package services

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type ChatFuente interface {
	Sesiones(ctx context.Context) ([]sigeledapi.ChatSesion, error)
	CrearSesion(ctx context.Context, data sigeledapi.ChatSesionAlta) (*sigeledapi.ChatSesion, error)
	RenombrarSesion(ctx context.Context, id int, titulo string) error
	EliminarSesion(ctx context.Context, id int) error
	Mensajes(ctx context.Context, sesionID int) ([]sigeledapi.ChatMensaje, error)
	EnviarMensaje(ctx context.Context, sesionID int, data sigeledapi.ChatMensajeAlta) (*sigeledapi.ChatMensaje, error)
}

type ChatService struct {
	fuente   ChatFuente
	validate *validator.Validate
}

func NewChatService(fuente ChatFuente) *ChatService {
	return &ChatService{fuente: fuente, validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (s *ChatService) Sesiones(ctx context.Context) ([]sigeledapi.ChatSesion, error) {
	return s.fuente.Sesiones(ctx)
}

func (s *ChatService) CrearSesion(ctx context.Context, data sigeledapi.ChatSesionAlta) (*sigeledapi.ChatSesion, error) {
	return s.fuente.CrearSesion(ctx, data)
}

func (s *ChatService) RenombrarSesion(ctx context.Context, id int, titulo string) error {
	if strings.TrimSpace(titulo) == "" {
		return errors.New("el título no puede estar vacío")
	}
	return s.fuente.RenombrarSesion(ctx, id, titulo)
}

func (s *ChatService) EliminarSesion(ctx context.Context, id int) error {
	return s.fuente.EliminarSesion(ctx, id)
}

func (s *ChatService) Mensajes(ctx context.Context, sesionID int) ([]sigeledapi.ChatMensaje, error) {
	return s.fuente.Mensajes(ctx, sesionID)
}

func (s *ChatService) EnviarMensaje(ctx context.Context, sesionID int, data sigeledapi.ChatMensajeAlta) (*sigeledapi.ChatMensaje, error) {
	if err := s.validate.Struct(data); err != nil {
		return nil, errors.Wrap(err, "mensaje inválido")
	}
	return s.fuente.EnviarMensaje(ctx, sesionID, data)
}
