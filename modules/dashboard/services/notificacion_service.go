package services

import (
	"context"
	"encoding/json"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/eventbus"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type NotificacionesFuente interface {
	List(ctx context.Context) ([]sigeledapi.Notificacion, error)
	Create(ctx context.Context, data sigeledapi.NotificacionAlta) (*sigeledapi.Notificacion, error)
	MarcarLeida(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

type NotificacionCreadaEvent struct {
	Notificacion sigeledapi.Notificacion
}

type NotificacionService struct {
	fuente    NotificacionesFuente
	publisher eventbus.EventBus
	websocket application.Huber
}

func NewNotificacionService(fuente NotificacionesFuente, publisher eventbus.EventBus, websocket application.Huber) *NotificacionService {
	return &NotificacionService{fuente: fuente, publisher: publisher, websocket: websocket}
}

func (s *NotificacionService) Listar(ctx context.Context) ([]sigeledapi.Notificacion, error) {
	return s.fuente.List(ctx)
}

// Crear proxies to the backend and pushes the new notification to every
// connected dashboard client.
func (s *NotificacionService) Crear(ctx context.Context, data sigeledapi.NotificacionAlta) (*sigeledapi.Notificacion, error) {
	creada, err := s.fuente.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(NotificacionCreadaEvent{Notificacion: *creada})
	if s.websocket != nil {
		if payload, err := json.Marshal(map[string]any{
			"tipo":         "notificacion",
			"notificacion": creada,
		}); err == nil {
			s.websocket.BroadcastToChannel(application.ChannelAuthenticated, payload)
		}
	}
	return creada, nil
}

func (s *NotificacionService) MarcarLeida(ctx context.Context, id int) error {
	return s.fuente.MarcarLeida(ctx, id)
}

func (s *NotificacionService) Eliminar(ctx context.Context, id int) error {
	return s.fuente.Delete(ctx, id)
}
