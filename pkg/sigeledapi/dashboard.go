package sigeledapi

import (
	"context"
	"net/url"
)

type DashboardService struct {
	client *Client
}

func (s *DashboardService) AdminStats(ctx context.Context) (*AdminStats, error) {
	var out AdminStats
	if err := s.client.get(ctx, "/dashboard/admin-stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type NotificacionesService struct {
	client *Client
}

func (s *NotificacionesService) List(ctx context.Context) ([]Notificacion, error) {
	var out []Notificacion
	if err := s.client.get(ctx, "/notificaciones", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type NotificacionAlta struct {
	Titulo  string `json:"titulo" validate:"required"`
	Mensaje string `json:"mensaje" validate:"required"`
	Destino int    `json:"id_usuario_destino"`
}

func (s *NotificacionesService) Create(ctx context.Context, data NotificacionAlta) (*Notificacion, error) {
	var out Notificacion
	if err := s.client.post(ctx, "/notificaciones", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *NotificacionesService) MarcarLeida(ctx context.Context, id int) error {
	return s.client.patch(ctx, idPath("/notificaciones", id)+"/leida", nil, nil)
}

func (s *NotificacionesService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, idPath("/notificaciones", id))
}

type AIChatService struct {
	client *Client
}

func (s *AIChatService) Sesiones(ctx context.Context) ([]ChatSesion, error) {
	var out []ChatSesion
	if err := s.client.get(ctx, "/ai-chat/sesiones", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type ChatSesionAlta struct {
	Titulo string `json:"titulo"`
}

func (s *AIChatService) CrearSesion(ctx context.Context, data ChatSesionAlta) (*ChatSesion, error) {
	var out ChatSesion
	if err := s.client.post(ctx, "/ai-chat/sesiones", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AIChatService) RenombrarSesion(ctx context.Context, id int, titulo string) error {
	return s.client.put(ctx, idPath("/ai-chat/sesiones", id), ChatSesionAlta{Titulo: titulo}, nil)
}

func (s *AIChatService) EliminarSesion(ctx context.Context, id int) error {
	return s.client.delete(ctx, idPath("/ai-chat/sesiones", id))
}

func (s *AIChatService) Mensajes(ctx context.Context, sesionID int) ([]ChatMensaje, error) {
	var out []ChatMensaje
	if err := s.client.get(ctx, idPath("/ai-chat/sesiones", sesionID)+"/mensajes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type ChatMensajeAlta struct {
	Contenido string `json:"contenido" validate:"required"`
}

func (s *AIChatService) EnviarMensaje(ctx context.Context, sesionID int, data ChatMensajeAlta) (*ChatMensaje, error) {
	var out ChatMensaje
	if err := s.client.post(ctx, idPath("/ai-chat/sesiones", sesionID)+"/mensajes", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ReportesService struct {
	client *Client
}

// JSON fetches a report's JSON variant by name, decoding into out.
func (s *ReportesService) JSON(ctx context.Context, nombre string, params url.Values, out any) error {
	return s.client.get(ctx, "/reportes/"+nombre, params, out)
}

// PDF fetches a report's binary variant.
func (s *ReportesService) PDF(ctx context.Context, nombre string, params url.Values) (*Descarga, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("format", "pdf")
	return s.client.download(ctx, "/reportes/"+nombre, params, nombre+".pdf")
}

// Escalafonario is the seniority-ladder report consumed by the dashboard.
func (s *ReportesService) Escalafonario(ctx context.Context) (*Descarga, error) {
	return s.PDF(ctx, "escalafonario", nil)
}
