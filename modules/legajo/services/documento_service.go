package services

import (
	"context"
	"io"
	"strings"

	"github.com/go-faster/errors"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/legajo/domain/legajo"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/eventbus"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type DocumentosFuente interface {
	PorPersona(ctx context.Context, personaID int) ([]sigeledapi.Documento, error)
	Subir(ctx context.Context, personaID int, tipo, filename string, contenido io.Reader) (*sigeledapi.Documento, error)
	ActualizarEstado(ctx context.Context, id int, data sigeledapi.DocumentoVerificacion) (*sigeledapi.Documento, error)
	Eliminar(ctx context.Context, id int) error
	Archivo(ctx context.Context, id int) (*sigeledapi.Descarga, error)
}

type DocumentoSubidoEvent struct {
	Documento sigeledapi.Documento
}

type DocumentoVerificadoEvent struct {
	Documento sigeledapi.Documento
}

type DocumentoEliminadoEvent struct {
	ID int
}

var estadosVerificacion = map[string]struct{}{
	legajo.VerificacionPendiente:  {},
	legajo.VerificacionVerificado: {},
	legajo.VerificacionRechazado:  {},
}

type DocumentoService struct {
	fuente    DocumentosFuente
	publisher eventbus.EventBus
}

func NewDocumentoService(fuente DocumentosFuente, publisher eventbus.EventBus) *DocumentoService {
	return &DocumentoService{fuente: fuente, publisher: publisher}
}

func (s *DocumentoService) PorPersona(ctx context.Context, personaID int) ([]sigeledapi.Documento, error) {
	return s.fuente.PorPersona(ctx, personaID)
}

func (s *DocumentoService) Subir(ctx context.Context, personaID int, tipo, filename string, contenido io.Reader) (*sigeledapi.Documento, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, errors.New("nombre de archivo vacío")
	}
	doc, err := s.fuente.Subir(ctx, personaID, tipo, filename, contenido)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(DocumentoSubidoEvent{Documento: *doc})
	return doc, nil
}

func (s *DocumentoService) ActualizarEstado(ctx context.Context, id int, data sigeledapi.DocumentoVerificacion) (*sigeledapi.Documento, error) {
	if _, ok := estadosVerificacion[data.Estado]; !ok {
		return nil, errors.Errorf("estado de verificación desconocido: %q", data.Estado)
	}
	doc, err := s.fuente.ActualizarEstado(ctx, id, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(DocumentoVerificadoEvent{Documento: *doc})
	return doc, nil
}

func (s *DocumentoService) Eliminar(ctx context.Context, id int) error {
	if err := s.fuente.Eliminar(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(DocumentoEliminadoEvent{ID: id})
	return nil
}

func (s *DocumentoService) Archivo(ctx context.Context, id int) (*sigeledapi.Descarga, error) {
	return s.fuente.Archivo(ctx, id)
}
