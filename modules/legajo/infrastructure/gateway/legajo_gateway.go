package gateway

import (
	"context"
	"io"
	"strconv"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/fetch"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// PersonasGateway reads person records through the query cache.
type PersonasGateway struct {
	api   *sigeledapi.Client
	cache *fetch.Cache
}

func NewPersonasGateway(api *sigeledapi.Client, cache *fetch.Cache) *PersonasGateway {
	return &PersonasGateway{api: api, cache: cache}
}

func (g *PersonasGateway) Todas(ctx context.Context) ([]sigeledapi.Persona, error) {
	return fetch.JSON(ctx, g.cache, fetch.Key("personas", nil), func(ctx context.Context) ([]sigeledapi.Persona, error) {
		return g.api.Personas.List(ctx)
	})
}

func (g *PersonasGateway) Por(ctx context.Context, id int) (*sigeledapi.Persona, error) {
	key := fetch.Key("personas", map[string]string{"id": strconv.Itoa(id)})
	return fetch.JSON(ctx, g.cache, key, func(ctx context.Context) (*sigeledapi.Persona, error) {
		return g.api.Personas.Get(ctx, id)
	})
}

func (g *PersonasGateway) Identificaciones(ctx context.Context, id int) ([]sigeledapi.Identificacion, error) {
	key := fetch.Key("personas/identificaciones", map[string]string{"id": strconv.Itoa(id)})
	return fetch.JSON(ctx, g.cache, key, func(ctx context.Context) ([]sigeledapi.Identificacion, error) {
		return g.api.Personas.Identificaciones(ctx, id)
	})
}

func (g *PersonasGateway) Domicilios(ctx context.Context, id int) ([]sigeledapi.Domicilio, error) {
	key := fetch.Key("personas/domicilios", map[string]string{"id": strconv.Itoa(id)})
	return fetch.JSON(ctx, g.cache, key, func(ctx context.Context) ([]sigeledapi.Domicilio, error) {
		return g.api.Personas.Domicilios(ctx, id)
	})
}

func (g *PersonasGateway) Titulos(ctx context.Context, id int) ([]sigeledapi.Titulo, error) {
	key := fetch.Key("personas/titulos", map[string]string{"id": strconv.Itoa(id)})
	return fetch.JSON(ctx, g.cache, key, func(ctx context.Context) ([]sigeledapi.Titulo, error) {
		return g.api.Personas.Titulos(ctx, id)
	})
}

func (g *PersonasGateway) Crear(ctx context.Context, data sigeledapi.PersonaAlta) (*sigeledapi.Persona, error) {
	return g.api.Personas.Create(ctx, data)
}

func (g *PersonasGateway) Actualizar(ctx context.Context, id int, data sigeledapi.PersonaAlta) (*sigeledapi.Persona, error) {
	return g.api.Personas.Update(ctx, id, data)
}

// DocumentosGateway proxies document records and binaries; only the listing
// is cached.
type DocumentosGateway struct {
	api   *sigeledapi.Client
	cache *fetch.Cache
}

func NewDocumentosGateway(api *sigeledapi.Client, cache *fetch.Cache) *DocumentosGateway {
	return &DocumentosGateway{api: api, cache: cache}
}

// PorPersona routes are open to any authenticated session, so the entry is
// keyed per user and the backend keeps deciding who may read which persona.
func (g *DocumentosGateway) PorPersona(ctx context.Context, personaID int) ([]sigeledapi.Documento, error) {
	key := fetch.Key("persona-doc", map[string]string{
		"id_persona": strconv.Itoa(personaID),
		"usuario":    usuarioKey(ctx),
	})
	return fetch.JSON(ctx, g.cache, key, func(ctx context.Context) ([]sigeledapi.Documento, error) {
		return g.api.Documentos.List(ctx, personaID)
	})
}

func (g *DocumentosGateway) Subir(ctx context.Context, personaID int, tipo, filename string, contenido io.Reader) (*sigeledapi.Documento, error) {
	return g.api.Documentos.Upload(ctx, personaID, tipo, filename, contenido)
}

func (g *DocumentosGateway) ActualizarEstado(ctx context.Context, id int, data sigeledapi.DocumentoVerificacion) (*sigeledapi.Documento, error) {
	return g.api.Documentos.ActualizarEstado(ctx, id, data)
}

func (g *DocumentosGateway) Eliminar(ctx context.Context, id int) error {
	return g.api.Documentos.Delete(ctx, id)
}

func (g *DocumentosGateway) Archivo(ctx context.Context, id int) (*sigeledapi.Descarga, error) {
	return g.api.Documentos.Archivo(ctx, id)
}

// LegajoGateway reads the completeness checklist.
type LegajoGateway struct {
	api   *sigeledapi.Client
	cache *fetch.Cache
}

func NewLegajoGateway(api *sigeledapi.Client, cache *fetch.Cache) *LegajoGateway {
	return &LegajoGateway{api: api, cache: cache}
}

// Estado is keyed per user for the same reason as DocumentosGateway.PorPersona.
func (g *LegajoGateway) Estado(ctx context.Context, personaID int) (*sigeledapi.LegajoEstado, error) {
	key := fetch.Key("legajo/estado", map[string]string{
		"id_persona": strconv.Itoa(personaID),
		"usuario":    usuarioKey(ctx),
	})
	return fetch.JSON(ctx, g.cache, key, func(ctx context.Context) (*sigeledapi.LegajoEstado, error) {
		return g.api.Legajo.Estado(ctx, personaID)
	})
}

func usuarioKey(ctx context.Context) string {
	session, ok := composables.UseSession(ctx)
	if !ok {
		return "anon"
	}
	return strconv.Itoa(session.Usuario.ID)
}
