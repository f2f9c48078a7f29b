package gateway

import (
	"context"
	"strconv"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/fetch"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// ContratosGateway reads contract data through the query cache and writes
// straight to the backend.
type ContratosGateway struct {
	api   *sigeledapi.Client
	cache *fetch.Cache
}

func NewContratosGateway(api *sigeledapi.Client, cache *fetch.Cache) *ContratosGateway {
	return &ContratosGateway{api: api, cache: cache}
}

func (g *ContratosGateway) Todos(ctx context.Context) ([]sigeledapi.Contrato, error) {
	return fetch.JSON(ctx, g.cache, fetch.Key("contratos", nil), func(ctx context.Context) ([]sigeledapi.Contrato, error) {
		return g.api.Contratos.List(ctx)
	})
}

// MisContratos is keyed per user so sessions never see each other's rows.
func (g *ContratosGateway) MisContratos(ctx context.Context) ([]sigeledapi.Contrato, error) {
	key := fetch.Key("contratos/mis-contratos", map[string]string{"usuario": usuarioKey(ctx)})
	return fetch.JSON(ctx, g.cache, key, func(ctx context.Context) ([]sigeledapi.Contrato, error) {
		return g.api.Contratos.MisContratos(ctx)
	})
}

func (g *ContratosGateway) Por(ctx context.Context, id int) (*sigeledapi.Contrato, error) {
	key := fetch.Key("contratos/por", map[string]string{"id": strconv.Itoa(id)})
	return fetch.JSON(ctx, g.cache, key, func(ctx context.Context) (*sigeledapi.Contrato, error) {
		return g.api.Contratos.Por(ctx, id)
	})
}

func (g *ContratosGateway) Empleados(ctx context.Context) ([]sigeledapi.Contrato, error) {
	return fetch.JSON(ctx, g.cache, fetch.Key("contratos/empleados", nil), func(ctx context.Context) ([]sigeledapi.Contrato, error) {
		return g.api.Contratos.Empleados(ctx)
	})
}

func (g *ContratosGateway) CrearProfesor(ctx context.Context, data sigeledapi.ContratoProfesorAlta) (*sigeledapi.Contrato, error) {
	return g.api.Contratos.CrearProfesor(ctx, data)
}

func (g *ContratosGateway) Eliminar(ctx context.Context, id int) error {
	return g.api.Contratos.Delete(ctx, id)
}

func (g *ContratosGateway) Exportar(ctx context.Context, id int, formato string) (*sigeledapi.Descarga, error) {
	return g.api.Contratos.Export(ctx, id, formato)
}

func usuarioKey(ctx context.Context) string {
	session, ok := composables.UseSession(ctx)
	if !ok {
		return "anon"
	}
	return strconv.Itoa(session.Usuario.ID)
}

// PerfilTarifasGateway mirrors ContratosGateway for the profile/rate
// resource.
type PerfilTarifasGateway struct {
	api   *sigeledapi.Client
	cache *fetch.Cache
}

func NewPerfilTarifasGateway(api *sigeledapi.Client, cache *fetch.Cache) *PerfilTarifasGateway {
	return &PerfilTarifasGateway{api: api, cache: cache}
}

func (g *PerfilTarifasGateway) Perfiles(ctx context.Context) ([]sigeledapi.Perfil, error) {
	return fetch.JSON(ctx, g.cache, fetch.Key("perfil-tarifas", nil), func(ctx context.Context) ([]sigeledapi.Perfil, error) {
		return g.api.PerfilTarifas.List(ctx)
	})
}

func (g *PerfilTarifasGateway) Actualizar(ctx context.Context, tarifaID int, data sigeledapi.TarifaActualizacion) (*sigeledapi.Tarifa, error) {
	return g.api.PerfilTarifas.Actualizar(ctx, tarifaID, data)
}
