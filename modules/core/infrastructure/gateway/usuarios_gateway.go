package gateway

import (
	"context"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/fetch"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type UsuariosGateway struct {
	api   *sigeledapi.Client
	cache *fetch.Cache
}

func NewUsuariosGateway(api *sigeledapi.Client, cache *fetch.Cache) *UsuariosGateway {
	return &UsuariosGateway{api: api, cache: cache}
}

func (g *UsuariosGateway) List(ctx context.Context) ([]sigeledapi.Usuario, error) {
	return fetch.JSON(ctx, g.cache, fetch.Key("users", nil), func(ctx context.Context) ([]sigeledapi.Usuario, error) {
		return g.api.Usuarios.List(ctx)
	})
}

func (g *UsuariosGateway) Create(ctx context.Context, data sigeledapi.UsuarioAlta) (*sigeledapi.Usuario, error) {
	return g.api.Usuarios.Create(ctx, data)
}

func (g *UsuariosGateway) Update(ctx context.Context, id int, data sigeledapi.UsuarioCambio) (*sigeledapi.Usuario, error) {
	return g.api.Usuarios.Update(ctx, id, data)
}

type RolesGateway struct {
	api   *sigeledapi.Client
	cache *fetch.Cache
}

func NewRolesGateway(api *sigeledapi.Client, cache *fetch.Cache) *RolesGateway {
	return &RolesGateway{api: api, cache: cache}
}

func (g *RolesGateway) List(ctx context.Context) ([]sigeledapi.Rol, error) {
	return fetch.JSON(ctx, g.cache, fetch.Key("roles", nil), func(ctx context.Context) ([]sigeledapi.Rol, error) {
		return g.api.Roles.List(ctx)
	})
}

func (g *RolesGateway) Create(ctx context.Context, data sigeledapi.RolAlta) (*sigeledapi.Rol, error) {
	return g.api.Roles.Create(ctx, data)
}

func (g *RolesGateway) Delete(ctx context.Context, id int) error {
	return g.api.Roles.Delete(ctx, id)
}
