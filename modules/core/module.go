package core

import (
	"context"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/core/infrastructure/gateway"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/core/infrastructure/session"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/core/presentation/controllers"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/core/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/configuration"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()
	sesiones := session.NewStore(conf.SessionDuration)

	usuariosGateway := gateway.NewUsuariosGateway(app.Backend(), app.QueryCache())
	rolesGateway := gateway.NewRolesGateway(app.Backend(), app.QueryCache())

	app.RegisterServices(
		sesiones,
		services.NewAuthService(app.Backend().Auth, sesiones, app.EventPublisher()),
		services.NewUsuarioService(usuariosGateway, app.EventPublisher()),
		services.NewRolService(rolesGateway, app.EventPublisher()),
	)

	cache := app.QueryCache()
	app.EventPublisher().Subscribe(func(ev services.UsuarioCreadoEvent) {
		cache.InvalidatePrefix(context.Background(), "users")
	})
	app.EventPublisher().Subscribe(func(ev services.UsuarioActualizadoEvent) {
		cache.InvalidatePrefix(context.Background(), "users")
	})
	app.EventPublisher().Subscribe(func(ev services.RolCreadoEvent) {
		cache.InvalidatePrefix(context.Background(), "roles")
	})
	app.EventPublisher().Subscribe(func(ev services.RolEliminadoEvent) {
		cache.InvalidatePrefix(context.Background(), "roles")
	})

	app.RegisterControllers(
		controllers.NewAuthController(app),
		controllers.NewUsuariosController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "core"
}
