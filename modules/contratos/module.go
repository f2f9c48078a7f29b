package contratos

import (
	"context"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/infrastructure/gateway"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/presentation/controllers"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	contratosGateway := gateway.NewContratosGateway(app.Backend(), app.QueryCache())
	tarifasGateway := gateway.NewPerfilTarifasGateway(app.Backend(), app.QueryCache())

	app.RegisterServices(
		services.NewContratoService(contratosGateway, app.EventPublisher()),
		services.NewTarifaService(tarifasGateway, app.EventPublisher()),
		services.NewResumenService(contratosGateway, tarifasGateway),
	)

	// Mutations invalidate the cached reads they may have staled.
	cache := app.QueryCache()
	app.EventPublisher().Subscribe(func(ev services.ContratoCreadoEvent) {
		cache.InvalidatePrefix(context.Background(), "contratos")
	})
	app.EventPublisher().Subscribe(func(ev services.ContratoEliminadoEvent) {
		cache.InvalidatePrefix(context.Background(), "contratos")
	})
	app.EventPublisher().Subscribe(func(ev services.TarifaActualizadaEvent) {
		cache.InvalidatePrefix(context.Background(), "perfil-tarifas")
	})

	app.RegisterControllers(
		controllers.NewContratosController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "contratos"
}
