package dashboard

import (
	contratossvc "github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/dashboard/infrastructure/gateway"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/dashboard/presentation/controllers"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/dashboard/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

// Register depends on the contratos module's summary service, so contratos
// must be registered first.
func (m *Module) Register(app application.Application) error {
	statsGateway := gateway.NewDashboardGateway(app.Backend(), app.QueryCache())
	resumen := app.Service(contratossvc.ResumenService{}).(*contratossvc.ResumenService)

	app.RegisterServices(
		services.NewStatsService(statsGateway, resumen),
		services.NewExportService(resumen),
		services.NewNotificacionService(app.Backend().Notificaciones, app.EventPublisher(), app.Websocket()),
		services.NewChatService(app.Backend().AIChat),
		services.NewReporteService(app.Backend().Reportes),
	)

	app.RegisterControllers(
		controllers.NewDashboardController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "dashboard"
}
