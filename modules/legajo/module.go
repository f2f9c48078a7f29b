package legajo

import (
	"context"
	"strconv"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/legajo/infrastructure/gateway"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/legajo/presentation/controllers"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/legajo/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/fetch"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	personasGateway := gateway.NewPersonasGateway(app.Backend(), app.QueryCache())
	documentosGateway := gateway.NewDocumentosGateway(app.Backend(), app.QueryCache())
	legajoGateway := gateway.NewLegajoGateway(app.Backend(), app.QueryCache())

	app.RegisterServices(
		services.NewPersonaService(personasGateway, app.EventPublisher()),
		services.NewDocumentoService(documentosGateway, app.EventPublisher()),
		services.NewLegajoService(legajoGateway),
	)

	cache := app.QueryCache()
	invalidarDocumentos := func(personaID int) {
		ctx := context.Background()
		cache.Invalidate(ctx, fetch.Key("persona-doc", map[string]string{"id_persona": strconv.Itoa(personaID)}))
		cache.Invalidate(ctx, fetch.Key("legajo/estado", map[string]string{"id_persona": strconv.Itoa(personaID)}))
	}
	app.EventPublisher().Subscribe(func(ev services.DocumentoSubidoEvent) {
		invalidarDocumentos(ev.Documento.PersonaID)
	})
	app.EventPublisher().Subscribe(func(ev services.DocumentoVerificadoEvent) {
		invalidarDocumentos(ev.Documento.PersonaID)
	})
	app.EventPublisher().Subscribe(func(ev services.DocumentoEliminadoEvent) {
		// The deleted record no longer carries its owner, drop the whole
		// resource.
		cache.InvalidatePrefix(context.Background(), "persona-doc")
		cache.InvalidatePrefix(context.Background(), "legajo/estado")
	})
	app.EventPublisher().Subscribe(func(ev services.PersonaCreadaEvent) {
		cache.InvalidatePrefix(context.Background(), "personas")
	})
	app.EventPublisher().Subscribe(func(ev services.PersonaActualizadaEvent) {
		cache.InvalidatePrefix(context.Background(), "personas")
	})

	app.RegisterControllers(
		controllers.NewLegajoController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "legajo"
}
