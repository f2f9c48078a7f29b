package modules

import (
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/core"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/dashboard"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/legajo"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
)

// BuiltInModules in registration order: dashboard composes services the
// contratos module registers, so it goes last.
var BuiltInModules = []application.Module{
	core.NewModule(),
	contratos.NewModule(),
	legajo.NewModule(),
	dashboard.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
