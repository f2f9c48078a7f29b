package gateway

import (
	"context"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/fetch"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// DashboardGateway caches the backend's admin counters.
type DashboardGateway struct {
	api   *sigeledapi.Client
	cache *fetch.Cache
}

func NewDashboardGateway(api *sigeledapi.Client, cache *fetch.Cache) *DashboardGateway {
	return &DashboardGateway{api: api, cache: cache}
}

func (g *DashboardGateway) AdminStats(ctx context.Context) (*sigeledapi.AdminStats, error) {
	return fetch.JSON(ctx, g.cache, fetch.Key("dashboard/admin-stats", nil), func(ctx context.Context) (*sigeledapi.AdminStats, error) {
		return g.api.Dashboard.AdminStats(ctx)
	})
}
