package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/configuration"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/constants"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/httpapi"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/metrics"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/middleware"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Sessions      middleware.SessionResolver
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	// Core middleware stack with tracing capabilities
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, middleware.DefaultLoggerOptions()),

		middleware.TracedMiddleware("application"),
		middleware.Provide(constants.AppKey, app),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(options.Configuration.AllowedOrigins...),
	}

	if options.Configuration.Prometheus.Enabled {
		middlewares = append(middlewares,
			middleware.TracedMiddleware("metrics"),
			metrics.CollectRequests(),
		)
	}

	// Add rate limiting middleware if enabled
	if options.Configuration.RateLimit.Enabled {
		var store limiter.Store
		var err error

		switch options.Configuration.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(options.Configuration.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: options.Configuration.RateLimit.GlobalRPS,
				Period:            time.Second,
				Store:             store,
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(),
	)

	if options.Sessions != nil {
		middlewares = append(middlewares,
			middleware.TracedMiddleware("authorization"),
			middleware.Authorize(options.Sessions),
		)
	}

	app.RegisterMiddleware(middlewares...)

	serverInstance := server.NewHTTPServer(
		app,
		notFound(),
		methodNotAllowed(),
	)
	return serverInstance, nil
}

func notFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NO_ENCONTRADO", "recurso no encontrado", map[string]string{
			"path": r.URL.Path,
		})
	})
}

func methodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METODO_NO_PERMITIDO", "método no permitido", map[string]string{
			"path":   r.URL.Path,
			"method": r.Method,
		})
	})
}
