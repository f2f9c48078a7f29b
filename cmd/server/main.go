package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amarillaRodrigo/sigeled-own-sub002/internal/server"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/core/infrastructure/session"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/configuration"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/eventbus"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/fetch"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/logging"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/metrics"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		cleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer cleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	backend, err := sigeledapi.New(sigeledapi.Config{
		BaseURL: conf.Backend.BaseURL,
		Timeout: conf.Backend.Timeout,
		Tokens:  composables.SessionTokenSource{},
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("failed to configure backend client: %v", err)
	}

	app := application.New(&application.ApplicationOptions{
		Backend:    backend,
		QueryCache: fetch.NewCache(queryStore(conf, logger), conf.Cache.TTL, logger),
		EventBus:   eventbus.NewEventPublisher(logger),
		Logger:     logger,
		Huber: application.NewHub(&application.HuberOptions{
			Logger: logger,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}),
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	sesiones := app.Service(session.Store{}).(*session.Store)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go sesiones.RunCleanup(ctx, 15*time.Minute)

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Sessions:      sesiones,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	go func() {
		log.Printf("Listening on: %s\n", conf.SocketAddress)
		if err := serverInstance.Start(conf.SocketAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := serverInstance.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	configuration.Use().Unload()
}

// queryStore picks the shared cache backend, falling back to process-local
// memory when redis is unreachable.
func queryStore(conf *configuration.Configuration, logger *logrus.Logger) fetch.Store {
	if conf.Cache.Storage == "redis" {
		store, err := fetch.NewRedisStore(conf.Cache.RedisURL)
		if err == nil {
			return store
		}
		logger.Warnf("query cache: redis unavailable (%v), using memory store", err)
	}
	return fetch.NewMemoryStore()
}
