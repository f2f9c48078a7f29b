package application

import (
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/eventbus"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/fetch"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// Controller registers a set of routes under a router. Key must be unique
// across the application, registering the same key twice replaces the
// previous controller.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires a feature area (services, controllers, event subscriptions)
// into the application.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	Backend() *sigeledapi.Client
	QueryCache() *fetch.Cache
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	Websocket() Huber

	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	Services() map[reflect.Type]interface{}
	Service(service interface{}) interface{}

	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...interface{})
}

type ApplicationOptions struct {
	Backend    *sigeledapi.Client
	QueryCache *fetch.Cache
	EventBus   eventbus.EventBus
	Logger     *logrus.Logger
	Huber      Huber
}

func New(opts *ApplicationOptions) Application {
	return &application{
		backend:        opts.Backend,
		queryCache:     opts.QueryCache,
		eventPublisher: opts.EventBus,
		logger:         opts.Logger,
		websocket:      opts.Huber,
		controllers:    make(map[string]Controller),
		services:       make(map[reflect.Type]interface{}),
	}
}

// application with a dynamically extendable service registry
type application struct {
	backend        *sigeledapi.Client
	queryCache     *fetch.Cache
	eventPublisher eventbus.EventBus
	logger         *logrus.Logger
	websocket      Huber
	services       map[reflect.Type]interface{}
	controllers    map[string]Controller
	middleware     []mux.MiddlewareFunc
}

func (app *application) Backend() *sigeledapi.Client {
	return app.backend
}

func (app *application) QueryCache() *fetch.Cache {
	return app.queryCache
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

func (app *application) Websocket() Huber {
	return app.websocket
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) Controllers() []Controller {
	controllers := make([]Controller, 0, len(app.controllers))
	for _, c := range app.controllers {
		controllers = append(controllers, c)
	}
	return controllers
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

// RegisterServices registers a new service in the application by its type
func (app *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

// Service retrieves a service by its type
func (app *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) Services() map[reflect.Type]interface{} {
	return app.services
}
