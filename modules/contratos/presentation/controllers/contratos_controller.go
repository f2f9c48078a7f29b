package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/presentation/viewmodels"
	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/httpapi"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/middleware"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// Roles allowed to manage contracts and rates.
var rolesGestion = []string{"admin", "rrhh"}

type ContratosController struct {
	app       application.Application
	contratos *services.ContratoService
	tarifas   *services.TarifaService
	resumen   *services.ResumenService
	basePath  string
}

func NewContratosController(app application.Application) application.Controller {
	return &ContratosController{
		app:       app,
		contratos: app.Service(services.ContratoService{}).(*services.ContratoService),
		tarifas:   app.Service(services.TarifaService{}).(*services.TarifaService),
		resumen:   app.Service(services.ResumenService{}).(*services.ResumenService),
		basePath:  "/contratos",
	}
}

func (c *ContratosController) Key() string {
	return c.basePath
}

func (c *ContratosController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireAuthenticated())
	router.HandleFunc("/mis-contratos", c.MisContratos).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/export", c.Exportar).Methods(http.MethodGet)

	gestion := r.PathPrefix(c.basePath).Subrouter()
	gestion.Use(middleware.RequireRoles(rolesGestion...))
	gestion.HandleFunc("", c.Listar).Methods(http.MethodGet)
	gestion.HandleFunc("/empleados", c.Empleados).Methods(http.MethodGet)
	gestion.HandleFunc("/resumen", c.Resumen).Methods(http.MethodGet)
	gestion.HandleFunc("/profesor/crear", c.CrearProfesor).Methods(http.MethodPost)
	gestion.HandleFunc("/{id:[0-9]+}", c.Por).Methods(http.MethodGet)
	gestion.HandleFunc("/{id:[0-9]+}", c.Eliminar).Methods(http.MethodDelete)
	gestion.HandleFunc("/perfil-tarifas", c.PerfilTarifas).Methods(http.MethodGet)
	gestion.HandleFunc("/perfil-tarifas/{id:[0-9]+}", c.ActualizarTarifa).Methods(http.MethodPut)
}

func (c *ContratosController) Listar(w http.ResponseWriter, r *http.Request) {
	contratos, err := c.contratos.Todos(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewContratoVistaList(contratos))
}

func (c *ContratosController) MisContratos(w http.ResponseWriter, r *http.Request) {
	contratos, err := c.contratos.MisContratos(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewContratoVistaList(contratos))
}

func (c *ContratosController) Empleados(w http.ResponseWriter, r *http.Request) {
	contratos, err := c.contratos.Empleados(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewContratoVistaList(contratos))
}

func (c *ContratosController) Por(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	contrato, err := c.contratos.Por(r.Context(), id)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewContratoVista(*contrato))
}

func (c *ContratosController) Resumen(w http.ResponseWriter, r *http.Request) {
	resumen, err := c.resumen.Resumen(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewResumenVista(resumen))
}

func (c *ContratosController) CrearProfesor(w http.ResponseWriter, r *http.Request) {
	var alta sigeledapi.ContratoProfesorAlta
	if err := json.NewDecoder(r.Body).Decode(&alta); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	creado, err := c.contratos.CrearProfesor(r.Context(), alta)
	if err != nil {
		if _, esAPI := sigeledapi.AsAPIError(err); !esAPI {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "CONTRATO_INVALIDO", err.Error(), nil)
			return
		}
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, creado)
}

func (c *ContratosController) Eliminar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	if err := c.contratos.Eliminar(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"eliminado": id})
}

func (c *ContratosController) Exportar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	formato := r.URL.Query().Get("format")
	if formato == "" {
		formato = "pdf"
	}
	descarga, err := c.contratos.Exportar(r.Context(), id, formato)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeDescarga(w, descarga)
}

func (c *ContratosController) PerfilTarifas(w http.ResponseWriter, r *http.Request) {
	perfiles, err := c.tarifas.Perfiles(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, perfiles)
}

func (c *ContratosController) ActualizarTarifa(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	var cambio sigeledapi.TarifaActualizacion
	if err := json.NewDecoder(r.Body).Decode(&cambio); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	actualizada, err := c.tarifas.Actualizar(r.Context(), id, cambio)
	if err != nil {
		if _, esAPI := sigeledapi.AsAPIError(err); !esAPI {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "TARIFA_INVALIDA", err.Error(), nil)
			return
		}
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewTarifaVista(*actualizada))
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeBackendError maps an upstream failure onto the gateway's envelope,
// reusing the backend's status and structured message when present.
func writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	log := composables.UseLogger(r.Context())
	if apiErr, ok := sigeledapi.AsAPIError(err); ok {
		log.WithError(err).Warn("backend request failed")
		_ = httpapi.WriteError(w, apiErr.Status, apiErr.Code, apiErr.Message, nil)
		return
	}
	log.WithError(err).Error("backend request failed")
	_ = httpapi.WriteError(w, http.StatusBadGateway, "BACKEND_NO_DISPONIBLE", "el servicio SIGELED no respondió", nil)
}

func writeDescarga(w http.ResponseWriter, d *sigeledapi.Descarga) {
	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+d.Nombre+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(d.Datos)
}
