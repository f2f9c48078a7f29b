package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/dashboard/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/httpapi"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/middleware"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

var rolesGestion = []string{"admin", "rrhh"}

type DashboardController struct {
	app            application.Application
	stats          *services.StatsService
	export         *services.ExportService
	notificaciones *services.NotificacionService
	chat           *services.ChatService
	reportes       *services.ReporteService
}

func NewDashboardController(app application.Application) application.Controller {
	return &DashboardController{
		app:            app,
		stats:          app.Service(services.StatsService{}).(*services.StatsService),
		export:         app.Service(services.ExportService{}).(*services.ExportService),
		notificaciones: app.Service(services.NotificacionService{}).(*services.NotificacionService),
		chat:           app.Service(services.ChatService{}).(*services.ChatService),
		reportes:       app.Service(services.ReporteService{}).(*services.ReporteService),
	}
}

func (c *DashboardController) Key() string {
	return "/dashboard"
}

func (c *DashboardController) Register(r *mux.Router) {
	r.Handle("/ws", c.app.Websocket()).Methods(http.MethodGet)

	gestion := r.PathPrefix("/dashboard").Subrouter()
	gestion.Use(middleware.RequireRoles(rolesGestion...))
	gestion.HandleFunc("/admin-stats", c.AdminStats).Methods(http.MethodGet)
	gestion.HandleFunc("/resumen/export", c.ExportarResumen).Methods(http.MethodGet)

	notif := r.PathPrefix("/notificaciones").Subrouter()
	notif.Use(middleware.RequireAuthenticated())
	notif.HandleFunc("", c.Notificaciones).Methods(http.MethodGet)
	notif.HandleFunc("/{id:[0-9]+}/leida", c.MarcarLeida).Methods(http.MethodPatch)
	notif.HandleFunc("/{id:[0-9]+}", c.EliminarNotificacion).Methods(http.MethodDelete)

	notifGestion := r.PathPrefix("/notificaciones").Subrouter()
	notifGestion.Use(middleware.RequireRoles(rolesGestion...))
	notifGestion.HandleFunc("", c.CrearNotificacion).Methods(http.MethodPost)

	chat := r.PathPrefix("/ai-chat").Subrouter()
	chat.Use(middleware.RequireAuthenticated())
	chat.HandleFunc("/sesiones", c.ChatSesiones).Methods(http.MethodGet)
	chat.HandleFunc("/sesiones", c.CrearChatSesion).Methods(http.MethodPost)
	chat.HandleFunc("/sesiones/{id:[0-9]+}", c.RenombrarChatSesion).Methods(http.MethodPut)
	chat.HandleFunc("/sesiones/{id:[0-9]+}", c.EliminarChatSesion).Methods(http.MethodDelete)
	chat.HandleFunc("/sesiones/{id:[0-9]+}/mensajes", c.ChatMensajes).Methods(http.MethodGet)
	chat.HandleFunc("/sesiones/{id:[0-9]+}/mensajes", c.EnviarChatMensaje).Methods(http.MethodPost)

	reportes := r.PathPrefix("/reportes").Subrouter()
	reportes.Use(middleware.RequireRoles(rolesGestion...))
	reportes.HandleFunc("/escalafonario", c.Escalafonario).Methods(http.MethodGet)
	reportes.HandleFunc("/{nombre}/pdf", c.ReportePDF).Methods(http.MethodGet)
	reportes.HandleFunc("/{nombre}", c.ReporteJSON).Methods(http.MethodGet)
}

// AdminStats degrades per source instead of failing the whole view, so the
// dashboard always renders with whatever the backend could answer.
func (c *DashboardController) AdminStats(w http.ResponseWriter, r *http.Request) {
	_ = httpapi.WriteJSON(w, http.StatusOK, c.stats.Vista(r.Context()))
}

func (c *DashboardController) ExportarResumen(w http.ResponseWriter, r *http.Request) {
	descarga, err := c.export.ResumenXLSX(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeDescarga(w, descarga)
}

func (c *DashboardController) Notificaciones(w http.ResponseWriter, r *http.Request) {
	items, err := c.notificaciones.Listar(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, items)
}

func (c *DashboardController) CrearNotificacion(w http.ResponseWriter, r *http.Request) {
	var alta sigeledapi.NotificacionAlta
	if err := json.NewDecoder(r.Body).Decode(&alta); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	creada, err := c.notificaciones.Crear(r.Context(), alta)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, creada)
}

func (c *DashboardController) MarcarLeida(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	if err := c.notificaciones.MarcarLeida(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"leida": id})
}

func (c *DashboardController) EliminarNotificacion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	if err := c.notificaciones.Eliminar(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"eliminada": id})
}

func (c *DashboardController) ChatSesiones(w http.ResponseWriter, r *http.Request) {
	sesiones, err := c.chat.Sesiones(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, sesiones)
}

func (c *DashboardController) CrearChatSesion(w http.ResponseWriter, r *http.Request) {
	var alta sigeledapi.ChatSesionAlta
	if err := json.NewDecoder(r.Body).Decode(&alta); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	sesion, err := c.chat.CrearSesion(r.Context(), alta)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, sesion)
}

func (c *DashboardController) RenombrarChatSesion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	var alta sigeledapi.ChatSesionAlta
	if err := json.NewDecoder(r.Body).Decode(&alta); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	if err := c.chat.RenombrarSesion(r.Context(), id, alta.Titulo); err != nil {
		if _, esAPI := sigeledapi.AsAPIError(err); !esAPI {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "SESION_INVALIDA", err.Error(), nil)
			return
		}
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"renombrada": id})
}

func (c *DashboardController) EliminarChatSesion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	if err := c.chat.EliminarSesion(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"eliminada": id})
}

func (c *DashboardController) ChatMensajes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	mensajes, err := c.chat.Mensajes(r.Context(), id)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mensajes)
}

func (c *DashboardController) EnviarChatMensaje(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	var alta sigeledapi.ChatMensajeAlta
	if err := json.NewDecoder(r.Body).Decode(&alta); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	mensaje, err := c.chat.EnviarMensaje(r.Context(), id, alta)
	if err != nil {
		if _, esAPI := sigeledapi.AsAPIError(err); !esAPI {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "MENSAJE_INVALIDO", err.Error(), nil)
			return
		}
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, mensaje)
}

func (c *DashboardController) ReporteJSON(w http.ResponseWriter, r *http.Request) {
	nombre := mux.Vars(r)["nombre"]
	datos, err := c.reportes.JSON(r.Context(), nombre, r.URL.Query())
	if err != nil {
		if _, esAPI := sigeledapi.AsAPIError(err); !esAPI {
			_ = httpapi.WriteError(w, http.StatusNotFound, "REPORTE_DESCONOCIDO", err.Error(), nil)
			return
		}
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, datos)
}

func (c *DashboardController) ReportePDF(w http.ResponseWriter, r *http.Request) {
	nombre := mux.Vars(r)["nombre"]
	params := r.URL.Query()
	params.Del("format")
	descarga, err := c.reportes.PDF(r.Context(), nombre, params)
	if err != nil {
		if _, esAPI := sigeledapi.AsAPIError(err); !esAPI {
			_ = httpapi.WriteError(w, http.StatusNotFound, "REPORTE_DESCONOCIDO", err.Error(), nil)
			return
		}
		writeBackendError(w, r, err)
		return
	}
	writeDescarga(w, descarga)
}

func (c *DashboardController) Escalafonario(w http.ResponseWriter, r *http.Request) {
	descarga, err := c.reportes.Escalafonario(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	writeDescarga(w, descarga)
}

func pathID(r *http.Request, key string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[key])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

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
