package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/legajo/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/configuration"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/httpapi"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/middleware"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

var rolesGestion = []string{"admin", "rrhh"}

type LegajoController struct {
	app        application.Application
	personas   *services.PersonaService
	documentos *services.DocumentoService
	legajo     *services.LegajoService
}

func NewLegajoController(app application.Application) application.Controller {
	return &LegajoController{
		app:        app,
		personas:   app.Service(services.PersonaService{}).(*services.PersonaService),
		documentos: app.Service(services.DocumentoService{}).(*services.DocumentoService),
		legajo:     app.Service(services.LegajoService{}).(*services.LegajoService),
	}
}

func (c *LegajoController) Key() string {
	return "/legajo"
}

func (c *LegajoController) Register(r *mux.Router) {
	personas := r.PathPrefix("/personas").Subrouter()
	personas.Use(middleware.RequireRoles(rolesGestion...))
	personas.HandleFunc("", c.BuscarPersonas).Methods(http.MethodGet)
	personas.HandleFunc("", c.CrearPersona).Methods(http.MethodPost)
	personas.HandleFunc("/{id:[0-9]+}", c.Persona).Methods(http.MethodGet)
	personas.HandleFunc("/{id:[0-9]+}", c.ActualizarPersona).Methods(http.MethodPatch)
	personas.HandleFunc("/{id:[0-9]+}/ficha", c.Ficha).Methods(http.MethodGet)

	docs := r.PathPrefix("/persona-doc").Subrouter()
	docs.Use(middleware.RequireAuthenticated())
	docs.HandleFunc("", c.Documentos).Methods(http.MethodGet)
	docs.HandleFunc("", c.SubirDocumento).Methods(http.MethodPost)
	docs.HandleFunc("/{id:[0-9]+}/archivo", c.Archivo).Methods(http.MethodGet)

	verificacion := r.PathPrefix("/persona-doc").Subrouter()
	verificacion.Use(middleware.RequireRoles(rolesGestion...))
	verificacion.HandleFunc("/{id:[0-9]+}", c.VerificarDocumento).Methods(http.MethodPatch)
	verificacion.HandleFunc("/{id:[0-9]+}", c.EliminarDocumento).Methods(http.MethodDelete)

	legajo := r.PathPrefix("/legajo").Subrouter()
	legajo.Use(middleware.RequireAuthenticated())
	legajo.HandleFunc("/{id:[0-9]+}/estado", c.Estado).Methods(http.MethodGet)
}

func (c *LegajoController) BuscarPersonas(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	paginado := composables.UsePaginated(r, conf.PageSize, conf.MaxPageSize)

	personas, total, err := c.personas.Buscar(r.Context(), services.BuscarPersonasParams{
		Q:      r.URL.Query().Get("q"),
		Limit:  paginado.Limit,
		Offset: paginado.Offset,
	})
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"items": personas,
		"total": total,
	})
}

func (c *LegajoController) Persona(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	persona, err := c.personas.Por(r.Context(), id)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, persona)
}

func (c *LegajoController) Ficha(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	ficha, err := c.personas.Ficha(r.Context(), id)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, ficha)
}

func (c *LegajoController) CrearPersona(w http.ResponseWriter, r *http.Request) {
	var alta sigeledapi.PersonaAlta
	if err := json.NewDecoder(r.Body).Decode(&alta); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	creada, err := c.personas.Crear(r.Context(), alta)
	if err != nil {
		if _, esAPI := sigeledapi.AsAPIError(err); !esAPI {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "PERSONA_INVALIDA", err.Error(), nil)
			return
		}
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, creada)
}

func (c *LegajoController) ActualizarPersona(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	var cambio sigeledapi.PersonaAlta
	if err := json.NewDecoder(r.Body).Decode(&cambio); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	actualizada, err := c.personas.Actualizar(r.Context(), id, cambio)
	if err != nil {
		if _, esAPI := sigeledapi.AsAPIError(err); !esAPI {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "PERSONA_INVALIDA", err.Error(), nil)
			return
		}
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, actualizada)
}

func (c *LegajoController) Documentos(w http.ResponseWriter, r *http.Request) {
	personaID, err := strconv.Atoi(r.URL.Query().Get("id_persona"))
	if err != nil || personaID <= 0 {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "id_persona inválido", nil)
		return
	}
	docs, err := c.documentos.PorPersona(r.Context(), personaID)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, docs)
}

func (c *LegajoController) SubirDocumento(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	if err := r.ParseMultipartForm(conf.MaxUploadSize); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ARCHIVO_INVALIDO", "formulario multipart inválido", nil)
		return
	}
	personaID, err := strconv.Atoi(r.FormValue("id_persona"))
	if err != nil || personaID <= 0 {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "id_persona inválido", nil)
		return
	}
	archivo, header, err := r.FormFile("archivo")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ARCHIVO_INVALIDO", "falta el archivo", nil)
		return
	}
	defer func() { _ = archivo.Close() }()

	doc, err := c.documentos.Subir(r.Context(), personaID, r.FormValue("tipo_documento"), header.Filename, archivo)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, doc)
}

func (c *LegajoController) VerificarDocumento(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	var cambio sigeledapi.DocumentoVerificacion
	if err := json.NewDecoder(r.Body).Decode(&cambio); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	doc, err := c.documentos.ActualizarEstado(r.Context(), id, cambio)
	if err != nil {
		if _, esAPI := sigeledapi.AsAPIError(err); !esAPI {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VERIFICACION_INVALIDA", err.Error(), nil)
			return
		}
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, doc)
}

func (c *LegajoController) EliminarDocumento(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	if err := c.documentos.Eliminar(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"eliminado": id})
}

func (c *LegajoController) Archivo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	descarga, err := c.documentos.Archivo(r.Context(), id)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", descarga.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+descarga.Nombre+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(descarga.Datos)
}

func (c *LegajoController) Estado(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	estado, err := c.legajo.Estado(r.Context(), id)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, estado)
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
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
