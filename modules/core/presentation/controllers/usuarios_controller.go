package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/core/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/httpapi"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/middleware"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// User and role administration is admin-only, unlike the rest of the
// management surface.
var rolesAdmin = []string{"admin"}

type UsuariosController struct {
	app      application.Application
	usuarios *services.UsuarioService
	roles    *services.RolService
}

func NewUsuariosController(app application.Application) application.Controller {
	return &UsuariosController{
		app:      app,
		usuarios: app.Service(services.UsuarioService{}).(*services.UsuarioService),
		roles:    app.Service(services.RolService{}).(*services.RolService),
	}
}

func (c *UsuariosController) Key() string {
	return "/users"
}

func (c *UsuariosController) Register(r *mux.Router) {
	users := r.PathPrefix("/users").Subrouter()
	users.Use(middleware.RequireRoles(rolesAdmin...))
	users.HandleFunc("", c.Listar).Methods(http.MethodGet)
	users.HandleFunc("", c.Crear).Methods(http.MethodPost)
	users.HandleFunc("/{id:[0-9]+}", c.Actualizar).Methods(http.MethodPut)

	roles := r.PathPrefix("/roles").Subrouter()
	roles.Use(middleware.RequireRoles(rolesAdmin...))
	roles.HandleFunc("", c.Roles).Methods(http.MethodGet)
	roles.HandleFunc("", c.CrearRol).Methods(http.MethodPost)
	roles.HandleFunc("/{id:[0-9]+}", c.EliminarRol).Methods(http.MethodDelete)
}

func (c *UsuariosController) Listar(w http.ResponseWriter, r *http.Request) {
	usuarios, err := c.usuarios.Listar(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, usuarios)
}

func (c *UsuariosController) Crear(w http.ResponseWriter, r *http.Request) {
	var alta sigeledapi.UsuarioAlta
	if err := json.NewDecoder(r.Body).Decode(&alta); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	usuario, err := c.usuarios.Crear(r.Context(), alta)
	if err != nil {
		if _, esAPI := sigeledapi.AsAPIError(err); !esAPI {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "USUARIO_INVALIDO", err.Error(), nil)
			return
		}
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, usuario)
}

func (c *UsuariosController) Actualizar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	var cambio sigeledapi.UsuarioCambio
	if err := json.NewDecoder(r.Body).Decode(&cambio); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	usuario, err := c.usuarios.Actualizar(r.Context(), id, cambio)
	if err != nil {
		if _, esAPI := sigeledapi.AsAPIError(err); !esAPI {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "USUARIO_INVALIDO", err.Error(), nil)
			return
		}
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, usuario)
}

func (c *UsuariosController) Roles(w http.ResponseWriter, r *http.Request) {
	roles, err := c.roles.Listar(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, roles)
}

func (c *UsuariosController) CrearRol(w http.ResponseWriter, r *http.Request) {
	var alta sigeledapi.RolAlta
	if err := json.NewDecoder(r.Body).Decode(&alta); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	rol, err := c.roles.Crear(r.Context(), alta)
	if err != nil {
		if _, esAPI := sigeledapi.AsAPIError(err); !esAPI {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "ROL_INVALIDO", err.Error(), nil)
			return
		}
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, rol)
}

func (c *UsuariosController) EliminarRol(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "ID_INVALIDO", "identificador inválido", nil)
		return
	}
	if err := c.roles.Eliminar(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"eliminado": id})
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
