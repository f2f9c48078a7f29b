package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/core/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/configuration"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/httpapi"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/middleware"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type AuthController struct {
	app  application.Application
	auth *services.AuthService
}

func NewAuthController(app application.Application) application.Controller {
	return &AuthController{
		app:  app,
		auth: app.Service(services.AuthService{}).(*services.AuthService),
	}
}

func (c *AuthController) Key() string {
	return "/auth"
}

func (c *AuthController) Register(r *mux.Router) {
	router := r.PathPrefix("/auth").Subrouter()
	router.HandleFunc("/login", c.Login).Methods(http.MethodPost)
	router.HandleFunc("/logout", c.Logout).Methods(http.MethodPost)

	me := r.PathPrefix("/auth").Subrouter()
	me.Use(middleware.RequireAuthenticated())
	me.HandleFunc("/me", c.Me).Methods(http.MethodGet)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var cred sigeledapi.Credenciales
	if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JSON_INVALIDO", "cuerpo inválido", nil)
		return
	}
	sess, err := c.auth.Login(r.Context(), cred)
	if err != nil {
		log := composables.UseLogger(r.Context())
		if apiErr, ok := sigeledapi.AsAPIError(err); ok {
			log.WithError(err).Warn("login rejected by backend")
			_ = httpapi.WriteError(w, apiErr.Status, apiErr.Code, apiErr.Message, nil)
			return
		}
		log.WithError(err).Warn("login failed")
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "LOGIN_INVALIDO", "credenciales inválidas", nil)
		return
	}
	http.SetCookie(w, sidCookie(sess.ID, sess.ExpiresAt))
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"usuario": sess.Usuario,
		"expira":  sess.ExpiresAt,
	})
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	if cookie, err := r.Cookie(conf.SidCookieKey); err == nil {
		c.auth.Logout(r.Context(), cookie.Value)
	}
	expired := sidCookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"sesion": "cerrada"})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	sess, _ := composables.UseSession(r.Context())
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"usuario": sess.Usuario,
		"expira":  sess.ExpiresAt,
	})
}

// The backend token never reaches the browser: the cookie carries only the
// opaque session id.
func sidCookie(sid string, expires time.Time) *http.Cookie {
	conf := configuration.Use()
	return &http.Cookie{
		Name:     conf.SidCookieKey,
		Value:    sid,
		Path:     "/",
		Domain:   conf.Domain,
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   conf.GoAppEnvironment == "production",
	}
}
