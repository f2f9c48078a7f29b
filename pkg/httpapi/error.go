package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteUnauthenticated rejects a request that carries no resolvable session.
// The attempted path travels in meta so the SPA can come back after login.
func WriteUnauthenticated(w http.ResponseWriter, from string) error {
	return WriteError(w, http.StatusUnauthorized, "NO_AUTENTICADO", "sesión no iniciada o expirada", map[string]string{
		"from": from,
	})
}

// WriteForbidden rejects an authenticated request whose roles do not cover
// the route. Mirrors the dashboard "forbidden" deep link contract.
func WriteForbidden(w http.ResponseWriter, from string) error {
	return WriteError(w, http.StatusForbidden, "ACCESO_DENEGADO", "no tiene permisos para acceder a este recurso", map[string]string{
		"from": from,
	})
}
