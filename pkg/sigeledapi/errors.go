package sigeledapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// APIError carries the backend's structured error payload for non-2xx
// responses. Callers own user-facing messaging.
type APIError struct {
	Status  int
	Code    string
	Message string
	Raw     []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("sigeled backend: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("sigeled backend: %d %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) IsNotFound() bool     { return e.Status == http.StatusNotFound }
func (e *APIError) IsUnauthorized() bool { return e.Status == http.StatusUnauthorized }

// AsAPIError unwraps err into an *APIError when the failure originated in a
// backend response rather than in transport.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Raw: body}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detalle string `json:"detalle"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Error != "":
			apiErr.Message = payload.Error
		case payload.Detalle != "":
			apiErr.Message = payload.Detalle
		}
		apiErr.Code = payload.Code
	}
	if apiErr.Message == "" {
		apiErr.Message = truncarMensaje(strings.TrimSpace(string(body)), 256)
	}
	return apiErr
}

// truncarMensaje cuts on a rune boundary so accented backend text never ends
// in a broken byte sequence.
func truncarMensaje(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
