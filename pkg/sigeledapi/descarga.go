package sigeledapi

import (
	"mime"
	"path/filepath"
	"strings"
)

// Descarga is a downloadable binary produced by the backend (contract
// exports, report PDFs). The gateway streams it through untouched.
type Descarga struct {
	Nombre      string
	ContentType string
	Datos       []byte
}

func (d *Descarga) Extension() string {
	return strings.TrimPrefix(filepath.Ext(d.Nombre), ".")
}

func filenameFromDisposition(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	name := params["filename"]
	// Reject path manipulation in backend-supplied names.
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}
