package legajo

import (
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// Document verification states as emitted by the backend.
const (
	VerificacionPendiente  = "PENDIENTE"
	VerificacionVerificado = "VERIFICADO"
	VerificacionRechazado  = "RECHAZADO"
)

// The checklist has five flags; each one completed is worth 20%.
const porcentajePorItem = 20

// Completitud derives the personnel-file completeness percentage from the
// backend checklist.
func Completitud(estado sigeledapi.LegajoEstado) int {
	total := 0
	for _, ok := range flags(estado) {
		if ok {
			total += porcentajePorItem
		}
	}
	return total
}

// Completo reports a fully assembled personnel file.
func Completo(estado sigeledapi.LegajoEstado) bool {
	return Completitud(estado) == 100
}

// ItemsPendientes names the checklist items still missing, in checklist
// order.
func ItemsPendientes(estado sigeledapi.LegajoEstado) []string {
	nombres := []string{"persona", "identificacion", "documentos", "domicilio", "titulos"}
	var pendientes []string
	for i, ok := range flags(estado) {
		if !ok {
			pendientes = append(pendientes, nombres[i])
		}
	}
	return pendientes
}

func flags(estado sigeledapi.LegajoEstado) [5]bool {
	return [5]bool{
		estado.OkPersona.Bool(),
		estado.OkIdent.Bool(),
		estado.OkDocs.Bool(),
		estado.OkDomicilio.Bool(),
		estado.OkTitulos.Bool(),
	}
}
