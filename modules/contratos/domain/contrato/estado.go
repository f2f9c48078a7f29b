package contrato

import (
	"time"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type Estado string

const (
	EstadoActivo      Estado = "ACTIVO"
	EstadoProximo     Estado = "PROXIMO"
	EstadoFinalizado  Estado = "FINALIZADO"
	EstadoDesconocido Estado = "DESCONOCIDO"
)

// VentanaProximoDias is the fixed expiry window that flags a contract as
// close to finishing.
const VentanaProximoDias = 30

// EstadoAt classifies a contract's lifecycle state at a reference instant.
// Precedence: ACTIVO, then PROXIMO, then FINALIZADO, else DESCONOCIDO.
// PROXIMO gates purely on days to expiry, the start date is not consulted.
func EstadoAt(c sigeledapi.Contrato, now time.Time) Estado {
	inicio := ParseFecha(c.FechaInicio)
	fin := ParseFecha(c.FechaFin)
	ref := Fecha{Time: now, Valida: true}

	if inicio.Valida && !inicio.Time.After(now) && (!fin.Valida || !fin.Time.Before(now)) {
		return EstadoActivo
	}
	if fin.Valida {
		if dias, ok := DaysDiff(ref, fin); ok && dias > 0 && dias <= VentanaProximoDias {
			return EstadoProximo
		}
		if fin.Time.Before(now) {
			return EstadoFinalizado
		}
	}
	return EstadoDesconocido
}

func EstadoActual(c sigeledapi.Contrato) Estado {
	return EstadoAt(c, time.Now())
}

// ComienzaPronto reports whether the contract has a start date still in the
// future. This predicate is deliberately distinct from EstadoAt's PROXIMO
// window and backs the "por comenzar" counter only.
func ComienzaPronto(c sigeledapi.Contrato, now time.Time) bool {
	inicio := ParseFecha(c.FechaInicio)
	return inicio.Valida && inicio.Time.After(now)
}
