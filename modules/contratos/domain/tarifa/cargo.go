package tarifa

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/domain/contrato"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// CargoKey identifies one accumulated bucket: profile plus cargo code.
type CargoKey struct {
	IDPerfil    int
	CodigoCargo string
}

type CargoStats struct {
	HorasSemanales  decimal.Decimal
	SubtotalMensual decimal.Decimal

	Contratos        map[int]struct{}
	ContratosActivos map[int]struct{}
	Periodos         map[string]struct{}

	InicioMin contrato.Fecha
	FinMax    contrato.Fecha
}

func newCargoStats() *CargoStats {
	return &CargoStats{
		HorasSemanales:   decimal.Zero,
		SubtotalMensual:  decimal.Zero,
		Contratos:        make(map[int]struct{}),
		ContratosActivos: make(map[int]struct{}),
		Periodos:         make(map[string]struct{}),
	}
}

// SubtotalItem is the monthly amount an item contributes: the stored
// subtotal when present, else horas_semanales * 4 * monto_hora. Items with
// no usable numbers contribute zero.
func SubtotalItem(item sigeledapi.Item) decimal.Decimal {
	if sub, ok := item.SubtotalMensual.Decimal(); ok {
		return sub
	}
	horas, okHoras := item.HorasSemanales.Decimal()
	monto, okMonto := item.MontoHora.Decimal()
	if !okHoras || !okMonto {
		return decimal.Zero
	}
	return horas.Mul(decimal.NewFromInt(4)).Mul(monto)
}

// AcumularCargos folds every contract item into per-(perfil,cargo) stats.
// The active subset is decided by the lifecycle classifier at the reference
// instant.
func AcumularCargos(contratos []sigeledapi.Contrato, now time.Time) map[CargoKey]*CargoStats {
	stats := make(map[CargoKey]*CargoStats)
	for _, c := range contratos {
		estado := contrato.EstadoAt(c, now)
		inicio := contrato.ParseFecha(c.FechaInicio)
		fin := contrato.ParseFecha(c.FechaFin)

		for _, item := range c.ItemsNormalizados() {
			key := CargoKey{IDPerfil: item.IDPerfil, CodigoCargo: item.CodigoCargo}
			s, ok := stats[key]
			if !ok {
				s = newCargoStats()
				stats[key] = s
			}

			s.HorasSemanales = s.HorasSemanales.Add(item.HorasSemanales.DecimalOrZero())
			s.SubtotalMensual = s.SubtotalMensual.Add(SubtotalItem(item))

			s.Contratos[c.ID] = struct{}{}
			if estado == contrato.EstadoActivo {
				s.ContratosActivos[c.ID] = struct{}{}
			}
			if c.PeriodoDescripcion != "" {
				s.Periodos[c.PeriodoDescripcion] = struct{}{}
			}
			if inicio.Valida && (!s.InicioMin.Valida || inicio.Time.Before(s.InicioMin.Time)) {
				s.InicioMin = inicio
			}
			if fin.Valida && (!s.FinMax.Valida || fin.Time.After(s.FinMax.Time)) {
				s.FinMax = fin
			}
		}
	}
	return stats
}

// Resumen is the display-ready roll-up over profiles and contracts,
// recomputed fresh per request.
type Resumen struct {
	PerfilesConCargo  int
	TotalCargos       int
	PromedioMontoHora decimal.Decimal
	Carreras          []string
	Cargos            map[CargoKey]*CargoStats
}

func Resumir(perfiles []sigeledapi.Perfil, contratos []sigeledapi.Contrato, now time.Time) Resumen {
	conCargo := PerfilesConCargo(perfiles)
	totalCargos := 0
	for _, p := range conCargo {
		totalCargos += len(p.Tarifas)
	}
	return Resumen{
		PerfilesConCargo:  len(conCargo),
		TotalCargos:       totalCargos,
		PromedioMontoHora: PromedioMontoHora(conCargo),
		Carreras:          CarrerasCoordinadas(contratos),
		Cargos:            AcumularCargos(contratos, now),
	}
}
