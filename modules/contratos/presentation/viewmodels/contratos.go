package viewmodels

import (
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// Amounts render in Argentine pesos for the dashboard.
const currency = money.ARS

func formatMonto(d decimal.Decimal) string {
	return money.New(d.Shift(2).IntPart(), currency).Display()
}

type ContratoVista struct {
	ID                 int               `json:"id_contrato"`
	PersonaID          int               `json:"id_persona"`
	FechaInicio        string            `json:"fecha_inicio"`
	FechaFin           string            `json:"fecha_fin"`
	Estado             string            `json:"estado"`
	PeriodoDescripcion string            `json:"periodo_descripcion"`
	HorasSemanales     float64           `json:"horas_semanales"`
	Items              []sigeledapi.Item `json:"items"`
}

func NewContratoVista(c services.ContratoConEstado) ContratoVista {
	return ContratoVista{
		ID:                 c.ID,
		PersonaID:          c.PersonaID,
		FechaInicio:        c.FechaInicio,
		FechaFin:           c.FechaFin,
		Estado:             string(c.Estado),
		PeriodoDescripcion: c.PeriodoDescripcion,
		HorasSemanales:     c.HorasSemanales.Float64(),
		Items:              c.ItemsNormalizados(),
	}
}

func NewContratoVistaList(contratos []services.ContratoConEstado) []ContratoVista {
	out := make([]ContratoVista, 0, len(contratos))
	for _, c := range contratos {
		out = append(out, NewContratoVista(c))
	}
	return out
}

type CargoVista struct {
	IDPerfil           int      `json:"id_perfil"`
	CodigoCargo        string   `json:"codigo_cargo"`
	HorasSemanales     float64  `json:"horas_semanales"`
	SubtotalMensual    float64  `json:"subtotal_mensual"`
	SubtotalFormateado string   `json:"subtotal_formateado"`
	TotalContratos     int      `json:"total_contratos"`
	ContratosActivos   int      `json:"contratos_activos"`
	Periodos           []string `json:"periodos"`
	FechaInicioMinima  string   `json:"fecha_inicio_minima,omitempty"`
	FechaFinMaxima     string   `json:"fecha_fin_maxima,omitempty"`
}

type ResumenVista struct {
	TotalContratos       int          `json:"total_contratos"`
	ContratosActivos     int          `json:"contratos_activos"`
	ContratosProximos    int          `json:"contratos_proximos"`
	ContratosPorComenzar int          `json:"contratos_por_comenzar"`
	ContratosFinalizados int          `json:"contratos_finalizados"`
	PerfilesConCargo     int          `json:"perfiles_con_cargo"`
	TotalCargos          int          `json:"total_cargos"`
	PromedioMontoHora    float64      `json:"promedio_monto_hora"`
	PromedioFormateado   string       `json:"promedio_formateado"`
	Carreras             []string     `json:"carreras_coordinadas"`
	Cargos               []CargoVista `json:"cargos"`
}

func NewResumenVista(r *services.ResumenGeneral) ResumenVista {
	promedio, _ := r.PromedioMontoHora.Float64()
	vista := ResumenVista{
		TotalContratos:       r.TotalContratos,
		ContratosActivos:     r.ContratosActivos,
		ContratosProximos:    r.ContratosProximos,
		ContratosPorComenzar: r.ContratosPorComenzar,
		ContratosFinalizados: r.ContratosFinalizados,
		PerfilesConCargo:     r.PerfilesConCargo,
		TotalCargos:          r.TotalCargos,
		PromedioMontoHora:    promedio,
		PromedioFormateado:   formatMonto(r.PromedioMontoHora),
		Carreras:             r.Carreras,
		Cargos:               make([]CargoVista, 0, len(r.Cargos)),
	}
	for key, stats := range r.Cargos {
		cargo := CargoVista{
			IDPerfil:           key.IDPerfil,
			CodigoCargo:        key.CodigoCargo,
			SubtotalFormateado: formatMonto(stats.SubtotalMensual),
			TotalContratos:     len(stats.Contratos),
			ContratosActivos:   len(stats.ContratosActivos),
			Periodos:           sortedKeys(stats.Periodos),
		}
		cargo.HorasSemanales, _ = stats.HorasSemanales.Float64()
		cargo.SubtotalMensual, _ = stats.SubtotalMensual.Float64()
		if stats.InicioMin.Valida {
			cargo.FechaInicioMinima = stats.InicioMin.Time.Format("2006-01-02")
		}
		if stats.FinMax.Valida {
			cargo.FechaFinMaxima = stats.FinMax.Time.Format("2006-01-02")
		}
		vista.Cargos = append(vista.Cargos, cargo)
	}
	sort.Slice(vista.Cargos, func(i, j int) bool {
		if vista.Cargos[i].IDPerfil != vista.Cargos[j].IDPerfil {
			return vista.Cargos[i].IDPerfil < vista.Cargos[j].IDPerfil
		}
		return vista.Cargos[i].CodigoCargo < vista.Cargos[j].CodigoCargo
	})
	return vista
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// TarifaVista adds the formatted amount next to the raw rate.
type TarifaVista struct {
	sigeledapi.Tarifa
	MontoFormateado string `json:"monto_formateado"`
}

func NewTarifaVista(t sigeledapi.Tarifa) TarifaVista {
	return TarifaVista{
		Tarifa:          t,
		MontoFormateado: formatMonto(t.MontoHora.DecimalOrZero()),
	}
}
