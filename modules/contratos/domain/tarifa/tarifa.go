package tarifa

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// PerfilProfesorID is the well-known profile id for the profesor profile.
const PerfilProfesorID = 1

// EsPerfilProfesor detects the profesor profile by name substring, code or
// the well-known id.
func EsPerfilProfesor(p sigeledapi.Perfil) bool {
	if strings.Contains(strings.ToLower(p.Nombre), "profesor") {
		return true
	}
	if strings.EqualFold(p.Codigo, "prof") {
		return true
	}
	return p.ID == PerfilProfesorID
}

// PerfilesConCargo keeps the non-profesor profiles that carry at least one
// tarifa.
func PerfilesConCargo(perfiles []sigeledapi.Perfil) []sigeledapi.Perfil {
	out := make([]sigeledapi.Perfil, 0, len(perfiles))
	for _, p := range perfiles {
		if EsPerfilProfesor(p) {
			continue
		}
		if len(p.Tarifas) == 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PromedioMontoHora averages the hourly rate over every tarifa of the given
// profiles, skipping malformed amounts. Zero when nothing qualifies.
func PromedioMontoHora(perfiles []sigeledapi.Perfil) decimal.Decimal {
	sum := decimal.Zero
	count := 0
	for _, p := range perfiles {
		for _, t := range p.Tarifas {
			monto, ok := t.MontoHora.Decimal()
			if !ok {
				continue
			}
			sum = sum.Add(monto)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

const (
	tipoItemCoordinacion    = "COORDINACION"
	cargoCoordinadorCarrera = "COORDINADOR_CARRERA"
)

// Ordered most-specific first: "de la X", "de el X", then bare "de X".
var carreraPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)de la (.+)$`),
	regexp.MustCompile(`(?i)de el (.+)$`),
	regexp.MustCompile(`(?i)de (.+)$`),
}

// CarreraDesdeDescripcion extracts the coordinated program name from the
// free-text activity description, falling back to the raw text.
func CarreraDesdeDescripcion(descripcion string) string {
	descripcion = strings.TrimSpace(descripcion)
	for _, pattern := range carreraPatterns {
		if m := pattern.FindStringSubmatch(descripcion); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return descripcion
}

// CarrerasCoordinadas collects the distinct program names coordinated across
// the given contracts, in first-seen order.
func CarrerasCoordinadas(contratos []sigeledapi.Contrato) []string {
	seen := make(map[string]struct{})
	var carreras []string
	for _, c := range contratos {
		for _, item := range c.ItemsNormalizados() {
			if item.TipoItem != tipoItemCoordinacion || item.CodigoCargo != cargoCoordinadorCarrera {
				continue
			}
			carrera := CarreraDesdeDescripcion(item.DescripcionActividad)
			if carrera == "" {
				continue
			}
			if _, ok := seen[carrera]; ok {
				continue
			}
			seen[carrera] = struct{}{}
			carreras = append(carreras, carrera)
		}
	}
	return carreras
}
