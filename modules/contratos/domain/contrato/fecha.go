package contrato

import (
	"strings"
	"time"
)

const msPerDay = 86_400_000

// Fecha is a backend date-like value. Backends emit contract dates as plain
// calendar dates, timestamped literals or arbitrary strings; parsing is total
// and an unparseable value is simply an invalid Fecha.
type Fecha struct {
	Time   time.Time
	Valida bool
}

func FechaInvalida() Fecha {
	return Fecha{}
}

// ParseFecha accepts:
//   - "" → invalid
//   - "YYYY-MM-DD" → local calendar date, not UTC-shifted
//   - "YYYY-MM-DD HH:MM:SS" → the space substituted with "T", parsed local
//   - anything else → RFC3339, then RFC3339 without zone
func ParseFecha(raw string) Fecha {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" {
		return FechaInvalida()
	}

	if len(s) == 10 {
		if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
			return Fecha{Time: t, Valida: true}
		}
	}

	if len(s) == 19 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Fecha{Time: t, Valida: true}
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return Fecha{Time: t, Valida: true}
	}
	return FechaInvalida()
}

// DaysDiff is the whole-day distance from one date to another, the
// millisecond difference divided by 86 400 000 and truncated toward zero.
// ok is false when either side is invalid.
func DaysDiff(from, to Fecha) (int, bool) {
	if !from.Valida || !to.Valida {
		return 0, false
	}
	return int(to.Time.Sub(from.Time).Milliseconds() / msPerDay), true
}
