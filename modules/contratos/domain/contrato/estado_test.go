package contrato

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

func fechaLocal(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestParseFecha(t *testing.T) {
	t.Run("calendar date is local", func(t *testing.T) {
		f := ParseFecha("2024-03-15")
		require.True(t, f.Valida)
		assert.Equal(t, fechaLocal(2024, time.March, 15), f.Time)
	})

	t.Run("space separated timestamp", func(t *testing.T) {
		f := ParseFecha("2024-03-15 10:30:00")
		require.True(t, f.Valida)
		assert.Equal(t, time.Date(2024, time.March, 15, 10, 30, 0, 0, time.Local), f.Time)
	})

	t.Run("rfc3339", func(t *testing.T) {
		f := ParseFecha("2024-03-15T10:30:00Z")
		require.True(t, f.Valida)
		assert.Equal(t, time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC), f.Time.UTC())
	})

	t.Run("garbage and empty are invalid", func(t *testing.T) {
		assert.False(t, ParseFecha("").Valida)
		assert.False(t, ParseFecha("null").Valida)
		assert.False(t, ParseFecha("mañana").Valida)
		assert.False(t, ParseFecha("15/03/2024").Valida)
	})
}

func TestDaysDiff(t *testing.T) {
	a := Fecha{Time: fechaLocal(2024, time.January, 1), Valida: true}
	b := Fecha{Time: fechaLocal(2024, time.January, 31), Valida: true}

	d, ok := DaysDiff(a, b)
	require.True(t, ok)
	assert.Equal(t, 30, d)

	// antisymmetric
	inv, ok := DaysDiff(b, a)
	require.True(t, ok)
	assert.Equal(t, -d, inv)

	// partial days truncate toward zero
	c := Fecha{Time: a.Time.Add(36 * time.Hour), Valida: true}
	d, ok = DaysDiff(a, c)
	require.True(t, ok)
	assert.Equal(t, 1, d)
	d, ok = DaysDiff(c, a)
	require.True(t, ok)
	assert.Equal(t, -1, d)

	_, ok = DaysDiff(FechaInvalida(), b)
	assert.False(t, ok)
	_, ok = DaysDiff(a, FechaInvalida())
	assert.False(t, ok)
}

func TestEstadoAt(t *testing.T) {
	now := fechaLocal(2024, time.June, 1)

	tests := []struct {
		name   string
		inicio string
		fin    string
		want   Estado
	}{
		{"running contract", "2024-01-01", "2024-12-31", EstadoActivo},
		{"open ended", "2024-01-01", "", EstadoActivo},
		{"starts today", "2024-06-01", "2024-12-31", EstadoActivo},
		{"ends today", "2024-01-01", "2024-06-01", EstadoActivo},
		{"already finished", "2024-01-01", "2024-01-31", EstadoFinalizado},
		{"finished yesterday", "2024-01-01", "2024-05-31", EstadoFinalizado},
		{"expires inside window without started inicio", "2024-07-15", "2024-06-20", EstadoProximo},
		{"no dates at all", "", "", EstadoDesconocido},
		{"only future inicio", "2024-09-01", "", EstadoDesconocido},
		{"unparseable dates", "pronto", "después", EstadoDesconocido},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sigeledapi.Contrato{FechaInicio: tt.inicio, FechaFin: tt.fin}
			assert.Equal(t, tt.want, EstadoAt(c, now))
		})
	}
}

func TestEstadoAtVentanaProximo(t *testing.T) {
	now := fechaLocal(2024, time.June, 1)

	t.Run("exactly 30 days out", func(t *testing.T) {
		c := sigeledapi.Contrato{FechaFin: "2024-07-01"}
		assert.Equal(t, EstadoProximo, EstadoAt(c, now))
	})

	t.Run("31 days out is not proximo", func(t *testing.T) {
		c := sigeledapi.Contrato{FechaFin: "2024-07-02"}
		assert.NotEqual(t, EstadoProximo, EstadoAt(c, now))
	})

	t.Run("activo wins over the window", func(t *testing.T) {
		c := sigeledapi.Contrato{FechaInicio: "2024-01-01", FechaFin: "2024-06-20"}
		assert.Equal(t, EstadoActivo, EstadoAt(c, now))
	})
}

func TestEstadoAtReferenceDates(t *testing.T) {
	c := sigeledapi.Contrato{FechaInicio: "2024-01-01", FechaFin: "2024-01-31"}

	assert.Equal(t, EstadoFinalizado, EstadoAt(c, fechaLocal(2024, time.June, 1)))
	assert.Equal(t, EstadoActivo, EstadoAt(c, fechaLocal(2024, time.January, 15)))
}

func TestComienzaPronto(t *testing.T) {
	now := fechaLocal(2024, time.June, 1)

	assert.True(t, ComienzaPronto(sigeledapi.Contrato{FechaInicio: "2024-07-15"}, now))
	assert.False(t, ComienzaPronto(sigeledapi.Contrato{FechaInicio: "2024-01-01"}, now))
	assert.False(t, ComienzaPronto(sigeledapi.Contrato{}, now))
}
