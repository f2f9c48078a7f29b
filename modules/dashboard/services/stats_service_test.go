package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

func TestStatsServiceVistaCompleta(t *testing.T) {
	fuente := &fuenteStatsMock{stats: &sigeledapi.AdminStats{
		TotalPersonas:  sigeledapi.NumeroFromFloat(12),
		TotalContratos: sigeledapi.NumeroFromFloat(30),
	}}
	contratos := &fuenteContratosMock{contratos: []sigeledapi.Contrato{
		{ID: 1, FechaInicio: "2000-01-01", FechaFin: "2999-12-31"},
	}}
	tarifas := &fuenteTarifasMock{}

	svc := NewStatsService(fuente, resumenDePrueba(contratos, tarifas))
	vista := svc.Vista(context.Background())

	require.NotNil(t, vista.Stats)
	assert.Empty(t, vista.StatsError)
	require.NotNil(t, vista.Resumen)
	assert.Empty(t, vista.ResumenError)
	assert.Equal(t, 1, vista.Resumen.ContratosActivos)
}

func TestStatsServiceVistaDegradaPorFuente(t *testing.T) {
	t.Run("stats caídos", func(t *testing.T) {
		fuente := &fuenteStatsMock{err: &sigeledapi.APIError{Status: 503, Message: "mantenimiento programado"}}
		contratos := &fuenteContratosMock{}
		tarifas := &fuenteTarifasMock{}

		vista := NewStatsService(fuente, resumenDePrueba(contratos, tarifas)).Vista(context.Background())

		assert.Nil(t, vista.Stats)
		assert.Equal(t, "mantenimiento programado", vista.StatsError)
		require.NotNil(t, vista.Resumen)
	})

	t.Run("resumen caído", func(t *testing.T) {
		fuente := &fuenteStatsMock{stats: &sigeledapi.AdminStats{}}
		contratos := &fuenteContratosMock{err: assert.AnError}
		tarifas := &fuenteTarifasMock{}

		vista := NewStatsService(fuente, resumenDePrueba(contratos, tarifas)).Vista(context.Background())

		require.NotNil(t, vista.Stats)
		assert.Nil(t, vista.Resumen)
		assert.Equal(t, "no se pudo obtener la información", vista.ResumenError)
	})

	t.Run("ambas fuentes caídas", func(t *testing.T) {
		fuente := &fuenteStatsMock{err: assert.AnError}
		contratos := &fuenteContratosMock{err: assert.AnError}
		tarifas := &fuenteTarifasMock{}

		vista := NewStatsService(fuente, resumenDePrueba(contratos, tarifas)).Vista(context.Background())

		assert.NotEmpty(t, vista.StatsError)
		assert.NotEmpty(t, vista.ResumenError)
	})
}
