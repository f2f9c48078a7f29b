package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporteServiceRechazaDesconocidos(t *testing.T) {
	fuente := &fuenteReportesMock{}
	svc := NewReporteService(fuente)

	_, err := svc.JSON(context.Background(), "../admin/usuarios", nil)
	require.Error(t, err)
	_, err = svc.PDF(context.Background(), "secreto", nil)
	require.Error(t, err)
	assert.Empty(t, fuente.pedidos)
}

func TestReporteServiceJSON(t *testing.T) {
	fuente := &fuenteReportesMock{}
	svc := NewReporteService(fuente)

	datos, err := svc.JSON(context.Background(), "docentes-por-carrera", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"reporte":"docentes-por-carrera"}`, string(datos))
	assert.Equal(t, []string{"docentes-por-carrera"}, fuente.pedidos)
}

func TestReporteServicePDF(t *testing.T) {
	fuente := &fuenteReportesMock{}
	svc := NewReporteService(fuente)

	descarga, err := svc.PDF(context.Background(), "contratos-por-periodo", nil)
	require.NoError(t, err)
	assert.Equal(t, "contratos-por-periodo.pdf", descarga.Nombre)
	assert.Equal(t, "application/pdf", descarga.ContentType)

	escalafonario, err := svc.Escalafonario(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "escalafonario.pdf", escalafonario.Nombre)
}
