package services

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/eventbus"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type fuentePersonasMock struct {
	personas         []sigeledapi.Persona
	identificaciones []sigeledapi.Identificacion
	domicilios       []sigeledapi.Domicilio
	titulos          []sigeledapi.Titulo
	creada           *sigeledapi.PersonaAlta
	err              error
	errSubrecursos   error
}

func (m *fuentePersonasMock) Todas(ctx context.Context) ([]sigeledapi.Persona, error) {
	return m.personas, m.err
}

func (m *fuentePersonasMock) Por(ctx context.Context, id int) (*sigeledapi.Persona, error) {
	for _, p := range m.personas {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, &sigeledapi.APIError{Status: 404, Message: "persona no encontrada"}
}

func (m *fuentePersonasMock) Identificaciones(ctx context.Context, id int) ([]sigeledapi.Identificacion, error) {
	return m.identificaciones, m.errSubrecursos
}

func (m *fuentePersonasMock) Domicilios(ctx context.Context, id int) ([]sigeledapi.Domicilio, error) {
	return m.domicilios, m.errSubrecursos
}

func (m *fuentePersonasMock) Titulos(ctx context.Context, id int) ([]sigeledapi.Titulo, error) {
	return m.titulos, m.errSubrecursos
}

func (m *fuentePersonasMock) Crear(ctx context.Context, data sigeledapi.PersonaAlta) (*sigeledapi.Persona, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.creada = &data
	return &sigeledapi.Persona{ID: 77, Nombre: data.Nombre, Apellido: data.Apellido}, nil
}

func (m *fuentePersonasMock) Actualizar(ctx context.Context, id int, data sigeledapi.PersonaAlta) (*sigeledapi.Persona, error) {
	return &sigeledapi.Persona{ID: id, Nombre: data.Nombre, Apellido: data.Apellido}, m.err
}

func busSilencioso() eventbus.EventBus {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return eventbus.NewEventPublisher(log)
}

func TestPersonaServiceBuscar(t *testing.T) {
	fuente := &fuentePersonasMock{personas: []sigeledapi.Persona{
		{ID: 1, Nombre: "María", Apellido: "González", NumeroDocumento: "30111222"},
		{ID: 2, Nombre: "Juan", Apellido: "Pérez", NumeroDocumento: "28333444"},
		{ID: 3, Nombre: "Ana", Apellido: "Gómez", NumeroDocumento: "31555666"},
	}}
	svc := NewPersonaService(fuente, busSilencioso())

	t.Run("sin filtro devuelve todo", func(t *testing.T) {
		personas, total, err := svc.Buscar(context.Background(), BuscarPersonasParams{})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, personas, 3)
	})

	t.Run("filtro difuso por apellido", func(t *testing.T) {
		personas, total, err := svc.Buscar(context.Background(), BuscarPersonasParams{Q: "perez"})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		assert.Equal(t, 2, personas[0].ID)
	})

	t.Run("filtro por documento", func(t *testing.T) {
		personas, _, err := svc.Buscar(context.Background(), BuscarPersonasParams{Q: "30111222"})
		require.NoError(t, err)
		require.Len(t, personas, 1)
		assert.Equal(t, 1, personas[0].ID)
	})

	t.Run("paginado", func(t *testing.T) {
		personas, total, err := svc.Buscar(context.Background(), BuscarPersonasParams{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, personas, 2)

		personas, _, err = svc.Buscar(context.Background(), BuscarPersonasParams{Offset: 2})
		require.NoError(t, err)
		assert.Len(t, personas, 1)

		personas, _, err = svc.Buscar(context.Background(), BuscarPersonasParams{Offset: 10})
		require.NoError(t, err)
		assert.Empty(t, personas)
	})
}

func TestPersonaServiceCrearValida(t *testing.T) {
	fuente := &fuentePersonasMock{}
	svc := NewPersonaService(fuente, busSilencioso())

	_, err := svc.Crear(context.Background(), sigeledapi.PersonaAlta{Nombre: "Solo nombre"})
	require.Error(t, err)
	assert.Nil(t, fuente.creada)

	creada, err := svc.Crear(context.Background(), sigeledapi.PersonaAlta{
		Nombre:          "María",
		Apellido:        "González",
		NumeroDocumento: "30111222",
	})
	require.NoError(t, err)
	assert.Equal(t, 77, creada.ID)
}

func TestPersonaServiceFicha(t *testing.T) {
	fuente := &fuentePersonasMock{
		personas: []sigeledapi.Persona{
			{ID: 4, Nombre: "Laura", Apellido: "Díaz", NumeroDocumento: "27999888"},
		},
		identificaciones: []sigeledapi.Identificacion{{ID: 1, PersonaID: 4, Tipo: "CUIL", Numero: "27-27999888-1"}},
		domicilios:       []sigeledapi.Domicilio{{ID: 2, PersonaID: 4, Calle: "San Martín", Numero: "120"}},
		titulos:          []sigeledapi.Titulo{{ID: 3, PersonaID: 4, Descripcion: "Licenciada en Sistemas"}},
	}
	svc := NewPersonaService(fuente, busSilencioso())

	t.Run("compone todos los subrecursos", func(t *testing.T) {
		ficha, err := svc.Ficha(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, "Díaz", ficha.Persona.Apellido)
		require.Len(t, ficha.Identificaciones, 1)
		assert.Equal(t, "CUIL", ficha.Identificaciones[0].Tipo)
		require.Len(t, ficha.Domicilios, 1)
		require.Len(t, ficha.Titulos, 1)
	})

	t.Run("subrecursos caídos devuelven listas vacías", func(t *testing.T) {
		fuente.errSubrecursos = assert.AnError
		defer func() { fuente.errSubrecursos = nil }()

		ficha, err := svc.Ficha(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, 4, ficha.Persona.ID)
		assert.Empty(t, ficha.Identificaciones)
		assert.Empty(t, ficha.Domicilios)
		assert.Empty(t, ficha.Titulos)
	})

	t.Run("persona inexistente corta la composición", func(t *testing.T) {
		_, err := svc.Ficha(context.Background(), 99)
		require.Error(t, err)
	})
}

func TestDocumentoServiceActualizarEstado(t *testing.T) {
	fuente := &fuenteDocumentosMock{}
	svc := NewDocumentoService(fuente, busSilencioso())

	_, err := svc.ActualizarEstado(context.Background(), 1, sigeledapi.DocumentoVerificacion{Estado: "CUALQUIERA"})
	require.Error(t, err)

	doc, err := svc.ActualizarEstado(context.Background(), 1, sigeledapi.DocumentoVerificacion{Estado: "VERIFICADO"})
	require.NoError(t, err)
	assert.Equal(t, "VERIFICADO", doc.EstadoVerificacion)
}

type fuenteDocumentosMock struct {
	docs []sigeledapi.Documento
	err  error
}

func (m *fuenteDocumentosMock) PorPersona(ctx context.Context, personaID int) ([]sigeledapi.Documento, error) {
	return m.docs, m.err
}

func (m *fuenteDocumentosMock) Subir(ctx context.Context, personaID int, tipo, filename string, contenido io.Reader) (*sigeledapi.Documento, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &sigeledapi.Documento{ID: 1, PersonaID: personaID, TipoDocumento: tipo, NombreArchivo: filename}, nil
}

func (m *fuenteDocumentosMock) ActualizarEstado(ctx context.Context, id int, data sigeledapi.DocumentoVerificacion) (*sigeledapi.Documento, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &sigeledapi.Documento{ID: id, EstadoVerificacion: data.Estado}, nil
}

func (m *fuenteDocumentosMock) Eliminar(ctx context.Context, id int) error {
	return m.err
}

func (m *fuenteDocumentosMock) Archivo(ctx context.Context, id int) (*sigeledapi.Descarga, error) {
	return &sigeledapi.Descarga{Nombre: "documento_1.pdf"}, m.err
}

func TestDocumentoServiceSubirRequiereNombre(t *testing.T) {
	svc := NewDocumentoService(&fuenteDocumentosMock{}, busSilencioso())

	_, err := svc.Subir(context.Background(), 5, "DNI", "  ", nil)
	require.Error(t, err)

	doc, err := svc.Subir(context.Background(), 5, "DNI", "dni.pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, "dni.pdf", doc.NombreArchivo)
}

type fuenteLegajoMock struct {
	estado *sigeledapi.LegajoEstado
	err    error
}

func (m *fuenteLegajoMock) Estado(ctx context.Context, personaID int) (*sigeledapi.LegajoEstado, error) {
	return m.estado, m.err
}

func TestLegajoServiceEstado(t *testing.T) {
	fuente := &fuenteLegajoMock{estado: &sigeledapi.LegajoEstado{
		PersonaID: 9,
		OkPersona: true,
		OkIdent:   true,
		OkDocs:    true,
	}}
	svc := NewLegajoService(fuente)

	estado, err := svc.Estado(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 60, estado.Porcentaje)
	assert.False(t, estado.Completo)
	assert.Equal(t, []string{"domicilio", "titulos"}, estado.Pendientes)
}
