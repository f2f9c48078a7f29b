package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	contratossvc "github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/eventbus"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newBusSilencioso(t *testing.T) eventbus.EventBus {
	t.Helper()
	return eventbus.NewEventPublisher(testLogger())
}

type fuenteStatsMock struct {
	stats *sigeledapi.AdminStats
	err   error
}

func (m *fuenteStatsMock) AdminStats(ctx context.Context) (*sigeledapi.AdminStats, error) {
	return m.stats, m.err
}

type fuenteContratosMock struct {
	contratos []sigeledapi.Contrato
	err       error
}

func (m *fuenteContratosMock) Todos(ctx context.Context) ([]sigeledapi.Contrato, error) {
	return m.contratos, m.err
}

func (m *fuenteContratosMock) MisContratos(ctx context.Context) ([]sigeledapi.Contrato, error) {
	return m.contratos, m.err
}

func (m *fuenteContratosMock) Por(ctx context.Context, id int) (*sigeledapi.Contrato, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.contratos {
		if m.contratos[i].ID == id {
			return &m.contratos[i], nil
		}
	}
	return nil, assert.AnError
}

func (m *fuenteContratosMock) Empleados(ctx context.Context) ([]sigeledapi.Contrato, error) {
	return m.contratos, m.err
}

func (m *fuenteContratosMock) CrearProfesor(ctx context.Context, data sigeledapi.ContratoProfesorAlta) (*sigeledapi.Contrato, error) {
	return nil, m.err
}

func (m *fuenteContratosMock) Eliminar(ctx context.Context, id int) error {
	return m.err
}

func (m *fuenteContratosMock) Exportar(ctx context.Context, id int, formato string) (*sigeledapi.Descarga, error) {
	return nil, m.err
}

type fuenteTarifasMock struct {
	perfiles []sigeledapi.Perfil
	err      error
}

func (m *fuenteTarifasMock) Perfiles(ctx context.Context) ([]sigeledapi.Perfil, error) {
	return m.perfiles, m.err
}

func (m *fuenteTarifasMock) Actualizar(ctx context.Context, tarifaID int, data sigeledapi.TarifaActualizacion) (*sigeledapi.Tarifa, error) {
	return nil, m.err
}

func resumenDePrueba(contratos *fuenteContratosMock, tarifas *fuenteTarifasMock) *contratossvc.ResumenService {
	return contratossvc.NewResumenService(contratos, tarifas)
}

type huberMock struct {
	canal   string
	mensaje []byte
}

func (m *huberMock) ServeHTTP(w http.ResponseWriter, r *http.Request) {}

func (m *huberMock) ForEach(channel string, f application.WsCallback) error {
	return nil
}

func (m *huberMock) BroadcastToChannel(channel string, message []byte) {
	m.canal = channel
	m.mensaje = message
}

type fuenteNotificacionesMock struct {
	items   []sigeledapi.Notificacion
	leidas  []int
	borrada int
	err     error
}

func (m *fuenteNotificacionesMock) List(ctx context.Context) ([]sigeledapi.Notificacion, error) {
	return m.items, m.err
}

func (m *fuenteNotificacionesMock) Create(ctx context.Context, data sigeledapi.NotificacionAlta) (*sigeledapi.Notificacion, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &sigeledapi.Notificacion{ID: 41, Titulo: data.Titulo, Mensaje: data.Mensaje}, nil
}

func (m *fuenteNotificacionesMock) MarcarLeida(ctx context.Context, id int) error {
	m.leidas = append(m.leidas, id)
	return m.err
}

func (m *fuenteNotificacionesMock) Delete(ctx context.Context, id int) error {
	m.borrada = id
	return m.err
}

type fuenteReportesMock struct {
	pedidos []string
	err     error
}

func (m *fuenteReportesMock) JSON(ctx context.Context, nombre string, params url.Values, out any) error {
	m.pedidos = append(m.pedidos, nombre)
	if m.err != nil {
		return m.err
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = json.RawMessage(`{"reporte":"` + nombre + `"}`)
	}
	return nil
}

func (m *fuenteReportesMock) PDF(ctx context.Context, nombre string, params url.Values) (*sigeledapi.Descarga, error) {
	m.pedidos = append(m.pedidos, nombre)
	if m.err != nil {
		return nil, m.err
	}
	return &sigeledapi.Descarga{Nombre: nombre + ".pdf", ContentType: "application/pdf", Datos: []byte("%PDF-")}, nil
}

func (m *fuenteReportesMock) Escalafonario(ctx context.Context) (*sigeledapi.Descarga, error) {
	return m.PDF(ctx, "escalafonario", nil)
}
