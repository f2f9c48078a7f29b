package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/application"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

func TestNotificacionServiceCrearDifunde(t *testing.T) {
	fuente := &fuenteNotificacionesMock{}
	hub := &huberMock{}
	bus := newBusSilencioso(t)

	recibido := make(chan NotificacionCreadaEvent, 1)
	bus.Subscribe(func(ev NotificacionCreadaEvent) {
		recibido <- ev
	})

	svc := NewNotificacionService(fuente, bus, hub)
	creada, err := svc.Crear(context.Background(), sigeledapi.NotificacionAlta{
		Titulo:  "Vencimiento de contrato",
		Mensaje: "Hay contratos que finalizan este mes",
	})
	require.NoError(t, err)
	assert.Equal(t, 41, creada.ID)

	select {
	case ev := <-recibido:
		assert.Equal(t, "Vencimiento de contrato", ev.Notificacion.Titulo)
	case <-time.After(time.Second):
		t.Fatal("evento de notificación no publicado")
	}

	assert.Equal(t, application.ChannelAuthenticated, hub.canal)
	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(hub.mensaje, &payload))
	assert.JSONEq(t, `"notificacion"`, string(payload["tipo"]))
	assert.Contains(t, string(payload["notificacion"]), "Vencimiento de contrato")
}

func TestNotificacionServiceCrearFallaSinDifundir(t *testing.T) {
	fuente := &fuenteNotificacionesMock{err: assert.AnError}
	hub := &huberMock{}

	svc := NewNotificacionService(fuente, newBusSilencioso(t), hub)
	_, err := svc.Crear(context.Background(), sigeledapi.NotificacionAlta{Titulo: "x", Mensaje: "y"})
	require.Error(t, err)
	assert.Empty(t, hub.canal)
	assert.Nil(t, hub.mensaje)
}

func TestNotificacionServiceProxies(t *testing.T) {
	fuente := &fuenteNotificacionesMock{items: []sigeledapi.Notificacion{{ID: 1, Titulo: "a"}}}
	svc := NewNotificacionService(fuente, newBusSilencioso(t), &huberMock{})

	items, err := svc.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, svc.MarcarLeida(context.Background(), 7))
	assert.Equal(t, []int{7}, fuente.leidas)

	require.NoError(t, svc.Eliminar(context.Background(), 9))
	assert.Equal(t, 9, fuente.borrada)
}
