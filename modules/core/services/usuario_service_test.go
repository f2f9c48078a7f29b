package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type fuenteUsuariosMock struct {
	usuarios []sigeledapi.Usuario
	creado   *sigeledapi.UsuarioAlta
	err      error
}

func (m *fuenteUsuariosMock) List(ctx context.Context) ([]sigeledapi.Usuario, error) {
	return m.usuarios, m.err
}

func (m *fuenteUsuariosMock) Create(ctx context.Context, data sigeledapi.UsuarioAlta) (*sigeledapi.Usuario, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.creado = &data
	return &sigeledapi.Usuario{ID: 10, Email: data.Email, PersonaID: data.PersonaID}, nil
}

func (m *fuenteUsuariosMock) Update(ctx context.Context, id int, data sigeledapi.UsuarioCambio) (*sigeledapi.Usuario, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &sigeledapi.Usuario{ID: id, Email: data.Email}, nil
}

type fuenteRolesMock struct {
	roles   []sigeledapi.Rol
	borrado int
	err     error
}

func (m *fuenteRolesMock) List(ctx context.Context) ([]sigeledapi.Rol, error) {
	return m.roles, m.err
}

func (m *fuenteRolesMock) Create(ctx context.Context, data sigeledapi.RolAlta) (*sigeledapi.Rol, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &sigeledapi.Rol{ID: 3, Codigo: data.Codigo, Nombre: data.Nombre}, nil
}

func (m *fuenteRolesMock) Delete(ctx context.Context, id int) error {
	m.borrado = id
	return m.err
}

func TestUsuarioServiceCrearValida(t *testing.T) {
	fuente := &fuenteUsuariosMock{}
	svc := NewUsuarioService(fuente, newBusSilencioso(t))

	_, err := svc.Crear(context.Background(), sigeledapi.UsuarioAlta{Email: "sin-password@uni.edu"})
	require.Error(t, err)
	assert.Nil(t, fuente.creado)

	usuario, err := svc.Crear(context.Background(), sigeledapi.UsuarioAlta{
		Email:     "nuevo@uni.edu",
		Password:  "secreta123",
		PersonaID: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, usuario.ID)
	require.NotNil(t, fuente.creado)
}

func TestUsuarioServiceCrearPublicaEvento(t *testing.T) {
	bus := newBusSilencioso(t)
	recibido := make(chan UsuarioCreadoEvent, 1)
	bus.Subscribe(func(ev UsuarioCreadoEvent) {
		recibido <- ev
	})

	svc := NewUsuarioService(&fuenteUsuariosMock{}, bus)
	_, err := svc.Crear(context.Background(), sigeledapi.UsuarioAlta{
		Email:     "nuevo@uni.edu",
		Password:  "secreta123",
		PersonaID: 4,
	})
	require.NoError(t, err)

	select {
	case ev := <-recibido:
		assert.Equal(t, "nuevo@uni.edu", ev.Usuario.Email)
	case <-time.After(time.Second):
		t.Fatal("evento de alta no publicado")
	}
}

func TestRolServiceCrearValida(t *testing.T) {
	svc := NewRolService(&fuenteRolesMock{}, newBusSilencioso(t))

	_, err := svc.Crear(context.Background(), sigeledapi.RolAlta{Codigo: "rrhh"})
	require.Error(t, err)

	rol, err := svc.Crear(context.Background(), sigeledapi.RolAlta{Codigo: "rrhh", Nombre: "Recursos Humanos"})
	require.NoError(t, err)
	assert.Equal(t, 3, rol.ID)
}

func TestRolServiceEliminarPublicaEvento(t *testing.T) {
	fuente := &fuenteRolesMock{}
	bus := newBusSilencioso(t)
	recibido := make(chan RolEliminadoEvent, 1)
	bus.Subscribe(func(ev RolEliminadoEvent) {
		recibido <- ev
	})

	svc := NewRolService(fuente, bus)
	require.NoError(t, svc.Eliminar(context.Background(), 6))
	assert.Equal(t, 6, fuente.borrado)

	select {
	case ev := <-recibido:
		assert.Equal(t, 6, ev.ID)
	case <-time.After(time.Second):
		t.Fatal("evento de baja no publicado")
	}
}
