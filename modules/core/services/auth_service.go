package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/core/infrastructure/session"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/eventbus"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type AuthFuente interface {
	Login(ctx context.Context, cred sigeledapi.Credenciales) (*sigeledapi.LoginRespuesta, error)
}

type SesionIniciadaEvent struct {
	Usuario sigeledapi.Usuario
}

type SesionCerradaEvent struct {
	UsuarioID int
}

// AuthService exchanges credentials for a backend token and pins it to a
// gateway-side session. Browsers only ever see the opaque sid.
type AuthService struct {
	fuente    AuthFuente
	sesiones  *session.Store
	publisher eventbus.EventBus
	validate  *validator.Validate
}

func NewAuthService(fuente AuthFuente, sesiones *session.Store, publisher eventbus.EventBus) *AuthService {
	return &AuthService{
		fuente:    fuente,
		sesiones:  sesiones,
		publisher: publisher,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *AuthService) Login(ctx context.Context, cred sigeledapi.Credenciales) (*composables.Session, error) {
	if err := s.validate.Struct(cred); err != nil {
		return nil, errors.Wrap(err, "credenciales inválidas")
	}
	respuesta, err := s.fuente.Login(ctx, cred)
	if err != nil {
		return nil, err
	}
	if respuesta.Token == "" {
		return nil, errors.New("el backend no devolvió un token")
	}
	sess := s.sesiones.Create(respuesta.Usuario, respuesta.Token)
	s.publisher.Publish(SesionIniciadaEvent{Usuario: respuesta.Usuario})
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) {
	if sess, ok := s.sesiones.Resolve(ctx, sid); ok {
		s.publisher.Publish(SesionCerradaEvent{UsuarioID: sess.Usuario.ID})
	}
	s.sesiones.Delete(sid)
}
