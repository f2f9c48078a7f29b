package sigeledapi

import (
	"context"
)

type AuthService struct {
	client *Client
}

// Login authenticates against the backend. The request goes out without a
// bearer token; the returned token feeds the session store.
func (s *AuthService) Login(ctx context.Context, cred Credenciales) (*LoginRespuesta, error) {
	var out LoginRespuesta
	if err := s.client.post(ctx, "/auth/login", cred, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type UsuariosService struct {
	client *Client
}

func (s *UsuariosService) List(ctx context.Context) ([]Usuario, error) {
	var out []Usuario
	if err := s.client.get(ctx, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type UsuarioAlta struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	PersonaID int    `json:"id_persona" validate:"required,gt=0"`
	Roles     []int  `json:"roles"`
}

func (s *UsuariosService) Create(ctx context.Context, data UsuarioAlta) (*Usuario, error) {
	var out Usuario
	if err := s.client.post(ctx, "/users", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type UsuarioCambio struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Roles []int  `json:"roles,omitempty"`
}

func (s *UsuariosService) Update(ctx context.Context, id int, data UsuarioCambio) (*Usuario, error) {
	var out Usuario
	if err := s.client.put(ctx, idPath("/users", id), data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type RolesService struct {
	client *Client
}

func (s *RolesService) List(ctx context.Context) ([]Rol, error) {
	var out []Rol
	if err := s.client.get(ctx, "/roles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type RolAlta struct {
	Codigo string `json:"codigo" validate:"required"`
	Nombre string `json:"nombre" validate:"required"`
}

func (s *RolesService) Create(ctx context.Context, data RolAlta) (*Rol, error) {
	var out Rol
	if err := s.client.post(ctx, "/roles", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RolesService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, idPath("/roles", id))
}
