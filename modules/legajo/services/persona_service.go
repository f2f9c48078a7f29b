package services

import (
	"context"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/eventbus"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type PersonasFuente interface {
	Todas(ctx context.Context) ([]sigeledapi.Persona, error)
	Por(ctx context.Context, id int) (*sigeledapi.Persona, error)
	Identificaciones(ctx context.Context, id int) ([]sigeledapi.Identificacion, error)
	Domicilios(ctx context.Context, id int) ([]sigeledapi.Domicilio, error)
	Titulos(ctx context.Context, id int) ([]sigeledapi.Titulo, error)
	Crear(ctx context.Context, data sigeledapi.PersonaAlta) (*sigeledapi.Persona, error)
	Actualizar(ctx context.Context, id int, data sigeledapi.PersonaAlta) (*sigeledapi.Persona, error)
}

type PersonaCreadaEvent struct {
	Persona sigeledapi.Persona
}

type PersonaActualizadaEvent struct {
	Persona sigeledapi.Persona
}

type PersonaService struct {
	fuente    PersonasFuente
	publisher eventbus.EventBus
	validate  *validator.Validate
}

func NewPersonaService(fuente PersonasFuente, publisher eventbus.EventBus) *PersonaService {
	return &PersonaService{
		fuente:    fuente,
		publisher: publisher,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

type BuscarPersonasParams struct {
	Q      string
	Limit  int
	Offset int
}

// Buscar lists persons, fuzzy-matching the free-text query against name and
// document number. Results are ranked best match first.
func (s *PersonaService) Buscar(ctx context.Context, params BuscarPersonasParams) ([]sigeledapi.Persona, int, error) {
	personas, err := s.fuente.Todas(ctx)
	if err != nil {
		return nil, 0, err
	}

	q := strings.TrimSpace(params.Q)
	if q != "" {
		type ranked struct {
			persona sigeledapi.Persona
			rank    int
		}
		var matches []ranked
		for _, p := range personas {
			objetivo := p.Apellido + " " + p.Nombre + " " + p.NumeroDocumento
			rank := fuzzy.RankMatchNormalizedFold(q, objetivo)
			if rank < 0 {
				continue
			}
			matches = append(matches, ranked{persona: p, rank: rank})
		}
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].rank < matches[j].rank })
		personas = make([]sigeledapi.Persona, 0, len(matches))
		for _, m := range matches {
			personas = append(personas, m.persona)
		}
	}

	total := len(personas)
	if params.Offset > 0 {
		if params.Offset >= len(personas) {
			return []sigeledapi.Persona{}, total, nil
		}
		personas = personas[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < len(personas) {
		personas = personas[:params.Limit]
	}
	return personas, total, nil
}

func (s *PersonaService) Por(ctx context.Context, id int) (*sigeledapi.Persona, error) {
	return s.fuente.Por(ctx, id)
}

// Ficha is the person's full file: record plus identifications, addresses
// and degrees. Sub-resources degrade to empty lists so one failing backend
// call does not hide the rest of the file.
type Ficha struct {
	Persona          sigeledapi.Persona          `json:"persona"`
	Identificaciones []sigeledapi.Identificacion `json:"identificaciones"`
	Domicilios       []sigeledapi.Domicilio      `json:"domicilios"`
	Titulos          []sigeledapi.Titulo         `json:"titulos"`
}

func (s *PersonaService) Ficha(ctx context.Context, id int) (*Ficha, error) {
	persona, err := s.fuente.Por(ctx, id)
	if err != nil {
		return nil, err
	}
	ficha := &Ficha{
		Persona:          *persona,
		Identificaciones: []sigeledapi.Identificacion{},
		Domicilios:       []sigeledapi.Domicilio{},
		Titulos:          []sigeledapi.Titulo{},
	}
	if identificaciones, err := s.fuente.Identificaciones(ctx, id); err == nil {
		ficha.Identificaciones = identificaciones
	}
	if domicilios, err := s.fuente.Domicilios(ctx, id); err == nil {
		ficha.Domicilios = domicilios
	}
	if titulos, err := s.fuente.Titulos(ctx, id); err == nil {
		ficha.Titulos = titulos
	}
	return ficha, nil
}

func (s *PersonaService) Crear(ctx context.Context, data sigeledapi.PersonaAlta) (*sigeledapi.Persona, error) {
	if err := s.validate.Struct(data); err != nil {
		return nil, errors.Wrap(err, "persona inválida")
	}
	creada, err := s.fuente.Crear(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(PersonaCreadaEvent{Persona: *creada})
	return creada, nil
}

func (s *PersonaService) Actualizar(ctx context.Context, id int, data sigeledapi.PersonaAlta) (*sigeledapi.Persona, error) {
	if err := s.validate.Struct(data); err != nil {
		return nil, errors.Wrap(err, "persona inválida")
	}
	actualizada, err := s.fuente.Actualizar(ctx, id, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(PersonaActualizadaEvent{Persona: *actualizada})
	return actualizada, nil
}
