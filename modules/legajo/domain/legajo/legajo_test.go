package legajo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

func TestCompletitud(t *testing.T) {
	tests := []struct {
		name   string
		estado sigeledapi.LegajoEstado
		want   int
	}{
		{"vacío", sigeledapi.LegajoEstado{}, 0},
		{"solo persona", sigeledapi.LegajoEstado{OkPersona: true}, 20},
		{"tres de cinco", sigeledapi.LegajoEstado{OkPersona: true, OkIdent: true, OkDocs: true}, 60},
		{"completo", sigeledapi.LegajoEstado{OkPersona: true, OkIdent: true, OkDocs: true, OkDomicilio: true, OkTitulos: true}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Completitud(tt.estado))
			assert.Equal(t, tt.want == 100, Completo(tt.estado))
		})
	}
}

func TestItemsPendientes(t *testing.T) {
	estado := sigeledapi.LegajoEstado{OkPersona: true, OkDocs: true}
	assert.Equal(t, []string{"identificacion", "domicilio", "titulos"}, ItemsPendientes(estado))

	completo := sigeledapi.LegajoEstado{OkPersona: true, OkIdent: true, OkDocs: true, OkDomicilio: true, OkTitulos: true}
	assert.Empty(t, ItemsPendientes(completo))
}
