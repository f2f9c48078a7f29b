package sigeledapi

import (
	"encoding/json"
)

// The backend's response shapes are loosely contracted; every alternative
// field name is probed exactly once, here, so the rest of the codebase sees
// one canonical schema.

type Credenciales struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRespuesta struct {
	Token   string  `json:"-"`
	Usuario Usuario `json:"-"`
}

func (l *LoginRespuesta) UnmarshalJSON(data []byte) error {
	var raw struct {
		Token       string   `json:"token"`
		AccessToken string   `json:"access_token"`
		Usuario     *Usuario `json:"usuario"`
		User        *Usuario `json:"user"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Token = firstString(raw.Token, raw.AccessToken)
	if raw.Usuario != nil {
		l.Usuario = *raw.Usuario
	} else if raw.User != nil {
		l.Usuario = *raw.User
	}
	return nil
}

type Rol struct {
	ID     int    `json:"id_rol"`
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
}

// Roles arrive either as role objects or as bare code strings.
type Roles []Rol

func (r *Roles) UnmarshalJSON(data []byte) error {
	*r = nil

	var objetos []Rol
	if err := json.Unmarshal(data, &objetos); err == nil {
		*r = objetos
		return nil
	}

	var codigos []string
	if err := json.Unmarshal(data, &codigos); err != nil {
		return nil
	}
	for _, c := range codigos {
		*r = append(*r, Rol{Codigo: c})
	}
	return nil
}

type Usuario struct {
	ID        int    `json:"-"`
	Email     string `json:"email"`
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	PersonaID int    `json:"-"`
	Roles     Roles  `json:"roles"`
}

func (u *Usuario) UnmarshalJSON(data []byte) error {
	type alias Usuario
	var raw struct {
		alias
		IDUsuario *int `json:"id_usuario"`
		ID        *int `json:"id"`
		IDPersona *int `json:"id_persona"`
		PersonaID *int `json:"persona_id"`
		Persona   *struct {
			IDPersona *int `json:"id_persona"`
			ID        *int `json:"id"`
		} `json:"persona"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = Usuario(raw.alias)
	u.ID = firstInt(raw.IDUsuario, raw.ID)
	candidates := []*int{raw.IDPersona, raw.PersonaID}
	if raw.Persona != nil {
		candidates = append(candidates, raw.Persona.IDPersona, raw.Persona.ID)
	}
	u.PersonaID = firstInt(candidates...)
	return nil
}

func (u Usuario) MarshalJSON() ([]byte, error) {
	type alias Usuario
	return json.Marshal(struct {
		alias
		IDUsuario int `json:"id_usuario"`
		IDPersona int `json:"id_persona"`
	}{alias: alias(u), IDUsuario: u.ID, IDPersona: u.PersonaID})
}

type Persona struct {
	ID              int    `json:"-"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	NumeroDocumento string `json:"numero_documento"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
}

func (p *Persona) UnmarshalJSON(data []byte) error {
	type alias Persona
	var raw struct {
		alias
		IDPersona *int `json:"id_persona"`
		PersonaID *int `json:"persona_id"`
		ID        *int `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Persona(raw.alias)
	p.ID = firstInt(raw.IDPersona, raw.PersonaID, raw.ID)
	return nil
}

func (p Persona) MarshalJSON() ([]byte, error) {
	type alias Persona
	return json.Marshal(struct {
		alias
		IDPersona int `json:"id_persona"`
	}{alias: alias(p), IDPersona: p.ID})
}

type Identificacion struct {
	ID        int    `json:"id_identificacion"`
	PersonaID int    `json:"id_persona"`
	Tipo      string `json:"tipo"`
	Numero    string `json:"numero"`
}

type Domicilio struct {
	ID        int    `json:"id_domicilio"`
	PersonaID int    `json:"id_persona"`
	Calle     string `json:"calle"`
	Numero    string `json:"numero"`
	Localidad string `json:"localidad"`
	Provincia string `json:"provincia"`
}

type Titulo struct {
	ID           int    `json:"id_titulo"`
	PersonaID    int    `json:"id_persona"`
	Descripcion  string `json:"descripcion"`
	Institucion  string `json:"institucion"`
	FechaEmision string `json:"fecha_emision"`
}

type Documento struct {
	ID                 int    `json:"id_documento"`
	PersonaID          int    `json:"-"`
	TipoDocumento      string `json:"tipo_documento"`
	NombreArchivo      string `json:"nombre_archivo"`
	EstadoVerificacion string `json:"estado_verificacion"`
	FechaCarga         string `json:"fecha_carga"`
	Observaciones      string `json:"observaciones"`
}

func (d *Documento) UnmarshalJSON(data []byte) error {
	type alias Documento
	var raw struct {
		alias
		IDPersona *int `json:"id_persona"`
		PersonaID *int `json:"persona_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Documento(raw.alias)
	d.PersonaID = firstInt(raw.IDPersona, raw.PersonaID)
	return nil
}

func (d Documento) MarshalJSON() ([]byte, error) {
	type alias Documento
	return json.Marshal(struct {
		alias
		IDPersona int `json:"id_persona"`
	}{alias: alias(d), IDPersona: d.PersonaID})
}

// LegajoEstado is the personnel-file completeness checklist, read verbatim
// from the backend.
type LegajoEstado struct {
	PersonaID   int     `json:"id_persona"`
	OkPersona   Bandera `json:"okPersona"`
	OkIdent     Bandera `json:"okIdent"`
	OkDocs      Bandera `json:"okDocs"`
	OkDomicilio Bandera `json:"okDomicilio"`
	OkTitulos   Bandera `json:"okTitulos"`
}

type Item struct {
	TipoItem             string `json:"tipo_item"`
	CodigoCargo          string `json:"codigo_cargo"`
	DescripcionActividad string `json:"descripcion_actividad"`
	DescripcionMateria   string `json:"descripcion_materia"`
	HorasSemanales       Numero `json:"horas_semanales"`
	MontoHora            Numero `json:"monto_hora"`
	SubtotalMensual      Numero `json:"subtotal_mensual"`
	IDPerfil             int    `json:"id_perfil"`
}

// Materia is the legacy item shape still emitted for old contracts.
type Materia struct {
	DescripcionMateria string `json:"descripcion_materia"`
	HorasSemanales     Numero `json:"horas_semanales"`
	MontoHora          Numero `json:"monto_hora"`
	IDPerfil           int    `json:"id_perfil"`
}

type Contrato struct {
	ID                 int       `json:"-"`
	PersonaID          int       `json:"-"`
	FechaInicio        string    `json:"fecha_inicio"`
	FechaFin           string    `json:"fecha_fin"`
	HorasSemanales     Numero    `json:"horas_semanales"`
	IDPeriodo          int       `json:"id_periodo"`
	PeriodoDescripcion string    `json:"periodo_descripcion"`
	Items              []Item    `json:"items"`
	Materias           []Materia `json:"materias"`
}

func (c *Contrato) UnmarshalJSON(data []byte) error {
	type alias Contrato
	var raw struct {
		alias
		IDContrato *int `json:"id_contrato"`
		ID         *int `json:"id"`
		IDPersona  *int `json:"id_persona"`
		PersonaID  *int `json:"persona_id"`
		Persona    *struct {
			IDPersona *int `json:"id_persona"`
			ID        *int `json:"id"`
		} `json:"persona"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Contrato(raw.alias)
	c.ID = firstInt(raw.IDContrato, raw.ID)
	candidates := []*int{raw.IDPersona, raw.PersonaID}
	if raw.Persona != nil {
		candidates = append(candidates, raw.Persona.IDPersona, raw.Persona.ID)
	}
	c.PersonaID = firstInt(candidates...)
	return nil
}

// MarshalJSON re-emits the canonical field names so cached payloads decode
// back into the same shape they were normalized to.
func (c Contrato) MarshalJSON() ([]byte, error) {
	type alias Contrato
	return json.Marshal(struct {
		alias
		IDContrato int `json:"id_contrato"`
		IDPersona  int `json:"id_persona"`
	}{alias: alias(c), IDContrato: c.ID, IDPersona: c.PersonaID})
}

// ItemsNormalizados folds the legacy materias list into the items shape so
// downstream aggregation sees a single representation.
func (c Contrato) ItemsNormalizados() []Item {
	if len(c.Items) > 0 {
		return c.Items
	}
	items := make([]Item, 0, len(c.Materias))
	for _, m := range c.Materias {
		items = append(items, Item{
			TipoItem:           "MATERIA",
			DescripcionMateria: m.DescripcionMateria,
			HorasSemanales:     m.HorasSemanales,
			MontoHora:          m.MontoHora,
			IDPerfil:           m.IDPerfil,
		})
	}
	return items
}

type Tarifa struct {
	ID             int     `json:"id_tarifa"`
	CodigoCargo    string  `json:"codigo_cargo"`
	MontoHora      Numero  `json:"monto_hora"`
	Descripcion    string  `json:"descripcion"`
	AplicaMaterias Bandera `json:"aplica_materias"`
	Observaciones  string  `json:"observaciones"`
}

type Perfil struct {
	ID      int      `json:"id_perfil"`
	Nombre  string   `json:"perfil_nombre"`
	Codigo  string   `json:"perfil_codigo"`
	Tarifas []Tarifa `json:"-"`
}

func (p *Perfil) UnmarshalJSON(data []byte) error {
	type alias Perfil
	var raw struct {
		alias
		Tarifas json.RawMessage `json:"tarifas"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Perfil(raw.alias)
	p.Tarifas = NormalizeTarifas(raw.Tarifas)
	return nil
}

func (p Perfil) MarshalJSON() ([]byte, error) {
	type alias Perfil
	return json.Marshal(struct {
		alias
		Tarifas []Tarifa `json:"tarifas"`
	}{alias: alias(p), Tarifas: p.Tarifas})
}

// NormalizeTarifas accepts the rates list as a JSON array or as a
// JSON-string-encoded array; anything malformed normalizes to empty.
func NormalizeTarifas(raw json.RawMessage) []Tarifa {
	if len(raw) == 0 {
		return []Tarifa{}
	}

	var tarifas []Tarifa
	if err := json.Unmarshal(raw, &tarifas); err == nil {
		return tarifas
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return []Tarifa{}
	}
	if err := json.Unmarshal([]byte(encoded), &tarifas); err != nil {
		return []Tarifa{}
	}
	return tarifas
}

type TarifaActualizacion struct {
	MontoHora     float64 `json:"monto_hora" validate:"required,gt=0"`
	Observaciones string  `json:"observaciones"`
}

type AdminStats struct {
	TotalPersonas     Numero `json:"total_personas"`
	TotalContratos    Numero `json:"total_contratos"`
	ContratosActivos  Numero `json:"contratos_activos"`
	ContratosProximos Numero `json:"contratos_proximos"`
	LegajosCompletos  Numero `json:"legajos_completos"`
	DocentesActivos   Numero `json:"docentes_activos"`
}

type Notificacion struct {
	ID      int     `json:"id_notificacion"`
	Titulo  string  `json:"titulo"`
	Mensaje string  `json:"mensaje"`
	Leida   Bandera `json:"leida"`
	Fecha   string  `json:"fecha"`
}

type ChatSesion struct {
	ID     int    `json:"id_sesion"`
	Titulo string `json:"titulo"`
	Fecha  string `json:"fecha_creacion"`
}

type ChatMensaje struct {
	ID        int    `json:"id_mensaje"`
	Rol       string `json:"rol"`
	Contenido string `json:"contenido"`
	Fecha     string `json:"fecha"`
}
