package sigeledapi

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Numero is the "parse to finite number or null" guard for numeric fields
// the backend serializes inconsistently (number, quoted number, null,
// garbage). Malformed input yields an invalid Numero, never an error.
type Numero struct {
	dec   decimal.Decimal
	valid bool
}

func NewNumero(d decimal.Decimal) Numero {
	return Numero{dec: d, valid: true}
}

func NumeroFromFloat(f float64) Numero {
	return Numero{dec: decimal.NewFromFloat(f), valid: true}
}

func (n Numero) Valido() bool { return n.valid }

func (n Numero) Decimal() (decimal.Decimal, bool) { return n.dec, n.valid }

// DecimalOrZero returns the value, or zero for absent/malformed input. This
// is the aggregation contract: missing fields contribute nothing.
func (n Numero) DecimalOrZero() decimal.Decimal {
	if !n.valid {
		return decimal.Zero
	}
	return n.dec
}

func (n Numero) Float64() float64 {
	if !n.valid {
		return 0
	}
	f, _ := n.dec.Float64()
	return f
}

func (n *Numero) UnmarshalJSON(data []byte) error {
	*n = Numero{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return nil
		}
		*n = Numero{dec: d, valid: true}
		return nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil
	}
	*n = Numero{dec: d, valid: true}
	return nil
}

func (n Numero) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.dec)
}

// Bandera tolerates bool, 0/1 and "true"/"1" encodings of boolean flags.
type Bandera bool

func (b *Bandera) UnmarshalJSON(data []byte) error {
	*b = false
	trimmed := bytes.TrimSpace(data)

	var v bool
	if err := json.Unmarshal(trimmed, &v); err == nil {
		*b = Bandera(v)
		return nil
	}

	var i int
	if err := json.Unmarshal(trimmed, &i); err == nil {
		*b = i != 0
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		s = strings.ToLower(strings.TrimSpace(s))
		*b = s == "true" || s == "1" || s == "si" || s == "sí"
	}
	return nil
}

func (b Bandera) Bool() bool { return bool(b) }

// firstInt picks the first present pointer, covering the backend's habit of
// naming the same identifier differently per endpoint.
func firstInt(candidates ...*int) int {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return 0
}

func firstString(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}
