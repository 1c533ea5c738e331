// README: Lenient JSON number used for catalog payloads that mix numbers and numeric strings.
package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number decodes from a JSON number, a numeric string, a bool, a "true"/"false"
// string or null.
// Anything it cannot read degrades to zero instead of failing the request.
// Set reports whether the field was present with a non-null value.
type Number struct {
	Value float64
	Set   bool
}

// NumberOf builds a present Number.
func NumberOf(v float64) Number {
	return Number{Value: v, Set: true}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*n = Number{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			// Checkbox values arrive as "true"/"false".
			if flag, berr := strconv.ParseBool(s); berr == nil && flag {
				*n = Number{Value: 1, Set: true}
				return nil
			}
			n.Set = true
			return nil
		}
		*n = Number{Value: v, Set: true}
	case 't':
		*n = Number{Value: 1, Set: true}
	case 'f':
		*n = Number{Value: 0, Set: true}
	default:
		v, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			n.Set = true
			return nil
		}
		*n = Number{Value: v, Set: true}
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns nil when the value is absent.
func (n Number) Ptr() *float64 {
	if !n.Set {
		return nil
	}
	v := n.Value
	return &v
}

// Or returns the value, or def when absent.
func (n Number) Or(def float64) float64 {
	if !n.Set {
		return def
	}
	return n.Value
}
