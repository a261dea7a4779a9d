// Package optional provides a nullable float64 used for measurement fields
// that are filled in by later pipeline stages.
//
// Zero is a meaningful value for every field that uses Float (a spectral
// index of exactly 0 is physically valid), so "unset" is carried by an
// explicit flag rather than a reserved number.
package optional

import (
	"encoding/json"
	"strconv"
)

// Float is a float64 that may be unset. The zero value is unset.
type Float struct {
	value float64
	valid bool
}

// Some returns a Float holding v.
func Some(v float64) Float {
	return Float{value: v, valid: true}
}

// None returns an unset Float.
func None() Float {
	return Float{}
}

// IsSet reports whether the value has been assigned.
func (f Float) IsSet() bool {
	return f.valid
}

// Get returns the value and whether it is set.
func (f Float) Get() (float64, bool) {
	return f.value, f.valid
}

// Or returns the value, or fallback when unset.
func (f Float) Or(fallback float64) float64 {
	if !f.valid {
		return fallback
	}
	return f.value
}

// String formats the value, or "NULL" when unset.
func (f Float) String() string {
	if !f.valid {
		return "NULL"
	}
	return strconv.FormatFloat(f.value, 'g', -1, 64)
}

// MarshalJSON encodes unset values as null.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// UnmarshalJSON decodes null as unset.
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = None()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Some(v)
	return nil
}

// MarshalYAML encodes unset values as null.
func (f Float) MarshalYAML() (any, error) {
	if !f.valid {
		return nil, nil
	}
	return f.value, nil
}
