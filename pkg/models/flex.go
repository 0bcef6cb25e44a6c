package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Flex holds a scalar the billing API serves inconsistently: the same field
// may arrive as a JSON string, number, bool, or null depending on the
// upstream region. The raw text form is preserved so string-typed summary
// fields keep the upstream formatting (e.g. "0.00").
type Flex struct {
	raw string
}

// NewFlex builds a Flex from its text form. Mostly useful in tests and when
// constructing zero-valued records.
func NewFlex(s string) Flex {
	return Flex{raw: s}
}

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (f *Flex) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		f.raw = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		f.raw = v
		return nil
	}
	f.raw = s
	return nil
}

// MarshalJSON writes the value back as a string, which Flex accepts again on
// re-read. Cache round-trips therefore preserve the value.
func (f Flex) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.raw)
}

// IsZero reports whether the field was absent, null or empty.
func (f Flex) IsZero() bool {
	return f.raw == ""
}

// String returns the raw text form, "" when absent.
func (f Flex) String() string {
	return f.raw
}

// StringOr returns the text form, or def when the field is absent.
func (f Flex) StringOr(def string) string {
	if f.raw == "" {
		return def
	}
	return f.raw
}

// Float64 parses the value as a number. ok is false for absent or
// non-numeric values.
func (f Flex) Float64() (float64, bool) {
	if f.raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(f.raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Float64Or parses the value as a number, substituting def when absent or
// non-numeric.
func (f Flex) Float64Or(def float64) float64 {
	if v, ok := f.Float64(); ok {
		return v
	}
	return def
}

// Bool coerces the value to a boolean. Absent, "0" and "false" are false,
// anything else is true.
func (f Flex) Bool() bool {
	switch strings.ToLower(strings.TrimSpace(f.raw)) {
	case "", "0", "false":
		return false
	}
	return true
}

// FirstFlex resolves an ordered list of candidate fields, first present
// wins. This is how the legacy field-name aliases in the payload are
// handled everywhere.
func FirstFlex(candidates ...Flex) Flex {
	for _, c := range candidates {
		if !c.IsZero() {
			return c
		}
	}
	return Flex{}
}
