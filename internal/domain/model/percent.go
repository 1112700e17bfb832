package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Percent is a percentage as the pipelines emit it: either a display string
// such as "+12.5%" or a bare JSON number. The original text is kept so the
// view can render it verbatim.
type Percent struct {
	text    string
	numeric bool
}

// NewPercent wraps a display string.
func NewPercent(s string) Percent { return Percent{text: s} }

// PercentOf wraps a bare number.
func PercentOf(v float64) Percent {
	return Percent{text: strconv.FormatFloat(v, 'f', -1, 64), numeric: true}
}

// IsZero reports whether no value was present.
func (p Percent) IsZero() bool { return strings.TrimSpace(p.text) == "" }

// String returns the source text.
func (p Percent) String() string { return p.text }

// Display returns the value as a percentage string. Bare numbers gain a
// trailing "%"; strings are returned as they arrived.
func (p Percent) Display() string {
	if p.numeric {
		return p.text + "%"
	}
	return p.text
}

// Value parses the percentage; see ParsePercentage.
func (p Percent) Value() float64 { return ParsePercentage(p.text) }

// UnmarshalJSON accepts strings and numbers. Any other JSON value is kept as
// raw text so that Value reports NaN instead of failing the whole document.
func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Percent{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Percent{text: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Percent{text: n.String(), numeric: true}
		return nil
	}
	*p = Percent{text: string(data)}
	return nil
}

// MarshalJSON writes numbers back as numbers and everything else as a string.
func (p Percent) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return []byte("null"), nil
	}
	if p.numeric {
		return []byte(p.text), nil
	}
	return json.Marshal(p.text)
}

// ParsePercentage strips surrounding whitespace, one leading "+" and one
// trailing "%", then parses a decimal number. Anything else yields NaN.
func ParsePercentage(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" || strings.IndexFunc(s, notDecimal) >= 0 {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// notDecimal rejects runes ParseFloat would accept outside plain decimal
// notation: hex digits and exponents, underscores, Inf and NaN.
func notDecimal(r rune) bool {
	return !strings.ContainsRune("0123456789.-+eE", r)
}
