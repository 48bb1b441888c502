package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bound is an inclusive bracket ceiling. The positive-infinity value marks the
// open-ended top bracket of a table.
type Bound float64

// Unbounded is the sentinel ceiling of the last bracket.
var Unbounded = Bound(math.Inf(1))

// IsUnbounded reports whether b is the +Inf sentinel.
func (b Bound) IsUnbounded() bool { return math.IsInf(float64(b), 1) }

// Float64 returns the bound as a plain float.
func (b Bound) Float64() float64 { return float64(b) }

func (b Bound) String() string {
	if b.IsUnbounded() {
		return "∞"
	}
	return strconv.FormatFloat(float64(b), 'f', -1, 64)
}

// ParseBound accepts plain or comma-grouped numbers and the spellings
// "inf", ".inf", "+inf", "infinity" and "unbounded" for the sentinel.
func ParseBound(s string) (Bound, error) {
	clean := strings.ToLower(strings.TrimSpace(s))
	switch clean {
	case "inf", ".inf", "+inf", "+.inf", "infinity", "unbounded", "∞":
		return Unbounded, nil
	}
	clean = strings.ReplaceAll(clean, ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bound %q: %w", s, err)
	}
	return Bound(v), nil
}

// UnmarshalYAML lets bracket tables write `upper_bound: inf`.
func (b *Bound) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: bound must be a scalar", node.Line)
	}
	v, err := ParseBound(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*b = v
	return nil
}

// MarshalYAML writes the sentinel as "inf".
func (b Bound) MarshalYAML() (interface{}, error) {
	if b.IsUnbounded() {
		return "inf", nil
	}
	return float64(b), nil
}

// MarshalJSON writes the sentinel as null since JSON has no infinity.
func (b Bound) MarshalJSON() ([]byte, error) {
	if b.IsUnbounded() {
		return []byte("null"), nil
	}
	if math.IsNaN(float64(b)) || math.IsInf(float64(b), -1) {
		return nil, fmt.Errorf("bound %v is not representable in JSON", float64(b))
	}
	return []byte(strconv.FormatFloat(float64(b), 'f', -1, 64)), nil
}

// UnmarshalJSON reads null or "inf" as the sentinel.
func (b *Bound) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*b = Unbounded
		return nil
	}
	v, err := ParseBound(strings.Trim(s, `"`))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// TaxBracket is one slice of a progressive schedule. Rate is a fraction.
type TaxBracket struct {
	UpperBound Bound   `yaml:"upper_bound" json:"upper_bound"`
	Rate       float64 `yaml:"rate" json:"rate"`
}

// BracketTable is an ascending list of brackets ending with an Unbounded ceiling.
type BracketTable []TaxBracket

// Slab is a width-based tax band applied after a personal relief.
type Slab struct {
	Width Bound   `yaml:"width" json:"width"`
	Rate  float64 `yaml:"rate" json:"rate"`
}

// BracketSlice is the share of income taxed inside one bracket.
type BracketSlice struct {
	Range          string  `json:"range"`
	Lower          float64 `json:"lower"`
	Upper          Bound   `json:"upper"`
	Rate           float64 `json:"rate"`
	TaxableInRange float64 `json:"taxable_in_range"`
	TaxInRange     float64 `json:"tax_in_range"`
}

// TaxResult is the total tax with the brackets that contributed to it.
type TaxResult struct {
	Income    float64        `json:"income"`
	Tax       float64        `json:"tax"`
	Breakdown []BracketSlice `json:"breakdown"`
}

// EffectiveRate returns tax/income, or 0 when income is not positive.
func (r TaxResult) EffectiveRate() float64 {
	if r.Income <= 0 {
		return 0
	}
	return r.Tax / r.Income
}
