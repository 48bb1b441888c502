package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Amount is a money value read from a scenario file. It accepts grouped
// figures such as "30,000,000" as well as plain numbers.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a float.
func NewAmount(v float64) Amount { return Amount{decimal.NewFromFloat(v)} }

// ParseAmount strips grouping separators and spaces before parsing. An empty
// string is zero.
func ParseAmount(s string) (Amount, error) {
	clean := strings.NewReplacer(",", "", " ", "", "_", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return Amount{decimal.Zero}, nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{d}, nil
}

// Float64 converts the amount for the calculation engine.
func (a Amount) Float64() float64 { return a.InexactFloat64() }

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", node.Line)
	}
	v, err := ParseAmount(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*a = v
	return nil
}

func (a Amount) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}
