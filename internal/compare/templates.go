package compare

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// Template is a named withdrawal plan generator.
type Template struct {
	Name        string
	Description string
	Plan        func(years int) domain.WithdrawalPlan
}

// TemplateRegistry manages built-in plan templates
type TemplateRegistry struct {
	templates map[string]Template
}

// NewTemplateRegistry creates an empty registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{templates: make(map[string]Template)}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted.
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func flat(years int, pct float64) []float64 {
	out := make([]float64, years)
	for i := range out {
		out[i] = pct
	}
	return out
}

// CreateBuiltInTemplates registers the common withdrawal shapes.
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "interest_only",
		Description: "Withdraw all interest every year; capital stays flat",
		Plan: func(years int) domain.WithdrawalPlan {
			return domain.WithdrawalPlan{Primary: flat(years, 100), Other: flat(years, 100)}
		},
	})

	registry.Register(Template{
		Name:        "reinvest",
		Description: "Withdraw nothing; all interest compounds",
		Plan: func(years int) domain.WithdrawalPlan {
			return domain.WithdrawalPlan{Primary: flat(years, 0), Other: flat(years, 0)}
		},
	})

	registry.Register(Template{
		Name:        "half_primary",
		Description: "Withdraw half of the primary fund's interest and all other interest",
		Plan: func(years int) domain.WithdrawalPlan {
			return domain.WithdrawalPlan{Primary: flat(years, 50), Other: flat(years, 100)}
		},
	})

	registry.Register(Template{
		Name:        "ramp_up",
		Description: "Grow withdrawals evenly from a small share to all interest",
		Plan: func(years int) domain.WithdrawalPlan {
			ramp := make([]float64, years)
			for i := range ramp {
				ramp[i] = 100 * float64(i+1) / float64(years)
			}
			return domain.WithdrawalPlan{Primary: ramp, Other: append([]float64(nil), ramp...)}
		},
	})

	registry.Register(Template{
		Name:        "other_only",
		Description: "Live on the other funds and let the primary fund compound",
		Plan: func(years int) domain.WithdrawalPlan {
			return domain.WithdrawalPlan{Primary: flat(years, 0), Other: flat(years, 100)}
		},
	})

	return registry
}
