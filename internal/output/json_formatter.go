package output

import (
	json "github.com/goccy/go-json"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// JSONFormatter serializes the calculation results.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.CalculationResults) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(results, "", "  ")
	}
	return json.Marshal(results)
}
