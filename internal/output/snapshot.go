package output

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// Calculator types recorded on snapshots.
const (
	CalculatorScenario  = "scenario"
	CalculatorTax       = "tax"
	CalculatorLoan      = "loan"
	CalculatorYield     = "yield"
	CalculatorLedger    = "ledger"
	CalculatorSimulator = "simulator"
)

// newID generates snapshot identifiers (override in tests for determinism).
var newID = uuid.NewString

// NewSnapshot stamps inputs and results with an ID and creation time.
func NewSnapshot(calculatorType string, inputs, results interface{}) domain.Snapshot {
	return domain.Snapshot{
		ID:             newID(),
		CreatedAt:      nowFunc().UTC(),
		CalculatorType: calculatorType,
		Inputs:         inputs,
		Results:        results,
	}
}

// SnapshotSink receives snapshots after a calculation.
type SnapshotSink interface {
	Save(snapshot domain.Snapshot) (string, error)
}

// FileSink writes each snapshot as a JSON file in Dir.
type FileSink struct {
	Dir string
}

// Save writes <dir>/<type>_<id>.json and returns the path.
func (s FileSink) Save(snapshot domain.Snapshot) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("%s_%s.json", snapshot.CalculatorType, snapshot.ID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot file back. Inputs and results decode as
// generic JSON values.
func LoadSnapshot(path string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return snap, nil
}
