// Package tuimsg defines the messages scenes send to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
)

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// LedgerEditedMsg asks the root model to change one month's expense.
// Index is 0-based.
type LedgerEditedMsg struct {
	Index   int
	Expense float64
}

// SimulationRequestedMsg asks for the portfolio to be projected under Plan.
type SimulationRequestedMsg struct {
	Plan domain.WithdrawalPlan
}

// TaxRequestedMsg asks for the tax on Income with the scenario's brackets.
type TaxRequestedMsg struct {
	Income float64
}
