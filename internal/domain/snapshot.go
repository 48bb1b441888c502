package domain

import "time"

// Snapshot is the record handed to a persistence sink after a calculation.
type Snapshot struct {
	ID             string      `json:"id"`
	CreatedAt      time.Time   `json:"created_at"`
	CalculatorType string      `json:"calculator_type"`
	Inputs         interface{} `json:"inputs"`
	Results        interface{} `json:"results"`
}
