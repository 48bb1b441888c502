package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
)

// ParameterSlider is an adjustable value in [Min, Max] moved in Step increments.
type ParameterSlider struct {
	Label     string
	Value     float64
	Min       float64
	Max       float64
	Step      float64
	Unit      string
	Format    string
	Width     int
	IsFocused bool
}

// NewParameterSlider creates a new parameter slider
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	p := &ParameterSlider{
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.0f",
		Width:  20,
	}
	p.SetValue(value)
	return p
}

// NewPercentSlider creates a 0-100% slider moving in step points.
func NewPercentSlider(label string, value, step float64) *ParameterSlider {
	return NewParameterSlider(label, value, 0, 100, step).WithUnit("%")
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment moves up one step, stopping at Max.
func (p *ParameterSlider) Increment() { p.SetValue(p.Value + p.Step) }

// Decrement moves down one step, stopping at Min.
func (p *ParameterSlider) Decrement() { p.SetValue(p.Value - p.Step) }

// SetValue sets the value, clamping to min/max
func (p *ParameterSlider) SetValue(value float64) {
	p.Value = math.Max(p.Min, math.Min(p.Max, value))
}

// Percentage returns the position of the value in its range, 0..1.
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// FormattedValue renders the value with its unit.
func (p *ParameterSlider) FormattedValue() string {
	return fmt.Sprintf(p.Format, p.Value) + p.Unit
}

// Render returns a single line: label, bar and value.
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	return fmt.Sprintf("%s %s %s", labelStyle.Render(p.Label), p.renderBar(), valueStyle.Render(p.FormattedValue()))
}

func (p *ParameterSlider) renderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < p.Width; i++ {
		switch {
		case i == filled || (filled == p.Width && i == p.Width-1):
			bar.WriteString(thumbStyle.Render("●"))
		case i < filled:
			bar.WriteString(thumbStyle.Render("━"))
		default:
			bar.WriteString(tuistyles.SliderTrackStyle.Render("─"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}
