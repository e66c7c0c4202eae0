package basics

import (
	"fmt"
	"math"

	"Ampere/internal/round"
	"Ampere/internal/validate"
)

// Input carries any two of the four Ohm's-law quantities. Pointers
// distinguish "absent" from zero.
type Input struct {
	VoltageV    *float64 `json:"voltage_v,omitempty"`
	CurrentA    *float64 `json:"current_a,omitempty"`
	ResistanceO *float64 `json:"resistance_ohm,omitempty"`
	PowerW      *float64 `json:"power_w,omitempty"`
}

type Result struct {
	VoltageV    float64  `json:"voltage_v"`
	CurrentA    float64  `json:"current_a"`
	ResistanceO float64  `json:"resistance_ohm"`
	PowerW      float64  `json:"power_w"`
	Standards   []string `json:"standards"`
	Warnings    []string `json:"warnings"`
}

func Validate(in Input) validate.Findings {
	var f validate.Findings
	given := 0
	for field, p := range map[string]*float64{
		"voltage_v":      in.VoltageV,
		"current_a":      in.CurrentA,
		"resistance_ohm": in.ResistanceO,
		"power_w":        in.PowerW,
	} {
		if p == nil {
			continue
		}
		given++
		if *p <= 0 {
			f = append(f, validate.Errorf(field, "must be greater than zero"))
		}
	}
	if given != 2 {
		f = append(f, validate.Errorf("", "exactly two of voltage_v, current_a, resistance_ohm, power_w are required"))
	}
	return f
}

// Calculate derives the two missing quantities from the two given ones.
func Calculate(in Input) (Result, error) {
	var v, i, r, p float64
	switch {
	case in.VoltageV != nil && in.CurrentA != nil:
		v, i = *in.VoltageV, *in.CurrentA
		r = round.Div(v, i)
		p = round.Mul(v, i)
	case in.VoltageV != nil && in.ResistanceO != nil:
		v, r = *in.VoltageV, *in.ResistanceO
		i = round.Div(v, r)
		p = round.Div(round.Mul(v, v), r)
	case in.VoltageV != nil && in.PowerW != nil:
		v, p = *in.VoltageV, *in.PowerW
		i = round.Div(p, v)
		r = round.Div(round.Mul(v, v), p)
	case in.CurrentA != nil && in.ResistanceO != nil:
		i, r = *in.CurrentA, *in.ResistanceO
		v = round.Mul(i, r)
		p = round.Mul(i, i, r)
	case in.CurrentA != nil && in.PowerW != nil:
		i, p = *in.CurrentA, *in.PowerW
		v = round.Div(p, i)
		r = round.Div(p, round.Mul(i, i))
	case in.ResistanceO != nil && in.PowerW != nil:
		r, p = *in.ResistanceO, *in.PowerW
		i = math.Sqrt(round.Div(p, r))
		v = round.Mul(i, r)
	default:
		return Result{}, fmt.Errorf("exactly two quantities are required")
	}
	if v <= 0 || i <= 0 || r <= 0 || p <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	return Result{
		VoltageV:    round.To(v, 3),
		CurrentA:    round.To(i, 3),
		ResistanceO: round.To(r, 3),
		PowerW:      round.To(p, 3),
		Standards:   []string{"Ohm's law"},
	}, nil
}
