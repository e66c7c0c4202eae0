package power

import (
	"fmt"
	"math"

	"Ampere/internal/round"
	"Ampere/internal/validate"
)

type Phase string

const (
	PhaseSingle Phase = "single"
	PhaseThree  Phase = "three"
)

type Input struct {
	Phase       Phase   `json:"phase"`
	VoltageV    float64 `json:"voltage_v"`
	CurrentA    float64 `json:"current_a"`
	PowerFactor float64 `json:"power_factor"`
}

type Result struct {
	ActiveKW     float64  `json:"active_kw"`
	ReactiveKVAR float64  `json:"reactive_kvar"`
	ApparentKVA  float64  `json:"apparent_kva"`
	PhaseAngle   float64  `json:"phase_angle_deg"`
	Standards    []string `json:"standards"`
	Warnings     []string `json:"warnings"`
}

func Validate(in Input) validate.Findings {
	var f validate.Findings
	switch in.Phase {
	case PhaseSingle, PhaseThree, "":
	default:
		f = append(f, validate.Errorf("phase", "must be single or three"))
	}
	f = validate.Range(f, "voltage_v", in.VoltageV, 1, 100000)
	f = validate.Require(f, "current_a", in.CurrentA)
	if in.PowerFactor <= 0 || in.PowerFactor > 1 {
		f = append(f, validate.Errorf("power_factor", "must be in (0, 1]"))
	} else if in.PowerFactor < 0.85 {
		f = append(f, validate.Warnf("power_factor", "power factor below 0.85; reactive compensation may be economic"))
	}
	return f
}

func Calculate(in Input) (Result, error) {
	if in.VoltageV <= 0 || in.CurrentA <= 0 || in.PowerFactor <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	phaseFactor := 1.0
	if in.Phase == PhaseThree {
		phaseFactor = math.Sqrt(3)
	}

	apparent := round.Mul(in.VoltageV, in.CurrentA, phaseFactor) / 1000
	active := round.Mul(apparent, in.PowerFactor)
	angle := math.Acos(in.PowerFactor)
	reactive := round.Mul(apparent, math.Sin(angle))

	return Result{
		ActiveKW:     round.To(active, 2),
		ReactiveKVAR: round.To(reactive, 2),
		ApparentKVA:  round.To(apparent, 2),
		PhaseAngle:   round.To(angle*180/math.Pi, 1),
		Standards:    []string{"IEEE 141"},
	}, nil
}
