package earthing

import (
	"fmt"
	"math"

	"Ampere/internal/round"
	"Ampere/internal/validate"
)

// Parallel-rod combining efficiency: mutual resistance between rods keeps the
// combined value above R/n. Keyed by rod count, ascending.
var rodEfficiency = []struct {
	count  int
	factor float64
}{
	{1, 1.00}, {2, 1.16}, {3, 1.29}, {4, 1.36}, {5, 1.42},
	{6, 1.47}, {8, 1.55}, {10, 1.62}, {16, 1.76}, {24, 1.90},
}

type Input struct {
	SoilResistivityOhmM float64 `json:"soil_resistivity_ohm_m"`
	RodLengthM          float64 `json:"rod_length_m"`
	RodDiameterMM       float64 `json:"rod_diameter_mm"`
	RodCount            int     `json:"rod_count"`
	TargetOhms          float64 `json:"target_ohms"`
}

type Result struct {
	SingleRodOhms  float64  `json:"single_rod_ohms"`
	CombinedOhms   float64  `json:"combined_ohms"`
	Compliant      bool     `json:"compliant"`
	RodsToComply   int      `json:"rods_to_comply,omitempty"`
	Standards      []string `json:"standards"`
	Warnings       []string `json:"warnings"`
}

func Validate(in Input) validate.Findings {
	var f validate.Findings
	f = validate.Range(f, "soil_resistivity_ohm_m", in.SoilResistivityOhmM, 1, 10000)
	f = validate.Range(f, "rod_length_m", in.RodLengthM, 0.5, 30)
	f = validate.Range(f, "rod_diameter_mm", in.RodDiameterMM, 8, 100)
	if in.RodCount < 1 {
		f = append(f, validate.Errorf("rod_count", "must be at least 1"))
	} else if in.RodCount > rodEfficiency[len(rodEfficiency)-1].count {
		f = append(f, validate.Errorf("rod_count", "combining table covers up to %d rods", rodEfficiency[len(rodEfficiency)-1].count))
	}
	if in.TargetOhms < 0 {
		f = append(f, validate.Errorf("target_ohms", "must not be negative"))
	}
	if in.SoilResistivityOhmM > 1000 {
		f = append(f, validate.Warnf("soil_resistivity_ohm_m", "high-resistivity soil; consider soil treatment or deep-driven rods"))
	}
	return f
}

// Calculate evaluates the IEEE 80 driven-rod formula
// R = rho/(2*pi*L) * (ln(8L/d) - 1) and the parallel combination for the
// requested rod count.
func Calculate(in Input) (Result, error) {
	if in.SoilResistivityOhmM <= 0 || in.RodLengthM <= 0 || in.RodDiameterMM <= 0 || in.RodCount < 1 {
		return Result{}, fmt.Errorf("invalid input")
	}
	target := in.TargetOhms
	if target == 0 {
		target = 5 // general-purpose earthing target
	}

	single := rodResistance(in.SoilResistivityOhmM, in.RodLengthM, in.RodDiameterMM)
	combined, err := combine(single, in.RodCount)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		SingleRodOhms: round.To(single, 2),
		CombinedOhms:  round.To(combined, 2),
		Compliant:     combined <= target,
		Standards:     []string{"IEEE 80", "IEC 60364-5-54"},
	}
	if !res.Compliant {
		for _, e := range rodEfficiency {
			r, _ := combine(single, e.count)
			if r <= target {
				res.RodsToComply = e.count
				break
			}
		}
		if res.RodsToComply == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("target %.1f ohm is not reachable with up to %d rods; use longer rods or a grid", target, rodEfficiency[len(rodEfficiency)-1].count))
		} else {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%d rods needed to reach %.1f ohm", res.RodsToComply, target))
		}
	}
	return res, nil
}

func rodResistance(rho, lengthM, diameterMM float64) float64 {
	d := diameterMM / 1000
	return rho / (2 * math.Pi * lengthM) * (math.Log(8*lengthM/d) - 1)
}

// combine divides by count and applies the first tabulated efficiency at or
// above the count.
func combine(single float64, count int) (float64, error) {
	for _, e := range rodEfficiency {
		if count <= e.count {
			return round.Div(round.Mul(single, e.factor), float64(count)), nil
		}
	}
	return 0, fmt.Errorf("no combining factor for %d rods", count)
}
