package cable

import (
	"errors"
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

// ErrExceedsLargestSize is returned when no tabulated cross-section carries
// the derated design current.
var ErrExceedsLargestSize = errors.New("required ampacity exceeds largest tabulated cross-section")

type ampacityRow struct {
	sizeMM2  float64
	copper   float64 // A, PVC, installation method C (IEC 60364-5-52 B.52.4)
	aluminum float64
	ohmPerKm float64 // copper, 75 C
	alOhmKm  float64
}

var ampacityRows = []ampacityRow{
	{1.5, 17.5, 0, 12.1, 0},
	{2.5, 24, 18.5, 7.41, 0},
	{4, 32, 25, 4.61, 0},
	{6, 41, 32, 3.08, 0},
	{10, 57, 44, 1.83, 3.08},
	{16, 76, 59, 1.15, 1.91},
	{25, 101, 78, 0.727, 1.20},
	{35, 125, 96, 0.524, 0.868},
	{50, 151, 117, 0.387, 0.641},
	{70, 192, 150, 0.268, 0.443},
	{95, 232, 181, 0.193, 0.320},
	{120, 269, 210, 0.153, 0.253},
	{150, 309, 241, 0.124, 0.206},
	{185, 353, 276, 0.0991, 0.164},
	{240, 415, 324, 0.0754, 0.125},
	{300, 477, 372, 0.0601, 0.100},
}

type Input struct {
	Phase       Phase   `json:"phase"`
	VoltageV    float64 `json:"voltage_v"`
	LoadKW      float64 `json:"load_kw"`
	PowerFactor float64 `json:"power_factor"`
	Material    string  `json:"material"`
	LengthM     float64 `json:"length_m"`
	// Combined derating factor from ambient and grouping, 1.0 when unset.
	DeratingFactor float64 `json:"derating_factor,omitempty"`
}

type Result struct {
	DesignCurrentA    float64  `json:"design_current_a"`
	RequiredAmpacityA float64  `json:"required_ampacity_a"`
	SelectedSizeMM2   float64  `json:"selected_size_mm2"`
	BaseAmpacityA     float64  `json:"base_ampacity_a"`
	VoltageDropV      float64  `json:"voltage_drop_v"`
	VoltageDropPct    float64  `json:"voltage_drop_percent"`
	DropStatus        string   `json:"drop_status"`
	Standards         []string `json:"standards"`
	Warnings          []string `json:"warnings"`
}

func Validate(in Input) validate.Findings {
	var f validate.Findings
	switch in.Phase {
	case PhaseSingle, PhaseThree, "":
	default:
		f = append(f, validate.Errorf("phase", "must be single or three"))
	}
	f = validate.Range(f, "voltage_v", in.VoltageV, 100, 1000)
	f = validate.Require(f, "load_kw", in.LoadKW)
	if in.PowerFactor <= 0 || in.PowerFactor > 1 {
		f = append(f, validate.Errorf("power_factor", "must be in (0, 1]"))
	}
	switch in.Material {
	case "", "copper", "aluminum", "aluminium":
	default:
		f = append(f, validate.Errorf("material", "must be copper or aluminium"))
	}
	f = validate.Require(f, "length_m", in.LengthM)
	if in.DeratingFactor < 0 || in.DeratingFactor > 1 {
		f = append(f, validate.Errorf("derating_factor", "must be in (0, 1]"))
	} else if in.DeratingFactor > 0 && in.DeratingFactor < 0.5 {
		f = append(f, validate.Warnf("derating_factor", "combined derating below 0.5 suggests an unsuitable installation"))
	}
	return f
}

func Calculate(in Input) (Result, error) {
	if in.VoltageV <= 0 || in.PowerFactor <= 0 || in.LoadKW <= 0 || in.LengthM <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	phaseFactor := 1.0
	sqrt3 := false
	if in.Phase == PhaseThree {
		phaseFactor = math.Sqrt(3)
		sqrt3 = true
	}
	derating := in.DeratingFactor
	if derating == 0 {
		derating = 1.0
	}
	aluminium := in.Material == "aluminum" || in.Material == "aluminium"

	current := round.Div(in.LoadKW*1000, round.Mul(in.VoltageV, in.PowerFactor, phaseFactor))
	required := round.Div(current, derating)

	row, ok := selectRow(required, aluminium)
	if !ok {
		largest := ampacityRows[len(ampacityRows)-1]
		return Result{}, fmt.Errorf("%w: need %.1f A, largest %s entry is %g mm2; run parallel conductors", ErrExceedsLargestSize, required, materialName(aluminium), largest.sizeMM2)
	}

	ohmPerKm := row.ohmPerKm
	base := row.copper
	if aluminium {
		ohmPerKm = row.alOhmKm
		base = row.aluminum
	}
	r := round.Mul(ohmPerKm, in.LengthM/1000)
	drop := round.Mul(current, r, in.PowerFactor)
	if sqrt3 {
		drop = round.Mul(drop, math.Sqrt(3))
	}
	pct := round.Div(drop*100, in.VoltageV)

	res := Result{
		DesignCurrentA:    round.To(current, 2),
		RequiredAmpacityA: round.To(required, 2),
		SelectedSizeMM2:   row.sizeMM2,
		BaseAmpacityA:     base,
		VoltageDropV:      round.To(drop, 2),
		VoltageDropPct:    round.To(pct, 2),
		Standards:         []string{"IEC 60364-5-52"},
	}
	switch {
	case pct <= 3:
		res.DropStatus = "compliant"
	case pct <= 5:
		res.DropStatus = "marginal"
		res.Warnings = append(res.Warnings, "voltage drop between 3% and 5%; verify against feeder limits")
	default:
		res.DropStatus = "non-compliant"
		res.Warnings = append(res.Warnings, "voltage drop exceeds 5%; select the next cross-section up")
	}
	return res, nil
}

func selectRow(requiredA float64, aluminium bool) (ampacityRow, bool) {
	for _, row := range ampacityRows {
		capacity := row.copper
		if aluminium {
			capacity = row.aluminum
		}
		if capacity >= requiredA && capacity > 0 {
			return row, true
		}
	}
	return ampacityRow{}, false
}

func materialName(aluminium bool) string {
	if aluminium {
		return "aluminium"
	}
	return "copper"
}
