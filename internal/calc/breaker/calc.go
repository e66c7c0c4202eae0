package breaker

import (
	"errors"
	"fmt"
	"math"

	"Ampere/internal/round"
	"Ampere/internal/validate"
)

type Standard string

const (
	StandardNEC Standard = "NEC"
	StandardIEC Standard = "IEC"
)

type Phase string

const (
	PhaseSingle Phase = "single"
	PhaseThree  Phase = "three"
)

// ErrExceedsLargestSize is the domain-policy rejection for demand above the
// largest tabulated breaker rating. It is never silently clamped.
var ErrExceedsLargestSize = errors.New("required current exceeds largest standard breaker size")

type Input struct {
	Standard    Standard `json:"standard"`
	Phase       Phase    `json:"phase"`
	VoltageV    float64  `json:"voltage_v"`
	LoadKW      float64  `json:"load_kw"`
	PowerFactor float64  `json:"power_factor"`
	Continuous  bool     `json:"continuous"`

	// Optional voltage-drop check.
	CircuitLengthM   float64 `json:"circuit_length_m,omitempty"`
	ConductorSizeMM2 float64 `json:"conductor_size_mm2,omitempty"`
	Material         string  `json:"material,omitempty"`

	// Optional environmental derating.
	AmbientC        float64 `json:"ambient_c,omitempty"`
	GroupedCircuits int     `json:"grouped_circuits,omitempty"`
}

type VoltageDrop struct {
	DropV       float64 `json:"drop_v"`
	DropPercent float64 `json:"drop_percent"`
	Status      string  `json:"status"`
}

type Derating struct {
	TempFactor     float64 `json:"temp_factor"`
	GroupFactor    float64 `json:"group_factor"`
	CombinedFactor float64 `json:"combined_factor"`
	DeratedMinA    float64 `json:"derated_min_a"`
}

type Result struct {
	LoadCurrentA     float64      `json:"load_current_a"`
	SafetyFactor     float64      `json:"safety_factor"`
	AdjustedCurrentA float64      `json:"adjusted_current_a"`
	SelectedSizeA    float64      `json:"selected_size_a"`
	VoltageDrop      *VoltageDrop `json:"voltage_drop,omitempty"`
	Derating         *Derating    `json:"derating,omitempty"`
	FinalSizeA       float64      `json:"final_size_a"`
	Standards        []string     `json:"standards"`
	Warnings         []string     `json:"warnings"`
}

func Validate(in Input) validate.Findings {
	var f validate.Findings
	switch in.Standard {
	case StandardNEC, StandardIEC, "":
	default:
		f = append(f, validate.Errorf("standard", "must be NEC or IEC"))
	}
	switch in.Phase {
	case PhaseSingle, PhaseThree, "":
	default:
		f = append(f, validate.Errorf("phase", "must be single or three"))
	}
	f = validate.Range(f, "voltage_v", in.VoltageV, 100, 1000)
	f = validate.Require(f, "load_kw", in.LoadKW)
	if in.PowerFactor <= 0 || in.PowerFactor > 1 {
		f = append(f, validate.Errorf("power_factor", "must be in (0, 1]"))
	} else if in.PowerFactor < 0.85 {
		f = append(f, validate.Warnf("power_factor", "power factor below 0.85; consider correction before sizing"))
	}
	if in.CircuitLengthM < 0 {
		f = append(f, validate.Errorf("circuit_length_m", "must not be negative"))
	}
	if in.CircuitLengthM > 0 {
		if _, ok := resistancePerKm(in.Material, in.ConductorSizeMM2); !ok {
			f = append(f, validate.Errorf("conductor_size_mm2", "no resistance table entry for %g mm2 %s", in.ConductorSizeMM2, materialName(in.Material)))
		}
	}
	if in.AmbientC != 0 {
		f = validate.Range(f, "ambient_c", in.AmbientC, -20, 70)
	}
	if in.GroupedCircuits < 0 {
		f = append(f, validate.Errorf("grouped_circuits", "must not be negative"))
	}
	return f
}

// Calculate runs the full sizing cascade: load current, continuous-load
// safety factor, standard size selection, then the optional voltage-drop and
// derating stages, each of which can move the final size upward only.
func Calculate(in Input) (Result, error) {
	std := in.Standard
	if std == "" {
		std = StandardIEC
	}
	phase := in.Phase
	if phase == "" {
		phase = PhaseSingle
	}
	if in.VoltageV <= 0 || in.PowerFactor <= 0 || in.LoadKW <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}

	phaseFactor := 1.0
	if phase == PhaseThree {
		phaseFactor = math.Sqrt(3)
	}
	loadCurrent := round.Div(in.LoadKW*1000, round.Mul(in.VoltageV, in.PowerFactor, phaseFactor))

	// NEC 210.20(A): continuous loads carry a 125% factor. IEC sizing uses
	// the design current directly.
	safety := 1.0
	if std == StandardNEC && in.Continuous {
		safety = 1.25
	}
	adjusted := round.Mul(loadCurrent, safety)

	selected, err := selectSize(std, adjusted)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		LoadCurrentA:     round.To(loadCurrent, 2),
		SafetyFactor:     safety,
		AdjustedCurrentA: round.To(adjusted, 2),
		SelectedSizeA:    selected,
		FinalSizeA:       selected,
		Standards:        standardsFor(std),
	}

	if in.CircuitLengthM > 0 && in.ConductorSizeMM2 > 0 {
		vd, warn := voltageDrop(in, phase, loadCurrent)
		res.VoltageDrop = vd
		if warn != "" {
			res.Warnings = append(res.Warnings, warn)
		}
	}

	if in.AmbientC != 0 || in.GroupedCircuits > 1 {
		der, final, err := derate(std, in, adjusted)
		if err != nil {
			return Result{}, err
		}
		res.Derating = der
		if final > res.FinalSizeA {
			res.FinalSizeA = final
			res.Warnings = append(res.Warnings, fmt.Sprintf("environmental derating raised the breaker size from %g A to %g A", selected, final))
		}
	}
	return res, nil
}

// selectSize returns the smallest tabulated rating at or above the
// requirement.
func selectSize(std Standard, requiredA float64) (float64, error) {
	sizes := sizesFor(std)
	for _, s := range sizes {
		if s >= requiredA {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: need %.1f A, largest %s rating is %.0f A; split the load or use a higher standard",
		ErrExceedsLargestSize, requiredA, std, sizes[len(sizes)-1])
}

func voltageDrop(in Input, phase Phase, loadCurrent float64) (*VoltageDrop, string) {
	ohmPerKm, ok := resistancePerKm(in.Material, in.ConductorSizeMM2)
	if !ok {
		return nil, ""
	}
	r := round.Mul(ohmPerKm, in.CircuitLengthM/1000)
	drop := round.Mul(loadCurrent, r, in.PowerFactor)
	if phase == PhaseThree {
		drop = round.Mul(drop, math.Sqrt(3))
	}
	pct := round.Div(drop*100, in.VoltageV)

	vd := &VoltageDrop{DropV: round.To(drop, 2), DropPercent: round.To(pct, 2)}
	switch {
	case pct <= 3:
		vd.Status = "compliant"
	case pct <= 5:
		vd.Status = "marginal"
		return vd, "voltage drop between 3% and 5%; acceptable for feeders only"
	default:
		vd.Status = "non-compliant"
		return vd, "voltage drop exceeds 5%; increase conductor size or shorten the run"
	}
	return vd, ""
}

// derate applies the temperature and grouping corrections. Factors compose
// multiplicatively and the minimum size is re-selected from the table.
func derate(std Standard, in Input, adjustedA float64) (*Derating, float64, error) {
	ambient := in.AmbientC
	if ambient == 0 {
		ambient = 30
	}
	ft, ok := tempFactor(std, ambient)
	if !ok {
		return nil, 0, fmt.Errorf("ambient %.0f C is above the %s correction table; conductors are not rated for this environment", ambient, std)
	}
	circuits := in.GroupedCircuits
	if circuits < 1 {
		circuits = 1
	}
	fg, ok := groupFactor(std, circuits)
	if !ok {
		return nil, 0, fmt.Errorf("%d grouped circuits is beyond the %s adjustment table; split the raceway", circuits, std)
	}

	combined := round.Mul(ft, fg)
	deratedMin := round.Div(adjustedA, combined)
	final, err := selectSize(std, deratedMin)
	if err != nil {
		return nil, 0, err
	}
	return &Derating{
		TempFactor:     ft,
		GroupFactor:    fg,
		CombinedFactor: round.To(combined, 4),
		DeratedMinA:    round.To(deratedMin, 2),
	}, final, nil
}

func standardsFor(std Standard) []string {
	if std == StandardNEC {
		return []string{"NEC 210.20(A)", "NEC 240.6(A)", "NEC 310.15"}
	}
	return []string{"IEC 60898-1", "IEC 60364-5-52"}
}

func materialName(m string) string {
	if m == "aluminum" || m == "aluminium" {
		return "aluminium"
	}
	return "copper"
}
