package arrester

import (
	"fmt"
	"math"

	"Ampere/internal/round"
	"Ampere/internal/validate"
)

// IEC 62305 lightning protection levels with rolling-sphere radius and the
// rated impulse discharge current of the matching arrester class.
var protectionLevels = []struct {
	level         string
	minEfficiency float64
	sphereRadiusM float64
	dischargeKA   float64
}{
	{"I", 0.98, 20, 20},
	{"II", 0.95, 30, 15},
	{"III", 0.90, 45, 10},
	{"IV", 0.0, 60, 10},
}

type Input struct {
	LengthM           float64 `json:"length_m"`
	WidthM            float64 `json:"width_m"`
	HeightM           float64 `json:"height_m"`
	FlashDensity      float64 `json:"flash_density_per_km2_year"`
	LocationFactor    float64 `json:"location_factor"`
	NominalVoltageKV  float64 `json:"nominal_voltage_kv"`
	TolerableStrikes  float64 `json:"tolerable_strikes_per_year"`
}

type Result struct {
	CollectionAreaM2    float64  `json:"collection_area_m2"`
	ExpectedStrikesYear float64  `json:"expected_strikes_per_year"`
	ProtectionRequired  bool     `json:"protection_required"`
	RequiredEfficiency  float64  `json:"required_efficiency,omitempty"`
	ProtectionLevel     string   `json:"protection_level,omitempty"`
	SphereRadiusM       float64  `json:"sphere_radius_m,omitempty"`
	ProtectionRadiusM   float64  `json:"protection_radius_m,omitempty"`
	DischargeCurrentKA  float64  `json:"discharge_current_ka,omitempty"`
	ContinuousVoltageKV float64  `json:"continuous_voltage_kv,omitempty"`
	Standards           []string `json:"standards"`
	Warnings            []string `json:"warnings"`
}

func Validate(in Input) validate.Findings {
	var f validate.Findings
	f = validate.Range(f, "length_m", in.LengthM, 1, 1000)
	f = validate.Range(f, "width_m", in.WidthM, 1, 1000)
	f = validate.Range(f, "height_m", in.HeightM, 1, 500)
	f = validate.Range(f, "flash_density_per_km2_year", in.FlashDensity, 0.1, 50)
	if in.LocationFactor < 0 || in.LocationFactor > 2 {
		f = append(f, validate.Errorf("location_factor", "must be in [0, 2]"))
	}
	if in.NominalVoltageKV < 0 {
		f = append(f, validate.Errorf("nominal_voltage_kv", "must not be negative"))
	}
	if in.TolerableStrikes < 0 {
		f = append(f, validate.Errorf("tolerable_strikes_per_year", "must not be negative"))
	}
	return f
}

// Calculate runs the IEC 62305-2 risk assessment: collection area, expected
// direct strikes, protection decision, and the protection level needed to
// bring the risk under the tolerable frequency.
func Calculate(in Input) (Result, error) {
	if in.LengthM <= 0 || in.WidthM <= 0 || in.HeightM <= 0 || in.FlashDensity <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	cd := in.LocationFactor
	if cd == 0 {
		cd = 1
	}
	tolerable := in.TolerableStrikes
	if tolerable == 0 {
		tolerable = 0.01
	}

	h := in.HeightM
	area := in.LengthM*in.WidthM + 6*h*(in.LengthM+in.WidthM) + 9*math.Pi*h*h
	strikes := round.Mul(in.FlashDensity, area, cd, 1e-6)

	res := Result{
		CollectionAreaM2:    round.To(area, 0),
		ExpectedStrikesYear: round.To(strikes, 4),
		Standards:           []string{"IEC 62305-2", "IEC 62305-3"},
	}
	if in.NominalVoltageKV > 0 {
		// Maximum continuous operating voltage for a phase-earth arrester.
		res.ContinuousVoltageKV = round.To(round.Mul(in.NominalVoltageKV, 1.1)/math.Sqrt(3), 2)
	}
	if strikes <= tolerable {
		res.ProtectionRequired = false
		return res, nil
	}

	res.ProtectionRequired = true
	eff := 1 - tolerable/strikes
	res.RequiredEfficiency = round.To(eff, 4)

	// Level IV carries a zero threshold, so the scan always terminates.
	for _, pl := range protectionLevels {
		if eff >= pl.minEfficiency {
			res.ProtectionLevel = pl.level
			res.SphereRadiusM = pl.sphereRadiusM
			res.DischargeCurrentKA = pl.dischargeKA
			res.ProtectionRadiusM = round.To(protectionRadius(h, pl.sphereRadiusM), 2)
			break
		}
	}
	if h > res.SphereRadiusM {
		res.Warnings = append(res.Warnings, "structure is taller than the rolling-sphere radius; side flashes must be assessed separately")
	}
	return res, nil
}

// protectionRadius is the ground-level reach of an air terminal at height h
// under the rolling-sphere method.
func protectionRadius(h, sphereR float64) float64 {
	if h >= sphereR {
		return sphereR
	}
	return math.Sqrt(h * (2*sphereR - h))
}
