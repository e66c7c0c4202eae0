package ups

import (
	"fmt"

	"Ampere/internal/round"
	"Ampere/internal/validate"
)

// Standard UPS frame ratings, kVA, ascending.
var standardKVA = []float64{1, 1.5, 2, 3, 5, 6, 10, 15, 20, 30, 40, 60, 80, 100, 120, 160, 200, 250, 300, 400, 500}

type Input struct {
	LoadWatts     float64 `json:"load_watts"`
	PowerFactor   float64 `json:"power_factor"`
	GrowthPercent float64 `json:"growth_percent"`
	BackupMinutes float64 `json:"backup_minutes"`
	BatteryV      float64 `json:"battery_voltage_v"`
	DepthOfDisch  float64 `json:"depth_of_discharge"`
}

type Result struct {
	RequiredKVA       float64  `json:"required_kva"`
	SelectedKVA       float64  `json:"selected_kva"`
	LoadingPercent    float64  `json:"loading_percent"`
	BatteryCapacityAh float64  `json:"battery_capacity_ah,omitempty"`
	Standards         []string `json:"standards"`
	Warnings          []string `json:"warnings"`
}

func Validate(in Input) validate.Findings {
	var f validate.Findings
	f = validate.Require(f, "load_watts", in.LoadWatts)
	if in.PowerFactor <= 0 || in.PowerFactor > 1 {
		f = append(f, validate.Errorf("power_factor", "must be in (0, 1]"))
	} else if in.PowerFactor < 0.85 {
		f = append(f, validate.Warnf("power_factor", "power factor below 0.85 inflates the kVA requirement"))
	}
	if in.GrowthPercent < 0 || in.GrowthPercent > 100 {
		f = append(f, validate.Errorf("growth_percent", "must be between 0 and 100"))
	}
	if in.BackupMinutes < 0 {
		f = append(f, validate.Errorf("backup_minutes", "must not be negative"))
	}
	if in.BackupMinutes > 0 {
		if in.BatteryV <= 0 {
			f = append(f, validate.Errorf("battery_voltage_v", "required when backup_minutes is set"))
		}
		if in.DepthOfDisch < 0 || in.DepthOfDisch > 1 {
			f = append(f, validate.Errorf("depth_of_discharge", "must be in [0, 1]"))
		}
	}
	return f
}

func Calculate(in Input) (Result, error) {
	if in.LoadWatts <= 0 || in.PowerFactor <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}

	requiredVA := round.Mul(round.Div(in.LoadWatts, in.PowerFactor), 1+in.GrowthPercent/100)
	requiredKVA := requiredVA / 1000

	selected := 0.0
	for _, kva := range standardKVA {
		if kva >= requiredKVA {
			selected = kva
			break
		}
	}
	if selected == 0 {
		return Result{}, fmt.Errorf("required %.1f kVA exceeds largest standard UPS rating %.0f kVA; split the load across multiple units", requiredKVA, standardKVA[len(standardKVA)-1])
	}

	res := Result{
		RequiredKVA:    round.To(requiredKVA, 2),
		SelectedKVA:    selected,
		LoadingPercent: round.To(100*requiredKVA/selected, 1),
		Standards:      []string{"IEC 62040-3"},
	}
	if res.LoadingPercent > 80 {
		res.Warnings = append(res.Warnings, "selected frame will run above 80% loading")
	}

	// Runtime battery bank, if a backup target was given.
	if in.BackupMinutes > 0 && in.BatteryV > 0 {
		dod := in.DepthOfDisch
		if dod == 0 {
			dod = 0.8
		}
		energyWh := round.Mul(in.LoadWatts, in.BackupMinutes/60)
		res.BatteryCapacityAh = round.To(round.Div(energyWh, round.Mul(in.BatteryV, dod)), 1)
	}
	return res, nil
}
