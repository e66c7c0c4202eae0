package solar

import (
	"fmt"

	"Ampere/internal/round"
	"Ampere/internal/validate"
)

type Input struct {
	DailyEnergyKWh   float64 `json:"daily_energy_kwh"`
	PanelWattage     float64 `json:"panel_wattage_w"`
	PeakSunHours     float64 `json:"peak_sun_hours"`
	PerformanceRatio float64 `json:"performance_ratio"`
	PanelAreaM2      float64 `json:"panel_area_m2"`
}

type Result struct {
	PanelCount          int      `json:"panel_count"`
	ArrayKWp            float64  `json:"array_kwp"`
	ArrayAreaM2         float64  `json:"array_area_m2"`
	DailyGenerationKWh  float64  `json:"daily_generation_kwh"`
	AnnualGenerationKWh float64  `json:"annual_generation_kwh"`
	Standards           []string `json:"standards"`
	Warnings            []string `json:"warnings"`
}

func Validate(in Input) validate.Findings {
	var f validate.Findings
	f = validate.Require(f, "daily_energy_kwh", in.DailyEnergyKWh)
	f = validate.Range(f, "panel_wattage_w", in.PanelWattage, 50, 1000)
	f = validate.Range(f, "peak_sun_hours", in.PeakSunHours, 0.5, 12)
	if in.PerformanceRatio < 0 || in.PerformanceRatio > 1 {
		f = append(f, validate.Errorf("performance_ratio", "must be in (0, 1]"))
	} else if in.PerformanceRatio > 0 && (in.PerformanceRatio < 0.6 || in.PerformanceRatio > 0.9) {
		f = append(f, validate.Warnf("performance_ratio", "performance ratio outside the typical 0.60-0.90 range"))
	}
	if in.PeakSunHours > 0 && (in.PeakSunHours < 2.5 || in.PeakSunHours > 7.5) {
		f = append(f, validate.Warnf("peak_sun_hours", "peak sun hours outside the typical 2.5-7.5 range"))
	}
	if in.PanelAreaM2 < 0 {
		f = append(f, validate.Errorf("panel_area_m2", "must not be negative"))
	}
	return f
}

// Calculate sizes the array per the NREL methodology:
// panels = ceil(daily Wh / (panel W x PSH x PR)).
func Calculate(in Input) (Result, error) {
	if in.DailyEnergyKWh <= 0 || in.PanelWattage <= 0 || in.PeakSunHours <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	pr := in.PerformanceRatio
	if pr == 0 {
		pr = 0.75
	}
	panelArea := in.PanelAreaM2
	if panelArea == 0 {
		panelArea = 2.0
	}

	perPanelWh := round.Mul(in.PanelWattage, in.PeakSunHours, pr)
	panels := round.UpInt(round.Div(in.DailyEnergyKWh*1000, perPanelWh))

	arrayKWp := round.Mul(float64(panels), in.PanelWattage) / 1000
	daily := round.Mul(arrayKWp, in.PeakSunHours, pr)

	return Result{
		PanelCount:          panels,
		ArrayKWp:            round.To(arrayKWp, 2),
		ArrayAreaM2:         round.To(round.Mul(float64(panels), panelArea), 1),
		DailyGenerationKWh:  round.To(daily, 2),
		AnnualGenerationKWh: round.To(round.Mul(daily, 365), 0),
		Standards:           []string{"NREL PVWatts methodology"},
	}, nil
}
