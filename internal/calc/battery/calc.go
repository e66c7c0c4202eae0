package battery

import (
	"fmt"

	"Ampere/internal/round"
	"Ampere/internal/validate"
)

type Chemistry string

const (
	ChemistryLeadAcid Chemistry = "lead_acid"
	ChemistryLiIon    Chemistry = "li_ion"
	ChemistryNiCd     Chemistry = "nicd"
)

type Input struct {
	SystemVoltageV float64   `json:"system_voltage_v"`
	CapacityAh     float64   `json:"capacity_ah"`
	LoadWatts      float64   `json:"load_watts"`
	Efficiency     float64   `json:"efficiency"`
	AgingFactor    float64   `json:"aging_factor"`
	Chemistry      Chemistry `json:"chemistry"`
}

type Result struct {
	EffectiveCapacityAh float64  `json:"effective_capacity_ah"`
	StoredEnergyWh      float64  `json:"stored_energy_wh"`
	BackupHours         float64  `json:"backup_hours"`
	DischargeCurrentA   float64  `json:"discharge_current_a"`
	DischargeRate       string   `json:"discharge_rate"`
	Standards           []string `json:"standards"`
	Warnings            []string `json:"warnings"`
}

func Validate(in Input) validate.Findings {
	var f validate.Findings
	f = validate.Range(f, "system_voltage_v", in.SystemVoltageV, 12, 1000)
	f = validate.Require(f, "capacity_ah", in.CapacityAh)
	f = validate.Require(f, "load_watts", in.LoadWatts)
	if in.Efficiency <= 0 || in.Efficiency > 1 {
		f = append(f, validate.Errorf("efficiency", "must be in (0, 1]"))
	} else if in.Efficiency < 0.8 {
		f = append(f, validate.Warnf("efficiency", "inverter efficiency below 0.80 is unusually low"))
	}
	if in.AgingFactor <= 0 || in.AgingFactor > 1 {
		f = append(f, validate.Errorf("aging_factor", "must be in (0, 1]"))
	} else if in.AgingFactor < 0.7 {
		f = append(f, validate.Warnf("aging_factor", "aging factor below 0.70 indicates a battery near end of life"))
	}
	switch in.Chemistry {
	case ChemistryLeadAcid, ChemistryLiIon, ChemistryNiCd, "":
	default:
		f = append(f, validate.Errorf("chemistry", "must be one of lead_acid, li_ion, nicd"))
	}
	// Discharge rate is derived from two fields, so range-check it here.
	if in.SystemVoltageV > 0 && in.CapacityAh > 0 && in.LoadWatts > 0 {
		current := in.LoadWatts / in.SystemVoltageV
		if in.Chemistry == ChemistryLeadAcid && current > in.CapacityAh {
			f = append(f, validate.Warnf("load_watts", "discharge above 1C shortens lead-acid battery life"))
		}
	}
	return f
}

// Calculate sizes backup time per the IEEE 485 capacity method:
// effective capacity = rated capacity x aging factor, and
// backup hours = effective capacity x voltage x efficiency / load.
func Calculate(in Input) (Result, error) {
	if in.SystemVoltageV <= 0 || in.LoadWatts <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	chem := in.Chemistry
	if chem == "" {
		chem = ChemistryLeadAcid
	}

	effective := round.Mul(in.CapacityAh, in.AgingFactor)
	stored := round.Mul(effective, in.SystemVoltageV)
	usable := round.Mul(stored, in.Efficiency)
	hours := round.Div(usable, in.LoadWatts)
	current := round.Div(in.LoadWatts, round.Mul(in.SystemVoltageV, in.Efficiency))

	return Result{
		EffectiveCapacityAh: round.To(effective, 2),
		StoredEnergyWh:      round.To(stored, 1),
		BackupHours:         round.To(hours, 3),
		DischargeCurrentA:   round.To(current, 2),
		DischargeRate:       rateNotation(chem, current, effective),
		Standards:           []string{"IEEE 485"},
	}, nil
}

// rateNotation renders the discharge rate the way each chemistry's datasheets
// quote it: lead-acid and NiCd as an hour rate (C/10), lithium as a C multiple.
func rateNotation(chem Chemistry, currentA, capacityAh float64) string {
	if currentA <= 0 || capacityAh <= 0 {
		return ""
	}
	switch chem {
	case ChemistryLiIon:
		return fmt.Sprintf("%.2fC", currentA/capacityAh)
	default:
		return fmt.Sprintf("C/%.0f", capacityAh/currentA)
	}
}
