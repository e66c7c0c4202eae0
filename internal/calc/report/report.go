package report

import (
	"fmt"
	"sort"
)

// meta describes how one calculator presents in a report: its display title,
// standards references, and the formula lines with the submitted values
// substituted in.
type meta struct {
	title     string
	standards []string
	formulas  func(in, out map[string]any) []string
}

var calculators = map[string]meta{
	"battery": {
		title:     "Battery Backup Time",
		standards: []string{"IEEE 485"},
		formulas: func(in, out map[string]any) []string {
			return []string{
				fmt.Sprintf("Effective capacity = %s Ah x %s = %s Ah",
					num(in, "capacity_ah"), num(in, "aging_factor"), num(out, "effective_capacity_ah")),
				fmt.Sprintf("Backup time = %s Ah x %s V x %s / %s W = %s h",
					num(out, "effective_capacity_ah"), num(in, "system_voltage_v"),
					num(in, "efficiency"), num(in, "load_watts"), num(out, "backup_hours")),
			}
		},
	},
	"ups": {
		title:     "UPS Sizing",
		standards: []string{"IEC 62040-3"},
		formulas: func(in, out map[string]any) []string {
			return []string{
				fmt.Sprintf("Required kVA = %s W / %s / 1000 x (1 + %s%%) = %s kVA",
					num(in, "load_watts"), num(in, "power_factor"),
					num(in, "growth_percent"), num(out, "required_kva")),
				fmt.Sprintf("Selected frame = %s kVA (smallest standard rating above requirement)",
					num(out, "selected_kva")),
			}
		},
	},
	"cable": {
		title:     "Cable Sizing",
		standards: []string{"IEC 60364-5-52"},
		formulas: func(in, out map[string]any) []string {
			return []string{
				fmt.Sprintf("Design current = %s kW x 1000 / (V x PF x phase factor) = %s A",
					num(in, "load_kw"), num(out, "design_current_a")),
				fmt.Sprintf("Selected cross-section = %s mm2 (ampacity %s A)",
					num(out, "selected_size_mm2"), num(out, "base_ampacity_a")),
				fmt.Sprintf("Voltage drop = %s V (%s%%)",
					num(out, "voltage_drop_v"), num(out, "voltage_drop_percent")),
			}
		},
	},
	"breaker": {
		title:     "Circuit Breaker Sizing",
		standards: []string{"NEC 240.6(A)", "IEC 60898-1"},
		formulas: func(in, out map[string]any) []string {
			lines := []string{
				fmt.Sprintf("Load current = %s kW x 1000 / (%s V x %s x phase factor) = %s A",
					num(in, "load_kw"), num(in, "voltage_v"),
					num(in, "power_factor"), num(out, "load_current_a")),
				fmt.Sprintf("Adjusted current = %s A x %s = %s A",
					num(out, "load_current_a"), num(out, "safety_factor"), num(out, "adjusted_current_a")),
				fmt.Sprintf("Selected breaker = %s A", num(out, "selected_size_a")),
			}
			if d, ok := out["derating"].(map[string]any); ok {
				lines = append(lines, fmt.Sprintf("Combined derating = %s x %s = %s; derated minimum %s A, final %s A",
					num(d, "temp_factor"), num(d, "group_factor"), num(d, "combined_factor"),
					num(d, "derated_min_a"), num(out, "final_size_a")))
			}
			return lines
		},
	},
	"earthing": {
		title:     "Earthing System",
		standards: []string{"IEEE 80", "IEC 60364-5-54"},
		formulas: func(in, out map[string]any) []string {
			return []string{
				fmt.Sprintf("R = %s / (2 pi x %s m) x (ln(8L/d) - 1) = %s ohm",
					num(in, "soil_resistivity_ohm_m"), num(in, "rod_length_m"), num(out, "single_rod_ohms")),
				fmt.Sprintf("Combined (%s rods) = %s ohm", num(in, "rod_count"), num(out, "combined_ohms")),
			}
		},
	},
	"arrester": {
		title:     "Lightning Protection Assessment",
		standards: []string{"IEC 62305-2", "IEC 62305-3"},
		formulas: func(in, out map[string]any) []string {
			return []string{
				fmt.Sprintf("Collection area = LW + 6H(L+W) + 9 pi H^2 = %s m2", num(out, "collection_area_m2")),
				fmt.Sprintf("Expected strikes = %s x %s m2 x 1e-6 = %s /year",
					num(in, "flash_density_per_km2_year"), num(out, "collection_area_m2"),
					num(out, "expected_strikes_per_year")),
			}
		},
	},
	"demand": {
		title:     "Demand and Diversity",
		standards: []string{"IEC 60364-3-11", "NEC 220"},
		formulas: func(in, out map[string]any) []string {
			return []string{
				fmt.Sprintf("Total demand = sum(connected x factor) = %s kW of %s kW connected",
					num(out, "total_demand_kw"), num(out, "total_connected_kw")),
				fmt.Sprintf("Demand factor = %s%%, diversity = %s%%",
					num(out, "demand_factor_percent"), num(out, "diversity_percent")),
			}
		},
	},
	"lighting": {
		title:     "Lighting Design (Lumen Method)",
		standards: []string{"IESNA Lighting Handbook"},
		formulas: func(in, out map[string]any) []string {
			return []string{
				fmt.Sprintf("Room index = LW / (Hm(L+W)) = %s", num(out, "room_index")),
				fmt.Sprintf("N = %s lux x area / (%s lm x %s x MF) = %s luminaires",
					num(in, "target_lux"), num(in, "luminaire_lumens"),
					num(out, "utilization_factor"), num(out, "luminaire_count")),
			}
		},
	},
	"solar": {
		title:     "Solar Array Sizing",
		standards: []string{"NREL PVWatts methodology"},
		formulas: func(in, out map[string]any) []string {
			return []string{
				fmt.Sprintf("Panels = ceil(%s kWh x 1000 / (%s W x %s h x PR)) = %s",
					num(in, "daily_energy_kwh"), num(in, "panel_wattage_w"),
					num(in, "peak_sun_hours"), num(out, "panel_count")),
			}
		},
	},
	"power": {
		title:     "Power Triangle",
		standards: []string{"IEEE 141"},
		formulas: func(in, out map[string]any) []string {
			return []string{
				fmt.Sprintf("S = V x I (x sqrt(3) for three phase) = %s kVA", num(out, "apparent_kva")),
				fmt.Sprintf("P = S x PF = %s kW, Q = S x sin(phi) = %s kVAR",
					num(out, "active_kw"), num(out, "reactive_kvar")),
			}
		},
	},
	"basics": {
		title:     "Basic Electrical Quantities",
		standards: []string{"Ohm's law"},
		formulas: func(in, out map[string]any) []string {
			return []string{
				fmt.Sprintf("V = %s V, I = %s A, R = %s ohm, P = %s W",
					num(out, "voltage_v"), num(out, "current_a"),
					num(out, "resistance_ohm"), num(out, "power_w")),
			}
		},
	},
}

// Known reports whether a calculator name has report metadata.
func Known(name string) bool {
	_, ok := calculators[name]
	return ok
}

func num(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return "-"
	}
	switch x := v.(type) {
	case float64:
		return trimFloat(x)
	case int:
		return fmt.Sprintf("%d", x)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// sortedKeys gives stable ordering to the input/result tables.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
