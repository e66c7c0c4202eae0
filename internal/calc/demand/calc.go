package demand

import (
	"fmt"

	"github.com/shopspring/decimal"

	"Ampere/internal/round"
	"Ampere/internal/validate"
)

type Standard string

const (
	StandardIECResidential Standard = "iec_residential"
	StandardIECCommercial  Standard = "iec_commercial"
	StandardNECDwelling    Standard = "nec_dwelling"
)

type Category string

const (
	CategoryLighting     Category = "lighting"
	CategorySockets      Category = "sockets"
	CategoryHVAC         Category = "hvac"
	CategoryCooking      Category = "cooking"
	CategoryWaterHeating Category = "water_heating"
	CategoryMotors       Category = "motors"
	CategoryOther        Category = "other"
)

// Demand factors keyed by standard and load category.
var factorTables = map[Standard]map[Category]float64{
	StandardIECResidential: {
		CategoryLighting:     1.00,
		CategorySockets:      0.40,
		CategoryHVAC:         0.80,
		CategoryCooking:      0.70,
		CategoryWaterHeating: 1.00,
		CategoryMotors:       0.75,
		CategoryOther:        0.60,
	},
	StandardIECCommercial: {
		CategoryLighting:     0.90,
		CategorySockets:      0.70,
		CategoryHVAC:         0.95,
		CategoryCooking:      0.60,
		CategoryWaterHeating: 0.90,
		CategoryMotors:       0.80,
		CategoryOther:        0.70,
	},
	StandardNECDwelling: {
		CategoryLighting:     1.00,
		CategorySockets:      0.50,
		CategoryHVAC:         1.00,
		CategoryCooking:      0.75,
		CategoryWaterHeating: 0.75,
		CategoryMotors:       1.00,
		CategoryOther:        0.50,
	},
}

type Load struct {
	Category    Category `json:"category"`
	ConnectedKW float64  `json:"connected_kw"`
}

type Input struct {
	Standard Standard `json:"standard"`
	Loads    []Load   `json:"loads"`
}

type CategoryDemand struct {
	Category      Category `json:"category"`
	ConnectedKW   float64  `json:"connected_kw"`
	FactorPercent float64  `json:"factor_percent"`
	DemandKW      float64  `json:"demand_kw"`
}

type Result struct {
	Rows                []CategoryDemand `json:"rows"`
	TotalConnectedKW    float64          `json:"total_connected_kw"`
	TotalDemandKW       float64          `json:"total_demand_kw"`
	DemandFactorPercent float64          `json:"demand_factor_percent"`
	DiversityPercent    float64          `json:"diversity_percent"`
	Standards           []string         `json:"standards"`
	Warnings            []string         `json:"warnings"`
}

func Validate(in Input) validate.Findings {
	var f validate.Findings
	table, ok := factorTables[in.Standard]
	if !ok {
		f = append(f, validate.Errorf("standard", "must be one of iec_residential, iec_commercial, nec_dwelling"))
	}
	if len(in.Loads) == 0 {
		f = append(f, validate.Errorf("loads", "at least one load is required"))
	}
	for i, l := range in.Loads {
		field := fmt.Sprintf("loads[%d]", i)
		if l.ConnectedKW <= 0 {
			f = append(f, validate.Errorf(field+".connected_kw", "must be greater than zero"))
		}
		if ok {
			if _, known := table[l.Category]; !known {
				f = append(f, validate.Errorf(field+".category", "unknown category %q", l.Category))
			}
		}
	}
	return f
}

// Calculate applies the standard's demand factor to each category and sums
// in decimal so a long load schedule does not drift.
func Calculate(in Input) (Result, error) {
	table, ok := factorTables[in.Standard]
	if !ok || len(in.Loads) == 0 {
		return Result{}, fmt.Errorf("invalid input")
	}

	connected := decimal.Zero
	total := decimal.Zero
	rows := make([]CategoryDemand, 0, len(in.Loads))
	for _, l := range in.Loads {
		factor, known := table[l.Category]
		if !known {
			return Result{}, fmt.Errorf("unknown category %q", l.Category)
		}
		kw := decimal.NewFromFloat(l.ConnectedKW)
		d := kw.Mul(decimal.NewFromFloat(factor))
		connected = connected.Add(kw)
		total = total.Add(d)
		df, _ := d.Float64()
		rows = append(rows, CategoryDemand{
			Category:      l.Category,
			ConnectedKW:   round.To(l.ConnectedKW, 2),
			FactorPercent: round.To(factor*100, 1),
			DemandKW:      round.To(df, 2),
		})
	}

	connectedF, _ := connected.Float64()
	totalF, _ := total.Float64()
	dfPct, _ := total.Div(connected).Mul(decimal.NewFromInt(100)).Float64()

	return Result{
		Rows:                rows,
		TotalConnectedKW:    round.To(connectedF, 2),
		TotalDemandKW:       round.To(totalF, 2),
		DemandFactorPercent: round.To(dfPct, 1),
		DiversityPercent:    round.To(100-dfPct, 1),
		Standards:           standardsFor(in.Standard),
	}, nil
}

func standardsFor(std Standard) []string {
	if std == StandardNECDwelling {
		return []string{"NEC 220"}
	}
	return []string{"IEC 60364-3-11"}
}
