package lighting

import (
	"fmt"
	"math"

	"Ampere/internal/round"
	"Ampere/internal/validate"
)

type Reflectance string

const (
	ReflectanceGood   Reflectance = "good"   // 70/50/20 ceiling/wall/floor
	ReflectanceMedium Reflectance = "medium" // 50/30/10
	ReflectancePoor   Reflectance = "poor"   // 30/10/10
)

// Utilization factor matrix indexed by room-index band and reflectance
// combination. Bands ascend; lookup takes the largest band at or below the
// computed room index, so a small room gets the conservative value.
var riBands = []float64{0.75, 1.0, 1.25, 1.5, 2.0, 2.5, 3.0, 4.0, 5.0}

var ufTable = map[Reflectance][]float64{
	ReflectanceGood:   {0.40, 0.46, 0.52, 0.56, 0.62, 0.66, 0.70, 0.74, 0.77},
	ReflectanceMedium: {0.34, 0.40, 0.45, 0.50, 0.55, 0.59, 0.62, 0.66, 0.69},
	ReflectancePoor:   {0.28, 0.33, 0.38, 0.42, 0.47, 0.51, 0.54, 0.57, 0.60},
}

type Input struct {
	RoomLengthM       float64     `json:"room_length_m"`
	RoomWidthM        float64     `json:"room_width_m"`
	MountingHeightM   float64     `json:"mounting_height_m"`
	TargetLux         float64     `json:"target_lux"`
	LuminaireLumens   float64     `json:"luminaire_lumens"`
	MaintenanceFactor float64     `json:"maintenance_factor"`
	Reflectance       Reflectance `json:"reflectance"`
}

type Result struct {
	RoomIndex         float64  `json:"room_index"`
	UtilizationFactor float64  `json:"utilization_factor"`
	LuminaireCount    int      `json:"luminaire_count"`
	Rows              int      `json:"rows"`
	Columns           int      `json:"columns"`
	AchievedLux       float64  `json:"achieved_lux"`
	Standards         []string `json:"standards"`
	Warnings          []string `json:"warnings"`
}

func Validate(in Input) validate.Findings {
	var f validate.Findings
	f = validate.Range(f, "room_length_m", in.RoomLengthM, 1, 200)
	f = validate.Range(f, "room_width_m", in.RoomWidthM, 1, 200)
	f = validate.Range(f, "mounting_height_m", in.MountingHeightM, 0.5, 30)
	f = validate.Range(f, "target_lux", in.TargetLux, 20, 5000)
	f = validate.Require(f, "luminaire_lumens", in.LuminaireLumens)
	if in.MaintenanceFactor < 0 || in.MaintenanceFactor > 1 {
		f = append(f, validate.Errorf("maintenance_factor", "must be in (0, 1]"))
	} else if in.MaintenanceFactor > 0 && in.MaintenanceFactor < 0.6 {
		f = append(f, validate.Warnf("maintenance_factor", "maintenance factor below 0.6 implies a very dirty environment"))
	}
	switch in.Reflectance {
	case ReflectanceGood, ReflectanceMedium, ReflectancePoor, "":
	default:
		f = append(f, validate.Errorf("reflectance", "must be good, medium or poor"))
	}
	return f
}

// Calculate runs the IESNA lumen method: room index, utilization factor
// lookup, luminaire count rounded up, and a practical rows-by-columns layout.
func Calculate(in Input) (Result, error) {
	if in.RoomLengthM <= 0 || in.RoomWidthM <= 0 || in.MountingHeightM <= 0 ||
		in.TargetLux <= 0 || in.LuminaireLumens <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	mf := in.MaintenanceFactor
	if mf == 0 {
		mf = 0.8
	}
	refl := in.Reflectance
	if refl == "" {
		refl = ReflectanceMedium
	}

	area := round.Mul(in.RoomLengthM, in.RoomWidthM)
	ri := round.Div(area, round.Mul(in.MountingHeightM, in.RoomLengthM+in.RoomWidthM))
	uf := utilizationFactor(refl, ri)

	required := round.Div(round.Mul(in.TargetLux, area), round.Mul(in.LuminaireLumens, uf, mf))
	count := round.UpInt(required)

	cols := round.UpInt(math.Sqrt(float64(count) * in.RoomLengthM / in.RoomWidthM))
	if cols < 1 {
		cols = 1
	}
	rows := round.UpInt(float64(count) / float64(cols))
	achieved := round.Div(round.Mul(float64(rows*cols), in.LuminaireLumens, uf, mf), area)

	res := Result{
		RoomIndex:         round.To(ri, 2),
		UtilizationFactor: uf,
		LuminaireCount:    count,
		Rows:              rows,
		Columns:           cols,
		AchievedLux:       round.To(achieved, 1),
		Standards:         []string{"IESNA Lighting Handbook"},
	}
	if ri < riBands[0] {
		res.Warnings = append(res.Warnings, "room index below the tabulated range; lowest utilization factor applied")
	}
	return res, nil
}

func utilizationFactor(refl Reflectance, ri float64) float64 {
	factors := ufTable[refl]
	uf := factors[0]
	for i, band := range riBands {
		if ri >= band {
			uf = factors[i]
		}
	}
	return uf
}
