package breaker

// Standard molded-case breaker frame sizes, amperes, ascending.
var (
	// IEC 60898-1 preferred ratings.
	iecSizes = []float64{6, 10, 16, 20, 25, 32, 40, 50, 63, 80, 100, 125, 160, 200, 250, 320, 400, 500, 630, 800, 1000, 1250}
	// NEC 240.6(A) standard ampere ratings.
	necSizes = []float64{15, 20, 25, 30, 35, 40, 45, 50, 60, 70, 80, 90, 100, 110, 125, 150, 175, 200, 225, 250, 300, 350, 400, 450, 500, 600, 700, 800, 1000, 1200}
)

type tempStep struct {
	maxC   float64
	factor float64
}

// Ambient temperature correction, PVC insulated conductors.
// IEC 60364-5-52 table B.52.14 (30 C base), NEC 310.15(B)(1) 75 C column.
var (
	iecTempSteps = []tempStep{
		{10, 1.22}, {15, 1.17}, {20, 1.12}, {25, 1.06}, {30, 1.00},
		{35, 0.94}, {40, 0.87}, {45, 0.79}, {50, 0.71}, {55, 0.61}, {60, 0.50},
	}
	necTempSteps = []tempStep{
		{10, 1.20}, {15, 1.15}, {20, 1.11}, {25, 1.05}, {30, 1.00},
		{35, 0.94}, {40, 0.88}, {45, 0.82}, {50, 0.75}, {55, 0.67},
		{60, 0.58}, {70, 0.33},
	}
)

type groupStep struct {
	maxCircuits int
	factor      float64
}

// Grouping correction. IEC 60364-5-52 table B.52.17 (bunched in conduit),
// NEC 310.15(C)(1) adjustment factors.
var (
	iecGroupSteps = []groupStep{
		{1, 1.00}, {2, 0.80}, {3, 0.70}, {4, 0.65}, {5, 0.60}, {6, 0.57},
		{7, 0.54}, {8, 0.52}, {9, 0.50}, {12, 0.45}, {16, 0.41}, {20, 0.38},
	}
	necGroupSteps = []groupStep{
		{3, 1.00}, {6, 0.80}, {9, 0.70}, {20, 0.50}, {30, 0.45}, {40, 0.40},
	}
)

type resistanceRow struct {
	sizeMM2  float64
	copper   float64 // ohm/km at 75 C
	aluminum float64
}

// Conductor DC resistance per kilometre.
var resistanceRows = []resistanceRow{
	{1.5, 12.1, 0},
	{2.5, 7.41, 0},
	{4, 4.61, 0},
	{6, 3.08, 0},
	{10, 1.83, 3.08},
	{16, 1.15, 1.91},
	{25, 0.727, 1.20},
	{35, 0.524, 0.868},
	{50, 0.387, 0.641},
	{70, 0.268, 0.443},
	{95, 0.193, 0.320},
	{120, 0.153, 0.253},
	{150, 0.124, 0.206},
	{185, 0.0991, 0.164},
	{240, 0.0754, 0.125},
	{300, 0.0601, 0.100},
}

func sizesFor(std Standard) []float64 {
	if std == StandardNEC {
		return necSizes
	}
	return iecSizes
}

// tempFactor returns the correction for the first tabulated ambient at or
// above the given one. Ambients beyond the table are refused, never clamped.
func tempFactor(std Standard, ambientC float64) (float64, bool) {
	steps := iecTempSteps
	if std == StandardNEC {
		steps = necTempSteps
	}
	for _, s := range steps {
		if ambientC <= s.maxC {
			return s.factor, true
		}
	}
	return 0, false
}

func groupFactor(std Standard, circuits int) (float64, bool) {
	steps := iecGroupSteps
	if std == StandardNEC {
		steps = necGroupSteps
	}
	for _, s := range steps {
		if circuits <= s.maxCircuits {
			return s.factor, true
		}
	}
	return 0, false
}

func resistancePerKm(material string, sizeMM2 float64) (float64, bool) {
	for _, r := range resistanceRows {
		if r.sizeMM2 == sizeMM2 {
			if material == "aluminum" || material == "aluminium" {
				if r.aluminum == 0 {
					return 0, false
				}
				return r.aluminum, true
			}
			return r.copper, true
		}
	}
	return 0, false
}
