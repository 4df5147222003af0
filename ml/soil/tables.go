package soil

// CropInfo is the static fertilizer/tips text attached to a recommendation.
type CropInfo struct {
	Fertilizer string `json:"fertilizer"`
	Tips       string `json:"tips"`
}

// cropOrder fixes label indices for training and for the gob artifact.
var cropOrder = []string{
	"rice", "wheat", "maize", "cotton", "sugarcane", "jute",
	"pulses", "groundnut", "soybean", "potato", "tomato", "onion",
}

var cropInfo = map[string]CropInfo{
	"rice": {
		Fertilizer: "Apply urea (46% N) at 120 kg/ha. Add DAP for phosphorus.",
		Tips:       "Maintain flooded conditions. Optimal pH 5.5-7.0.",
	},
	"wheat": {
		Fertilizer: "Apply NPK (120:60:40 kg/ha). Use DAP and MOP.",
		Tips:       "Well-drained soil. Optimal pH 6.0-7.5.",
	},
	"maize": {
		Fertilizer: "Apply NPK (150:75:50 kg/ha). Side-dress nitrogen.",
		Tips:       "Requires good drainage. Optimal pH 5.8-7.0.",
	},
	"cotton": {
		Fertilizer: "Apply NPK (120:60:60 kg/ha). Extra potassium needed.",
		Tips:       "Deep soil preferred. Optimal pH 6.0-7.5.",
	},
	"sugarcane": {
		Fertilizer: "Apply NPK (150:60:60 kg/ha). High potassium requirement.",
		Tips:       "Needs irrigation. Optimal pH 6.0-7.5.",
	},
	"jute": {
		Fertilizer: "Apply NPK (60:30:30 kg/ha). Organic matter beneficial.",
		Tips:       "Alluvial soil best. Optimal pH 6.0-7.0.",
	},
	"pulses": {
		Fertilizer: "Apply phosphorus and potassium. Low nitrogen needed.",
		Tips:       "Nitrogen-fixing crop. Optimal pH 6.0-7.5.",
	},
	"groundnut": {
		Fertilizer: "Apply gypsum for calcium. NPK (20:40:40 kg/ha).",
		Tips:       "Well-drained sandy loam. Optimal pH 6.0-6.5.",
	},
	"soybean": {
		Fertilizer: "Apply NPK (30:60:40 kg/ha). Requires molybdenum.",
		Tips:       "Good drainage essential. Optimal pH 6.0-7.0.",
	},
	"potato": {
		Fertilizer: "Apply NPK (180:80:100 kg/ha). High potassium need.",
		Tips:       "Loose, well-drained soil. Optimal pH 5.0-6.0.",
	},
	"tomato": {
		Fertilizer: "Apply NPK (120:80:80 kg/ha). Balanced nutrition.",
		Tips:       "Well-drained loamy soil. Optimal pH 6.0-7.0.",
	},
	"onion": {
		Fertilizer: "Apply NPK (100:50:50 kg/ha). Requires sulfur.",
		Tips:       "Sandy loam preferred. Optimal pH 6.0-7.0.",
	},
}

var fallbackInfo = CropInfo{
	Fertilizer: "Consult local agricultural expert for fertilizer recommendations.",
	Tips:       "Ensure proper soil testing before planting.",
}

// featureRange is an inclusive optimal [lo, hi] interval per feature.
type featureRange struct {
	N, P, K, PH, Rain [2]float64
}

// cropRanges declares each crop's optimal growing conditions; synthetic
// training samples are drawn inside these intervals.
var cropRanges = map[string]featureRange{
	"rice":      {N: [2]float64{80, 100}, P: [2]float64{40, 50}, K: [2]float64{40, 50}, PH: [2]float64{5.5, 7.0}, Rain: [2]float64{200, 300}},
	"wheat":     {N: [2]float64{100, 120}, P: [2]float64{50, 70}, K: [2]float64{30, 50}, PH: [2]float64{6.0, 7.5}, Rain: [2]float64{50, 100}},
	"maize":     {N: [2]float64{70, 90}, P: [2]float64{40, 60}, K: [2]float64{30, 50}, PH: [2]float64{5.8, 7.0}, Rain: [2]float64{80, 150}},
	"cotton":    {N: [2]float64{100, 130}, P: [2]float64{40, 60}, K: [2]float64{50, 70}, PH: [2]float64{6.0, 7.5}, Rain: [2]float64{60, 120}},
	"sugarcane": {N: [2]float64{120, 150}, P: [2]float64{50, 70}, K: [2]float64{50, 80}, PH: [2]float64{6.0, 7.5}, Rain: [2]float64{150, 250}},
	"jute":      {N: [2]float64{50, 70}, P: [2]float64{25, 40}, K: [2]float64{25, 40}, PH: [2]float64{6.0, 7.0}, Rain: [2]float64{150, 250}},
	"pulses":    {N: [2]float64{20, 40}, P: [2]float64{50, 70}, K: [2]float64{30, 50}, PH: [2]float64{6.0, 7.5}, Rain: [2]float64{60, 100}},
	"groundnut": {N: [2]float64{15, 30}, P: [2]float64{35, 50}, K: [2]float64{35, 50}, PH: [2]float64{6.0, 6.5}, Rain: [2]float64{50, 100}},
	"soybean":   {N: [2]float64{25, 40}, P: [2]float64{55, 75}, K: [2]float64{35, 50}, PH: [2]float64{6.0, 7.0}, Rain: [2]float64{70, 130}},
	"potato":    {N: [2]float64{150, 180}, P: [2]float64{70, 90}, K: [2]float64{80, 110}, PH: [2]float64{5.0, 6.0}, Rain: [2]float64{80, 150}},
	"tomato":    {N: [2]float64{100, 130}, P: [2]float64{70, 90}, K: [2]float64{70, 90}, PH: [2]float64{6.0, 7.0}, Rain: [2]float64{60, 120}},
	"onion":     {N: [2]float64{90, 110}, P: [2]float64{45, 60}, K: [2]float64{45, 60}, PH: [2]float64{6.0, 7.0}, Rain: [2]float64{40, 80}},
}

// Info returns the advisory text for a crop label (lowercase), falling back
// to a generic consult-expert row for unknown labels.
func Info(crop string) CropInfo {
	if info, ok := cropInfo[crop]; ok {
		return info
	}
	return fallbackInfo
}

// Crops returns the fixed 12-label vocabulary in training order.
func Crops() []string {
	out := make([]string, len(cropOrder))
	copy(out, cropOrder)
	return out
}
