package weather

// Annual average temperature per city, degrees Celsius.
var cityBaseTemps = map[string]float64{
	"delhi": 25, "mumbai": 27, "bangalore": 24, "chennai": 29,
	"kolkata": 27, "hyderabad": 27, "pune": 25, "jaipur": 26,
	"lucknow": 26, "kanpur": 26, "nagpur": 27, "indore": 25,
	"bhopal": 25, "patna": 26, "ludhiana": 23, "agra": 26,
	"nashik": 25, "vadodara": 28, "rajkot": 27,
}

const defaultBaseTemp = 26.0

// Regional humidity ranges, percent.
var cityHumidity = map[string][2]float64{
	"mumbai": {70, 90}, "chennai": {65, 85}, "kolkata": {65, 85},
	"bangalore": {55, 75}, "hyderabad": {50, 70}, "pune": {50, 70},
	"delhi": {40, 70}, "jaipur": {35, 65},
}

var defaultHumidity = [2]float64{50, 75}

// Northern-hemisphere seasonal temperature curve, month -> adjustment.
var monthAdjustment = map[int]float64{
	1:  -3, // January - winter
	2:  -1,
	3:  2,
	4:  5,
	5:  7, // May - peak summer
	6:  6, // monsoon onset
	7:  4,
	8:  3,
	9:  2,
	10: 0,
	11: -2,
	12: -4,
}

// Season buckets by calendar month.
type season int

const (
	seasonMonsoon     season = iota // June-September
	seasonWinter                    // December-February
	seasonSummer                    // March-May
	seasonPostMonsoon               // October-November
)

func seasonOf(month int) season {
	switch {
	case month >= 6 && month <= 9:
		return seasonMonsoon
	case month == 12 || month == 1 || month == 2:
		return seasonWinter
	case month >= 3 && month <= 5:
		return seasonSummer
	default:
		return seasonPostMonsoon
	}
}
