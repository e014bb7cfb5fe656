package season

// Legacy season labels map to approximate month ranges. The labels survive
// only on rows that predate month-range management; every resolver must go
// through this table instead of keeping its own copy.

type Range struct {
	Start int
	End   int
}

var ranges = map[string]Range{
	"春":  {3, 5},
	"夏":  {6, 8},
	"秋":  {9, 11},
	"冬":  {12, 2}, // wraps the year boundary
	"梅雨": {6, 6},
	"通年": {1, 12},
}

// Months returns the month range for a legacy season label.
func Months(label string) (Range, bool) {
	r, ok := ranges[label]
	return r, ok
}

// Label returns the season label for a calendar month (1-12).
func Label(month int) string {
	switch {
	case month >= 3 && month <= 5:
		return "春"
	case month >= 6 && month <= 8:
		return "夏"
	case month >= 9 && month <= 11:
		return "秋"
	default:
		return "冬"
	}
}
