package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatValue renders a price with precision chosen by magnitude:
// one decimal from 1000 up, two from 100 up, three below. Rounding is half to even.
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	var places int32 = 3
	switch a := math.Abs(v); {
	case a >= 1000:
		places = 1
	case a >= 100:
		places = 2
	}
	return decimal.NewFromFloat(v).StringFixedBank(places)
}

// FormatChangePct renders a signed percentage, e.g. "+1.25%".
func FormatChangePct(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}

// FormatIndexPrice renders an index level with thousands separators.
func FormatIndexPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return humanize.FormatFloat("#,###.##", v)
}

var humanUnits = []struct {
	suffix    string
	threshold float64
}{
	{"T", 1e12},
	{"B", 1e9},
	{"M", 1e6},
	{"K", 1e3},
}

// Human abbreviates large counts with a T/B/M/K suffix. Zero renders as "-".
func Human(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "-"
	}
	for _, u := range humanUnits {
		if math.Abs(v) >= u.threshold {
			return fmt.Sprintf("%.2f%s", v/u.threshold, u.suffix)
		}
	}
	return fmt.Sprintf("%.0f", v)
}
