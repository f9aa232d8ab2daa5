package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/voyagen/dramarail/internal/models"
)

var countUnits = []struct {
	size   float64
	suffix string
}{
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatCount renders a play count for display. Numeric values (JSON numbers
// or numeric strings) are shortened to one decimal with a K/M/B suffix; any
// other text is shown as sent.
func FormatCount(p models.PlayCount) string {
	v, ok := p.Float()
	if !ok {
		return strings.TrimSpace(p.Raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return p.Raw
	}
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	for _, u := range countUnits {
		if v >= u.size {
			return sign + trimDecimal(v/u.size) + u.suffix
		}
	}
	return sign + trimDecimal(v)
}

// trimDecimal rounds down to one decimal place and drops a trailing ".0".
func trimDecimal(v float64) string {
	v = math.Floor(v*10) / 10
	return strings.TrimSuffix(strconv.FormatFloat(v, 'f', 1, 64), ".0")
}
