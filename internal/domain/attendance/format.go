package attendance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// FormatHours renders decimal hours as "9 jam 30 menit".
func FormatHours(hours decimal.Decimal) string {
	totalMinutes := hours.Mul(sixty).Round(0).IntPart()
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	h, m := totalMinutes/60, totalMinutes%60

	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%d jam %d menit", h, m)
	case h > 0:
		return fmt.Sprintf("%d jam", h)
	default:
		return fmt.Sprintf("%d menit", m)
	}
}
