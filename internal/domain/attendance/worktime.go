package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	// OnTimeMinHours is the least a full working day may last.
	OnTimeMinHours = decimal.NewFromInt(8)
	// OnTimeMaxHours is the last value still counted as on time; anything above is overtime.
	OnTimeMaxHours = decimal.RequireFromString("8.25")

	hourUnits = decimal.NewFromInt(int64(time.Hour))
)

// WorkSummary is the classification of one check-in/check-out interval.
// Only Classify produces it, so derived fields can never come from a request.
type WorkSummary struct {
	hours    decimal.Decimal
	status   Status
	overtime decimal.Decimal
}

func (w WorkSummary) Hours() decimal.Decimal    { return w.hours }
func (w WorkSummary) Status() Status            { return w.status }
func (w WorkSummary) Overtime() decimal.Decimal { return w.overtime }

// Classify maps an interval to elapsed hours (2 decimals), a status and overtime hours.
func Classify(checkIn, checkOut time.Time) (WorkSummary, error) {
	if !checkOut.After(checkIn) {
		return WorkSummary{}, ErrInvalidInterval
	}

	hours := decimal.NewFromInt(int64(checkOut.Sub(checkIn))).Div(hourUnits).Round(2)

	switch {
	case hours.LessThan(OnTimeMinHours):
		return WorkSummary{hours: hours, status: StatusLeftEarly, overtime: decimal.Zero}, nil
	case hours.LessThanOrEqual(OnTimeMaxHours):
		return WorkSummary{hours: hours, status: StatusOnTime, overtime: decimal.Zero}, nil
	default:
		return WorkSummary{hours: hours, status: StatusOvertime, overtime: hours.Sub(OnTimeMaxHours).Round(2)}, nil
	}
}
