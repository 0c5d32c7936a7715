package subscription

import (
	"time"

	"github.com/hilalgiving/ledger/pkg/types"
)

// NextPaymentDate returns the next charge date for a billing frequency: one
// calendar unit after "from", expressed as a date-only value in loc.
//
// It is always computed fresh from the current event time, never by
// incrementing the previously stored date, so gateway-side billing-cycle
// drift is absorbed rather than compounded.
func NextPaymentDate(from time.Time, freq types.Frequency, loc *time.Location) time.Time {
	t := from.In(loc)

	var next time.Time
	switch freq {
	case types.FrequencyWeekly:
		next = t.AddDate(0, 0, 7)
	case types.FrequencyFortnightly:
		next = t.AddDate(0, 0, 14)
	case types.FrequencyYearly:
		next = addCalendarMonths(t, 12)
	default:
		// monthly, and the fallback for anything unrecognized
		next = addCalendarMonths(t, 1)
	}

	y, m, d := next.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// addCalendarMonths advances by whole calendar months, clamping the day to
// the target month's length (Jan 31 -> Feb 28/29). time.AddDate would
// normalize the overflow into the following month instead.
func addCalendarMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, t.Location())
}
