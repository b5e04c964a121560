package types

import (
	"time"

	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
)

// NextBillingDate calculates the end of a billing period that starts at the
// given time: monthly adds one calendar month, quarterly three, annual one
// calendar year. The addition is calendar-aware with day-of-month clamping,
// so Jan 31 + 1 month lands on the last valid day of February rather than
// rolling into March.
func NextBillingDate(start time.Time, cycle BillingCycle) (time.Time, error) {
	switch cycle {
	case BillingCycleMonthly:
		return AddClampedDate(start, 0, 1, 0), nil
	case BillingCycleQuarterly:
		return AddClampedDate(start, 0, 3, 0), nil
	case BillingCycleAnnual:
		return AddClampedDate(start, 1, 0, 0), nil
	default:
		return start, ierr.NewError("invalid billing cycle").
			WithHintf("Cannot compute a billing period for cycle %q", cycle).
			Mark(ierr.ErrValidation)
	}
}

// AddClampedDate adds years, months, and days to t, clamping the day of
// month to the last valid day of the target month instead of letting it
// overflow the way time.AddDate does.
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	newY := y + years
	newM := time.Month(int(m) + months)

	// Moving beyond December adjusts correctly, e.g. adding 2 months to
	// November lands on January of the next year.
	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	// Day 0 of the following month normalizes to the last day of the
	// target month. Pure date arithmetic, immune to DST day lengths.
	lastDay := time.Date(newY, newM+1, 0, 0, 0, 0, 0, time.UTC).Day()

	newD := d + days
	if newD > lastDay {
		newD = lastDay
	}

	return time.Date(newY, newM, newD, h, min, sec, t.Nanosecond(), t.Location())
}
