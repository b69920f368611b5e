package billing

import "time"

// Period is the calendar window an invoice covers.
type Period struct {
	Start time.Time
	End   time.Time
	// Days is the true civil day count of the window (28-31 for a full
	// month). Proration math does NOT use it; see fixedMonthDays.
	Days int
}

// daysInMonth returns the civil day count of a month (day 0 of the next
// month normalizes to the last day of this one).
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CoveredPeriod computes the month an invoice run bills for: the entire
// calendar month before the invoice date, since billing is in arrears.
func CoveredPeriod(invoiceDate time.Time) Period {
	year, month := invoiceDate.Year(), invoiceDate.Month()
	coveredYear, coveredMonth := year, month-1
	if month == time.January {
		coveredYear, coveredMonth = year-1, time.December
	}
	days := daysInMonth(coveredYear, coveredMonth)
	return Period{
		Start: time.Date(coveredYear, coveredMonth, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(coveredYear, coveredMonth, days, 0, 0, 0, 0, time.UTC),
		Days:  days,
	}
}

// InvoiceDateFor picks the run's invoice date: the 1st of the current month
// in the reference timezone, carried as a civil UTC date so all downstream
// period math works off one fixed point.
func InvoiceDateFor(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
