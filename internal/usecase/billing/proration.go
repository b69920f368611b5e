package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"lending-portal/internal/domain/invoice"
	"lending-portal/internal/domain/loan"
)

// fixedMonthDays is the proration denominator. Partial months always bill
// amount/30 x days regardless of the covered month's true length; this is a
// business rule, not a calendar shortcut.
const fixedMonthDays = 30

var decFixedMonthDays = decimal.NewFromInt(fixedMonthDays)

// round2 rounds to the nearest cent, halves away from zero.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Prorate bills a partial month: round2(monthlyAmount / 30 * days).
func Prorate(monthlyAmount float64, days int) float64 {
	return round2(decimal.NewFromFloat(monthlyAmount).
		Mul(decimal.NewFromInt(int64(days))).
		Div(decFixedMonthDays))
}

// Calc is one computed proration window.
type Calc struct {
	PeriodStart      time.Time
	PeriodEnd        time.Time
	DaysInPeriod     int
	TotalDaysInMonth int // always fixedMonthDays for prorated lines
	ProratedAmount   float64
}

// FirstMonthProration covers fund date through the end of the fund month,
// inclusive of the fund day.
func FirstMonthProration(fundDate time.Time, monthlyAmount float64) Calc {
	year, month, day := fundDate.Year(), fundDate.Month(), fundDate.Day()
	last := daysInMonth(year, month)
	days := last - day + 1
	return Calc{
		PeriodStart:      time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		PeriodEnd:        time.Date(year, month, last, 0, 0, 0, 0, time.UTC),
		DaysInPeriod:     days,
		TotalDaysInMonth: fixedMonthDays,
		ProratedAmount:   Prorate(monthlyAmount, days),
	}
}

// LastMonthProration covers the start of the payoff month through the payoff
// date, inclusive.
func LastMonthProration(payoffDate time.Time, monthlyAmount float64) Calc {
	year, month, day := payoffDate.Year(), payoffDate.Month(), payoffDate.Day()
	return Calc{
		PeriodStart:      time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:        time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		DaysInPeriod:     day,
		TotalDaysInMonth: fixedMonthDays,
		ProratedAmount:   Prorate(monthlyAmount, day),
	}
}

// Proration is the per-loan, per-period decision. Both flags can be set when
// a loan funds and pays off inside the same covered month; the billed amount
// then follows the last-month side (loan closure dominates), which Type,
// PeriodStart and PeriodEnd reflect.
type Proration struct {
	IsFirstMonth bool
	IsLastMonth  bool
	Type         invoice.ProrationType // "" when neither applies
	PeriodStart  time.Time
	PeriodEnd    time.Time
}

// DetermineProration decides how the covered month bills for one loan.
//
// First-month applies only while the loan has never been invoiced
// (FirstInvoiceAt unset), its fund date sits in the covered month, and this
// invoice is for exactly the month after the fund month. Last-month applies
// whenever the payoff date sits in the covered month.
func DetermineProration(l loan.Billable, invoiceDate time.Time) Proration {
	covered := CoveredPeriod(invoiceDate)

	p := Proration{
		PeriodStart: covered.Start,
		PeriodEnd:   covered.End,
	}

	if fund := l.FundDate(); fund != nil && l.FirstInvoiceAt() == nil {
		firstInvoiceMonth := time.Date(fund.Year(), fund.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		if sameMonth(invoiceDate, firstInvoiceMonth) && sameMonth(*fund, covered.Start) {
			p.IsFirstMonth = true
			p.Type = invoice.ProrationFirstMonth
			p.PeriodStart = time.Date(fund.Year(), fund.Month(), fund.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	if payoff := l.PayoffDate(); payoff != nil && sameMonth(*payoff, covered.Start) {
		p.IsLastMonth = true
		p.Type = invoice.ProrationLastMonth
		p.PeriodEnd = time.Date(payoff.Year(), payoff.Month(), payoff.Day(), 0, 0, 0, 0, time.UTC)
	}

	return p
}
