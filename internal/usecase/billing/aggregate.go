package billing

import (
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"lending-portal/internal/domain/loan"
)

// ErrNoRecords means an entity had zero qualifying loans after filtering.
// The entity is skipped: no header, no line items, no delivery.
var ErrNoRecords = errors.New("no billable records")

// BuildStatement filters, prorates and totals one entity's loans for one
// invoice date.
//
// Loans whose fund date falls in the invoice month itself are excluded: they
// are too new to bill in arrears and belong to next cycle's covered month.
// Loans with no fund date at all are billed in full.
func BuildStatement(entityName string, role loan.Role, loans []loan.Billable, invoiceDate time.Time) (*Statement, error) {
	covered := CoveredPeriod(invoiceDate)

	st := &Statement{
		EntityName:     entityName,
		Role:           role,
		InvoiceDate:    invoiceDate,
		Covered:        covered,
		FirstMonthKeys: map[string][]string{},
	}

	totalBilled := decimal.Zero
	totalInvested := decimal.Zero
	yearToDate := decimal.Zero
	var firstIncluded loan.Billable

	for _, l := range loans {
		if fund := l.FundDate(); fund != nil && sameMonth(*fund, invoiceDate) {
			log.Printf("billing: excluding %s: funded %s, bills next cycle", l.Label(), fund.Format("2006-01-02"))
			continue
		}

		p := DetermineProration(l, invoiceDate)

		line := Line{
			LoanTable:        l.Table(),
			LoanKey:          l.LoanKey(),
			Label:            l.Label(),
			Address:          l.Address(),
			FundDate:         l.FundDate(),
			Principal:        l.Principal(),
			Rate:             l.Rate(),
			OriginalAmount:   l.MonthlyAmount(),
			BilledAmount:     l.MonthlyAmount(),
			PeriodStart:      p.PeriodStart,
			PeriodEnd:        p.PeriodEnd,
			DaysInPeriod:     covered.Days,
			TotalDaysInMonth: covered.Days,
		}

		// Last-month is applied after first-month so that a loan funded and
		// paid off inside the same covered month bills its closure window.
		if p.IsFirstMonth {
			calc := FirstMonthProration(*l.FundDate(), l.MonthlyAmount())
			line.BilledAmount = calc.ProratedAmount
			line.IsProrated = true
			line.ProrationType = p.Type
			line.DaysInPeriod = calc.DaysInPeriod
			line.TotalDaysInMonth = calc.TotalDaysInMonth
			// first-month only fires on unstamped loans, so every key here
			// still needs its stamp
			st.FirstMonthKeys[l.Table()] = append(st.FirstMonthKeys[l.Table()], l.LoanKey())
		}
		if p.IsLastMonth {
			calc := LastMonthProration(*l.PayoffDate(), l.MonthlyAmount())
			line.BilledAmount = calc.ProratedAmount
			line.IsProrated = true
			line.ProrationType = p.Type
			line.DaysInPeriod = calc.DaysInPeriod
			line.TotalDaysInMonth = calc.TotalDaysInMonth
		}

		totalBilled = totalBilled.Add(decimal.NewFromFloat(line.BilledAmount))
		totalInvested = totalInvested.Add(decimal.NewFromFloat(l.Principal()))
		if role == loan.RoleInvestor {
			yearToDate = yearToDate.Add(decimal.NewFromFloat(l.YearToDate()))
		}

		if firstIncluded == nil {
			firstIncluded = l
		}
		st.Lines = append(st.Lines, line)
	}

	if len(st.Lines) == 0 {
		return nil, ErrNoRecords
	}

	// Capital-investor YTD arrives pre-aggregated per entity; report it once
	// instead of summing across stakes.
	if role == loan.RoleCapInvestor {
		yearToDate = decimal.NewFromFloat(firstIncluded.YearToDate())
	}

	st.TotalBilled = round2(totalBilled)
	st.TotalInvested = round2(totalInvested)
	st.YearToDate = round2(yearToDate)
	return st, nil
}
