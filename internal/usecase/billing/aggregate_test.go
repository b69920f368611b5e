package billing

import (
	"errors"
	"testing"
	"time"

	"lending-portal/internal/domain/invoice"
	"lending-portal/internal/domain/loan"
)

func TestBuildStatement_WorkedExample(t *testing.T) {
	// fund 2025-01-15, $3,000/month: the 2025-02-01 run bills $1,700.00,
	// the 2025-03-01 run (stamp in place) bills the full $3,000.00
	note := &loan.Promissory{
		ID: "n1", InvestorName: "Jane Roe", AssetID: "NOTE-9",
		FundDate:   datePtr(2025, time.January, 15),
		CapitalPay: 3000, LoanAmount: 250000, YearToDate: 4500,
	}

	st, err := BuildStatement("Jane Roe", loan.RoleInvestor,
		[]loan.Billable{note.AsBillable()}, date(2025, time.February, 1))
	if err != nil {
		t.Fatalf("BuildStatement: %v", err)
	}
	if len(st.Lines) != 1 {
		t.Fatalf("got %d lines", len(st.Lines))
	}
	ln := st.Lines[0]
	if ln.BilledAmount != 1700 || !ln.IsProrated || ln.ProrationType != invoice.ProrationFirstMonth {
		t.Fatalf("unexpected line: %+v", ln)
	}
	if ln.OriginalAmount != 3000 {
		t.Fatalf("OriginalAmount = %.2f", ln.OriginalAmount)
	}
	if ln.DaysInPeriod != 17 || ln.TotalDaysInMonth != 30 {
		t.Fatalf("days = %d/%d, want 17/30", ln.DaysInPeriod, ln.TotalDaysInMonth)
	}
	if st.TotalBilled != 1700 {
		t.Fatalf("TotalBilled = %.2f", st.TotalBilled)
	}
	if got := st.FirstMonthKeys[loan.TablePromissory]; len(got) != 1 || got[0] != "n1" {
		t.Fatalf("FirstMonthKeys = %+v", st.FirstMonthKeys)
	}

	// next cycle with the stamp set: full amount, no first-month keys
	note.FirstInvoiceGeneratedAt = datePtr(2025, time.February, 1)
	st, err = BuildStatement("Jane Roe", loan.RoleInvestor,
		[]loan.Billable{note.AsBillable()}, date(2025, time.March, 1))
	if err != nil {
		t.Fatal(err)
	}
	if st.Lines[0].BilledAmount != 3000 || st.Lines[0].IsProrated {
		t.Fatalf("march line: %+v", st.Lines[0])
	}
	if len(st.FirstMonthKeys) != 0 {
		t.Fatalf("no stamps expected, got %+v", st.FirstMonthKeys)
	}
}

func TestBuildStatement_ExcludesInvoiceMonthFundings(t *testing.T) {
	invoiceDate := date(2025, time.June, 1)

	tooNew := &loan.Funded{
		ID: "f1", BusinessName: "Acme Corp",
		ClosingDate: datePtr(2025, time.June, 10), InterestPayment: 900,
	}
	billable := &loan.Funded{
		ID: "f2", BusinessName: "Acme Corp",
		ClosingDate:             datePtr(2024, time.March, 1),
		FirstInvoiceGeneratedAt: datePtr(2024, time.April, 1),
		InterestPayment:         500,
	}
	noFundDate := &loan.Funded{
		ID: "f3", BusinessName: "Acme Corp", InterestPayment: 250,
	}

	st, err := BuildStatement("Acme Corp", loan.RoleClient,
		[]loan.Billable{tooNew.AsBillable(), billable.AsBillable(), noFundDate.AsBillable()},
		invoiceDate)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Lines) != 2 {
		t.Fatalf("got %d lines, want 2 (june funding excluded)", len(st.Lines))
	}
	for _, ln := range st.Lines {
		if ln.LoanKey == "f1" {
			t.Fatalf("loan funded in the invoice month must not bill")
		}
	}
	if st.TotalBilled != 750 {
		t.Fatalf("TotalBilled = %.2f, want 750.00", st.TotalBilled)
	}

	// the excluded loan becomes billable one cycle later, first-month prorated
	st, err = BuildStatement("Acme Corp", loan.RoleClient,
		[]loan.Billable{tooNew.AsBillable()}, date(2025, time.July, 1))
	if err != nil {
		t.Fatal(err)
	}
	ln := st.Lines[0]
	if !ln.IsProrated || ln.ProrationType != invoice.ProrationFirstMonth {
		t.Fatalf("july line: %+v", ln)
	}
	// June 10..30 inclusive = 21 days
	if ln.DaysInPeriod != 21 || ln.BilledAmount != 630 {
		t.Fatalf("days=%d amount=%.2f, want 21/630.00", ln.DaysInPeriod, ln.BilledAmount)
	}
}

func TestBuildStatement_NoRecords(t *testing.T) {
	_, err := BuildStatement("Acme Corp", loan.RoleClient, nil, date(2025, time.June, 1))
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("want ErrNoRecords, got %v", err)
	}

	// all loans excluded also counts as no records
	tooNew := &loan.Funded{
		ID: "f1", BusinessName: "Acme Corp",
		ClosingDate: datePtr(2025, time.June, 10), InterestPayment: 900,
	}
	_, err = BuildStatement("Acme Corp", loan.RoleClient,
		[]loan.Billable{tooNew.AsBillable()}, date(2025, time.June, 1))
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("want ErrNoRecords after exclusion, got %v", err)
	}
}

func TestBuildStatement_InvestorYTDSums(t *testing.T) {
	mk := func(id string, ytd float64) loan.Billable {
		return (&loan.Promissory{
			ID: id, InvestorName: "Jane Roe",
			FundDate:                datePtr(2024, time.March, 1),
			FirstInvoiceGeneratedAt: datePtr(2024, time.April, 1),
			CapitalPay:              100, YearToDate: ytd,
		}).AsBillable()
	}

	st, err := BuildStatement("Jane Roe", loan.RoleInvestor,
		[]loan.Billable{mk("n1", 1200.50), mk("n2", 800.25)}, date(2025, time.June, 1))
	if err != nil {
		t.Fatal(err)
	}
	if st.YearToDate != 2000.75 {
		t.Fatalf("YearToDate = %.2f, want 2000.75", st.YearToDate)
	}
}

func TestBuildStatement_CapInvestorYTDReportedOnce(t *testing.T) {
	// pre-aggregated upstream: both stakes carry the same entity-level total
	mk := func(id string, fund *time.Time) *loan.CapInvestor {
		return &loan.CapInvestor{
			ID: id, InvestorName: "Cap Co", LoanStatus: "Funded",
			FundDate: fund, FirstInvoiceGeneratedAt: datePtr(2024, time.April, 1),
			Payment: 400, YearToDate: 5000,
		}
	}

	st, err := BuildStatement("Cap Co", loan.RoleCapInvestor,
		[]loan.Billable{
			mk("c1", datePtr(2024, time.March, 1)).AsBillable(),
			mk("c2", datePtr(2024, time.March, 1)).AsBillable(),
		}, date(2025, time.June, 1))
	if err != nil {
		t.Fatal(err)
	}
	if st.YearToDate != 5000 {
		t.Fatalf("YearToDate = %.2f, want 5000 (not doubled)", st.YearToDate)
	}

	// when the first row is excluded, YTD comes from the first included one
	st, err = BuildStatement("Cap Co", loan.RoleCapInvestor,
		[]loan.Billable{
			mk("c1", datePtr(2025, time.June, 5)).AsBillable(), // excluded
			mk("c2", datePtr(2024, time.March, 1)).AsBillable(),
		}, date(2025, time.June, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Lines) != 1 || st.YearToDate != 5000 {
		t.Fatalf("lines=%d ytd=%.2f", len(st.Lines), st.YearToDate)
	}
}

func TestBuildStatement_ClientHasNoYTD(t *testing.T) {
	l := &loan.Funded{
		ID: "f1", BusinessName: "Acme Corp",
		ClosingDate:             datePtr(2024, time.March, 1),
		FirstInvoiceGeneratedAt: datePtr(2024, time.April, 1),
		InterestPayment:         500,
	}
	st, err := BuildStatement("Acme Corp", loan.RoleClient,
		[]loan.Billable{l.AsBillable()}, date(2025, time.June, 1))
	if err != nil {
		t.Fatal(err)
	}
	if st.YearToDate != 0 {
		t.Fatalf("YearToDate = %.2f, want 0", st.YearToDate)
	}
}

func TestBuildStatement_CentTotals(t *testing.T) {
	// three lines of $33.33 each after proration must total 99.99, not
	// accumulate float drift
	mk := func(id string) loan.Billable {
		return (&loan.Promissory{
			ID: id, InvestorName: "Jane Roe",
			FundDate:   datePtr(2025, time.May, 31), // 1 day of May
			CapitalPay: 1000,
		}).AsBillable()
	}
	st, err := BuildStatement("Jane Roe", loan.RoleInvestor,
		[]loan.Billable{mk("n1"), mk("n2"), mk("n3")}, date(2025, time.June, 1))
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalBilled != 99.99 {
		t.Fatalf("TotalBilled = %v, want 99.99", st.TotalBilled)
	}
}
