package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"lending-portal/internal/domain/loan"
	"lending-portal/internal/usecase/billing"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRenderClientStatement(t *testing.T) {
	r := NewHTMLRenderer()
	fund := date(2025, time.May, 15)
	st := &billing.Statement{
		EntityName:  "Acme Corp",
		Role:        loan.RoleClient,
		InvoiceDate: date(2025, time.June, 1),
		Covered:     billing.CoveredPeriod(date(2025, time.June, 1)),
		Lines: []billing.Line{
			{
				Address: "12 Main St", Principal: 250000, Rate: 12,
				OriginalAmount: 3000, BilledAmount: 1700,
				IsProrated: true, DaysInPeriod: 17, TotalDaysInMonth: 30,
				FundDate: &fund,
			},
			{
				Address: "48 Oak Ave", Principal: 100000, Rate: 10.5,
				OriginalAmount: 875, BilledAmount: 875,
			},
		},
		TotalBilled: 2575,
	}

	out, err := r.Render(context.Background(), st)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"Acme Corp",
		"Monthly Interest Invoice",
		"June 1 2025",
		"12 Main St",
		"$250,000.00",
		"12.00%",
		"$1,700.00",
		"Prorated 17 out of 30 days",
		"Total Interest Due",
		"$2,575.00",
		"May 1, 2025 - May 31, 2025",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered output missing %q", want)
		}
	}
	if strings.Contains(html, "Year to Date") {
		t.Errorf("client statement should not carry a year-to-date block")
	}
	if strings.Contains(html, "Account Summary") {
		t.Errorf("client statement should not carry an account summary")
	}
}

func TestRenderInvestorStatementYTD(t *testing.T) {
	r := NewHTMLRenderer()
	fund := date(2024, time.November, 3)
	st := &billing.Statement{
		EntityName:  "Jane Roe",
		Role:        loan.RoleInvestor,
		InvoiceDate: date(2025, time.June, 1),
		Covered:     billing.CoveredPeriod(date(2025, time.June, 1)),
		Lines: []billing.Line{
			{FundDate: &fund, Principal: 50000, Rate: 9, OriginalAmount: 375, BilledAmount: 375},
		},
		TotalBilled:   375,
		TotalInvested: 50000,
		YearToDate:    2250,
	}

	out, err := r.Render(context.Background(), st)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"Promissory Note Statement",
		"November 3, 2024",
		"Account Summary",
		"Total Amount Invested",
		"$50,000.00",
		"Total Interest Earned",
		"Year to Date Interest",
		"$2,250.00",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered output missing %q", want)
		}
	}
}

func TestRenderEscapesEntityName(t *testing.T) {
	r := NewHTMLRenderer()
	st := &billing.Statement{
		EntityName:  "<script>alert(1)</script>",
		Role:        loan.RoleClient,
		InvoiceDate: date(2025, time.June, 1),
		Covered:     billing.CoveredPeriod(date(2025, time.June, 1)),
		Lines:       []billing.Line{{Address: "1 Elm St", BilledAmount: 100}},
		TotalBilled: 100,
	}

	out, err := r.Render(context.Background(), st)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("entity name not escaped")
	}
}
