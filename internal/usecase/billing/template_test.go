package billing

import (
	"testing"
	"time"

	"lending-portal/internal/domain/loan"
)

func TestApplyPlaceholders(t *testing.T) {
	data := map[string]string{"businessName": "Acme Corp", "month": "June"}

	got := ApplyPlaceholders("Dear {{businessName}}, your {{month}} invoice is ready.", data)
	want := "Dear Acme Corp, your June invoice is ready."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// unknown tokens stay visible instead of vanishing
	got = ApplyPlaceholders("Hello {{typoToken}}", data)
	if got != "Hello {{typoToken}}" {
		t.Fatalf("unknown token altered: %q", got)
	}
}

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1700, "$1,700.00"},
		{1234567.891, "$1,234,567.89"},
		{33.335, "$33.34"},
		{-950.5, "-$950.50"},
	}
	for _, tc := range cases {
		if got := FormatUSD(tc.in); got != tc.want {
			t.Errorf("FormatUSD(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFileNameAndStorageKey(t *testing.T) {
	invDate := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	name := FileName("Acme Corp / East", invDate)
	if name != "Acme_Corp___East_June_1_2025.html" {
		t.Fatalf("FileName = %q", name)
	}

	key := StorageKey(loan.RoleClient, "Acme Corp", "Acme_Corp_June_1_2025.html")
	if key != "invoices/clients/Acme_Corp/Acme_Corp_June_1_2025.html" {
		t.Fatalf("client key = %q", key)
	}
	key = StorageKey(loan.RoleInvestor, "Jane Roe", "f.html")
	if key != "invoices/investors/Jane_Roe/f.html" {
		t.Fatalf("investor key = %q", key)
	}
	key = StorageKey(loan.RoleCapInvestor, "Cap Co", "f.html")
	if key != "invoices/capinvestors/Cap_Co/f.html" {
		t.Fatalf("capinvestor key = %q", key)
	}
}

func TestTemplateData_AmountLabelPerRole(t *testing.T) {
	invDate := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	data := TemplateData("Acme Corp", loan.RoleClient, invDate, 2575)
	if data["amountLabel"] != "Total Interest Due" {
		t.Errorf("client label = %q", data["amountLabel"])
	}
	if data["month"] != "June" || data["year"] != "2025" || data["totalAmount"] != "$2,575.00" {
		t.Errorf("unexpected data: %+v", data)
	}

	data = TemplateData("Jane Roe", loan.RoleInvestor, invDate, 375)
	if data["amountLabel"] != "Total Interest Earned" {
		t.Errorf("investor label = %q", data["amountLabel"])
	}
}
