package billing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestCoveredPeriod(t *testing.T) {
	cases := []struct {
		invoiceDate time.Time
		wantStart   time.Time
		wantEnd     time.Time
		wantDays    int
	}{
		{date(2025, time.June, 1), date(2025, time.May, 1), date(2025, time.May, 31), 31},
		{date(2025, time.March, 1), date(2025, time.February, 1), date(2025, time.February, 28), 28},
		{date(2024, time.March, 1), date(2024, time.February, 1), date(2024, time.February, 29), 29},
		// January bills the prior year's December
		{date(2026, time.January, 1), date(2025, time.December, 1), date(2025, time.December, 31), 31},
	}
	for _, tc := range cases {
		got := CoveredPeriod(tc.invoiceDate)
		if !got.Start.Equal(tc.wantStart) || !got.End.Equal(tc.wantEnd) || got.Days != tc.wantDays {
			t.Errorf("CoveredPeriod(%s) = %s..%s/%d, want %s..%s/%d",
				tc.invoiceDate.Format("2006-01-02"),
				got.Start.Format("2006-01-02"), got.End.Format("2006-01-02"), got.Days,
				tc.wantStart.Format("2006-01-02"), tc.wantEnd.Format("2006-01-02"), tc.wantDays)
		}
	}
}

func TestInvoiceDateFor(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	// mid-month is pinned back to the 1st
	got := InvoiceDateFor(time.Date(2025, time.June, 17, 15, 30, 0, 0, time.UTC), ny)
	if !got.Equal(date(2025, time.June, 1)) {
		t.Errorf("mid-month: got %s", got.Format("2006-01-02"))
	}

	// 2025-06-01 02:00 UTC is still 2025-05-31 in New York, so the run
	// belongs to the May cycle
	got = InvoiceDateFor(time.Date(2025, time.June, 1, 2, 0, 0, 0, time.UTC), ny)
	if !got.Equal(date(2025, time.May, 1)) {
		t.Errorf("tz boundary: got %s, want 2025-05-01", got.Format("2006-01-02"))
	}

	// result is carried as a civil UTC date
	if got.Location() != time.UTC {
		t.Errorf("invoice date should be UTC, got %v", got.Location())
	}
}
