package billing

import (
	"time"

	"lending-portal/internal/domain/invoice"
	"lending-portal/internal/domain/loan"
)

// Line is one loan's contribution to a statement: the audit fields persisted
// on the line item plus the display fields the renderer needs.
type Line struct {
	LoanTable string
	LoanKey   string
	Label     string

	Address  string
	FundDate *time.Time

	Principal float64
	Rate      float64

	OriginalAmount float64
	BilledAmount   float64

	IsProrated       bool
	ProrationType    invoice.ProrationType
	PeriodStart      time.Time
	PeriodEnd        time.Time
	DaysInPeriod     int
	TotalDaysInMonth int
}

// Statement is the aggregated result for one entity in one run.
type Statement struct {
	EntityName  string
	Role        loan.Role
	InvoiceDate time.Time
	Covered     Period

	Lines []Line

	// TotalBilled is the billed monthly interest total and becomes the
	// header's total amount.
	TotalBilled   float64
	TotalInvested float64
	YearToDate    float64

	// FirstMonthKeys maps loan table -> loan ids whose first-month proration
	// was applied this run and which still need their one-time stamp.
	FirstMonthKeys map[string][]string
}

// Recipient is one successful delivery, collected for the summary report.
type Recipient struct {
	Email        string
	FirstName    string
	LastName     string
	BusinessName string
	Role         string
}

// RoleStats counts outcomes for one role class within a run.
type RoleStats struct {
	Processed    int `json:"processed"`
	Skipped      int `json:"skipped"` // no qualifying loans: not a failure
	Failed       int `json:"failed"`
	EmailsSent   int `json:"emails_sent"`
	EmailsFailed int `json:"emails_failed"`
	NoEmail      int `json:"no_email"`
}

// RunStats is the aggregate result a generation run reports to its caller.
// Partial failure is expressed here, never raised.
type RunStats struct {
	RunID       string    `json:"run_id"`
	InvoiceDate time.Time `json:"invoice_date"`

	Clients      RoleStats `json:"clients"`
	Investors    RoleStats `json:"investors"`
	CapInvestors RoleStats `json:"capinvestors"`

	SummarySent bool `json:"summary_sent"`
}

func (s *RunStats) TotalProcessed() int {
	return s.Clients.Processed + s.Investors.Processed + s.CapInvestors.Processed
}

func (s *RunStats) TotalFailed() int {
	return s.Clients.Failed + s.Investors.Failed + s.CapInvestors.Failed
}

func (s *RunStats) TotalEmailsSent() int {
	return s.Clients.EmailsSent + s.Investors.EmailsSent + s.CapInvestors.EmailsSent
}

// runContext carries one run's mutable state explicitly through the stages
// instead of leaving it in package or closure scope.
type runContext struct {
	runID       string
	invoiceDate time.Time
	covered     Period
	stats       RunStats
	recipients  []Recipient
}
