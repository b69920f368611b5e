package loan

import (
	"fmt"
	"time"
)

// Billable is the single capability the proration engine, the aggregator and
// the statement renderer operate on. The three loan books expose
// structurally different columns (closing_date vs fund_date,
// interest_payment vs capital_pay vs payment); adapters flatten them here so
// downstream code never branches on role.
type Billable interface {
	// LoanKey is the source row's primary key.
	LoanKey() string
	// Table names the source loan table for the line-item audit trail.
	Table() string
	// Label is the human-readable line-item identifier.
	Label() string
	EntityName() string
	// Address is the property/project address shown on statements; empty for
	// loan types without one.
	Address() string
	FundDate() *time.Time
	// PayoffDate is nil for loan types that never close mid-stream (funded).
	PayoffDate() *time.Time
	// Principal is the invested/loaned amount shown on statements.
	Principal() float64
	Rate() float64
	// MonthlyAmount is the full (un-prorated) amount billed per month.
	MonthlyAmount() float64
	YearToDate() float64
	FirstInvoiceAt() *time.Time
}

type billableFunded struct{ *Funded }

func (b billableFunded) LoanKey() string    { return b.ID }
func (b billableFunded) Table() string      { return TableFunded }
func (b billableFunded) EntityName() string { return b.BusinessName }
func (b billableFunded) Label() string {
	return fmt.Sprintf("%s - %s", b.BusinessName, b.Address())
}
func (b billableFunded) Address() string {
	if b.ProjectAddress == "" {
		return "No Address"
	}
	return b.ProjectAddress
}
func (b billableFunded) FundDate() *time.Time       { return b.ClosingDate }
func (b billableFunded) PayoffDate() *time.Time     { return nil }
func (b billableFunded) Principal() float64         { return b.LoanAmount }
func (b billableFunded) Rate() float64              { return b.InterestRate }
func (b billableFunded) MonthlyAmount() float64     { return b.InterestPayment }
func (b billableFunded) YearToDate() float64        { return 0 }
func (b billableFunded) FirstInvoiceAt() *time.Time { return b.FirstInvoiceGeneratedAt }

type billablePromissory struct{ *Promissory }

func (b billablePromissory) LoanKey() string    { return b.ID }
func (b billablePromissory) Table() string      { return TablePromissory }
func (b billablePromissory) EntityName() string { return b.InvestorName }
func (b billablePromissory) Label() string {
	asset := b.AssetID
	if asset == "" {
		asset = "Unknown"
	}
	return fmt.Sprintf("%s - %s", asset, b.InvestorName)
}
func (b billablePromissory) Address() string            { return "" }
func (b billablePromissory) FundDate() *time.Time       { return b.Promissory.FundDate }
func (b billablePromissory) PayoffDate() *time.Time     { return b.Promissory.PayoffDate }
func (b billablePromissory) Principal() float64         { return b.LoanAmount }
func (b billablePromissory) Rate() float64              { return b.InterestRate }
func (b billablePromissory) MonthlyAmount() float64     { return b.CapitalPay }
func (b billablePromissory) YearToDate() float64        { return b.Promissory.YearToDate }
func (b billablePromissory) FirstInvoiceAt() *time.Time { return b.FirstInvoiceGeneratedAt }

type billableCapInvestor struct{ *CapInvestor }

func (b billableCapInvestor) LoanKey() string    { return b.ID }
func (b billableCapInvestor) Table() string      { return TableCapInvestor }
func (b billableCapInvestor) EntityName() string { return b.InvestorName }
func (b billableCapInvestor) Label() string {
	return fmt.Sprintf("%s - %s", b.Address(), b.InvestorName)
}
func (b billableCapInvestor) Address() string {
	if b.PropertyAddress == "" {
		return "No Address"
	}
	return b.PropertyAddress
}
func (b billableCapInvestor) FundDate() *time.Time       { return b.CapInvestor.FundDate }
func (b billableCapInvestor) PayoffDate() *time.Time     { return b.CapInvestor.PayoffDate }
func (b billableCapInvestor) Principal() float64         { return b.LoanAmount }
func (b billableCapInvestor) Rate() float64              { return b.InterestRate }
func (b billableCapInvestor) MonthlyAmount() float64     { return b.Payment }
func (b billableCapInvestor) YearToDate() float64        { return b.CapInvestor.YearToDate }
func (b billableCapInvestor) FirstInvoiceAt() *time.Time { return b.FirstInvoiceGeneratedAt }

func (f *Funded) AsBillable() Billable      { return billableFunded{f} }
func (p *Promissory) AsBillable() Billable  { return billablePromissory{p} }
func (c *CapInvestor) AsBillable() Billable { return billableCapInvestor{c} }
