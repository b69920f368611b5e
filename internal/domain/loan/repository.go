package loan

import (
	"context"
	"time"
)

// FundedRepository reads borrower loans. Loan rows are owned by the sheet
// sync layer; the invoice core only ever writes first_invoice_generated_at.
type FundedRepository interface {
	DistinctBusinessNames(ctx context.Context) ([]string, error)
	ListByBusiness(ctx context.Context, businessName string) ([]*Funded, error)
	StampFirstInvoice(ctx context.Context, ids []string, at time.Time) error
}

// PromissoryRepository reads promissory notes. ListActiveByInvestor applies
// the active filter: status not "closed" (case-insensitive) unless the note
// paid off on/after periodStart, so the final prorated month still bills.
type PromissoryRepository interface {
	DistinctInvestorNames(ctx context.Context) ([]string, error)
	ListActiveByInvestor(ctx context.Context, investorName string, periodStart time.Time) ([]*Promissory, error)
	StampFirstInvoice(ctx context.Context, ids []string, at time.Time) error
}

// CapInvestorRepository reads capital-investor stakes. Active means
// loan_status exactly "Funded" (case-sensitive business rule), with the same
// payoff-date carve-out as promissory.
type CapInvestorRepository interface {
	DistinctInvestorNames(ctx context.Context) ([]string, error)
	ListActiveByInvestor(ctx context.Context, investorName string, periodStart time.Time) ([]*CapInvestor, error)
	StampFirstInvoice(ctx context.Context, ids []string, at time.Time) error
}
