package uow

import (
	"context"

	"lending-portal/internal/domain/invoice"
	"lending-portal/internal/domain/loan"
)

// Repos bundles the repositories a ledger commit touches, all bound to the
// same transaction.
type Repos struct {
	Funded       loan.FundedRepository
	Promissory   loan.PromissoryRepository
	CapInvestors loan.CapInvestorRepository
	Invoices     invoice.Repository
}

// UnitOfWork runs fn atomically: the header upsert, the line-item replace
// and the first-invoice stamps either all commit or none do.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
