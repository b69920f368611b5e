package loanmock

import (
	"context"
	"time"

	"lending-portal/internal/domain/loan"
)

// Function-backed mocks satisfying the loan repositories. Fill in the
// fields a test needs; nil read funcs return context.Canceled, nil write
// funcs are no-ops.

var (
	_ loan.FundedRepository      = (*FundedRepo)(nil)
	_ loan.PromissoryRepository  = (*PromissoryRepo)(nil)
	_ loan.CapInvestorRepository = (*CapInvestorRepo)(nil)
)

type FundedRepo struct {
	DistinctBusinessNamesFn func(ctx context.Context) ([]string, error)
	ListByBusinessFn        func(ctx context.Context, businessName string) ([]*loan.Funded, error)
	StampFirstInvoiceFn     func(ctx context.Context, ids []string, at time.Time) error
}

func (m *FundedRepo) DistinctBusinessNames(ctx context.Context) ([]string, error) {
	if m.DistinctBusinessNamesFn != nil {
		return m.DistinctBusinessNamesFn(ctx)
	}
	return nil, context.Canceled
}

func (m *FundedRepo) ListByBusiness(ctx context.Context, businessName string) ([]*loan.Funded, error) {
	if m.ListByBusinessFn != nil {
		return m.ListByBusinessFn(ctx, businessName)
	}
	return nil, context.Canceled
}

func (m *FundedRepo) StampFirstInvoice(ctx context.Context, ids []string, at time.Time) error {
	if m.StampFirstInvoiceFn != nil {
		return m.StampFirstInvoiceFn(ctx, ids, at)
	}
	return nil
}

type PromissoryRepo struct {
	DistinctInvestorNamesFn func(ctx context.Context) ([]string, error)
	ListActiveByInvestorFn  func(ctx context.Context, investorName string, periodStart time.Time) ([]*loan.Promissory, error)
	StampFirstInvoiceFn     func(ctx context.Context, ids []string, at time.Time) error
}

func (m *PromissoryRepo) DistinctInvestorNames(ctx context.Context) ([]string, error) {
	if m.DistinctInvestorNamesFn != nil {
		return m.DistinctInvestorNamesFn(ctx)
	}
	return nil, context.Canceled
}

func (m *PromissoryRepo) ListActiveByInvestor(ctx context.Context, investorName string, periodStart time.Time) ([]*loan.Promissory, error) {
	if m.ListActiveByInvestorFn != nil {
		return m.ListActiveByInvestorFn(ctx, investorName, periodStart)
	}
	return nil, context.Canceled
}

func (m *PromissoryRepo) StampFirstInvoice(ctx context.Context, ids []string, at time.Time) error {
	if m.StampFirstInvoiceFn != nil {
		return m.StampFirstInvoiceFn(ctx, ids, at)
	}
	return nil
}

type CapInvestorRepo struct {
	DistinctInvestorNamesFn func(ctx context.Context) ([]string, error)
	ListActiveByInvestorFn  func(ctx context.Context, investorName string, periodStart time.Time) ([]*loan.CapInvestor, error)
	StampFirstInvoiceFn     func(ctx context.Context, ids []string, at time.Time) error
}

func (m *CapInvestorRepo) DistinctInvestorNames(ctx context.Context) ([]string, error) {
	if m.DistinctInvestorNamesFn != nil {
		return m.DistinctInvestorNamesFn(ctx)
	}
	return nil, context.Canceled
}

func (m *CapInvestorRepo) ListActiveByInvestor(ctx context.Context, investorName string, periodStart time.Time) ([]*loan.CapInvestor, error) {
	if m.ListActiveByInvestorFn != nil {
		return m.ListActiveByInvestorFn(ctx, investorName, periodStart)
	}
	return nil, context.Canceled
}

func (m *CapInvestorRepo) StampFirstInvoice(ctx context.Context, ids []string, at time.Time) error {
	if m.StampFirstInvoiceFn != nil {
		return m.StampFirstInvoiceFn(ctx, ids, at)
	}
	return nil
}
