package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"lending-portal/internal/domain/loan"
)

type FundedRepository struct{ db *gorm.DB }

func NewFundedRepository(db *gorm.DB) *FundedRepository { return &FundedRepository{db: db} }

func (r *FundedRepository) DistinctBusinessNames(ctx context.Context) ([]string, error) {
	var out []string
	res := r.db.WithContext(ctx).Model(&loan.Funded{}).
		Distinct("business_name").
		Where("business_name IS NOT NULL AND business_name <> ''").
		Order("business_name ASC").
		Pluck("business_name", &out)
	return out, res.Error
}

func (r *FundedRepository) ListByBusiness(ctx context.Context, businessName string) ([]*loan.Funded, error) {
	var out []*loan.Funded
	res := r.db.WithContext(ctx).
		Where("business_name = ?", businessName).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *FundedRepository) StampFirstInvoice(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&loan.Funded{}).
		Where("id IN ? AND first_invoice_generated_at IS NULL", ids).
		Update("first_invoice_generated_at", at).Error
}

type PromissoryRepository struct{ db *gorm.DB }

func NewPromissoryRepository(db *gorm.DB) *PromissoryRepository {
	return &PromissoryRepository{db: db}
}

func (r *PromissoryRepository) DistinctInvestorNames(ctx context.Context) ([]string, error) {
	var out []string
	res := r.db.WithContext(ctx).Model(&loan.Promissory{}).
		Distinct("investor_name").
		Where("investor_name IS NOT NULL AND investor_name <> ''").
		Order("investor_name ASC").
		Pluck("investor_name", &out)
	return out, res.Error
}

// ListActiveByInvestor keeps notes that are not closed, plus closed notes
// whose payoff falls on or after periodStart so the final month still bills.
func (r *PromissoryRepository) ListActiveByInvestor(ctx context.Context, investorName string, periodStart time.Time) ([]*loan.Promissory, error) {
	var out []*loan.Promissory
	res := r.db.WithContext(ctx).
		Where("investor_name = ?", investorName).
		Where("(status IS NULL OR LOWER(status) <> ?) OR (payoff_date IS NOT NULL AND payoff_date >= ?)", "closed", periodStart).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *PromissoryRepository) StampFirstInvoice(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&loan.Promissory{}).
		Where("id IN ? AND first_invoice_generated_at IS NULL", ids).
		Update("first_invoice_generated_at", at).Error
}

type CapInvestorRepository struct{ db *gorm.DB }

func NewCapInvestorRepository(db *gorm.DB) *CapInvestorRepository {
	return &CapInvestorRepository{db: db}
}

func (r *CapInvestorRepository) DistinctInvestorNames(ctx context.Context) ([]string, error) {
	var out []string
	res := r.db.WithContext(ctx).Model(&loan.CapInvestor{}).
		Distinct("investor_name").
		Where("investor_name IS NOT NULL AND investor_name <> ''").
		Order("investor_name ASC").
		Pluck("investor_name", &out)
	return out, res.Error
}

// ListActiveByInvestor requires loan_status exactly "Funded" (case matters,
// a business rule) with the same payoff carve-out as promissory notes. The
// exact-case check runs in Go since the db collation may fold case.
func (r *CapInvestorRepository) ListActiveByInvestor(ctx context.Context, investorName string, periodStart time.Time) ([]*loan.CapInvestor, error) {
	var rows []*loan.CapInvestor
	res := r.db.WithContext(ctx).
		Where("investor_name = ?", investorName).
		Where("loan_status = ? OR (payoff_date IS NOT NULL AND payoff_date >= ?)", "Funded", periodStart).
		Order("id ASC").
		Find(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := rows[:0]
	for _, s := range rows {
		if s.LoanStatus == "Funded" || (s.PayoffDate != nil && !s.PayoffDate.Before(periodStart)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *CapInvestorRepository) StampFirstInvoice(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&loan.CapInvestor{}).
		Where("id IN ? AND first_invoice_generated_at IS NULL", ids).
		Update("first_invoice_generated_at", at).Error
}
