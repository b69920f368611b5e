package mysql

import (
	"context"

	"gorm.io/gorm"

	"lending-portal/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Funded:       &FundedRepository{db: tx},
			Promissory:   &PromissoryRepository{db: tx},
			CapInvestors: &CapInvestorRepository{db: tx},
			Invoices:     &InvoiceRepository{db: tx},
		}
		return fn(r)
	})
}
