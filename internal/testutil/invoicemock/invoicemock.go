package invoicemock

import (
	"context"
	"time"

	"lending-portal/internal/domain/invoice"
	"lending-portal/internal/domain/loan"
)

var _ invoice.Repository = (*Repo)(nil)

// Repo is a function-backed mock satisfying invoice.Repository.
type Repo struct {
	UpsertFn                func(ctx context.Context, inv *invoice.Invoice) error
	ReplaceLineItemsFn      func(ctx context.Context, invoiceID uint64, items []*invoice.LineItem) error
	UpdateDeliveryOutcomeFn func(ctx context.Context, invoiceID uint64, out invoice.DeliveryOutcome) error
	GetByTripleFn           func(ctx context.Context, businessName string, role loan.Role, invoiceDate time.Time) (*invoice.Invoice, error)
	ListByEntityFn          func(ctx context.Context, businessName string, role loan.Role) ([]*invoice.Invoice, error)
	ListAllFn               func(ctx context.Context) ([]*invoice.Invoice, error)
	ListLineItemsFn         func(ctx context.Context, invoiceID uint64) ([]*invoice.LineItem, error)
}

func (m *Repo) Upsert(ctx context.Context, inv *invoice.Invoice) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, inv)
	}
	return nil
}

func (m *Repo) ReplaceLineItems(ctx context.Context, invoiceID uint64, items []*invoice.LineItem) error {
	if m.ReplaceLineItemsFn != nil {
		return m.ReplaceLineItemsFn(ctx, invoiceID, items)
	}
	return nil
}

func (m *Repo) UpdateDeliveryOutcome(ctx context.Context, invoiceID uint64, out invoice.DeliveryOutcome) error {
	if m.UpdateDeliveryOutcomeFn != nil {
		return m.UpdateDeliveryOutcomeFn(ctx, invoiceID, out)
	}
	return nil
}

func (m *Repo) GetByTriple(ctx context.Context, businessName string, role loan.Role, invoiceDate time.Time) (*invoice.Invoice, error) {
	if m.GetByTripleFn != nil {
		return m.GetByTripleFn(ctx, businessName, role, invoiceDate)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByEntity(ctx context.Context, businessName string, role loan.Role) ([]*invoice.Invoice, error) {
	if m.ListByEntityFn != nil {
		return m.ListByEntityFn(ctx, businessName, role)
	}
	return nil, context.Canceled
}

func (m *Repo) ListAll(ctx context.Context) ([]*invoice.Invoice, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) ListLineItems(ctx context.Context, invoiceID uint64) ([]*invoice.LineItem, error) {
	if m.ListLineItemsFn != nil {
		return m.ListLineItemsFn(ctx, invoiceID)
	}
	return nil, context.Canceled
}
