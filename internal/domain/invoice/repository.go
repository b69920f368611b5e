package invoice

import (
	"context"
	"time"

	"lending-portal/internal/domain/loan"
)

type Repository interface {
	// Upsert inserts or overwrites the header keyed on
	// (business name, role, invoice date) and sets inv.ID either way.
	Upsert(ctx context.Context, inv *Invoice) error
	// ReplaceLineItems deletes every existing line item for the header and
	// inserts the new set.
	ReplaceLineItems(ctx context.Context, invoiceID uint64, items []*LineItem) error
	UpdateDeliveryOutcome(ctx context.Context, invoiceID uint64, out DeliveryOutcome) error

	GetByTriple(ctx context.Context, businessName string, role loan.Role, invoiceDate time.Time) (*Invoice, error)
	ListByEntity(ctx context.Context, businessName string, role loan.Role) ([]*Invoice, error)
	ListAll(ctx context.Context) ([]*Invoice, error)
	ListLineItems(ctx context.Context, invoiceID uint64) ([]*LineItem, error)
}
