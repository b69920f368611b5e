package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"lending-portal/internal/domain/invoice"
	"lending-portal/internal/domain/loan"
)

type InvoiceRepository struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository { return &InvoiceRepository{db: db} }

// Upsert overwrites the header keyed on (business_name, role, invoice_date),
// preserving the existing row id so line items stay attached across
// regenerations.
func (r *InvoiceRepository) Upsert(ctx context.Context, inv *invoice.Invoice) error {
	var existing invoice.Invoice
	res := r.db.WithContext(ctx).
		Where("business_name = ? AND role = ? AND invoice_date = ?",
			inv.BusinessName, inv.Role, inv.InvoiceDate).
		First(&existing)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(inv).Error
		}
		return res.Error
	}
	inv.ID = existing.ID
	inv.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvoiceRepository) ReplaceLineItems(ctx context.Context, invoiceID uint64, items []*invoice.LineItem) error {
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Delete(&invoice.LineItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(items).Error
}

func (r *InvoiceRepository) UpdateDeliveryOutcome(ctx context.Context, invoiceID uint64, out invoice.DeliveryOutcome) error {
	return r.db.WithContext(ctx).Model(&invoice.Invoice{}).
		Where("id = ?", invoiceID).
		Updates(map[string]any{
			"email_sent":      out.Sent,
			"email_sent_at":   out.SentAt,
			"email_recipient": out.Recipients,
			"email_error":     out.ErrSummary,
		}).Error
}

func (r *InvoiceRepository) GetByTriple(ctx context.Context, businessName string, role loan.Role, invoiceDate time.Time) (*invoice.Invoice, error) {
	var out invoice.Invoice
	res := r.db.WithContext(ctx).
		Where("business_name = ? AND role = ? AND invoice_date = ?", businessName, role, invoiceDate).
		First(&out)
	return &out, res.Error
}

func (r *InvoiceRepository) ListByEntity(ctx context.Context, businessName string, role loan.Role) ([]*invoice.Invoice, error) {
	var out []*invoice.Invoice
	res := r.db.WithContext(ctx).
		Where("business_name = ? AND role = ?", businessName, role).
		Order("invoice_date DESC").
		Find(&out)
	return out, res.Error
}

func (r *InvoiceRepository) ListAll(ctx context.Context) ([]*invoice.Invoice, error) {
	var out []*invoice.Invoice
	res := r.db.WithContext(ctx).
		Order("invoice_date DESC, business_name ASC").
		Find(&out)
	return out, res.Error
}

func (r *InvoiceRepository) ListLineItems(ctx context.Context, invoiceID uint64) ([]*invoice.LineItem, error) {
	var out []*invoice.LineItem
	res := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
