package invoice

import (
	"time"

	"lending-portal/internal/domain/loan"
)

type ProrationType string

const (
	ProrationFirstMonth ProrationType = "first_month"
	ProrationLastMonth  ProrationType = "last_month"
)

// Invoice is one statement for one (business, role, invoice date) triple.
// The unique index makes regeneration an upsert, never a duplicate.
type Invoice struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"id"`
	BusinessName string    `gorm:"size:255;column:business_name;uniqueIndex:ux_invoices_business_role_date;index:idx_invoices_business" json:"business_name"`
	Role         loan.Role `gorm:"size:50;column:role;uniqueIndex:ux_invoices_business_role_date;index:idx_invoices_role" json:"role"`
	InvoiceDate  time.Time `gorm:"type:date;column:invoice_date;uniqueIndex:ux_invoices_business_role_date;index:idx_invoices_date" json:"invoice_date"`
	FileName     string    `gorm:"size:255;column:file_name" json:"file_name"`
	StorageKey   string    `gorm:"size:500;column:storage_key" json:"storage_key"`
	StorageURL   string    `gorm:"type:text;column:storage_url" json:"storage_url"`
	TotalAmount  float64   `gorm:"type:decimal(15,2);column:total_amount" json:"total_amount"`
	RecordCount  int       `gorm:"column:record_count" json:"record_count"`

	EmailSent      bool       `gorm:"column:email_sent;default:false" json:"email_sent"`
	EmailSentAt    *time.Time `gorm:"column:email_sent_at" json:"email_sent_at,omitempty"`
	EmailRecipient string     `gorm:"size:1000;column:email_recipient" json:"email_recipient,omitempty"`
	EmailError     string     `gorm:"type:text;column:email_error" json:"email_error,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// LineItem is one loan's contribution to one invoice header. On
// regeneration the full set for a header is discarded and rewritten.
type LineItem struct {
	ID               string        `gorm:"type:char(36);primaryKey;column:id" json:"id"`
	InvoiceID        uint64        `gorm:"column:invoice_id;index" json:"invoice_id"`
	LoanTable        string        `gorm:"size:50;column:loan_table" json:"loan_table"`
	LoanID           string        `gorm:"type:char(36);column:loan_id" json:"loan_id"`
	LoanIdentifier   string        `gorm:"size:500;column:loan_identifier" json:"loan_identifier"`
	OriginalAmount   float64       `gorm:"type:decimal(15,2);column:original_amount" json:"original_amount"`
	ProratedAmount   float64       `gorm:"type:decimal(15,2);column:prorated_amount" json:"prorated_amount"`
	IsProrated       bool          `gorm:"column:is_prorated;default:false" json:"is_prorated"`
	ProrationType    ProrationType `gorm:"size:20;column:proration_type" json:"proration_type,omitempty"`
	PeriodStartDate  time.Time     `gorm:"type:date;column:period_start_date" json:"period_start_date"`
	PeriodEndDate    time.Time     `gorm:"type:date;column:period_end_date" json:"period_end_date"`
	DaysInPeriod     int           `gorm:"column:days_in_period" json:"days_in_period"`
	TotalDaysInMonth int           `gorm:"column:total_days_in_month" json:"total_days_in_month"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (LineItem) TableName() string { return "invoice_line_items" }

// DeliveryOutcome is written back on the header after all recipients for an
// entity have been attempted.
type DeliveryOutcome struct {
	Sent       bool
	SentAt     *time.Time
	Recipients string // joined list of successful addresses
	ErrSummary string // "" when every delivery succeeded
}
