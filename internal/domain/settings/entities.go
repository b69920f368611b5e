package settings

import (
	"context"
	"time"
)

// SettingSummaryEmails holds the comma-separated management addresses the
// run summary report goes to.
const SettingSummaryEmails = "invoice_summary_emails"

// Invoice email template keys, one per role class.
const (
	TemplateInvoiceClient      = "invoice_client"
	TemplateInvoiceInvestor    = "invoice_investor"
	TemplateInvoiceCapInvestor = "invoice_capinvestor"
)

type AppSetting struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"id"`
	SettingKey   string    `gorm:"size:255;column:setting_key;uniqueIndex" json:"setting_key"`
	SettingValue string    `gorm:"type:text;column:setting_value" json:"setting_value"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppSetting) TableName() string { return "app_settings" }

// EmailTemplate holds the operator-editable statement email copy. Every
// text field may carry {{placeholder}} tokens.
type EmailTemplate struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"id"`
	TemplateName string `gorm:"size:100;column:template_name;uniqueIndex" json:"template_name"`
	Subject      string `gorm:"size:500;column:subject" json:"subject"`
	Greeting     string `gorm:"type:text;column:greeting" json:"greeting"`
	Body         string `gorm:"type:text;column:body" json:"body"`
	Closing      string `gorm:"type:text;column:closing" json:"closing"`
	Signature    string `gorm:"type:text;column:signature" json:"signature"`
	// no gorm default: a default on a bool swallows explicit false on Create
	IsActive  bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EmailTemplate) TableName() string { return "email_templates" }

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	ActiveTemplate(ctx context.Context, name string) (*EmailTemplate, error)
}
