package loan

import (
	"time"
)

// Role is the invoice-facing role class a loan book belongs to.
type Role string

const (
	RoleClient      Role = "client"
	RoleInvestor    Role = "investor"
	RoleCapInvestor Role = "capinvestor"
)

// Loan table names, recorded on invoice line items.
const (
	TableFunded      = "funded"
	TablePromissory  = "promissory"
	TableCapInvestor = "capinvestor"
)

// Funded is a borrower loan. The monthly amount billed is InterestPayment
// and the fund date is the closing date. Borrower loans carry no payoff
// date and no year-to-date accrual.
type Funded struct {
	ID                      string     `gorm:"type:char(36);primaryKey;column:id" json:"id"`
	BusinessName            string     `gorm:"size:255;column:business_name;index" json:"business_name"`
	ProjectAddress          string     `gorm:"type:text;column:project_address" json:"project_address"`
	LoanAmount              float64    `gorm:"type:decimal(12,2);column:loan_amount" json:"loan_amount"`
	InterestRate            float64    `gorm:"type:decimal(5,2);column:interest_rate" json:"interest_rate"`
	InterestPayment         float64    `gorm:"type:decimal(12,2);column:interest_payment" json:"interest_payment"`
	MaturityDate            *time.Time `gorm:"column:maturity_date" json:"maturity_date,omitempty"`
	ClosingDate             *time.Time `gorm:"column:closing_date" json:"closing_date,omitempty"`
	FirstInvoiceGeneratedAt *time.Time `gorm:"column:first_invoice_generated_at" json:"first_invoice_generated_at,omitempty"`
	Email                   string     `gorm:"size:255;column:email" json:"email,omitempty"`
	FirstName               string     `gorm:"size:255;column:first_name" json:"first_name,omitempty"`
	LastName                string     `gorm:"size:255;column:last_name" json:"last_name,omitempty"`
	LastSeenAt              *time.Time `gorm:"column:last_seen_at" json:"-"`
	CreatedAt               time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Funded) TableName() string { return TableFunded }

// Promissory is a promissory-note investment. The monthly amount billed is
// CapitalPay and the loan closes via PayoffDate.
type Promissory struct {
	ID                      string     `gorm:"type:char(36);primaryKey;column:id" json:"id"`
	Status                  string     `gorm:"size:50;column:status" json:"status,omitempty"`
	InvestorName            string     `gorm:"size:255;column:investor_name;index" json:"investor_name"`
	InvestorEmail           string     `gorm:"size:255;column:investor_email" json:"investor_email,omitempty"`
	AssetID                 string     `gorm:"size:255;column:asset_id" json:"asset_id,omitempty"`
	Type                    string     `gorm:"size:50;column:type" json:"type,omitempty"`
	FundDate                *time.Time `gorm:"column:fund_date" json:"fund_date,omitempty"`
	MaturityDate            *time.Time `gorm:"column:maturity_date" json:"maturity_date,omitempty"`
	LoanAmount              float64    `gorm:"type:decimal(12,2);column:loan_amount" json:"loan_amount"`
	PayoffDate              *time.Time `gorm:"column:payoff_date" json:"payoff_date,omitempty"`
	InterestRate            float64    `gorm:"type:decimal(5,2);column:interest_rate" json:"interest_rate"`
	CapitalPay              float64    `gorm:"type:decimal(12,2);column:capital_pay" json:"capital_pay"`
	YearToDate              float64    `gorm:"type:decimal(15,2);column:year_to_date" json:"year_to_date"`
	FirstInvoiceGeneratedAt *time.Time `gorm:"column:first_invoice_generated_at" json:"first_invoice_generated_at,omitempty"`
	LastSeenAt              *time.Time `gorm:"column:last_seen_at" json:"-"`
	CreatedAt               time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Promissory) TableName() string { return TablePromissory }

// CapInvestor is a capital-investor stake. YearToDate is pre-aggregated per
// investor upstream by the sync layer, so it is reported once per entity
// rather than summed across rows.
type CapInvestor struct {
	ID                      string     `gorm:"type:char(36);primaryKey;column:id" json:"id"`
	PropertyAddress         string     `gorm:"type:text;column:property_address" json:"property_address"`
	InvestorName            string     `gorm:"size:255;column:investor_name;index" json:"investor_name"`
	LoanAmount              float64    `gorm:"type:decimal(12,2);column:loan_amount" json:"loan_amount"`
	InterestRate            float64    `gorm:"type:decimal(5,2);column:interest_rate" json:"interest_rate"`
	Payment                 float64    `gorm:"type:decimal(12,2);column:payment" json:"payment"`
	FundDate                *time.Time `gorm:"column:fund_date" json:"fund_date,omitempty"`
	PayoffDate              *time.Time `gorm:"column:payoff_date" json:"payoff_date,omitempty"`
	LoanStatus              string     `gorm:"size:50;column:loan_status" json:"loan_status,omitempty"`
	YearToDate              float64    `gorm:"type:decimal(15,2);column:year_to_date" json:"year_to_date"`
	FirstInvoiceGeneratedAt *time.Time `gorm:"column:first_invoice_generated_at" json:"first_invoice_generated_at,omitempty"`
	LastSeenAt              *time.Time `gorm:"column:last_seen_at" json:"-"`
	CreatedAt               time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CapInvestor) TableName() string { return TableCapInvestor }
