package user

import (
	"context"
	"time"

	"lending-portal/internal/domain/loan"
)

// User is a portal account; invoice delivery resolves recipients through it.
type User struct {
	ID           string `gorm:"type:char(36);primaryKey;column:id" json:"id"`
	Email        string `gorm:"size:255;column:email;index" json:"email"`
	FirstName    string `gorm:"size:255;column:first_name" json:"first_name"`
	LastName     string `gorm:"size:255;column:last_name" json:"last_name"`
	BusinessName string `gorm:"size:255;column:business_name;index" json:"business_name"`
	Role         string `gorm:"size:50;column:role" json:"role"`
	// no gorm default: a default on a bool swallows explicit false on Create
	IsActive  bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Repository is the recipient directory: active users whose business name
// matches the entity and whose account role maps onto the invoice role
// (client invoices go to both "client" and "borrower" accounts).
type Repository interface {
	ActiveRecipients(ctx context.Context, businessName string, role loan.Role) ([]*User, error)
}
