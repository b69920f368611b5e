package mysql

import (
	"context"

	"gorm.io/gorm"

	"lending-portal/internal/domain/loan"
	"lending-portal/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

// accountRoles maps an invoice role class onto the portal account roles
// whose users receive that class of statement.
func accountRoles(role loan.Role) []string {
	switch role {
	case loan.RoleInvestor:
		return []string{"promissory"}
	case loan.RoleCapInvestor:
		return []string{"capinvestor"}
	default:
		return []string{"client", "borrower"}
	}
}

func (r *UserRepository) ActiveRecipients(ctx context.Context, businessName string, role loan.Role) ([]*user.User, error) {
	var out []*user.User
	res := r.db.WithContext(ctx).
		Where("business_name = ?", businessName).
		Where("role IN ?", accountRoles(role)).
		Where("is_active = ?", true).
		Where("email IS NOT NULL AND email <> ''").
		Order("email ASC").
		Find(&out)
	return out, res.Error
}
