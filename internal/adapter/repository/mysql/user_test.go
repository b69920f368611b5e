package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"lending-portal/internal/domain/loan"
	"lending-portal/internal/domain/settings"
	"lending-portal/internal/domain/user"

	"github.com/google/uuid"
)

func seedUser(t *testing.T, db *gorm.DB, email, business, role string, active bool) {
	t.Helper()
	u := &user.User{
		ID: uuid.NewString(), Email: email, BusinessName: business,
		Role: role, IsActive: active,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatal(err)
	}
}

func TestActiveRecipients_ClientIncludesBorrowers(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "owner@acme.test", "Acme Corp", "client", true)
	seedUser(t, db, "site@acme.test", "Acme Corp", "borrower", true)
	seedUser(t, db, "inactive@acme.test", "Acme Corp", "client", false)
	seedUser(t, db, "investor@acme.test", "Acme Corp", "promissory", true)
	seedUser(t, db, "", "Acme Corp", "client", true)
	seedUser(t, db, "other@beta.test", "Beta LLC", "client", true)

	got, err := repo.ActiveRecipients(ctx, "Acme Corp", loan.RoleClient)
	if err != nil {
		t.Fatalf("ActiveRecipients: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d recipients, want 2: %+v", len(got), got)
	}
	if got[0].Email != "owner@acme.test" || got[1].Email != "site@acme.test" {
		t.Errorf("unexpected recipients: %q %q", got[0].Email, got[1].Email)
	}
}

func TestActiveRecipients_InvestorRoles(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "note@roe.test", "Jane Roe", "promissory", true)
	seedUser(t, db, "cap@roe.test", "Jane Roe", "capinvestor", true)

	prom, err := repo.ActiveRecipients(ctx, "Jane Roe", loan.RoleInvestor)
	if err != nil {
		t.Fatal(err)
	}
	if len(prom) != 1 || prom[0].Email != "note@roe.test" {
		t.Fatalf("unexpected promissory recipients: %+v", prom)
	}

	caps, err := repo.ActiveRecipients(ctx, "Jane Roe", loan.RoleCapInvestor)
	if err != nil {
		t.Fatal(err)
	}
	if len(caps) != 1 || caps[0].Email != "cap@roe.test" {
		t.Fatalf("unexpected capinvestor recipients: %+v", caps)
	}
}

func TestSettingsGetSet(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	if err := repo.Set(ctx, settings.SettingSummaryEmails, "a@x.test"); err != nil {
		t.Fatalf("Set insert: %v", err)
	}
	if err := repo.Set(ctx, settings.SettingSummaryEmails, "a@x.test, b@x.test"); err != nil {
		t.Fatalf("Set update: %v", err)
	}

	got, err := repo.Get(ctx, settings.SettingSummaryEmails)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "a@x.test, b@x.test" {
		t.Errorf("value not updated: %q", got)
	}
}

func TestSettingsActiveTemplate(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	if err := db.Create(&settings.EmailTemplate{
		TemplateName: settings.TemplateInvoiceClient,
		Subject:      "Your {{month}} {{year}} Invoice",
		Body:         "Please find attached.",
		IsActive:     true,
	}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&settings.EmailTemplate{
		TemplateName: settings.TemplateInvoiceInvestor,
		Subject:      "retired",
		IsActive:     false,
	}).Error; err != nil {
		t.Fatal(err)
	}

	tpl, err := repo.ActiveTemplate(ctx, settings.TemplateInvoiceClient)
	if err != nil {
		t.Fatalf("ActiveTemplate: %v", err)
	}
	if tpl.Subject != "Your {{month}} {{year}} Invoice" {
		t.Errorf("unexpected template: %+v", tpl)
	}

	if _, err := repo.ActiveTemplate(ctx, settings.TemplateInvoiceInvestor); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("inactive template should not resolve, got %v", err)
	}
}
