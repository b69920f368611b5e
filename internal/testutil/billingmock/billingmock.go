package billingmock

import (
	"context"
	"time"

	"lending-portal/internal/domain/loan"
	"lending-portal/internal/domain/settings"
	"lending-portal/internal/domain/user"
	"lending-portal/internal/usecase/billing"
)

// Function-backed mocks for the billing ports and the directory/settings
// repositories. Nil read funcs return context.Canceled, nil write funcs are
// no-ops, mirroring the other mock packages.

var (
	_ billing.Renderer      = (*Renderer)(nil)
	_ billing.ArtifactStore = (*Store)(nil)
	_ billing.Mailer        = (*Mailer)(nil)
	_ billing.RunLock       = (*Lock)(nil)
	_ user.Repository       = (*UserRepo)(nil)
	_ settings.Repository   = (*SettingsRepo)(nil)
)

type Renderer struct {
	RenderFn func(ctx context.Context, st *billing.Statement) ([]byte, error)
}

func (m *Renderer) Render(ctx context.Context, st *billing.Statement) ([]byte, error) {
	if m.RenderFn != nil {
		return m.RenderFn(ctx, st)
	}
	return []byte("<html></html>"), nil
}

type Store struct {
	PutFn       func(ctx context.Context, key string, data []byte) (string, error)
	SignedURLFn func(ctx context.Context, key string, ttl time.Duration) (string, error)
}

func (m *Store) Put(ctx context.Context, key string, data []byte) (string, error) {
	if m.PutFn != nil {
		return m.PutFn(ctx, key, data)
	}
	return "http://store.test/" + key, nil
}

func (m *Store) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if m.SignedURLFn != nil {
		return m.SignedURLFn(ctx, key, ttl)
	}
	return "http://store.test/" + key, nil
}

type Mailer struct {
	SendFn func(ctx context.Context, msg billing.Message) (string, error)
}

func (m *Mailer) Send(ctx context.Context, msg billing.Message) (string, error) {
	if m.SendFn != nil {
		return m.SendFn(ctx, msg)
	}
	return "msg-id", nil
}

type Lock struct {
	AcquireFn func(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseFn func(ctx context.Context, key string) error
}

func (m *Lock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if m.AcquireFn != nil {
		return m.AcquireFn(ctx, key, ttl)
	}
	return true, nil
}

func (m *Lock) Release(ctx context.Context, key string) error {
	if m.ReleaseFn != nil {
		return m.ReleaseFn(ctx, key)
	}
	return nil
}

type UserRepo struct {
	ActiveRecipientsFn func(ctx context.Context, businessName string, role loan.Role) ([]*user.User, error)
}

func (m *UserRepo) ActiveRecipients(ctx context.Context, businessName string, role loan.Role) ([]*user.User, error) {
	if m.ActiveRecipientsFn != nil {
		return m.ActiveRecipientsFn(ctx, businessName, role)
	}
	return nil, context.Canceled
}

type SettingsRepo struct {
	GetFn            func(ctx context.Context, key string) (string, error)
	SetFn            func(ctx context.Context, key, value string) error
	ActiveTemplateFn func(ctx context.Context, name string) (*settings.EmailTemplate, error)
}

func (m *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return "", context.Canceled
}

func (m *SettingsRepo) Set(ctx context.Context, key, value string) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value)
	}
	return nil
}

func (m *SettingsRepo) ActiveTemplate(ctx context.Context, name string) (*settings.EmailTemplate, error) {
	if m.ActiveTemplateFn != nil {
		return m.ActiveTemplateFn(ctx, name)
	}
	return &settings.EmailTemplate{
		TemplateName: name,
		Subject:      "Your {{month}} {{year}} Invoice",
		Greeting:     "Dear {{businessName}},",
		Body:         "{{amountLabel}}: {{totalAmount}}",
		Closing:      "Thank you,",
		Signature:    "Coastal Private Lending",
		IsActive:     true,
	}, nil
}
