package uowmock

import (
	"context"
	"errors"

	"lending-portal/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock satisfying uow.UnitOfWork. Passthrough
// returns a mock that simply runs fn against the given repos, the common
// case for usecase tests.
type UoW struct {
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
}

func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(r uow.Repos) error) error {
			return fn(r)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
