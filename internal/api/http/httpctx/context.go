package httpctx

import (
	"context"

	"github.com/cypresslabs/identity-server/internal/model"
)

type ctxKey int

const accountKey ctxKey = iota

// Manager stores and retrieves the authenticated account on a request
// context. The unexported key type keeps other packages from writing the
// slot directly.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetAccountToContext returns a child context carrying the account.
func (m *Manager) SetAccountToContext(ctx context.Context, account model.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// GetAccountFromContext retrieves the account set by the auth middleware.
// The second return is false when the request was not authenticated.
func (m *Manager) GetAccountFromContext(ctx context.Context) (model.Account, bool) {
	account, ok := ctx.Value(accountKey).(model.Account)
	return account, ok
}

// ClearAccountFromContext drops the account from the context so it cannot
// be read after the request scope ends.
func (m *Manager) ClearAccountFromContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, accountKey, nil)
}
