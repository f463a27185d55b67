package model

import "context"

// ContextManager propagates the authenticated account through a request
// scope. The account never outlives the context it was set on, so identity
// cannot leak across requests.
type ContextManager interface {
	SetAccountToContext(ctx context.Context, account Account) context.Context
	GetAccountFromContext(ctx context.Context) (Account, bool)
	ClearAccountFromContext(ctx context.Context) context.Context
}
