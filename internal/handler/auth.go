package handler

import (
	"context"
	"net/http"

	"github.com/farmvale/cryptofarm/internal/domain"
)

type contextKey string

const accountContextKey contextKey = "account"

// ContextWithAccount stores the authenticated account in the context
func ContextWithAccount(ctx context.Context, account *domain.Account) context.Context {
	return context.WithValue(ctx, accountContextKey, account)
}

// AccountFromContext retrieves the authenticated account from the context
func AccountFromContext(ctx context.Context) (*domain.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(*domain.Account)
	return account, ok
}

// requireAccount returns the authenticated account or writes a 401.
// If ok is false the response has already been written.
func requireAccount(w http.ResponseWriter, r *http.Request) (*domain.Account, bool) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return nil, false
	}
	return account, true
}
