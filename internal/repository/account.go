package repository

import (
	"context"

	"github.com/farmvale/cryptofarm/internal/domain"
)

// Account defines the interface for account persistence
type Account interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByToken(ctx context.Context, token string) (*domain.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error)
	CreateAccount(ctx context.Context, account *domain.Account, token string) error
	TxBeginner
}
