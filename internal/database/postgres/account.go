package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/farmvale/cryptofarm/internal/domain"
)

const accountColumns = `account_id, username, balance::text, slot_capacity, level,
	xp::text, xp_to_next_level::text, last_daily_at, created_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account     domain.Account
		balance     string
		xp          string
		xpToNext    string
		lastDailyAt *time.Time
	)
	err := row.Scan(&account.ID, &account.Username, &balance, &account.SlotCapacity,
		&account.Level, &xp, &xpToNext, &lastDailyAt, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}

	if account.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("malformed balance: %w", err)
	}
	if account.XP, err = decimal.NewFromString(xp); err != nil {
		return nil, fmt.Errorf("malformed xp: %w", err)
	}
	if account.XPToNext, err = decimal.NewFromString(xpToNext); err != nil {
		return nil, fmt.Errorf("malformed xp threshold: %w", err)
	}
	account.LastDailyAt = lastDailyAt
	return &account, nil
}

func getAccount(ctx context.Context, q querier, where string, forUpdate bool, arg any) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE %s`, accountColumns, where)
	if forUpdate {
		query += " FOR UPDATE"
	}
	return scanAccount(q.QueryRow(ctx, query, arg))
}

// GetAccount retrieves an account by id
func (s *Store) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccount(ctx, s.pool, "account_id = $1", false, accountID)
}

// GetAccountByToken resolves a session token to its account
func (s *Store) GetAccountByToken(ctx context.Context, token string) (*domain.Account, error) {
	return getAccount(ctx, s.pool, "token = $1", false, token)
}

// GetAccountByUsername retrieves an account by username
func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return getAccount(ctx, s.pool, "username = $1", false, username)
}

// CreateAccount inserts a new account with its session token
func (s *Store) CreateAccount(ctx context.Context, account *domain.Account, token string) error {
	query := `
		INSERT INTO accounts (account_id, username, token, balance, slot_capacity,
			level, xp, xp_to_next_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.pool.Exec(ctx, query,
		account.ID, account.Username, token, account.Balance, account.SlotCapacity,
		account.Level, account.XP, account.XPToNext, account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrAccountExists, account.Username)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func updateAccount(ctx context.Context, q querier, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET balance = $2, slot_capacity = $3, level = $4, xp = $5,
			xp_to_next_level = $6, last_daily_at = $7
		WHERE account_id = $1
	`
	tag, err := q.Exec(ctx, query,
		account.ID, account.Balance, account.SlotCapacity, account.Level,
		account.XP, account.XPToNext, account.LastDailyAt)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
