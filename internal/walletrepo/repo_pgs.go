// Package walletrepo manages repository layer of wallets.
package walletrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/finwallet/fintech-api/internal/domain"
	"github.com/finwallet/fintech-api/pkg/dbpkg"
	"github.com/finwallet/fintech-api/pkg/errorspkg"
)

// RepoPGS facilitates wallet repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns wallet RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    wallets (user_id, currency, balance, account_number)
VALUES
    ($1, $2, $3, $4)
RETURNING id, user_id, currency, balance, account_number, created_at
`

// Create creates the wallet and then returns it.
func (r *RepoPGS) Create(ctx context.Context, userID int64, currency, balance, accountNumber string) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, userID, currency, balance, accountNumber)

	var w domain.Wallet

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Currency,
		&w.Balance,
		&w.AccountNumber,
		&w.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "wallets_user_id_fkey":
				return w, domain.ErrUserNotFound
			case "wallets_user_id_currency_key":
				return w, domain.ErrWalletAlreadyExists
			}
		}

		return w, errorspkg.ErrInternal
	}

	return w, nil
}

const getQuery = `
SELECT
	id, user_id, currency, balance, account_number, created_at
FROM wallets
WHERE id = $1
`

// Get returns the wallet with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var w domain.Wallet

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Currency,
		&w.Balance,
		&w.AccountNumber,
		&w.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return w, domain.ErrWalletNotFound
		}

		return w, errorspkg.ErrInternal
	}

	return w, nil
}

const getForUpdateQuery = `
SELECT
	id, user_id, currency, balance, account_number, created_at
FROM wallets
WHERE id = $1
FOR UPDATE
`

// GetForUpdate returns the wallet with the given id and locks its row until
// the enclosing transaction ends.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id int64) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getForUpdateQuery, id)

	var w domain.Wallet

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Currency,
		&w.Balance,
		&w.AccountNumber,
		&w.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return w, domain.ErrWalletNotFound
		}

		return w, errorspkg.ErrInternal
	}

	return w, nil
}

const getByUserAndCurrencyQuery = `
SELECT
	id, user_id, currency, balance, account_number, created_at
FROM wallets
WHERE user_id = $1 AND currency = $2
`

// GetByUserAndCurrency returns the user's wallet for the given currency.
func (r *RepoPGS) GetByUserAndCurrency(ctx context.Context, userID int64, currency string) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByUserAndCurrencyQuery, userID, currency)

	var w domain.Wallet

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Currency,
		&w.Balance,
		&w.AccountNumber,
		&w.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return w, domain.ErrWalletNotFound
		}

		return w, errorspkg.ErrInternal
	}

	return w, nil
}

const addBalanceQuery = `
UPDATE wallets
SET balance = balance + $1
WHERE id = $2
RETURNING id, user_id, currency, balance, account_number, created_at
`

// AddBalance changes the wallet's balance and returns the changed wallet.
//
// A negative amount debits the wallet; the balance check constraint rejects
// any update that would take the balance below zero.
func (r *RepoPGS) AddBalance(ctx context.Context, amount string, id int64) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, id)

	var w domain.Wallet

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Currency,
		&w.Balance,
		&w.AccountNumber,
		&w.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return w, domain.ErrWalletNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "wallets_balance_check" {
				return w, domain.ErrInsufficientFunds
			}
		}

		return w, errorspkg.ErrInternal
	}

	return w, nil
}

const listByUserQuery = `
SELECT
	id, user_id, currency, balance, account_number, created_at
FROM wallets
WHERE user_id = $1
ORDER BY currency
`

// ListByUser returns all wallets of the given user.
func (r *RepoPGS) ListByUser(ctx context.Context, userID int64) ([]domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByUserQuery, userID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Wallet{}

	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.Currency, &w.Balance, &w.AccountNumber, &w.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, w)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
