// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/finwallet/fintech-api/internal/domain"
	"github.com/finwallet/fintech-api/internal/walletrepo"
	"github.com/finwallet/fintech-api/pkg/currencypkg"
	"github.com/finwallet/fintech-api/pkg/dbpkg"
	"github.com/finwallet/fintech-api/pkg/errorspkg"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns user RepoPGS bound to an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns user RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    users (username, email, hashed_password, account_number, verification_code)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, username, email, hashed_password, account_number, verification_code, email_verified, created_at
`

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Username,
		arg.Email,
		arg.HashedPassword,
		arg.AccountNumber,
		arg.VerificationCode,
	)

	var u domain.User

	err := scanUser(row, &u)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "users_username_key":
				return u, domain.ErrUsernameAlreadyExists
			case "users_email_key":
				return u, domain.ErrEmailAlreadyExists
			case "users_account_number_key":
				return u, domain.ErrAccountNumberAlreadyExists
			}
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

// CreateWithWallets creates the user together with one zero-balance wallet
// per supported currency inside a single database transaction.
func (r *RepoPGS) CreateWithWallets(ctx context.Context, arg domain.CreateUserParams) (domain.User, []domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.User{}, nil, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	txUserRepo := NewTxRepoPGS(tx)
	txWalletRepo := walletrepo.NewRepoPGS(tx)

	user, err := txUserRepo.Create(ctx, arg)
	if err != nil {
		return domain.User{}, nil, err
	}

	wallets := make([]domain.Wallet, 0, len(currencypkg.SupportedCurrencies))

	for _, currency := range currencypkg.SupportedCurrencies {
		wallet, err := txWalletRepo.Create(ctx, user.ID, currency, "0", user.AccountNumber)
		if err != nil {
			return domain.User{}, nil, err
		}

		wallets = append(wallets, wallet)
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.User{}, nil, errorspkg.ErrInternal
	}

	return user, wallets, nil
}

const getByUsernameQuery = `
SELECT
	id, username, email, hashed_password, account_number, verification_code, email_verified, created_at
FROM users
WHERE username = $1
`

// GetByUsername returns the user with the given username.
func (r *RepoPGS) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getBy(ctx, getByUsernameQuery, username)
}

const getByEmailQuery = `
SELECT
	id, username, email, hashed_password, account_number, verification_code, email_verified, created_at
FROM users
WHERE email = $1
`

// GetByEmail returns the user with the given email.
func (r *RepoPGS) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getBy(ctx, getByEmailQuery, email)
}

const getByAccountNumberQuery = `
SELECT
	id, username, email, hashed_password, account_number, verification_code, email_verified, created_at
FROM users
WHERE account_number = $1
`

// GetByAccountNumber returns the user owning the given account number.
func (r *RepoPGS) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.User, error) {
	return r.getBy(ctx, getByAccountNumberQuery, accountNumber)
}

func (r *RepoPGS) getBy(ctx context.Context, query, key string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, key)

	var u domain.User

	err := scanUser(row, &u)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const verifyEmailQuery = `
UPDATE users
SET email_verified = true
WHERE email = $1 AND verification_code = $2
RETURNING id, username, email, hashed_password, account_number, verification_code, email_verified, created_at
`

// VerifyEmail flips the email verified flag for the user with the matching
// verification code.
func (r *RepoPGS) VerifyEmail(ctx context.Context, email, code string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, verifyEmailQuery, email, code)

	var u domain.User

	err := scanUser(row, &u)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrInvalidVerificationCode
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

func scanUser(row *sql.Row, u *domain.User) error {
	return row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.HashedPassword,
		&u.AccountNumber,
		&u.VerificationCode,
		&u.EmailVerified,
		&u.CreatedAt,
	)
}
