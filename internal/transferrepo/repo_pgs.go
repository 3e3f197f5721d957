// Package transferrepo manages repository layer of transfers and the
// durable transaction records they produce.
package transferrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finwallet/fintech-api/internal/domain"
	"github.com/finwallet/fintech-api/internal/walletrepo"
	"github.com/finwallet/fintech-api/pkg/dbpkg"
	"github.com/finwallet/fintech-api/pkg/errorspkg"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transfer RepoPGS bound to an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transfer RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createTransactionQuery = `
INSERT INTO
    transactions (sender_id, recipient_id, account_number, amount, currency, reference, status)
VALUES
    ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, sender_id, recipient_id, account_number, amount, currency, reference, status, created_at
`

// CreateTransaction persists the transaction record and then returns it.
func (r *RepoPGS) CreateTransaction(ctx context.Context, arg domain.TransferTxParams, reference, status string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createTransactionQuery,
		arg.SenderID,
		arg.RecipientID,
		arg.AccountNumber,
		arg.Amount,
		arg.Currency,
		reference,
		status,
	)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.SenderID,
		&t.RecipientID,
		&t.AccountNumber,
		&t.Amount,
		&t.Currency,
		&t.Reference,
		&t.Status,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_reference_key":
				return t, domain.ErrDuplicateReference
			case "transactions_sender_id_fkey", "transactions_recipient_id_fkey":
				return t, domain.ErrUserNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

// Transfer moves money between two wallets.
//
// Both wallet rows are locked in ascending id order so two transfers with
// reversed originator/beneficiary pairs cannot deadlock on each other. The
// balance check, the debit, the credit and the transaction record insert all
// commit or roll back as one unit.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.ErrInvalidAmount
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	txWalletRepo := walletrepo.NewRepoPGS(tx)
	txTransferRepo := NewTxRepoPGS(tx)

	// Lock rows in consistent id order to avoid deadlocks.
	var originator, beneficiary domain.Wallet
	if arg.OriginatorWalletID < arg.BeneficiaryWalletID {
		originator, beneficiary, err = lockWallets(ctx, txWalletRepo, arg.OriginatorWalletID, arg.BeneficiaryWalletID)
	} else {
		beneficiary, originator, err = lockWallets(ctx, txWalletRepo, arg.BeneficiaryWalletID, arg.OriginatorWalletID)
	}

	if err != nil {
		return result, err
	}

	if originator.Currency != beneficiary.Currency || originator.Currency != arg.Currency {
		return result, domain.ErrCurrencyMismatch
	}

	balance, err := decimal.NewFromString(originator.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	if balance.LessThan(amount) {
		return result, domain.ErrInsufficientFunds
	}

	result.Originator, err = txWalletRepo.AddBalance(ctx, "-"+arg.Amount, originator.ID)
	if err != nil {
		return result, err
	}

	result.Receiver, err = txWalletRepo.AddBalance(ctx, arg.Amount, beneficiary.ID)
	if err != nil {
		return result, err
	}

	reference := uuid.NewString()

	result.Transaction, err = txTransferRepo.CreateTransaction(ctx, arg, reference, domain.StatusSuccessful)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

func lockWallets(ctx context.Context, r *walletrepo.RepoPGS, firstID, secondID int64) (domain.Wallet, domain.Wallet, error) {
	first, err := r.GetForUpdate(ctx, firstID)
	if err != nil {
		return domain.Wallet{}, domain.Wallet{}, err
	}

	second, err := r.GetForUpdate(ctx, secondID)
	if err != nil {
		return domain.Wallet{}, domain.Wallet{}, err
	}

	return first, second, nil
}

const listForUserQuery = `
SELECT
	t.id, t.sender_id, t.recipient_id, t.account_number, t.amount, t.currency, t.reference, t.status, t.created_at,
	s.username, s.email, s.account_number,
	r.username, r.email, r.account_number
FROM transactions t
JOIN users s ON s.id = t.sender_id
JOIN users r ON r.id = t.recipient_id
WHERE
    t.sender_id = $1 OR t.recipient_id = $1
ORDER BY t.created_at DESC, t.id DESC
`

// ListForUser returns all transactions where the user is sender or
// recipient, newest first, enriched with both parties' public data.
func (r *RepoPGS) ListForUser(ctx context.Context, userID int64) ([]domain.TransactionWithParties, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listForUserQuery, userID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.TransactionWithParties{}

	for rows.Next() {
		var t domain.TransactionWithParties
		if err := rows.Scan(
			&t.ID,
			&t.SenderID,
			&t.RecipientID,
			&t.AccountNumber,
			&t.Amount,
			&t.Currency,
			&t.Reference,
			&t.Status,
			&t.CreatedAt,
			&t.Sender.Username,
			&t.Sender.Email,
			&t.Sender.AccountNumber,
			&t.Recipient.Username,
			&t.Recipient.Email,
			&t.Recipient.AccountNumber,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
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
