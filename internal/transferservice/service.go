// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finwallet/fintech-api/internal/domain"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.TransactionWithParties, error)
}

// UserResolver provides the user lookups needed to resolve transfer parties.
type UserResolver interface {
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
}

// WalletResolver provides the wallet lookups needed to resolve transfer parties.
type WalletResolver interface {
	GetByUserAndCurrency(ctx context.Context, userID int64, currency string) (domain.Wallet, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo    Repo
	users   UserResolver
	wallets WalletResolver
}

// New returns transfer service struct to manage transfer business logic.
func New(tr Repo, ur UserResolver, wr WalletResolver) *Service {
	return &Service{
		repo:    tr,
		users:   ur,
		wallets: wr,
	}
}

func validRequest(ctx context.Context, req domain.TransferRequest) error {
	l := zerolog.Ctx(ctx)

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.ErrInvalidAmount
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrNegativeAmount
	}

	if req.OriginatorAccountNumber == req.BeneficiaryAccountNumber {
		return domain.ErrSameAccount
	}

	return nil
}

// resolve maps an account number to its owning user and the user's wallet
// for the requested currency.
func (s *Service) resolve(ctx context.Context, accountNumber, currency string) (domain.User, domain.Wallet, error) {
	user, err := s.users.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return domain.User{}, domain.Wallet{}, err
	}

	wallet, err := s.wallets.GetByUserAndCurrency(ctx, user.ID, currency)
	if err != nil {
		return domain.User{}, domain.Wallet{}, err
	}

	return user, wallet, nil
}

// Transfer checks if the transfer request is valid, resolves both parties
// and then executes the transfer as one atomic unit.
//
// The insufficient-funds precheck here rejects obviously doomed requests
// early; the authoritative check happens again inside the repository
// transaction while both wallet rows are locked.
func (s *Service) Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	if err := validRequest(ctx, req); err != nil {
		return domain.TransferTxResult{}, err
	}

	originatorUser, originatorWallet, err := s.resolve(ctx, req.OriginatorAccountNumber, req.Currency)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	beneficiaryUser, beneficiaryWallet, err := s.resolve(ctx, req.BeneficiaryAccountNumber, req.Currency)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	if originatorWallet.Currency != beneficiaryWallet.Currency {
		return domain.TransferTxResult{}, domain.ErrCurrencyMismatch
	}

	balance, err := decimal.NewFromString(originatorWallet.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, domain.ErrInvalidAmount
	}

	if balance.LessThan(amount) {
		return domain.TransferTxResult{}, domain.ErrInsufficientFunds
	}

	arg := domain.TransferTxParams{
		OriginatorWalletID:  originatorWallet.ID,
		BeneficiaryWalletID: beneficiaryWallet.ID,
		SenderID:            originatorUser.ID,
		RecipientID:         beneficiaryUser.ID,
		AccountNumber:       req.OriginatorAccountNumber,
		// The parsed decimal drops an explicit leading "+" that Postgres
		// would reject as numeric input.
		Amount:   amount.String(),
		Currency: req.Currency,
	}

	return s.repo.Transfer(ctx, arg)
}

// History returns the transaction history of the given user, newest first.
func (s *Service) History(ctx context.Context, username string) ([]domain.TransactionWithParties, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.repo.ListForUser(ctx, user.ID)
}
