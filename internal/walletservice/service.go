// Package walletservice manages business logic layer of wallets.
package walletservice

import (
	"context"

	"github.com/finwallet/fintech-api/internal/domain"
)

// Repo provides data access layer interface needed by wallet service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package walletservice
type Repo interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Wallet, error)
}

// UserResolver resolves usernames to users.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
}

// Service facilitates wallet service layer logic.
type Service struct {
	repo  Repo
	users UserResolver
}

// New returns wallet service struct to manage wallet business logic.
func New(wr Repo, ur UserResolver) *Service {
	return &Service{
		repo:  wr,
		users: ur,
	}
}

// Balances returns the balance of every wallet owned by the given user.
func (s *Service) Balances(ctx context.Context, username string) ([]domain.WalletBalance, error) {
	gotUser, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	wallets, err := s.repo.ListByUser(ctx, gotUser.ID)
	if err != nil {
		return nil, err
	}

	balances := make([]domain.WalletBalance, 0, len(wallets))
	for _, w := range wallets {
		balances = append(balances, domain.WalletBalance{
			Currency: w.Currency,
			Balance:  w.Balance,
		})
	}

	return balances, nil
}
