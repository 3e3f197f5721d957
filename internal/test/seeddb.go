// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/finwallet/fintech-api/internal/domain"
	"github.com/finwallet/fintech-api/internal/userrepo"
	"github.com/finwallet/fintech-api/internal/walletrepo"
	"github.com/finwallet/fintech-api/pkg/currencypkg"
	"github.com/finwallet/fintech-api/pkg/dbpkg"
	"github.com/finwallet/fintech-api/pkg/passpkg"
	"github.com/finwallet/fintech-api/pkg/randompkg"
)

// SeedUser creates a random user inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:         randompkg.Owner(),
		Email:            randompkg.Email(),
		HashedPassword:   hashedPassword,
		AccountNumber:    randompkg.AccountNumber(),
		VerificationCode: randompkg.VerificationCode(),
	}

	userRepo := userrepo.NewTxRepoPGS(tx)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedWallet creates a wallet with the given balance inside a test transaction.
func SeedWallet(t *testing.T, tx dbpkg.SQLInterface, user domain.User, currency, balance string) domain.Wallet {
	t.Helper()

	walletRepo := walletrepo.NewRepoPGS(tx)

	wallet, err := walletRepo.Create(context.Background(), user.ID, currency, balance, user.AccountNumber)
	if err != nil {
		stmt := `walletRepo.Create(context.Background(), %v, %v, %v, %v) returned error: %v`
		t.Fatalf(stmt, user.ID, currency, balance, user.AccountNumber, err)
	}

	return wallet
}

// SeedUserWith1000USDWallet creates a user holding a single USD wallet with 1000 on balance.
func SeedUserWith1000USDWallet(t *testing.T, tx dbpkg.SQLInterface) (domain.User, domain.Wallet) {
	t.Helper()

	user := SeedUser(t, tx)
	wallet := SeedWallet(t, tx, user, currencypkg.USD, "1000")

	return user, wallet
}

// SeedUserWithAllCurrencyWallets creates a user with a 1000-balance wallet per supported currency.
func SeedUserWithAllCurrencyWallets(t *testing.T, tx dbpkg.SQLInterface) (domain.User, []domain.Wallet) {
	t.Helper()

	user := SeedUser(t, tx)

	wallets := make([]domain.Wallet, len(currencypkg.SupportedCurrencies))
	for i, c := range currencypkg.SupportedCurrencies {
		wallets[i] = SeedWallet(t, tx, user, c, "1000")
	}

	return user, wallets
}
