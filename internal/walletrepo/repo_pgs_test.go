//go:build integration

package walletrepo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finwallet/fintech-api/internal/domain"
	"github.com/finwallet/fintech-api/internal/middleware"
	"github.com/finwallet/fintech-api/internal/test"
	"github.com/finwallet/fintech-api/internal/walletrepo"
	"github.com/finwallet/fintech-api/pkg/configpkg"
	"github.com/finwallet/fintech-api/pkg/currencypkg"
	"github.com/finwallet/fintech-api/pkg/dbpkg"
)

var (
	dbDriver string
	dbSource string
	ctx      context.Context
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	logger := middleware.CreateLogger(config)
	ctx = logger.WithContext(context.Background())

	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	walletRepo := walletrepo.NewRepoPGS(tx)

	user := test.SeedUser(t, tx)

	got, err := walletRepo.Create(ctx, user.ID, currencypkg.USD, "0", user.AccountNumber)
	require.NoError(t, err)
	require.NotZero(t, got.ID)
	require.Equal(t, user.ID, got.UserID)
	require.Equal(t, currencypkg.USD, got.Currency)
	require.Equal(t, "0", got.Balance)
	require.Equal(t, user.AccountNumber, got.AccountNumber)
	require.NotZero(t, got.CreatedAt)
}

func TestCreateConstraints(t *testing.T) {
	testCases := []struct {
		name    string
		create  func(tx dbpkg.SQLInterface, walletRepo *walletrepo.RepoPGS) error
		wantErr error
	}{
		{
			name: "UserNotFound",
			create: func(tx dbpkg.SQLInterface, walletRepo *walletrepo.RepoPGS) error {
				_, err := walletRepo.Create(ctx, 0, currencypkg.USD, "0", "0000000000")
				return err
			},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name: "WalletAlreadyExists",
			create: func(tx dbpkg.SQLInterface, walletRepo *walletrepo.RepoPGS) error {
				user, _ := test.SeedUserWith1000USDWallet(t, tx)
				_, err := walletRepo.Create(ctx, user.ID, currencypkg.USD, "0", user.AccountNumber)

				return err
			},
			wantErr: domain.ErrWalletAlreadyExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			tx := dbpkg.SetupTX(t, dbDriver, dbSource)
			walletRepo := walletrepo.NewRepoPGS(tx)

			require.ErrorIs(t, tc.create(tx, walletRepo), tc.wantErr)
		})
	}
}

func TestGet(t *testing.T) {
	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	walletRepo := walletrepo.NewRepoPGS(tx)

	_, seeded := test.SeedUserWith1000USDWallet(t, tx)

	t.Run("OK", func(t *testing.T) {
		got, err := walletRepo.Get(ctx, seeded.ID)
		require.NoError(t, err)
		require.Equal(t, seeded, got)
	})

	t.Run("ForUpdate", func(t *testing.T) {
		got, err := walletRepo.GetForUpdate(ctx, seeded.ID)
		require.NoError(t, err)
		require.Equal(t, seeded, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := walletRepo.Get(ctx, 0)
		require.ErrorIs(t, err, domain.ErrWalletNotFound)
	})
}

func TestGetByUserAndCurrency(t *testing.T) {
	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	walletRepo := walletrepo.NewRepoPGS(tx)

	user, _ := test.SeedUserWithAllCurrencyWallets(t, tx)

	t.Run("OK", func(t *testing.T) {
		got, err := walletRepo.GetByUserAndCurrency(ctx, user.ID, currencypkg.EUR)
		require.NoError(t, err)
		require.Equal(t, currencypkg.EUR, got.Currency)
		require.Equal(t, user.ID, got.UserID)
	})

	t.Run("NotFound", func(t *testing.T) {
		other := test.SeedUser(t, tx)

		_, err := walletRepo.GetByUserAndCurrency(ctx, other.ID, currencypkg.USD)
		require.ErrorIs(t, err, domain.ErrWalletNotFound)
	})
}

func TestAddBalance(t *testing.T) {
	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	walletRepo := walletrepo.NewRepoPGS(tx)

	_, seeded := test.SeedUserWith1000USDWallet(t, tx)

	got, err := walletRepo.AddBalance(ctx, "-100.5", seeded.ID)
	require.NoError(t, err)
	require.Equal(t, "899.5", got.Balance)

	got, err = walletRepo.AddBalance(ctx, "0.5", seeded.ID)
	require.NoError(t, err)
	require.Equal(t, "900.0", got.Balance)

	t.Run("NotFound", func(t *testing.T) {
		_, err := walletRepo.AddBalance(ctx, "100", 0)
		require.ErrorIs(t, err, domain.ErrWalletNotFound)
	})
}

func TestAddBalanceInsufficientFunds(t *testing.T) {
	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	walletRepo := walletrepo.NewRepoPGS(tx)

	_, seeded := test.SeedUserWith1000USDWallet(t, tx)

	_, err := walletRepo.AddBalance(ctx, "-1000.01", seeded.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestListByUser(t *testing.T) {
	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	walletRepo := walletrepo.NewRepoPGS(tx)

	user, wallets := test.SeedUserWithAllCurrencyWallets(t, tx)

	got, err := walletRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, wallets, got)

	t.Run("Empty", func(t *testing.T) {
		other := test.SeedUser(t, tx)

		got, err := walletRepo.ListByUser(ctx, other.ID)
		require.NoError(t, err)
		require.Empty(t, got)
	})
}
