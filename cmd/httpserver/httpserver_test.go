//go:build integration

package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/finwallet/fintech-api/cmd/httpserver"
	"github.com/finwallet/fintech-api/internal/domain"
	"github.com/finwallet/fintech-api/internal/integrationtest"
	"github.com/finwallet/fintech-api/internal/middleware"
	"github.com/finwallet/fintech-api/internal/test"
	"github.com/finwallet/fintech-api/internal/userrepo"
	"github.com/finwallet/fintech-api/pkg/currencypkg"
	"github.com/finwallet/fintech-api/pkg/passpkg"
	"github.com/finwallet/fintech-api/pkg/randompkg"
	"github.com/finwallet/fintech-api/pkg/tokenpkg"
)

func postJSON(t *testing.T, server *httpserver.Server, url string, body gin.H, setup func(r *http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	request, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")

	if setup != nil {
		setup(request)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	return recorder
}

func getWithAuth(t *testing.T, server *httpserver.Server, url, username string) *httptest.ResponseRecorder {
	t.Helper()

	tokenMaker, err := tokenpkg.NewJWTMaker(server.Config.TokenSymmetricKey)
	require.NoError(t, err)

	request, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)

	middleware.AddAuthorization(t, request, tokenMaker,
		middleware.AuthorizationTypeBearer, username, server.Config.AccessTokenDuration)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	return recorder
}

func TestFundsTransferAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	sender := test.SeedUser(t, server.DB)
	test.SeedWallet(t, server.DB, sender, currencypkg.USD, "1000")
	recipient := test.SeedUser(t, server.DB)
	test.SeedWallet(t, server.DB, recipient, currencypkg.USD, "1000")

	t.Run("UnsupportedContentType", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodPost, "/transaction/funds-transfer", bytes.NewReader([]byte("{}")))
		require.NoError(t, err)
		request.Header.Set("Content-Type", "text/plain")

		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusUnsupportedMediaType, recorder.Code)
	})

	t.Run("BeneficiaryNotFound", func(t *testing.T) {
		recorder := postJSON(t, server, "/transaction/funds-transfer", gin.H{
			"originatorAccountNumber":  sender.AccountNumber,
			"beneficiaryAccountNumber": "0000000000",
			"amount":                   "100",
			"currency":                 currencypkg.USD,
		}, nil)

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		recorder := postJSON(t, server, "/transaction/funds-transfer", gin.H{
			"originatorAccountNumber":  sender.AccountNumber,
			"beneficiaryAccountNumber": recipient.AccountNumber,
			"amount":                   "5000",
			"currency":                 currencypkg.USD,
		}, nil)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("OK", func(t *testing.T) {
		recorder := postJSON(t, server, "/transaction/funds-transfer", gin.H{
			"originatorAccountNumber":  sender.AccountNumber,
			"beneficiaryAccountNumber": recipient.AccountNumber,
			"amount":                   "100",
			"currency":                 currencypkg.USD,
		}, nil)

		require.Equal(t, http.StatusOK, recorder.Code)

		var got struct {
			ResponseCode int                     `json:"responseCode"`
			ResponseData domain.TransferTxResult `json:"responseData"`
		}

		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		require.Equal(t, http.StatusOK, got.ResponseCode)
		require.Equal(t, "900", got.ResponseData.Originator.Balance)
		require.Equal(t, "1100", got.ResponseData.Receiver.Balance)
		require.Equal(t, domain.StatusSuccessful, got.ResponseData.Transaction.Status)
		require.NotEmpty(t, got.ResponseData.Transaction.Reference)
	})

	t.Run("History", func(t *testing.T) {
		recorder := getWithAuth(t, server, "/transaction/transaction-history", sender.Username)
		require.Equal(t, http.StatusOK, recorder.Code)

		var got struct {
			ResponseData []domain.TransactionWithParties `json:"responseData"`
		}

		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		require.Len(t, got.ResponseData, 1)
		require.Equal(t, "100", got.ResponseData[0].Amount)
		require.Equal(t, sender.Username, got.ResponseData[0].Sender.Username)
		require.Equal(t, recipient.Username, got.ResponseData[0].Recipient.Username)
		require.Equal(t, recipient.AccountNumber, got.ResponseData[0].Recipient.AccountNumber)
	})

	t.Run("HistoryNoAuthorization", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodGet, "/transaction/transaction-history", nil)
		require.NoError(t, err)

		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestAuthAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	password := randompkg.String(10)

	hashedPassword, err := passpkg.Hash(password)
	require.NoError(t, err)

	arg := domain.CreateUserParams{
		Username:         randompkg.Owner(),
		Email:            randompkg.Email(),
		HashedPassword:   hashedPassword,
		AccountNumber:    randompkg.AccountNumber(),
		VerificationCode: randompkg.VerificationCode(),
	}

	userRepo := userrepo.NewRepoPGS(server.DB)

	user, _, err := userRepo.CreateWithWallets(context.Background(), arg)
	require.NoError(t, err)

	t.Run("VerifyTokenWrongCode", func(t *testing.T) {
		recorder := postJSON(t, server, "/auth/verify-token", gin.H{
			"email": user.Email,
			"code":  "000000",
		}, nil)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("VerifyTokenOK", func(t *testing.T) {
		recorder := postJSON(t, server, "/auth/verify-token", gin.H{
			"email": user.Email,
			"code":  user.VerificationCode,
		}, nil)

		require.Equal(t, http.StatusOK, recorder.Code)

		var got struct {
			ResponseData domain.UserWithoutPassword `json:"responseData"`
		}

		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		require.True(t, got.ResponseData.EmailVerified)
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		recorder := postJSON(t, server, "/auth/login", gin.H{
			"email":    user.Email,
			"password": "wrong-password",
		}, nil)

		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("LoginOK", func(t *testing.T) {
		recorder := postJSON(t, server, "/auth/login", gin.H{
			"email":    user.Email,
			"password": password,
		}, nil)

		require.Equal(t, http.StatusOK, recorder.Code)

		var got struct {
			ResponseData struct {
				AccessToken string                     `json:"accessToken"`
				User        domain.UserWithoutPassword `json:"user"`
			} `json:"responseData"`
		}

		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		require.NotEmpty(t, got.ResponseData.AccessToken)
		require.Equal(t, user.Username, got.ResponseData.User.Username)

		// The issued token opens the protected routes.
		request, err := http.NewRequest(http.MethodGet, "/user/wallet/balance", nil)
		require.NoError(t, err)
		request.Header.Set(middleware.AuthorizationHeaderKey,
			middleware.AuthorizationTypeBearer+" "+got.ResponseData.AccessToken)

		balanceRecorder := httptest.NewRecorder()
		server.ServeHTTP(balanceRecorder, request)

		require.Equal(t, http.StatusOK, balanceRecorder.Code)
	})
}

func TestWalletBalanceAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	user, _ := test.SeedUserWithAllCurrencyWallets(t, server.DB)

	recorder := getWithAuth(t, server, "/user/wallet/balance", user.Username)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		ResponseData []domain.WalletBalance `json:"responseData"`
	}

	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Len(t, got.ResponseData, len(currencypkg.SupportedCurrencies))

	for _, b := range got.ResponseData {
		require.True(t, currencypkg.IsSupportedCurrency(b.Currency))
		require.Equal(t, "1000", b.Balance)
	}
}
