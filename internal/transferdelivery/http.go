// Package transferdelivery manages delivery layer of funds transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/finwallet/fintech-api/internal/domain"
	"github.com/finwallet/fintech-api/internal/middleware"
	"github.com/finwallet/fintech-api/pkg/errorspkg"
	"github.com/finwallet/fintech-api/pkg/tokenpkg"
	"github.com/finwallet/fintech-api/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferTxResult, error)
	History(ctx context.Context, username string) ([]domain.TransactionWithParties, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(s Service) *Handler {
	return &Handler{
		service: s,
	}
}

type transferRequest struct {
	OriginatorAccountNumber  string `json:"originatorAccountNumber" binding:"required,numeric,len=10"`
	BeneficiaryAccountNumber string `json:"beneficiaryAccountNumber" binding:"required,numeric,len=10"`
	Amount                   string `json:"amount" binding:"required"`
	Currency                 string `json:"currency" binding:"required,currency"`
}

// Create handles http request to transfer funds between two wallets.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.ErrorMsg(http.StatusBadRequest, web.GetErrorMsg(ve)))

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(http.StatusBadRequest, err))

		return
	}

	arg := domain.TransferRequest{
		OriginatorAccountNumber:  req.OriginatorAccountNumber,
		BeneficiaryAccountNumber: req.BeneficiaryAccountNumber,
		Amount:                   req.Amount,
		Currency:                 req.Currency,
	}

	result, err := h.service.Transfer(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case
			domain.ErrInvalidAmount,
			domain.ErrNegativeAmount,
			domain.ErrSameAccount,
			domain.ErrInsufficientFunds,
			domain.ErrCurrencyMismatch:
			gctx.JSON(http.StatusBadRequest, web.Error(http.StatusBadRequest, err))

			return
		case
			domain.ErrUserNotFound,
			domain.ErrWalletNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(http.StatusNotFound, err))

			return
		case domain.ErrDuplicateReference:
			gctx.JSON(http.StatusConflict, web.Error(http.StatusConflict, err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.OK(result))
}

// History handles http request to list transactions of the authorized user.
func (h *Handler) History(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	authPayload := gctx.MustGet(middleware.AuthorizationPayloadKey).(*tokenpkg.Payload)

	transactions, err := h.service.History(ctx, authPayload.Username)
	if err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrUserNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(http.StatusNotFound, err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.OK(transactions))
}
