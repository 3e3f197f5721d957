// Package walletdelivery manages delivery layer of wallets.
package walletdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/finwallet/fintech-api/internal/domain"
	"github.com/finwallet/fintech-api/internal/middleware"
	"github.com/finwallet/fintech-api/pkg/errorspkg"
	"github.com/finwallet/fintech-api/pkg/tokenpkg"
	"github.com/finwallet/fintech-api/pkg/web"
)

// Service provides service layer interface needed by wallet delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package walletdelivery
type Service interface {
	Balances(ctx context.Context, username string) ([]domain.WalletBalance, error)
}

// Handler facilitates wallet delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns wallet handler.
func NewHandler(s Service) *Handler {
	return &Handler{
		service: s,
	}
}

// Balances handles http request to view the wallet balances of the authorized user.
func (h *Handler) Balances(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	authPayload := gctx.MustGet(middleware.AuthorizationPayloadKey).(*tokenpkg.Payload)

	balances, err := h.service.Balances(ctx, authPayload.Username)
	if err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrUserNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(http.StatusNotFound, err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.OK(balances))
}
