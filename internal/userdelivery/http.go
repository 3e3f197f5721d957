// Package userdelivery manages delivery layer of users.
package userdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/finwallet/fintech-api/internal/domain"
	"github.com/finwallet/fintech-api/pkg/errorspkg"
	"github.com/finwallet/fintech-api/pkg/tokenpkg"
	"github.com/finwallet/fintech-api/pkg/web"
)

// Service provides service layer interface needed by user delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package userdelivery
type Service interface {
	Register(ctx context.Context, username, password, email string) (domain.UserWithoutPassword, error)
	VerifyEmail(ctx context.Context, email, code string) (domain.UserWithoutPassword, error)
	CheckPassword(ctx context.Context, email, password string) (domain.UserWithoutPassword, error)
}

// Handler facilitates user delivery layer logic.
type Handler struct {
	service             Service
	tokenMaker          tokenpkg.Maker
	accessTokenDuration time.Duration
}

// NewHandler returns user handler.
func NewHandler(us Service, tm tokenpkg.Maker, accessTokenDuration time.Duration) *Handler {
	return &Handler{
		service:             us,
		tokenMaker:          tm,
		accessTokenDuration: accessTokenDuration,
	}
}

func bindError(gctx *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.ErrorMsg(http.StatusBadRequest, web.GetErrorMsg(ve)))

		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(http.StatusBadRequest, err))
}

type registerRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
}

// Register handles http request to create user with one wallet per supported currency.
func (h *Handler) Register(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req registerRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		bindError(gctx, err)

		return
	}

	createdUser, err := h.service.Register(ctx, req.Username, req.Password, req.Email)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case
			domain.ErrUsernameAlreadyExists,
			domain.ErrEmailAlreadyExists,
			domain.ErrAccountNumberAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(http.StatusConflict, err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{
		ResponseMessage: "registration successful, check your email for the verification code",
		ResponseCode:    http.StatusCreated,
		ResponseData:    createdUser,
	})
}

type verifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,numeric,len=6"`
}

// VerifyEmail handles http request to confirm the emailed verification code.
func (h *Handler) VerifyEmail(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req verifyEmailRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		bindError(gctx, err)

		return
	}

	verifiedUser, err := h.service.VerifyEmail(ctx, req.Email, req.Code)
	if err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrInvalidVerificationCode {
			gctx.JSON(http.StatusBadRequest, web.Error(http.StatusBadRequest, err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.OK(verifiedUser))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginData struct {
	AccessToken          string                     `json:"accessToken"`
	AccessTokenExpiresAt time.Time                  `json:"accessTokenExpiresAt"`
	User                 domain.UserWithoutPassword `json:"user"`
}

// Login handles http request to authenticate a user and issue an access token.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		bindError(gctx, err)

		return
	}

	gotUser, err := h.service.CheckPassword(ctx, req.Email, req.Password)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(http.StatusNotFound, err))

			return
		case domain.ErrWrongPassword:
			gctx.JSON(http.StatusUnauthorized, web.Error(http.StatusUnauthorized, err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	accessToken, payload, err := h.tokenMaker.CreateToken(gotUser.Username, h.accessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.OK(loginData{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: payload.ExpiredAt,
		User:                 gotUser,
	}))
}
