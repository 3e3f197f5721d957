// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/finwallet/fintech-api/internal/middleware"
	"github.com/finwallet/fintech-api/internal/transferdelivery"
	"github.com/finwallet/fintech-api/internal/transferrepo"
	"github.com/finwallet/fintech-api/internal/transferservice"
	"github.com/finwallet/fintech-api/internal/userdelivery"
	"github.com/finwallet/fintech-api/internal/userrepo"
	"github.com/finwallet/fintech-api/internal/userservice"
	"github.com/finwallet/fintech-api/internal/walletdelivery"
	"github.com/finwallet/fintech-api/internal/walletrepo"
	"github.com/finwallet/fintech-api/internal/walletservice"
	"github.com/finwallet/fintech-api/pkg/configpkg"
	"github.com/finwallet/fintech-api/pkg/currencypkg"
	"github.com/finwallet/fintech-api/pkg/mailpkg"
	"github.com/finwallet/fintech-api/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	walletRepo := walletrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewJWTMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	mailer := mailpkg.NewSMTPSender(config)

	userService := userservice.New(userRepo, mailer)
	walletService := walletservice.New(walletRepo, userRepo)
	transferService := transferservice.New(transferRepo, userRepo, walletRepo)

	userHandler := userdelivery.NewHandler(userService, tokenMaker, config.AccessTokenDuration)
	walletHandler := walletdelivery.NewHandler(walletService)
	transferHandler := transferdelivery.NewHandler(transferService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())
	engine.Use(middleware.RateLimiter(config.RateLimitRequests, config.RateLimitWindow))
	engine.Use(middleware.ValidateContentType("application/json"))

	engine.POST("/auth/register", userHandler.Register)
	engine.POST("/auth/verify-token", userHandler.VerifyEmail)
	engine.POST("/auth/login", userHandler.Login)

	engine.POST("/transaction/funds-transfer", transferHandler.Create)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.GET("/transaction/transaction-history", transferHandler.History)
	authRoutes.GET("/user/wallet/balance", walletHandler.Balances)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("currency", currencypkg.ValidCurrency); err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
