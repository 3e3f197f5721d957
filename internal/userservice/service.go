// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/finwallet/fintech-api/internal/domain"
	"github.com/finwallet/fintech-api/pkg/errorspkg"
	"github.com/finwallet/fintech-api/pkg/passpkg"
	"github.com/finwallet/fintech-api/pkg/randompkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	CreateWithWallets(ctx context.Context, arg domain.CreateUserParams) (domain.User, []domain.Wallet, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	VerifyEmail(ctx context.Context, email, code string) (domain.User, error)
}

// Mailer sends verification emails to freshly registered users.
type Mailer interface {
	SendVerification(email, code string) error
}

// Service facilitates user service layer logic.
type Service struct {
	repo   Repo
	mailer Mailer
}

// New returns user service struct to manage user business logic.
func New(ur Repo, m Mailer) *Service {
	return &Service{
		repo:   ur,
		mailer: m,
	}
}

// NewUserWithoutPassword returns user with removed sensitive data.
func NewUserWithoutPassword(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		AccountNumber: u.AccountNumber,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

// Register creates the user together with one empty wallet per supported
// currency and emails the verification code.
func (s *Service) Register(ctx context.Context, username, password, email string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Username:         username,
		Email:            email,
		HashedPassword:   hashedPassword,
		AccountNumber:    randompkg.AccountNumber(),
		VerificationCode: randompkg.VerificationCode(),
	}

	gotUser, _, err := s.repo.CreateWithWallets(ctx, arg)
	if err != nil {
		return result, err
	}

	if err := s.mailer.SendVerification(gotUser.Email, gotUser.VerificationCode); err != nil {
		l.Error().Err(err).Str("email", gotUser.Email).Msg("send verification email")
		return result, errorspkg.ErrInternal
	}

	result = NewUserWithoutPassword(gotUser)

	return result, nil
}

// VerifyEmail marks the user email as verified if the code matches.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) (domain.UserWithoutPassword, error) {
	var result domain.UserWithoutPassword

	gotUser, err := s.repo.VerifyEmail(ctx, email, code)
	if err != nil {
		return result, err
	}

	result = NewUserWithoutPassword(gotUser)

	return result, nil
}

// CheckPassword checks if the password is valid for the user with the given email.
func (s *Service) CheckPassword(ctx context.Context, email, pass string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	gotUser, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return result, err
	}

	if err := passpkg.Check(pass, gotUser.HashedPassword); err != nil {
		l.Warn().Err(err).Send()
		return result, domain.ErrWrongPassword
	}

	result = NewUserWithoutPassword(gotUser)

	return result, nil
}
