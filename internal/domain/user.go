// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameAlreadyExists indicates that the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrEmailAlreadyExists indicates that the user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrAccountNumberAlreadyExists indicates that the generated account number is taken.
	ErrAccountNumberAlreadyExists = errors.New("account number already exists")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("wrong password")
	// ErrInvalidVerificationCode indicates that the email verification code does not match.
	ErrInvalidVerificationCode = errors.New("invalid verification code")
)

// User holds user data.
//
// The account number is globally unique and immutable after creation.
type User struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	HashedPassword   string    `json:"hashed_password"`
	AccountNumber    string    `json:"account_number"`
	VerificationCode string    `json:"verification_code"`
	EmailVerified    bool      `json:"email_verified"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	HashedPassword   string `json:"hashed_password"`
	AccountNumber    string `json:"account_number"`
	VerificationCode string `json:"verification_code"`
}

// UserWithoutPassword is User data excluding sensitive fields.
type UserWithoutPassword struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	AccountNumber string    `json:"account_number"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}
