package domain

import (
	"errors"
	"time"
)

var (
	// ErrWalletNotFound indicates that the user has no wallet for the requested currency.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrWalletAlreadyExists indicates that the wallet for the (user, currency) pair already exists.
	ErrWalletAlreadyExists = errors.New("wallet currency already exists")
	// ErrInsufficientFunds indicates that the originator wallet does not have sufficient balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Wallet holds one user balance for a specific currency.
//
// Balance is carried as a string and computed with exact decimal arithmetic;
// it is never negative. At most one wallet exists per (user, currency) pair.
type Wallet struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Currency      string    `json:"currency"`
	Balance       string    `json:"balance"`
	AccountNumber string    `json:"account_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// WalletBalance is the read-only balance view of a wallet.
type WalletBalance struct {
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}
