package domain

import (
	"errors"
	"time"
)

var (
	// ErrDuplicateReference indicates that the generated transaction reference already exists.
	ErrDuplicateReference = errors.New("transaction reference already exists")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Transaction statuses. A transaction is immutable once it reaches a
// terminal status.
const (
	StatusPending    = "PENDING"
	StatusSuccessful = "SUCCESSFUL"
	StatusFailed     = "FAILED"
)

// Transaction is the durable record of a completed transfer.
//
// Reference is unique across all time and distinct from the row id.
type Transaction struct {
	ID            int64     `json:"id"`
	SenderID      int64     `json:"sender_id"`
	RecipientID   int64     `json:"recipient_id"`
	AccountNumber string    `json:"account_number"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Reference     string    `json:"transactionReference"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Counterparty is the public user data attached to a transaction history row.
type Counterparty struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	AccountNumber string `json:"accountNumber"`
}

// TransactionWithParties is a transaction enriched with sender and recipient data.
type TransactionWithParties struct {
	Transaction
	Sender    Counterparty `json:"sender"`
	Recipient Counterparty `json:"recipient"`
}
