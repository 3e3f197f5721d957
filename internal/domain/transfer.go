package domain

import "errors"

var (
	// ErrCurrencyMismatch indicates that the wallets have different currencies.
	ErrCurrencyMismatch = errors.New("wallets currency mismatch")
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates zero or negative amount.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrSameAccount indicates that originator and beneficiary account numbers are equal.
	ErrSameAccount = errors.New("originator and beneficiary accounts must differ")
)

// TransferRequest is the input data for a funds transfer. It is transient
// and never persisted.
type TransferRequest struct {
	OriginatorAccountNumber  string `json:"originatorAccountNumber"`
	BeneficiaryAccountNumber string `json:"beneficiaryAccountNumber"`
	Amount                   string `json:"amount"`
	Currency                 string `json:"currency"`
}

// TransferTxParams is the input data for the transfer transaction after both
// sides have been resolved.
type TransferTxParams struct {
	OriginatorWalletID  int64  `json:"originator_wallet_id"`
	BeneficiaryWalletID int64  `json:"beneficiary_wallet_id"`
	SenderID            int64  `json:"sender_id"`
	RecipientID         int64  `json:"recipient_id"`
	AccountNumber       string `json:"account_number"`
	Amount              string `json:"amount"`
	Currency            string `json:"currency"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	Originator  Wallet      `json:"originator"`
	Receiver    Wallet      `json:"receiver"`
	Transaction Transaction `json:"transaction"`
}
