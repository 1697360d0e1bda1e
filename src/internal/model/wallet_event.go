package model

import "time"

type Event interface {
	GetId() string
}

// WalletTransactionEvent is published to the wallet-transactions topic on
// every ledger append.
type WalletTransactionEvent struct {
	EventID       string    `json:"event_id"`
	TransactionID string    `json:"transaction_id"`
	WalletID      string    `json:"wallet_id"`
	UserID        string    `json:"user_id"`
	Type          string    `json:"type"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

func (e *WalletTransactionEvent) GetId() string {
	return e.EventID
}
