package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentPending = "PENDING"
	PaymentSuccess = "SUCCESS"
	PaymentFailed  = "FAILED"
)

// ChapaTransaction is the local record of one online checkout attempt,
// keyed by tx_ref (unique). It is an audit and reconciliation record for the
// gateway leg and deliberately independent of wallet ledger rows.
type ChapaTransaction struct {
	ID         string          `json:"id" db:"id"`
	TxRef      string          `json:"tx_ref" db:"tx_ref"`
	GatewayRef *string         `json:"gateway_ref,omitempty" db:"gateway_ref"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	Currency   string          `json:"currency" db:"currency"`
	Status     string          `json:"status" db:"status"`
	Email      *string         `json:"email,omitempty" db:"email"`
	FirstName  *string         `json:"first_name,omitempty" db:"first_name"`
	LastName   *string         `json:"last_name,omitempty" db:"last_name"`
	UserID     *string         `json:"user_id,omitempty" db:"user_id"`
	WalletID   *string         `json:"wallet_id,omitempty" db:"wallet_id"`
	Metadata   []byte          `json:"-" db:"metadata"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}
