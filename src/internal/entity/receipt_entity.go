package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ReceiptPending  = "PENDING"
	ReceiptApproved = "APPROVED"
	ReceiptRejected = "REJECTED"
)

// PaymentReceipt is a manually uploaded proof of bank transfer. PlanID nil
// means wallet top-up, non-nil means subscription purchase. Once APPROVED or
// REJECTED the row is terminal.
type PaymentReceipt struct {
	ID            string          `json:"id" db:"id"`
	UserID        string          `json:"user_id" db:"user_id"`
	BankID        string          `json:"bank_id" db:"bank_id"`
	PlanID        *string         `json:"plan_id,omitempty" db:"plan_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	ReferenceNo   *string         `json:"reference_no,omitempty" db:"reference_no"`
	ScreenshotURL string          `json:"screenshot_url" db:"screenshot_url"`
	Status        string          `json:"status" db:"status"`
	TransactionID *string         `json:"transaction_id,omitempty" db:"transaction_id"`
	VerifiedByID  *string         `json:"verified_by_id,omitempty" db:"verified_by_id"`
	Note          *string         `json:"note,omitempty" db:"note"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}
