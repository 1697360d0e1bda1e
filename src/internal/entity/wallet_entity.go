package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID        string          `json:"id" db:"id"`
	UserID    string          `json:"user_id" db:"user_id"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	Currency  string          `json:"currency" db:"currency"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}

const (
	TransactionDeposit        = "DEPOSIT"
	TransactionWithdrawal     = "WITHDRAWAL"
	TransactionSubscription   = "SUBSCRIPTION"
	TransactionReferralReward = "REFERRAL_REWARD"
)

// WalletTransaction is an immutable append record. Amount is always positive;
// direction is encoded by Type. SUBSCRIPTION records are audit only and never
// change the wallet balance.
type WalletTransaction struct {
	ID        string          `json:"id" db:"id"`
	WalletID  string          `json:"wallet_id" db:"wallet_id"`
	Type      string          `json:"type" db:"type"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// SignedAmount is the balance delta this transaction type applies.
func (t *WalletTransaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case TransactionWithdrawal:
		return t.Amount.Neg()
	case TransactionSubscription:
		return decimal.Zero
	default:
		return t.Amount
	}
}
