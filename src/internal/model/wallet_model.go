package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type GetWalletRequest struct {
	UserID string `json:"-" validate:"required,max=100"`
}

type AdjustBalanceRequest struct {
	UserID  string          `json:"-" validate:"required,max=100"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
	Type    string          `json:"type" validate:"required,oneof=DEPOSIT WITHDRAWAL REFERRAL_REWARD"`
	AdminID string          `json:"-" validate:"required,max=100"`
}

type ListTransactionsRequest struct {
	UserID string `json:"-" validate:"required,max=100"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type WalletResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

type TransactionResponse struct {
	ID        string          `json:"id"`
	WalletID  string          `json:"walletId"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}
