package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type InitializePaymentRequest struct {
	UserID    string          `json:"-" validate:"max=100"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Currency  string          `json:"currency" validate:"required,len=3"`
	Email     string          `json:"email" validate:"omitempty,email"`
	FirstName string          `json:"firstName" validate:"omitempty,max=100"`
	LastName  string          `json:"lastName" validate:"omitempty,max=100"`
	TxRef     string          `json:"txRef" validate:"omitempty,max=100"`
}

type InitializePaymentResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
	TxRef       string `json:"txRef"`
}

// PaymentCallbackRequest carries the untrusted browser-redirect query params.
// StatusHint is never persisted; reconciliation re-derives the real status.
type PaymentCallbackRequest struct {
	TxRef      string `query:"trx_ref"`
	RefID      string `query:"ref_id"`
	StatusHint string `query:"status"`
}

type GetPaymentRequest struct {
	TxRef string `json:"-" validate:"required,max=100"`
}

type ListPaymentsRequest struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=PENDING SUCCESS FAILED"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type PaymentResponse struct {
	TxRef      string          `json:"txRef"`
	GatewayRef *string         `json:"gatewayRef,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Status     string          `json:"status"`
	Email      *string         `json:"email,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  *time.Time      `json:"updatedAt,omitempty"`
}
