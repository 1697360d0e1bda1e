package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubmitReceiptRequest struct {
	UserID        string          `json:"-" validate:"required,max=100"`
	BankID        string          `json:"bankId" validate:"required,max=100"`
	PlanID        *string         `json:"planId,omitempty" validate:"omitempty,max=100"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	ReferenceNo   *string         `json:"referenceNo,omitempty" validate:"omitempty,max=100"`
	ScreenshotURL string          `json:"screenshotUrl" validate:"required,max=500"`
}

type ApproveReceiptRequest struct {
	ReceiptID string `json:"-" validate:"required,max=100"`
	AdminID   string `json:"-" validate:"required,max=100"`
}

type RejectReceiptRequest struct {
	ReceiptID string  `json:"-" validate:"required,max=100"`
	AdminID   string  `json:"-" validate:"required,max=100"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type GetReceiptRequest struct {
	ReceiptID string `json:"-" validate:"required,max=100"`
}

type ListReceiptsRequest struct {
	UserID string `json:"userId,omitempty"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type ReceiptResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	BankID        string          `json:"bankId"`
	PlanID        *string         `json:"planId,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	ReferenceNo   *string         `json:"referenceNo,omitempty"`
	ScreenshotURL string          `json:"screenshotUrl"`
	Status        string          `json:"status"`
	TransactionID *string         `json:"transactionId,omitempty"`
	VerifiedByID  *string         `json:"verifiedById,omitempty"`
	Note          *string         `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type SubscriptionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PlanID    string    `json:"planId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	AutoRenew bool      `json:"autoRenew"`
}

// ApprovalResponse bundles everything one approval produced.
type ApprovalResponse struct {
	Receipt      *ReceiptResponse      `json:"receipt"`
	Transaction  *TransactionResponse  `json:"transaction"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}
