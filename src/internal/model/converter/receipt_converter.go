package converter

import (
	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"
)

func ReceiptToResponse(receipt *entity.PaymentReceipt) *model.ReceiptResponse {
	return &model.ReceiptResponse{
		ID:            receipt.ID,
		UserID:        receipt.UserID,
		BankID:        receipt.BankID,
		PlanID:        receipt.PlanID,
		Amount:        receipt.Amount,
		ReferenceNo:   receipt.ReferenceNo,
		ScreenshotURL: receipt.ScreenshotURL,
		Status:        receipt.Status,
		TransactionID: receipt.TransactionID,
		VerifiedByID:  receipt.VerifiedByID,
		Note:          receipt.Note,
		CreatedAt:     receipt.CreatedAt,
	}
}

func ReceiptsToResponse(receipts []entity.PaymentReceipt) []model.ReceiptResponse {
	responses := make([]model.ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		responses = append(responses, *ReceiptToResponse(&receipts[i]))
	}
	return responses
}

func SubscriptionToResponse(sub *entity.Subscription) *model.SubscriptionResponse {
	return &model.SubscriptionResponse{
		ID:        sub.ID,
		UserID:    sub.UserID,
		PlanID:    sub.PlanID,
		StartDate: sub.StartDate,
		EndDate:   sub.EndDate,
		Status:    sub.Status,
		AutoRenew: sub.AutoRenew,
	}
}
