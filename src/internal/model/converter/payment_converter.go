package converter

import (
	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"
)

func PaymentToResponse(payment *entity.ChapaTransaction) *model.PaymentResponse {
	return &model.PaymentResponse{
		TxRef:      payment.TxRef,
		GatewayRef: payment.GatewayRef,
		Amount:     payment.Amount,
		Currency:   payment.Currency,
		Status:     payment.Status,
		Email:      payment.Email,
		CreatedAt:  payment.CreatedAt,
		UpdatedAt:  payment.UpdatedAt,
	}
}

func PaymentsToResponse(payments []entity.ChapaTransaction) []model.PaymentResponse {
	responses := make([]model.PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, *PaymentToResponse(&payments[i]))
	}
	return responses
}
