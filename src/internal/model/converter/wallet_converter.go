package converter

import (
	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"
)

func WalletToResponse(wallet *entity.Wallet) *model.WalletResponse {
	return &model.WalletResponse{
		ID:        wallet.ID,
		UserID:    wallet.UserID,
		Balance:   wallet.Balance,
		Currency:  wallet.Currency,
		UpdatedAt: wallet.UpdatedAt,
	}
}

func TransactionToResponse(txn *entity.WalletTransaction) *model.TransactionResponse {
	return &model.TransactionResponse{
		ID:        txn.ID,
		WalletID:  txn.WalletID,
		Type:      txn.Type,
		Amount:    txn.Amount,
		CreatedAt: txn.CreatedAt,
	}
}

func TransactionsToResponse(txns []entity.WalletTransaction) []model.TransactionResponse {
	responses := make([]model.TransactionResponse, 0, len(txns))
	for i := range txns {
		responses = append(responses, *TransactionToResponse(&txns[i]))
	}
	return responses
}
