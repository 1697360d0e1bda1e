package model

// Asynq task type for post-commit settlement notifications.
const TypeNotifySettlement = "notification:settlement"

const (
	NotificationCategoryTopUp        = "WALLET_TOPUP"
	NotificationCategorySubscription = "SUBSCRIPTION"
)

// SettlementNotification is the asynq task payload. It is enqueued after the
// owning transaction commits; delivery is best effort.
type SettlementNotification struct {
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Category  string `json:"category"`
	ReceiptID string `json:"receipt_id,omitempty"`
	TxRef     string `json:"tx_ref,omitempty"`
}
