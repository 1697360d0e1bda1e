package model

import "time"

// PaymentSettlementEvent is published to the payment-settlements topic when a
// gateway transaction reaches a reconciled terminal status.
type PaymentSettlementEvent struct {
	EventID    string    `json:"event_id"`
	TxRef      string    `json:"tx_ref"`
	GatewayRef string    `json:"gateway_ref,omitempty"`
	Status     string    `json:"status"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *PaymentSettlementEvent) GetId() string {
	return e.EventID
}
