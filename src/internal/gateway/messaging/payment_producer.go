package messaging

import (
	"wallet-service/src/internal/model"
	kafka "wallet-service/src/pkg/kafka/confluent"
	"wallet-service/src/pkg/log"
)

type PaymentProducer struct {
	Producer[*model.PaymentSettlementEvent]
}

func NewPaymentProducer(producer kafka.Producer, log log.Log) *PaymentProducer {
	return &PaymentProducer{
		Producer[*model.PaymentSettlementEvent]{
			Producer: producer,
			Topic:    "payment-settlements",
			Log:      log,
		},
	}
}

func (p *PaymentProducer) SendSettlement(event *model.PaymentSettlementEvent) error {
	return p.Send(event)
}
