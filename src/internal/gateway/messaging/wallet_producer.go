package messaging

import (
	"wallet-service/src/internal/model"
	kafka "wallet-service/src/pkg/kafka/confluent"
	"wallet-service/src/pkg/log"
)

type WalletProducer struct {
	Producer[*model.WalletTransactionEvent]
}

func NewWalletProducer(producer kafka.Producer, log log.Log) *WalletProducer {
	return &WalletProducer{
		Producer[*model.WalletTransactionEvent]{
			Producer: producer,
			Topic:    "wallet-transactions",
			Log:      log,
		},
	}
}

func (w *WalletProducer) SendTransaction(event *model.WalletTransactionEvent) error {
	return w.Send(event)
}
