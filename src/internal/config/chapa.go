package config

import (
	"time"

	"wallet-service/src/internal/gateway/chapa"
	"wallet-service/src/internal/gateway/notifier"
	"wallet-service/src/pkg/log"

	"github.com/spf13/viper"
)

func NewChapaClient(v *viper.Viper, logger log.Log) *chapa.Client {
	timeout := v.GetInt("chapa.timeout_seconds")
	if timeout == 0 {
		timeout = 10
	}

	return chapa.NewClient(chapa.Config{
		BaseURL:       v.GetString("chapa.base_url"),
		SecretKey:     v.GetString("chapa.secret_key"),
		CallbackURL:   v.GetString("chapa.callback_url"),
		ReturnURL:     v.GetString("chapa.return_url"),
		Timeout:       time.Duration(timeout) * time.Second,
		WebhookSecret: v.GetString("chapa.webhook_secret"),
	}, logger)
}

func NewNotifier(v *viper.Viper, logger log.Log) notifier.Notifier {
	return notifier.NewClient(v.GetString("notifier.base_url"), logger)
}
