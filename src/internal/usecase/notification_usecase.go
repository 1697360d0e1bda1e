package usecase

import (
	"context"
	"encoding/json"

	"wallet-service/src/internal/gateway/notifier"
	"wallet-service/src/internal/model"
	"wallet-service/src/pkg/log"

	"github.com/hibiken/asynq"
)

type NotificationUseCase struct {
	Log      log.Log
	Notifier notifier.Notifier
}

func NewNotificationUseCase(logger log.Log, n notifier.Notifier) *NotificationUseCase {
	return &NotificationUseCase{
		Log:      logger,
		Notifier: n,
	}
}

// HandleSettlement is the asynq handler for post-commit settlement
// notifications. Delivery is best effort: failures are logged and the task is
// dropped, never bubbled back into the money path.
func (c *NotificationUseCase) HandleSettlement(ctx context.Context, t *asynq.Task) error {
	var payload model.SettlementNotification
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		c.Log.Error("notification-usecase", "failed to unmarshal settlement task", "HandleSettlement", err.Error())
		return nil
	}

	if err := c.Notifier.NotifyUser(ctx, payload.UserID, payload.Title, payload.Message, payload.Category); err != nil {
		c.Log.Error("notification-usecase", err.Error(), "HandleSettlement", payload.UserID)
		return nil
	}

	c.Log.Info("notification-usecase", "settlement notification delivered", "HandleSettlement", payload.UserID)
	return nil
}
