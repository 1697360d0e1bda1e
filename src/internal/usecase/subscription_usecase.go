package usecase

import (
	"context"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/repository"
	"wallet-service/src/pkg/log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SubscriptionUseCase struct {
	Log                    log.Log
	SubscriptionRepository *repository.SubscriptionRepository
}

func NewSubscriptionUseCase(
	logger log.Log,
	subscriptionRepository *repository.SubscriptionRepository,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		Log:                    logger,
		SubscriptionRepository: subscriptionRepository,
	}
}

// ComputeEndDate derives the entitlement period from the plan's renewal
// interval. Unknown intervals default to one month.
func (c *SubscriptionUseCase) ComputeEndDate(plan *entity.Plan, start time.Time) time.Time {
	switch plan.Interval {
	case entity.IntervalWeekly:
		return start.AddDate(0, 0, 7)
	case entity.IntervalYearly:
		return start.AddDate(1, 0, 0)
	case entity.IntervalMonthly:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

// ActivateTx creates the subscription row inside the caller's transaction.
// The plan is passed as an already-resolved value so the activator never
// re-fetches it mid-transaction.
func (c *SubscriptionUseCase) ActivateTx(ctx context.Context, tx *sqlx.Tx, userID string, plan *entity.Plan, start time.Time, autoRenew bool) (*entity.Subscription, error) {
	sub := &entity.Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		PlanID:    plan.ID,
		StartDate: start,
		EndDate:   c.ComputeEndDate(plan, start),
		Status:    entity.SubscriptionActive,
		AutoRenew: autoRenew,
		CreatedAt: start,
	}

	if err := c.SubscriptionRepository.CreateTx(ctx, tx, sub); err != nil {
		c.Log.Error("subscription-usecase", err.Error(), "ActivateTx", userID)
		return nil, err
	}
	return sub, nil
}
