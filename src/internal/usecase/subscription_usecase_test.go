package usecase

import (
	"testing"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/log"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeEndDate(t *testing.T) {
	uc := NewSubscriptionUseCase(log.Log{}, nil)
	start := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		interval string
		want     time.Time
	}{
		{"weekly", entity.IntervalWeekly, start.AddDate(0, 0, 7)},
		{"monthly", entity.IntervalMonthly, start.AddDate(0, 1, 0)},
		{"yearly", entity.IntervalYearly, start.AddDate(1, 0, 0)},
		{"unknown defaults to monthly", "QUARTERLY", start.AddDate(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &entity.Plan{ID: "plan-1", Interval: tt.interval}
			assert.Equal(t, tt.want, uc.ComputeEndDate(plan, start))
		})
	}
}

func TestSignedAmount(t *testing.T) {
	hundred := decimal.NewFromInt(100)

	deposit := &entity.WalletTransaction{Type: entity.TransactionDeposit, Amount: hundred}
	withdrawal := &entity.WalletTransaction{Type: entity.TransactionWithdrawal, Amount: hundred}
	subscription := &entity.WalletTransaction{Type: entity.TransactionSubscription, Amount: hundred}
	reward := &entity.WalletTransaction{Type: entity.TransactionReferralReward, Amount: hundred}

	assert.True(t, deposit.SignedAmount().Equal(hundred))
	assert.True(t, withdrawal.SignedAmount().Equal(hundred.Neg()))
	assert.True(t, subscription.SignedAmount().IsZero())
	assert.True(t, reward.SignedAmount().Equal(hundred))
}
