package repository

import (
	"context"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type SubscriptionRepository struct {
	DB mysql.DBInterface
}

func NewSubscriptionRepository(db mysql.DBInterface) *SubscriptionRepository {
	return &SubscriptionRepository{
		DB: db,
	}
}

// CreateTx inserts inside the receipt approval transaction so subscription
// activation and receipt flip commit or roll back together.
func (r *SubscriptionRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, sub *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, user_id, plan_id, start_date, end_date, status, auto_renew, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, query,
		sub.ID, sub.UserID, sub.PlanID, sub.StartDate, sub.EndDate,
		sub.Status, sub.AutoRenew, sub.CreatedAt)
	return err
}

func (r *SubscriptionRepository) FindByUserID(ctx context.Context, userID string) ([]entity.Subscription, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var subs []entity.Subscription
	query := `
		SELECT id, user_id, plan_id, start_date, end_date, status, auto_renew, created_at
		FROM subscriptions
		WHERE user_id = ?
		ORDER BY created_at DESC`
	if err := db.SelectContext(ctx, &subs, query, userID); err != nil {
		return nil, err
	}
	return subs, nil
}
