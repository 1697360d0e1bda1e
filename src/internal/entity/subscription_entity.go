package entity

import "time"

const SubscriptionActive = "ACTIVE"

type Subscription struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	PlanID    string    `json:"plan_id" db:"plan_id"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	Status    string    `json:"status" db:"status"`
	AutoRenew bool      `json:"auto_renew" db:"auto_renew"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
