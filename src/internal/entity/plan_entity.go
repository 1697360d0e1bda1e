package entity

import "github.com/shopspring/decimal"

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

const (
	IntervalWeekly  = "WEEKLY"
	IntervalMonthly = "MONTHLY"
	IntervalYearly  = "YEARLY"
)

// Plan and Bank are consumed, not owned, by this service.
type Plan struct {
	ID       string          `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Interval string          `json:"interval" db:"renewal_interval"`
	Status   string          `json:"status" db:"status"`
}

type Bank struct {
	ID            string `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	AccountName   string `json:"account_name" db:"account_name"`
	AccountNumber string `json:"account_number" db:"account_number"`
	Status        string `json:"status" db:"status"`
}
