package repository

import (
	"context"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"
)

type PlanRepository struct {
	DB mysql.DBInterface
}

func NewPlanRepository(db mysql.DBInterface) *PlanRepository {
	return &PlanRepository{
		DB: db,
	}
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*entity.Plan, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var plan entity.Plan
	query := `SELECT id, name, price, renewal_interval, status FROM plans WHERE id = ?`
	if err := db.GetContext(ctx, &plan, query, id); err != nil {
		return nil, err
	}
	return &plan, nil
}
