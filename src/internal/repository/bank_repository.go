package repository

import (
	"context"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"
)

type BankRepository struct {
	DB mysql.DBInterface
}

func NewBankRepository(db mysql.DBInterface) *BankRepository {
	return &BankRepository{
		DB: db,
	}
}

func (r *BankRepository) FindByID(ctx context.Context, id string) (*entity.Bank, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var bank entity.Bank
	query := `SELECT id, name, account_name, account_number, status FROM banks WHERE id = ?`
	if err := db.GetContext(ctx, &bank, query, id); err != nil {
		return nil, err
	}
	return &bank, nil
}
