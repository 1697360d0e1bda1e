package repository

import (
	"context"
	"fmt"

	"wallet-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

// Transactor owns the begin/commit/rollback dance so usecases can express a
// whole money movement as one function.
type Transactor struct {
	DB mysql.DBInterface
}

func NewTransactor(db mysql.DBInterface) *Transactor {
	return &Transactor{DB: db}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	db, err := t.DB.GetDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
