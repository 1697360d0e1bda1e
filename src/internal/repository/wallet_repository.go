package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const mysqlErrDuplicateEntry = 1062

type WalletRepository struct {
	DB mysql.DBInterface
}

func NewWalletRepository(db mysql.DBInterface) *WalletRepository {
	return &WalletRepository{
		DB: db,
	}
}

func (r *WalletRepository) FindByUserID(ctx context.Context, userID string) (*entity.Wallet, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var wallet entity.Wallet
	query := `SELECT id, user_id, balance, currency, created_at, updated_at FROM wallets WHERE user_id = ?`
	if err := db.GetContext(ctx, &wallet, query, userID); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Create inserts a zero-balance wallet. A concurrent first-time creation for
// the same user hits the user_id unique key; the race resolves to loading the
// existing row.
func (r *WalletRepository) Create(ctx context.Context, userID, currency string) (*entity.Wallet, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	wallet := entity.Wallet{
		ID:        uuid.NewString(),
		UserID:    userID,
		Balance:   decimal.Zero,
		Currency:  currency,
		CreatedAt: time.Now().UTC(),
	}

	query := `INSERT INTO wallets (id, user_id, balance, currency, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err = db.ExecContext(ctx, query, wallet.ID, wallet.UserID, wallet.Balance, wallet.Currency, wallet.CreatedAt)
	if err != nil {
		var mysqlErr *mysqldriver.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return r.FindByUserID(ctx, userID)
		}
		return nil, err
	}
	return &wallet, nil
}

// GetOrCreate is the lazy-creation entry used by money paths.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID, currency string) (*entity.Wallet, error) {
	wallet, err := r.FindByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return r.Create(ctx, userID, currency)
}

// FindByIDForUpdateTx locks the wallet row inside the caller's transaction so
// the read balance cannot be stale when the update lands.
func (r *WalletRepository) FindByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, walletID string) (*entity.Wallet, error) {
	var wallet entity.Wallet
	query := `SELECT id, user_id, balance, currency, created_at, updated_at FROM wallets WHERE id = ? FOR UPDATE`
	if err := tx.GetContext(ctx, &wallet, query, walletID); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *WalletRepository) UpdateBalanceTx(ctx context.Context, tx *sqlx.Tx, walletID string, balance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = ?, updated_at = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, query, balance, time.Now().UTC(), walletID)
	return err
}

func (r *WalletRepository) CreateTransactionTx(ctx context.Context, tx *sqlx.Tx, txn *entity.WalletTransaction) error {
	query := `INSERT INTO wallet_transactions (id, wallet_id, type, amount, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, query, txn.ID, txn.WalletID, txn.Type, txn.Amount, txn.CreatedAt)
	return err
}

func (r *WalletRepository) ListTransactions(ctx context.Context, walletID string, limit, offset int) ([]entity.WalletTransaction, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var txns []entity.WalletTransaction
	query := `
		SELECT id, wallet_id, type, amount, created_at
		FROM wallet_transactions
		WHERE wallet_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`
	if err := db.SelectContext(ctx, &txns, query, walletID, limit, offset); err != nil {
		return nil, err
	}
	return txns, nil
}
