package repository

import (
	"context"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"
)

type ChapaRepository struct {
	DB mysql.DBInterface
}

func NewChapaRepository(db mysql.DBInterface) *ChapaRepository {
	return &ChapaRepository{
		DB: db,
	}
}

const chapaColumns = `id, tx_ref, gateway_ref, amount, currency, status, email, first_name, last_name, user_id, wallet_id, metadata, created_at, updated_at`

func (r *ChapaRepository) Create(ctx context.Context, payment *entity.ChapaTransaction) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO chapa_transactions (id, tx_ref, gateway_ref, amount, currency, status, email, first_name, last_name, user_id, wallet_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = db.ExecContext(ctx, query,
		payment.ID, payment.TxRef, payment.GatewayRef, payment.Amount, payment.Currency,
		payment.Status, payment.Email, payment.FirstName, payment.LastName,
		payment.UserID, payment.WalletID, payment.Metadata, payment.CreatedAt)
	return err
}

func (r *ChapaRepository) FindByTxRef(ctx context.Context, txRef string) (*entity.ChapaTransaction, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var payment entity.ChapaTransaction
	query := `SELECT ` + chapaColumns + ` FROM chapa_transactions WHERE tx_ref = ?`
	if err := db.GetContext(ctx, &payment, query, txRef); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Upsert serializes concurrent reconcile writers on the tx_ref unique key.
// Webhook and callback racing for the same tx_ref both land here; the second
// writer updates instead of duplicating, so the last verified status wins and
// no mixed state is ever readable.
func (r *ChapaRepository) Upsert(ctx context.Context, payment *entity.ChapaTransaction) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO chapa_transactions (id, tx_ref, gateway_ref, amount, currency, status, email, first_name, last_name, user_id, wallet_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			gateway_ref = VALUES(gateway_ref),
			status = VALUES(status),
			metadata = VALUES(metadata),
			updated_at = ?`
	_, err = db.ExecContext(ctx, query,
		payment.ID, payment.TxRef, payment.GatewayRef, payment.Amount, payment.Currency,
		payment.Status, payment.Email, payment.FirstName, payment.LastName,
		payment.UserID, payment.WalletID, payment.Metadata, payment.CreatedAt,
		time.Now().UTC())
	return err
}

func (r *ChapaRepository) MarkFailed(ctx context.Context, txRef string, metadata []byte) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `UPDATE chapa_transactions SET status = ?, metadata = ?, updated_at = ? WHERE tx_ref = ?`
	_, err = db.ExecContext(ctx, query, entity.PaymentFailed, metadata, time.Now().UTC(), txRef)
	return err
}

func (r *ChapaRepository) UpdateMetadata(ctx context.Context, txRef string, metadata []byte) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `UPDATE chapa_transactions SET metadata = ?, updated_at = ? WHERE tx_ref = ?`
	_, err = db.ExecContext(ctx, query, metadata, time.Now().UTC(), txRef)
	return err
}

func (r *ChapaRepository) List(ctx context.Context, status string, limit, offset int) ([]entity.ChapaTransaction, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + chapaColumns + ` FROM chapa_transactions WHERE 1=1`
	args := []interface{}{}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var payments []entity.ChapaTransaction
	if err := db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, err
	}
	return payments, nil
}
