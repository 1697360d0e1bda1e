package repository

import (
	"context"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type ReceiptRepository struct {
	DB mysql.DBInterface
}

func NewReceiptRepository(db mysql.DBInterface) *ReceiptRepository {
	return &ReceiptRepository{
		DB: db,
	}
}

const receiptColumns = `id, user_id, bank_id, plan_id, amount, reference_no, screenshot_url, status, transaction_id, verified_by_id, note, created_at, updated_at`

func (r *ReceiptRepository) Create(ctx context.Context, receipt *entity.PaymentReceipt) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO payment_receipts (id, user_id, bank_id, plan_id, amount, reference_no, screenshot_url, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = db.ExecContext(ctx, query,
		receipt.ID, receipt.UserID, receipt.BankID, receipt.PlanID,
		receipt.Amount, receipt.ReferenceNo, receipt.ScreenshotURL,
		receipt.Status, receipt.CreatedAt)
	return err
}

func (r *ReceiptRepository) FindByID(ctx context.Context, id string) (*entity.PaymentReceipt, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var receipt entity.PaymentReceipt
	query := `SELECT ` + receiptColumns + ` FROM payment_receipts WHERE id = ?`
	if err := db.GetContext(ctx, &receipt, query, id); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *ReceiptRepository) List(ctx context.Context, userID, status string, limit, offset int) ([]entity.PaymentReceipt, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + receiptColumns + ` FROM payment_receipts WHERE 1=1`
	args := []interface{}{}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var receipts []entity.PaymentReceipt
	if err := db.SelectContext(ctx, &receipts, query, args...); err != nil {
		return nil, err
	}
	return receipts, nil
}

// ApproveTx flips PENDING to APPROVED as a conditional update. Zero rows
// affected means another admin already processed the receipt; the caller must
// treat that as AlreadyProcessed, never retry the money movement.
func (r *ReceiptRepository) ApproveTx(ctx context.Context, tx *sqlx.Tx, receiptID, transactionID, adminID string) (int64, error) {
	query := `
		UPDATE payment_receipts
		SET status = ?, transaction_id = ?, verified_by_id = ?, updated_at = ?
		WHERE id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, query,
		entity.ReceiptApproved, transactionID, adminID, time.Now().UTC(),
		receiptID, entity.ReceiptPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RejectTx applies the same terminal guard as ApproveTx.
func (r *ReceiptRepository) RejectTx(ctx context.Context, tx *sqlx.Tx, receiptID, adminID string, reason *string) (int64, error) {
	query := `
		UPDATE payment_receipts
		SET status = ?, verified_by_id = ?, note = ?, updated_at = ?
		WHERE id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, query,
		entity.ReceiptRejected, adminID, reason, time.Now().UTC(),
		receiptID, entity.ReceiptPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
