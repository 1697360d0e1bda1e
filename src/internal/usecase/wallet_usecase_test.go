package usecase

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"wallet-service/src/internal/model"
	"wallet-service/src/internal/repository"
	"wallet-service/src/pkg/databases/mysql"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (mysql.DBInterface, sqlmock.Sqlmock) {
	t.Helper()

	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })

	db := sqlx.NewDb(mockDb, "mysql")
	return mysql.NewFromDB(db), mock
}

func walletColumns() []string {
	return []string{"id", "user_id", "balance", "currency", "created_at", "updated_at"}
}

func newWalletUseCase(db mysql.DBInterface, cfg *viper.Viper) *WalletUseCase {
	return NewWalletUseCase(
		log.Log{},
		validator.New(),
		repository.NewWalletRepository(db),
		repository.NewTransactor(db),
		cfg,
		nil,
	)
}

func TestGetWallet_CreatesOnFirstAccess(t *testing.T) {
	db, mock := newTestDB(t)
	uc := newWalletUseCase(db, viper.New())

	mock.ExpectQuery("SELECT id, user_id, balance, currency, created_at, updated_at FROM wallets WHERE user_id").
		WithArgs("user-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO wallets").
		WillReturnResult(sqlmock.NewResult(1, 1))

	result := uc.GetWallet(context.Background(), &model.GetWalletRequest{UserID: "user-1"})

	require.NoError(t, result.Error)
	response := result.Data.(*model.WalletResponse)
	assert.Equal(t, "user-1", response.UserID)
	assert.True(t, response.Balance.IsZero())
	assert.Equal(t, "ETB", response.Currency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWallet_CreateRaceLoadsExisting(t *testing.T) {
	db, mock := newTestDB(t)
	uc := newWalletUseCase(db, viper.New())

	mock.ExpectQuery("FROM wallets WHERE user_id").
		WithArgs("user-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO wallets").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectQuery("FROM wallets WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(walletColumns()).
			AddRow("wallet-1", "user-1", "25.50", "ETB", time.Now(), nil))

	result := uc.GetWallet(context.Background(), &model.GetWalletRequest{UserID: "user-1"})

	require.NoError(t, result.Error)
	response := result.Data.(*model.WalletResponse)
	assert.Equal(t, "wallet-1", response.ID)
	assert.True(t, response.Balance.Equal(decimal.RequireFromString("25.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustBalance_Deposit(t *testing.T) {
	db, mock := newTestDB(t)
	uc := newWalletUseCase(db, viper.New())

	mock.ExpectQuery("FROM wallets WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(walletColumns()).
			AddRow("wallet-1", "user-1", "100", "ETB", time.Now(), nil))
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("wallet-1").
		WillReturnRows(sqlmock.NewRows(walletColumns()).
			AddRow("wallet-1", "user-1", "100", "ETB", time.Now(), nil))
	mock.ExpectExec("INSERT INTO wallet_transactions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE wallets SET balance").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result := uc.AdjustBalance(context.Background(), &model.AdjustBalanceRequest{
		UserID:  "user-1",
		Amount:  decimal.NewFromInt(50),
		Type:    "DEPOSIT",
		AdminID: "admin-1",
	})

	require.NoError(t, result.Error)
	response := result.Data.(*model.WalletResponse)
	assert.True(t, response.Balance.Equal(decimal.NewFromInt(150)), "expected 150, got %s", response.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustBalance_WithdrawalInsufficient(t *testing.T) {
	db, mock := newTestDB(t)
	uc := newWalletUseCase(db, viper.New())

	mock.ExpectQuery("FROM wallets WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(walletColumns()).
			AddRow("wallet-1", "user-1", "40", "ETB", time.Now(), nil))
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("wallet-1").
		WillReturnRows(sqlmock.NewRows(walletColumns()).
			AddRow("wallet-1", "user-1", "40", "ETB", time.Now(), nil))
	mock.ExpectRollback()

	result := uc.AdjustBalance(context.Background(), &model.AdjustBalanceRequest{
		UserID:  "user-1",
		Amount:  decimal.NewFromInt(100),
		Type:    "WITHDRAWAL",
		AdminID: "admin-1",
	})

	require.Error(t, result.Error)
	commonErr := result.Error.(*httpError.CommonError)
	assert.Equal(t, 400, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustBalance_NegativeAllowedByPolicy(t *testing.T) {
	db, mock := newTestDB(t)
	cfg := viper.New()
	cfg.Set("wallet.allow_negative_adjustment", true)
	uc := newWalletUseCase(db, cfg)

	mock.ExpectQuery("FROM wallets WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(walletColumns()).
			AddRow("wallet-1", "user-1", "40", "ETB", time.Now(), nil))
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("wallet-1").
		WillReturnRows(sqlmock.NewRows(walletColumns()).
			AddRow("wallet-1", "user-1", "40", "ETB", time.Now(), nil))
	mock.ExpectExec("INSERT INTO wallet_transactions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE wallets SET balance").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result := uc.AdjustBalance(context.Background(), &model.AdjustBalanceRequest{
		UserID:  "user-1",
		Amount:  decimal.NewFromInt(100),
		Type:    "WITHDRAWAL",
		AdminID: "admin-1",
	})

	require.NoError(t, result.Error)
	response := result.Data.(*model.WalletResponse)
	assert.True(t, response.Balance.Equal(decimal.NewFromInt(-60)), "expected -60, got %s", response.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustBalance_WalletNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	uc := newWalletUseCase(db, viper.New())

	mock.ExpectQuery("FROM wallets WHERE user_id").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	result := uc.AdjustBalance(context.Background(), &model.AdjustBalanceRequest{
		UserID:  "ghost",
		Amount:  decimal.NewFromInt(10),
		Type:    "DEPOSIT",
		AdminID: "admin-1",
	})

	require.Error(t, result.Error)
	commonErr := result.Error.(*httpError.CommonError)
	assert.Equal(t, 404, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustBalance_RejectsNonPositiveAmount(t *testing.T) {
	db, _ := newTestDB(t)
	uc := newWalletUseCase(db, viper.New())

	result := uc.AdjustBalance(context.Background(), &model.AdjustBalanceRequest{
		UserID:  "user-1",
		Amount:  decimal.NewFromInt(-5),
		Type:    "DEPOSIT",
		AdminID: "admin-1",
	})

	require.Error(t, result.Error)
	commonErr := result.Error.(*httpError.CommonError)
	assert.Equal(t, 400, commonErr.Code)
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, 20, 0},
		{"second page", 2, 10, 10, 10},
		{"limit capped", 1, 500, 20, 0},
		{"negative page", -3, 5, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := pagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
