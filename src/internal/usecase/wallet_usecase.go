package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/gateway/messaging"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/model/converter"
	"wallet-service/src/internal/repository"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

type WalletUseCase struct {
	Log              log.Log
	Validate         *validator.Validate
	WalletRepository *repository.WalletRepository
	Transactor       *repository.Transactor
	Config           *viper.Viper
	WalletProducer   *messaging.WalletProducer
}

func NewWalletUseCase(
	logger log.Log,
	validate *validator.Validate,
	walletRepository *repository.WalletRepository,
	transactor *repository.Transactor,
	cfg *viper.Viper,
	walletProducer *messaging.WalletProducer,
) *WalletUseCase {
	return &WalletUseCase{
		Log:              logger,
		Validate:         validate,
		WalletRepository: walletRepository,
		Transactor:       transactor,
		Config:           cfg,
		WalletProducer:   walletProducer,
	}
}

func (c *WalletUseCase) defaultCurrency() string {
	currency := c.Config.GetString("wallet.default_currency")
	if currency == "" {
		currency = "ETB"
	}
	return currency
}

// GetWallet returns the user's wallet, creating an empty one on first access.
func (c *WalletUseCase) GetWallet(ctx context.Context, request *model.GetWalletRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("GetWallet-validation", err.Error(), "request", utils.ConvertString(request))
		return result
	}

	wallet, err := c.WalletRepository.GetOrCreate(ctx, request.UserID, c.defaultCurrency())
	if err != nil {
		c.Log.Error("GetWallet-GetOrCreate", err.Error(), "request", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = converter.WalletToResponse(wallet)
	return result
}

// AdjustBalance is the admin-initiated balance mutation. It never creates a
// wallet: adjusting a user with no wallet is a NotFound, not a lazy create.
func (c *WalletUseCase) AdjustBalance(ctx context.Context, request *model.AdjustBalanceRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("AdjustBalance-validation", err.Error(), "request", utils.ConvertString(request))
		return result
	}

	if !request.Amount.IsPositive() {
		errObj := httpError.NewBadRequest()
		errObj.Message = "amount must be positive; direction is encoded by type"
		result.Error = errObj
		return result
	}

	wallet, err := c.WalletRepository.FindByUserID(ctx, request.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			errObj := httpError.NewNotFound()
			errObj.Message = fmt.Sprintf("wallet for user %s not found", request.UserID)
			result.Error = errObj
			return result
		}
		c.Log.Error("AdjustBalance-FindByUserID", err.Error(), "request", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	txn := &entity.WalletTransaction{
		ID:        uuid.NewString(),
		WalletID:  wallet.ID,
		Type:      request.Type,
		Amount:    request.Amount,
		CreatedAt: time.Now().UTC(),
	}

	allowNegative := c.Config.GetBool("wallet.allow_negative_adjustment")

	var updated *entity.Wallet
	err = c.Transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := c.WalletRepository.FindByIDForUpdateTx(ctx, tx, wallet.ID)
		if err != nil {
			return err
		}

		newBalance := locked.Balance.Add(txn.SignedAmount())
		if newBalance.IsNegative() && !allowNegative {
			return errInsufficientBalance
		}

		if err := c.WalletRepository.CreateTransactionTx(ctx, tx, txn); err != nil {
			return err
		}
		if err := c.WalletRepository.UpdateBalanceTx(ctx, tx, locked.ID, newBalance); err != nil {
			return err
		}

		locked.Balance = newBalance
		updated = locked
		return nil
	})
	if err != nil {
		if errors.Is(err, errInsufficientBalance) {
			errObj := httpError.NewBadRequest()
			errObj.Message = "adjustment would drive balance negative"
			result.Error = errObj
			return result
		}
		c.Log.Error("AdjustBalance-transaction", err.Error(), "request", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	c.publishTransaction(txn, updated)
	c.Log.Info("AdjustBalance", "balance adjusted", "wallet", utils.ConvertString(updated))
	result.Data = converter.WalletToResponse(updated)
	return result
}

func (c *WalletUseCase) ListTransactions(ctx context.Context, request *model.ListTransactionsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	wallet, err := c.WalletRepository.FindByUserID(ctx, request.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			errObj := httpError.NewNotFound()
			errObj.Message = fmt.Sprintf("wallet for user %s not found", request.UserID)
			result.Error = errObj
			return result
		}
		result.Error = httpError.NewInternalServerError()
		return result
	}

	limit, offset := pagination(request.Page, request.Limit)
	txns, err := c.WalletRepository.ListTransactions(ctx, wallet.ID, limit, offset)
	if err != nil {
		c.Log.Error("ListTransactions", err.Error(), "request", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = converter.TransactionsToResponse(txns)
	return result
}

func (c *WalletUseCase) publishTransaction(txn *entity.WalletTransaction, wallet *entity.Wallet) {
	if c.WalletProducer == nil {
		return
	}
	event := &model.WalletTransactionEvent{
		EventID:       uuid.NewString(),
		TransactionID: txn.ID,
		WalletID:      txn.WalletID,
		UserID:        wallet.UserID,
		Type:          txn.Type,
		Amount:        txn.Amount.String(),
		Currency:      wallet.Currency,
		CreatedAt:     txn.CreatedAt,
	}
	if err := c.WalletProducer.SendTransaction(event); err != nil {
		c.Log.Error("wallet-usecase", "failed to publish transaction event", "publishTransaction", err.Error())
	}
}

func pagination(page, limit int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}
