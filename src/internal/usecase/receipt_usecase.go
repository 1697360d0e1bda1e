package usecase

import (
	"context"
	"database/sql"
	"encoding/json"
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
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

const referenceCacheTTL = 10 * time.Minute

type ReceiptUseCase struct {
	Log                 log.Log
	Validate            *validator.Validate
	ReceiptRepository   *repository.ReceiptRepository
	WalletRepository    *repository.WalletRepository
	BankRepository      *repository.BankRepository
	PlanRepository      *repository.PlanRepository
	SubscriptionUseCase *SubscriptionUseCase
	Transactor          *repository.Transactor
	Config              *viper.Viper
	Redis               redis.UniversalClient
	AsynqClient         *asynq.Client
	WalletProducer      *messaging.WalletProducer
}

func NewReceiptUseCase(
	logger log.Log,
	validate *validator.Validate,
	receiptRepository *repository.ReceiptRepository,
	walletRepository *repository.WalletRepository,
	bankRepository *repository.BankRepository,
	planRepository *repository.PlanRepository,
	subscriptionUseCase *SubscriptionUseCase,
	transactor *repository.Transactor,
	cfg *viper.Viper,
	redisClient redis.UniversalClient,
	asynqClient *asynq.Client,
	walletProducer *messaging.WalletProducer,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		Log:                 logger,
		Validate:            validate,
		ReceiptRepository:   receiptRepository,
		WalletRepository:    walletRepository,
		BankRepository:      bankRepository,
		PlanRepository:      planRepository,
		SubscriptionUseCase: subscriptionUseCase,
		Transactor:          transactor,
		Config:              cfg,
		Redis:               redisClient,
		AsynqClient:         asynqClient,
		WalletProducer:      walletProducer,
	}
}

// Submit persists a PENDING receipt. No money moves here; the referenced bank
// and plan only have to be ACTIVE.
func (c *ReceiptUseCase) Submit(ctx context.Context, request *model.SubmitReceiptRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("Submit-validation", err.Error(), "request", utils.ConvertString(request))
		return result
	}

	if !request.Amount.IsPositive() {
		errObj := httpError.NewBadRequest()
		errObj.Message = "amount must be positive"
		result.Error = errObj
		return result
	}

	bank, err := c.getBank(ctx, request.BankID)
	if err != nil || bank.Status != entity.StatusActive {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("bank %s is not an active deposit destination", request.BankID)
		result.Error = errObj
		c.Log.Error("Submit-bank", errObj.Message, "request", utils.ConvertString(request))
		return result
	}

	if request.PlanID != nil {
		plan, err := c.getPlan(ctx, *request.PlanID)
		if err != nil || plan.Status != entity.StatusActive {
			errObj := httpError.NewBadRequest()
			errObj.Message = fmt.Sprintf("plan %s is not active", *request.PlanID)
			result.Error = errObj
			c.Log.Error("Submit-plan", errObj.Message, "request", utils.ConvertString(request))
			return result
		}
	}

	receipt := &entity.PaymentReceipt{
		ID:            uuid.NewString(),
		UserID:        request.UserID,
		BankID:        request.BankID,
		PlanID:        request.PlanID,
		Amount:        request.Amount,
		ReferenceNo:   request.ReferenceNo,
		ScreenshotURL: request.ScreenshotURL,
		Status:        entity.ReceiptPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := c.ReceiptRepository.Create(ctx, receipt); err != nil {
		c.Log.Error("Submit-create", err.Error(), "request", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	c.Log.Info("Submit", "receipt submitted", "receipt", receipt.ID)
	result.Data = converter.ReceiptToResponse(receipt)
	return result
}

// Approve settles a receipt. The ledger append, the balance increment (top-up
// only), the subscription activation (plan only) and the PENDING->APPROVED
// flip are one transaction; the conditional status update doubles as the
// idempotency guard, so two concurrent approvals produce exactly one success.
func (c *ReceiptUseCase) Approve(ctx context.Context, request *model.ApproveReceiptRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	receipt, err := c.ReceiptRepository.FindByID(ctx, request.ReceiptID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			errObj := httpError.NewNotFound()
			errObj.Message = fmt.Sprintf("receipt %s not found", request.ReceiptID)
			result.Error = errObj
			return result
		}
		c.Log.Error("Approve-FindByID", err.Error(), "request", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	if receipt.Status != entity.ReceiptPending {
		errObj := httpError.NewConflict()
		errObj.Message = fmt.Sprintf("receipt %s already processed (status %s)", receipt.ID, receipt.Status)
		result.Error = errObj
		return result
	}

	// Plan validation and end-date inputs are resolved before the critical
	// transaction to keep its window short.
	var plan *entity.Plan
	if receipt.PlanID != nil {
		plan, err = c.getPlan(ctx, *receipt.PlanID)
		if err != nil {
			c.Log.Error("Approve-getPlan", err.Error(), "receipt", receipt.ID)
			result.Error = httpError.NewInternalServerError()
			return result
		}
		if receipt.Amount.LessThan(plan.Price) {
			errObj := httpError.NewBadRequest()
			errObj.Message = fmt.Sprintf("payment amount %s is below plan price %s", receipt.Amount, plan.Price)
			result.Error = errObj
			return result
		}
	}

	wallet, err := c.WalletRepository.GetOrCreate(ctx, receipt.UserID, c.Config.GetString("wallet.default_currency"))
	if err != nil {
		c.Log.Error("Approve-GetOrCreate", err.Error(), "receipt", receipt.ID)
		result.Error = httpError.NewInternalServerError()
		return result
	}

	txnType := entity.TransactionDeposit
	if plan != nil {
		txnType = entity.TransactionSubscription
	}
	txn := &entity.WalletTransaction{
		ID:        uuid.NewString(),
		WalletID:  wallet.ID,
		Type:      txnType,
		Amount:    receipt.Amount,
		CreatedAt: time.Now().UTC(),
	}

	var subscription *entity.Subscription
	err = c.Transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		rows, err := c.ReceiptRepository.ApproveTx(ctx, tx, receipt.ID, txn.ID, request.AdminID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return errAlreadyProcessed
		}

		if err := c.WalletRepository.CreateTransactionTx(ctx, tx, txn); err != nil {
			return err
		}

		if plan == nil {
			// top-up path: the only place an approved receipt touches balance
			locked, err := c.WalletRepository.FindByIDForUpdateTx(ctx, tx, wallet.ID)
			if err != nil {
				return err
			}
			if err := c.WalletRepository.UpdateBalanceTx(ctx, tx, locked.ID, locked.Balance.Add(receipt.Amount)); err != nil {
				return err
			}
			wallet.Balance = locked.Balance.Add(receipt.Amount)
			return nil
		}

		// subscription path: recorded for audit, balance untouched
		subscription, err = c.SubscriptionUseCase.ActivateTx(ctx, tx, receipt.UserID, plan, txn.CreatedAt, false)
		return err
	})
	if err != nil {
		if errors.Is(err, errAlreadyProcessed) {
			errObj := httpError.NewConflict()
			errObj.Message = fmt.Sprintf("receipt %s already processed", receipt.ID)
			result.Error = errObj
			return result
		}
		c.Log.Error("Approve-transaction", err.Error(), "receipt", receipt.ID)
		result.Error = httpError.NewInternalServerError()
		return result
	}

	receipt.Status = entity.ReceiptApproved
	receipt.TransactionID = &txn.ID
	receipt.VerifiedByID = &request.AdminID

	// post-commit, best effort: neither notification nor event publishing may
	// undo or fail the approval
	c.notifySettlement(receipt, plan, subscription)
	c.publishLedgerEvent(txn, wallet)

	response := &model.ApprovalResponse{
		Receipt:     converter.ReceiptToResponse(receipt),
		Transaction: converter.TransactionToResponse(txn),
	}
	if subscription != nil {
		response.Subscription = converter.SubscriptionToResponse(subscription)
	}
	c.Log.Info("Approve", "receipt approved", "receipt", receipt.ID)
	result.Data = response
	return result
}

// Reject applies the same terminal guard as Approve. No money moves.
func (c *ReceiptUseCase) Reject(ctx context.Context, request *model.RejectReceiptRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	receipt, err := c.ReceiptRepository.FindByID(ctx, request.ReceiptID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			errObj := httpError.NewNotFound()
			errObj.Message = fmt.Sprintf("receipt %s not found", request.ReceiptID)
			result.Error = errObj
			return result
		}
		result.Error = httpError.NewInternalServerError()
		return result
	}

	err = c.Transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		rows, err := c.ReceiptRepository.RejectTx(ctx, tx, receipt.ID, request.AdminID, request.Reason)
		if err != nil {
			return err
		}
		if rows == 0 {
			return errAlreadyProcessed
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errAlreadyProcessed) {
			errObj := httpError.NewConflict()
			errObj.Message = fmt.Sprintf("receipt %s already processed", receipt.ID)
			result.Error = errObj
			return result
		}
		c.Log.Error("Reject-transaction", err.Error(), "receipt", receipt.ID)
		result.Error = httpError.NewInternalServerError()
		return result
	}

	receipt.Status = entity.ReceiptRejected
	receipt.VerifiedByID = &request.AdminID
	receipt.Note = request.Reason

	c.Log.Info("Reject", "receipt rejected", "receipt", receipt.ID)
	result.Data = converter.ReceiptToResponse(receipt)
	return result
}

func (c *ReceiptUseCase) Get(ctx context.Context, request *model.GetReceiptRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	receipt, err := c.ReceiptRepository.FindByID(ctx, request.ReceiptID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			errObj := httpError.NewNotFound()
			errObj.Message = fmt.Sprintf("receipt %s not found", request.ReceiptID)
			result.Error = errObj
			return result
		}
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = converter.ReceiptToResponse(receipt)
	return result
}

func (c *ReceiptUseCase) List(ctx context.Context, request *model.ListReceiptsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	limit, offset := pagination(request.Page, request.Limit)
	receipts, err := c.ReceiptRepository.List(ctx, request.UserID, request.Status, limit, offset)
	if err != nil {
		c.Log.Error("List-receipts", err.Error(), "request", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = converter.ReceiptsToResponse(receipts)
	return result
}

// getBank reads through the redis cache; cache failures fall back to the DB.
func (c *ReceiptUseCase) getBank(ctx context.Context, id string) (*entity.Bank, error) {
	key := fmt.Sprintf("BANK:%s", id)
	if c.Redis != nil {
		if data, err := c.Redis.Get(ctx, key).Result(); err == nil && data != "" {
			var bank entity.Bank
			if err := json.Unmarshal([]byte(data), &bank); err == nil {
				return &bank, nil
			}
		}
	}

	bank, err := c.BankRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.Redis != nil {
		if data, err := json.Marshal(bank); err == nil {
			if err := c.Redis.Set(ctx, key, data, referenceCacheTTL).Err(); err != nil {
				c.Log.Warn("receipt-usecase", "failed to cache bank", "getBank", err.Error())
			}
		}
	}
	return bank, nil
}

func (c *ReceiptUseCase) getPlan(ctx context.Context, id string) (*entity.Plan, error) {
	key := fmt.Sprintf("PLAN:%s", id)
	if c.Redis != nil {
		if data, err := c.Redis.Get(ctx, key).Result(); err == nil && data != "" {
			var plan entity.Plan
			if err := json.Unmarshal([]byte(data), &plan); err == nil {
				return &plan, nil
			}
		}
	}

	plan, err := c.PlanRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.Redis != nil {
		if data, err := json.Marshal(plan); err == nil {
			if err := c.Redis.Set(ctx, key, data, referenceCacheTTL).Err(); err != nil {
				c.Log.Warn("receipt-usecase", "failed to cache plan", "getPlan", err.Error())
			}
		}
	}
	return plan, nil
}

func (c *ReceiptUseCase) notifySettlement(receipt *entity.PaymentReceipt, plan *entity.Plan, sub *entity.Subscription) {
	if c.AsynqClient == nil {
		return
	}

	notification := model.SettlementNotification{
		UserID:    receipt.UserID,
		ReceiptID: receipt.ID,
	}
	if plan != nil {
		notification.Title = "Subscription activated"
		notification.Message = fmt.Sprintf("Your %s subscription is active until %s.", plan.Name, sub.EndDate.Format("2006-01-02"))
		notification.Category = model.NotificationCategorySubscription
	} else {
		notification.Title = "Wallet topped up"
		notification.Message = fmt.Sprintf("Your wallet has been credited with %s.", receipt.Amount)
		notification.Category = model.NotificationCategoryTopUp
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		c.Log.Error("receipt-usecase", "failed to marshal notification", "notifySettlement", err.Error())
		return
	}
	if _, err := c.AsynqClient.Enqueue(asynq.NewTask(model.TypeNotifySettlement, payload)); err != nil {
		c.Log.Error("receipt-usecase", "failed to enqueue notification", "notifySettlement", err.Error())
	}
}

func (c *ReceiptUseCase) publishLedgerEvent(txn *entity.WalletTransaction, wallet *entity.Wallet) {
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
		c.Log.Error("receipt-usecase", "failed to publish ledger event", "publishLedgerEvent", err.Error())
	}
}
