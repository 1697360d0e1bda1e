package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/gateway/chapa"
	"wallet-service/src/internal/gateway/messaging"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/model/converter"
	"wallet-service/src/internal/repository"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type ChapaUseCase struct {
	Log             log.Log
	Validate        *validator.Validate
	ChapaRepository *repository.ChapaRepository
	Gateway         *chapa.Client
	Config          *viper.Viper
	PaymentProducer *messaging.PaymentProducer
}

func NewChapaUseCase(
	logger log.Log,
	validate *validator.Validate,
	chapaRepository *repository.ChapaRepository,
	gateway *chapa.Client,
	cfg *viper.Viper,
	paymentProducer *messaging.PaymentProducer,
) *ChapaUseCase {
	return &ChapaUseCase{
		Log:             logger,
		Validate:        validate,
		ChapaRepository: chapaRepository,
		Gateway:         gateway,
		Config:          cfg,
		PaymentProducer: paymentProducer,
	}
}

// Initialize persists a PENDING record before touching the remote gateway so
// a crash mid-call still leaves an auditable row, then asks Chapa for a
// checkout URL.
func (c *ChapaUseCase) Initialize(ctx context.Context, request *model.InitializePaymentRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("Initialize-validation", err.Error(), "request", utils.ConvertString(request))
		return result
	}

	if !request.Amount.IsPositive() {
		errObj := httpError.NewBadRequest()
		errObj.Message = "amount must be positive"
		result.Error = errObj
		return result
	}

	txRef := request.TxRef
	if txRef == "" {
		txRef = generateTxRef()
	}

	payment := &entity.ChapaTransaction{
		ID:        uuid.NewString(),
		TxRef:     txRef,
		Amount:    request.Amount,
		Currency:  strings.ToUpper(request.Currency),
		Status:    entity.PaymentPending,
		CreatedAt: time.Now().UTC(),
	}
	if request.Email != "" {
		payment.Email = &request.Email
	}
	if request.FirstName != "" {
		payment.FirstName = &request.FirstName
	}
	if request.LastName != "" {
		payment.LastName = &request.LastName
	}
	if request.UserID != "" {
		payment.UserID = &request.UserID
	}

	if err := c.ChapaRepository.Create(ctx, payment); err != nil {
		c.Log.Error("Initialize-create", err.Error(), "txRef", txRef)
		result.Error = httpError.NewInternalServerError()
		return result
	}

	response, err := c.Gateway.Initialize(ctx, &chapa.InitializeRequest{
		Amount:      request.Amount.String(),
		Currency:    payment.Currency,
		Email:       request.Email,
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		TxRef:       txRef,
		CallbackURL: c.Gateway.CallbackURL(),
		ReturnURL:   c.Gateway.ReturnURL(),
	})
	if err != nil {
		if errors.Is(err, chapa.ErrUnavailable) {
			// timeout says nothing about the payment; the record stays
			// PENDING so a later verify can settle it
			c.Log.Error("Initialize-gateway", err.Error(), "txRef", txRef)
			result.Error = httpError.NewServiceUnavailable()
			return result
		}
		c.failInit(ctx, txRef, response)
		errObj := httpError.NewBadGateway()
		errObj.Message = "payment gateway rejected initialization"
		result.Error = errObj
		return result
	}

	if response.Data.CheckoutURL == "" {
		c.failInit(ctx, txRef, response)
		errObj := httpError.NewBadGateway()
		errObj.Message = "payment gateway did not return a checkout URL"
		result.Error = errObj
		return result
	}

	if err := c.ChapaRepository.UpdateMetadata(ctx, txRef, response.Raw); err != nil {
		c.Log.Warn("Initialize-metadata", err.Error(), "txRef", txRef)
	}

	c.Log.Info("Initialize", "checkout initialized", "txRef", txRef)
	result.Data = &model.InitializePaymentResponse{
		CheckoutURL: response.Data.CheckoutURL,
		TxRef:       txRef,
	}
	return result
}

func (c *ChapaUseCase) failInit(ctx context.Context, txRef string, response *chapa.InitializeResponse) {
	var raw []byte
	if response != nil {
		raw = response.Raw
	}
	if err := c.ChapaRepository.MarkFailed(ctx, txRef, raw); err != nil {
		c.Log.Error("Initialize-markFailed", err.Error(), "txRef", txRef)
	}
}

// Reconcile is the single authoritative state resolution: it asks the verify
// endpoint and upserts the local record by tx_ref. Inbound webhook/callback
// claims are never trusted. A record is backfilled for an unknown txRef, but
// only from the verify response, so a forged reference must be verifiable at
// the gateway to materialize anything locally.
func (c *ChapaUseCase) Reconcile(ctx context.Context, txRef string) (*entity.ChapaTransaction, error) {
	verify, err := c.Gateway.Verify(ctx, txRef)
	if err != nil {
		return nil, err
	}

	status := normalizeStatus(verify.Data.Status)

	payment, err := c.ChapaRepository.FindByTxRef(ctx, txRef)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if payment == nil {
		// webhook landed on a node that never saw initialize, or the init
		// insert was lost; rebuild from the verify response
		c.Log.Warn("Reconcile", "backfilling unknown txRef from verify response", "txRef", txRef)
		payment = &entity.ChapaTransaction{
			ID:        uuid.NewString(),
			TxRef:     txRef,
			Amount:    verify.Data.Amount,
			Currency:  strings.ToUpper(verify.Data.Currency),
			CreatedAt: time.Now().UTC(),
		}
		if verify.Data.Email != "" {
			email := verify.Data.Email
			payment.Email = &email
		}
	} else if payment.Status == status && sameRef(payment.GatewayRef, verify.Data.RefID) {
		// applying the same final status twice is a no-op
		return payment, nil
	}

	payment.Status = status
	if verify.Data.RefID != "" {
		refID := verify.Data.RefID
		payment.GatewayRef = &refID
	}
	payment.Metadata = verify.Raw

	if err := c.ChapaRepository.Upsert(ctx, payment); err != nil {
		return nil, err
	}

	if status == entity.PaymentSuccess || status == entity.PaymentFailed {
		c.publishSettlement(payment)
	}

	c.Log.Info("Reconcile", fmt.Sprintf("transaction reconciled to %s", status), "txRef", txRef)
	return payment, nil
}

// HandleCallback is the browser-redirect leg. The status hint in the query is
// untrusted; the redirect carries the reconciled status, or the best known
// local one when verify is unreachable (the end user cannot retry a webhook).
func (c *ChapaUseCase) HandleCallback(ctx context.Context, request *model.PaymentCallbackRequest) string {
	returnURL := c.Gateway.ReturnURL()

	if request.TxRef == "" {
		c.Log.Warn("HandleCallback", "callback without trx_ref", "callback", utils.ConvertString(request))
		return fmt.Sprintf("%s?status=%s", returnURL, entity.PaymentPending)
	}

	status := entity.PaymentPending
	payment, err := c.Reconcile(ctx, request.TxRef)
	if err != nil {
		c.Log.Error("HandleCallback-reconcile", err.Error(), "txRef", request.TxRef)
		if local, lerr := c.ChapaRepository.FindByTxRef(ctx, request.TxRef); lerr == nil {
			status = local.Status
		}
	} else {
		status = payment.Status
	}

	return fmt.Sprintf("%s?tx_ref=%s&status=%s", returnURL, url.QueryEscape(request.TxRef), url.QueryEscape(status))
}

// HandleWebhook is the server-to-server leg. The HMAC is computed over the
// exact raw body; parsing happens only after the signature checks out.
func (c *ChapaUseCase) HandleWebhook(ctx context.Context, body []byte, signature string) utils.Result {
	var result utils.Result

	if signature == "" || !c.validSignature(body, signature) {
		// never reveal whether the txRef exists
		errObj := httpError.NewUnauthorized()
		errObj.Message = "invalid webhook signature"
		result.Error = errObj
		c.Log.Warn("HandleWebhook", "rejected webhook with bad signature", "webhook", "")
		return result
	}

	txRef := extractTxRef(body)
	if txRef == "" {
		// acknowledge so the gateway stops retrying an unparseable payload
		c.Log.Warn("HandleWebhook", "webhook payload without a transaction reference", "webhook", string(body))
		result.Data = fiberMap{"acknowledged": true}
		return result
	}

	if _, err := c.Reconcile(ctx, txRef); err != nil {
		// 5xx so the gateway retries
		c.Log.Error("HandleWebhook-reconcile", err.Error(), "txRef", txRef)
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = fiberMap{"acknowledged": true}
	return result
}

func (c *ChapaUseCase) Get(ctx context.Context, request *model.GetPaymentRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	payment, err := c.ChapaRepository.FindByTxRef(ctx, request.TxRef)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			errObj := httpError.NewNotFound()
			errObj.Message = fmt.Sprintf("payment %s not found", request.TxRef)
			result.Error = errObj
			return result
		}
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = converter.PaymentToResponse(payment)
	return result
}

func (c *ChapaUseCase) List(ctx context.Context, request *model.ListPaymentsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	limit, offset := pagination(request.Page, request.Limit)
	payments, err := c.ChapaRepository.List(ctx, request.Status, limit, offset)
	if err != nil {
		c.Log.Error("List-payments", err.Error(), "request", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = converter.PaymentsToResponse(payments)
	return result
}

func (c *ChapaUseCase) validSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.Gateway.WebhookSecret()))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *ChapaUseCase) publishSettlement(payment *entity.ChapaTransaction) {
	if c.PaymentProducer == nil {
		return
	}
	event := &model.PaymentSettlementEvent{
		EventID:    uuid.NewString(),
		TxRef:      payment.TxRef,
		Status:     payment.Status,
		Amount:     payment.Amount.String(),
		Currency:   payment.Currency,
		OccurredAt: time.Now().UTC(),
	}
	if payment.GatewayRef != nil {
		event.GatewayRef = *payment.GatewayRef
	}
	if err := c.PaymentProducer.SendSettlement(event); err != nil {
		c.Log.Error("chapa-usecase", "failed to publish settlement event", "publishSettlement", err.Error())
	}
}

type fiberMap map[string]interface{}

// webhookPayload covers the payload shapes Chapa is known to send; anything
// else is the explicit "unparseable, acknowledge and log" case.
type webhookPayload struct {
	TxRef      string `json:"tx_ref"`
	TxRefAlias string `json:"txRef"`
	Reference  string `json:"reference"`
	Transaction struct {
		TxRef string `json:"tx_ref"`
	} `json:"transaction"`
}

func extractTxRef(body []byte) string {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch {
	case payload.TxRef != "":
		return payload.TxRef
	case payload.Transaction.TxRef != "":
		return payload.Transaction.TxRef
	case payload.Reference != "":
		return payload.Reference
	case payload.TxRefAlias != "":
		return payload.TxRefAlias
	}
	return ""
}

func normalizeStatus(status string) string {
	normalized := strings.ToUpper(strings.TrimSpace(status))
	switch normalized {
	case "SUCCESSFUL":
		return entity.PaymentSuccess
	case "":
		return entity.PaymentPending
	}
	return normalized
}

func sameRef(local *string, remote string) bool {
	if local == nil {
		return remote == ""
	}
	return *local == remote
}

func generateTxRef() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("TX-%d-%s", time.Now().UnixNano(), suffix)
}
