package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/gateway/chapa"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/repository"
	"wallet-service/src/pkg/databases/mysql"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test"

func newChapaUseCase(db mysql.DBInterface, gatewayURL string) *ChapaUseCase {
	client := chapa.NewClient(chapa.Config{
		BaseURL:       gatewayURL,
		SecretKey:     "CHASECK_TEST",
		ReturnURL:     "https://app.example.com/payment/result",
		WebhookSecret: testWebhookSecret,
	}, log.Log{})

	return NewChapaUseCase(
		log.Log{},
		validator.New(),
		repository.NewChapaRepository(db),
		client,
		viper.New(),
		nil,
	)
}

func chapaColumnsList() []string {
	return []string{"id", "tx_ref", "gateway_ref", "amount", "currency", "status", "email", "first_name", "last_name", "user_id", "wallet_id", "metadata", "created_at", "updated_at"}
}

func signBody(body string) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func verifyHandler(t *testing.T, body string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/transaction/verify/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestInitialize_ReturnsCheckoutURL(t *testing.T) {
	db, mock := newTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer CHASECK_TEST", r.Header.Get("Authorization"))
		w.Write([]byte(`{"message":"Hosted Link","status":"success","data":{"checkout_url":"https://checkout.chapa.co/checkout/payment/abc"}}`))
	}))
	defer server.Close()

	uc := newChapaUseCase(db, server.URL)

	mock.ExpectExec("INSERT INTO chapa_transactions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE chapa_transactions SET metadata").
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := uc.Initialize(context.Background(), &model.InitializePaymentRequest{
		Amount:   decimal.NewFromInt(100),
		Currency: "etb",
		Email:    "abebe@example.com",
	})

	require.NoError(t, result.Error)
	response := result.Data.(*model.InitializePaymentResponse)
	assert.Equal(t, "https://checkout.chapa.co/checkout/payment/abc", response.CheckoutURL)
	assert.True(t, strings.HasPrefix(response.TxRef, "TX-"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitialize_GatewayRejectionMarksFailed(t *testing.T) {
	db, mock := newTestDB(t)

	rejection := `{"message":"Invalid currency","status":"failed"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(rejection))
	}))
	defer server.Close()

	uc := newChapaUseCase(db, server.URL)

	mock.ExpectExec("INSERT INTO chapa_transactions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	// the raw rejection body must land in metadata for audit
	mock.ExpectExec("UPDATE chapa_transactions SET status").
		WithArgs(entity.PaymentFailed, []byte(rejection), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := uc.Initialize(context.Background(), &model.InitializePaymentRequest{
		Amount:   decimal.NewFromInt(100),
		Currency: "XXX",
	})

	require.Error(t, result.Error)
	commonErr := result.Error.(*httpError.CommonError)
	assert.Equal(t, 502, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A gateway outage says nothing about the payment outcome, so the record must
// stay PENDING and the caller gets a retryable 503.
func TestInitialize_GatewayUnavailableLeavesPending(t *testing.T) {
	db, mock := newTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	uc := newChapaUseCase(db, server.URL)

	mock.ExpectExec("INSERT INTO chapa_transactions").
		WillReturnResult(sqlmock.NewResult(1, 1))

	result := uc.Initialize(context.Background(), &model.InitializePaymentRequest{
		Amount:   decimal.NewFromInt(100),
		Currency: "ETB",
	})

	require.Error(t, result.Error)
	commonErr := result.Error.(*httpError.CommonError)
	assert.Equal(t, 503, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcile_BackfillsUnknownTxRef(t *testing.T) {
	db, mock := newTestDB(t)

	server := httptest.NewServer(verifyHandler(t,
		`{"message":"verified","status":"success","data":{"status":"success","ref_id":"ref-9","tx_ref":"TX-1","amount":"50","currency":"ETB","email":"abebe@example.com"}}`,
		http.StatusOK))
	defer server.Close()

	uc := newChapaUseCase(db, server.URL)

	mock.ExpectQuery("FROM chapa_transactions WHERE tx_ref").
		WithArgs("TX-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO chapa_transactions").
		WillReturnResult(sqlmock.NewResult(1, 1))

	payment, err := uc.Reconcile(context.Background(), "TX-1")

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentSuccess, payment.Status)
	require.NotNil(t, payment.GatewayRef)
	assert.Equal(t, "ref-9", *payment.GatewayRef)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(50)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Re-delivering a webhook for an already settled transaction must not write
// anything.
func TestReconcile_SameStatusIsNoOp(t *testing.T) {
	db, mock := newTestDB(t)

	server := httptest.NewServer(verifyHandler(t,
		`{"message":"verified","status":"success","data":{"status":"success","ref_id":"ref-9","tx_ref":"TX-1","amount":"50","currency":"ETB"}}`,
		http.StatusOK))
	defer server.Close()

	uc := newChapaUseCase(db, server.URL)

	mock.ExpectQuery("FROM chapa_transactions WHERE tx_ref").
		WithArgs("TX-1").
		WillReturnRows(sqlmock.NewRows(chapaColumnsList()).
			AddRow("pay-1", "TX-1", "ref-9", "50", "ETB", entity.PaymentSuccess, nil, nil, nil, nil, nil, nil, time.Now(), nil))

	payment, err := uc.Reconcile(context.Background(), "TX-1")

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentSuccess, payment.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcile_PendingToFailed(t *testing.T) {
	db, mock := newTestDB(t)

	server := httptest.NewServer(verifyHandler(t,
		`{"message":"verified","status":"success","data":{"status":"failed","ref_id":"ref-9","tx_ref":"TX-1","amount":"50","currency":"ETB"}}`,
		http.StatusOK))
	defer server.Close()

	uc := newChapaUseCase(db, server.URL)

	mock.ExpectQuery("FROM chapa_transactions WHERE tx_ref").
		WithArgs("TX-1").
		WillReturnRows(sqlmock.NewRows(chapaColumnsList()).
			AddRow("pay-1", "TX-1", nil, "50", "ETB", entity.PaymentPending, nil, nil, nil, nil, nil, nil, time.Now(), nil))
	mock.ExpectExec("INSERT INTO chapa_transactions").
		WillReturnResult(sqlmock.NewResult(0, 2))

	payment, err := uc.Reconcile(context.Background(), "TX-1")

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentFailed, payment.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleWebhook_RejectsBadSignature(t *testing.T) {
	db, _ := newTestDB(t)
	uc := newChapaUseCase(db, "http://unused")

	body := []byte(`{"tx_ref":"TX-1","status":"success"}`)

	result := uc.HandleWebhook(context.Background(), body, "deadbeef")
	require.Error(t, result.Error)
	commonErr := result.Error.(*httpError.CommonError)
	assert.Equal(t, 401, commonErr.Code)

	result = uc.HandleWebhook(context.Background(), body, "")
	require.Error(t, result.Error)
	commonErr = result.Error.(*httpError.CommonError)
	assert.Equal(t, 401, commonErr.Code)
}

// A signed but unparseable payload is acknowledged so the gateway stops
// retrying something that will never parse.
func TestHandleWebhook_AcknowledgesPayloadWithoutTxRef(t *testing.T) {
	db, _ := newTestDB(t)
	uc := newChapaUseCase(db, "http://unused")

	body := `{"event":"charge.success"}`
	result := uc.HandleWebhook(context.Background(), []byte(body), signBody(body))

	require.NoError(t, result.Error)
	assert.NotNil(t, result.Data)
}

func TestHandleWebhook_ReconcileFailureIsRetryable(t *testing.T) {
	db, _ := newTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	uc := newChapaUseCase(db, server.URL)

	body := `{"tx_ref":"TX-1","status":"success"}`
	result := uc.HandleWebhook(context.Background(), []byte(body), signBody(body))

	require.Error(t, result.Error)
	commonErr := result.Error.(*httpError.CommonError)
	assert.Equal(t, 500, commonErr.Code)
}

func TestHandleWebhook_VerifiedDelivery(t *testing.T) {
	db, mock := newTestDB(t)

	server := httptest.NewServer(verifyHandler(t,
		`{"message":"verified","status":"success","data":{"status":"success","ref_id":"ref-9","tx_ref":"TX-1","amount":"50","currency":"ETB"}}`,
		http.StatusOK))
	defer server.Close()

	uc := newChapaUseCase(db, server.URL)

	mock.ExpectQuery("FROM chapa_transactions WHERE tx_ref").
		WithArgs("TX-1").
		WillReturnRows(sqlmock.NewRows(chapaColumnsList()).
			AddRow("pay-1", "TX-1", nil, "50", "ETB", entity.PaymentPending, nil, nil, nil, nil, nil, nil, time.Now(), nil))
	mock.ExpectExec("INSERT INTO chapa_transactions").
		WillReturnResult(sqlmock.NewResult(0, 2))

	body := `{"tx_ref":"TX-1","status":"success"}`
	result := uc.HandleWebhook(context.Background(), []byte(body), signBody(body))

	require.NoError(t, result.Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleCallback_RedirectCarriesReconciledStatus(t *testing.T) {
	db, mock := newTestDB(t)

	server := httptest.NewServer(verifyHandler(t,
		`{"message":"verified","status":"success","data":{"status":"success","ref_id":"ref-9","tx_ref":"TX-1","amount":"50","currency":"ETB"}}`,
		http.StatusOK))
	defer server.Close()

	uc := newChapaUseCase(db, server.URL)

	mock.ExpectQuery("FROM chapa_transactions WHERE tx_ref").
		WithArgs("TX-1").
		WillReturnRows(sqlmock.NewRows(chapaColumnsList()).
			AddRow("pay-1", "TX-1", nil, "50", "ETB", entity.PaymentPending, nil, nil, nil, nil, nil, nil, time.Now(), nil))
	mock.ExpectExec("INSERT INTO chapa_transactions").
		WillReturnResult(sqlmock.NewResult(0, 2))

	redirect := uc.HandleCallback(context.Background(), &model.PaymentCallbackRequest{
		TxRef:      "TX-1",
		StatusHint: "failed",
	})

	assert.Equal(t, "https://app.example.com/payment/result?tx_ref=TX-1&status=SUCCESS", redirect)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// When verify is down the browser still has to land somewhere; the redirect
// falls back to the best known local status.
func TestHandleCallback_VerifyDownFallsBackToLocalStatus(t *testing.T) {
	db, mock := newTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	uc := newChapaUseCase(db, server.URL)

	mock.ExpectQuery("FROM chapa_transactions WHERE tx_ref").
		WithArgs("TX-1").
		WillReturnRows(sqlmock.NewRows(chapaColumnsList()).
			AddRow("pay-1", "TX-1", nil, "50", "ETB", entity.PaymentPending, nil, nil, nil, nil, nil, nil, time.Now(), nil))

	redirect := uc.HandleCallback(context.Background(), &model.PaymentCallbackRequest{TxRef: "TX-1"})

	assert.Equal(t, "https://app.example.com/payment/result?tx_ref=TX-1&status=PENDING", redirect)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleCallback_MissingTxRef(t *testing.T) {
	db, _ := newTestDB(t)
	uc := newChapaUseCase(db, "http://unused")

	redirect := uc.HandleCallback(context.Background(), &model.PaymentCallbackRequest{})

	assert.Equal(t, "https://app.example.com/payment/result?status=PENDING", redirect)
}

func TestExtractTxRef(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"flat tx_ref", `{"tx_ref":"TX-1"}`, "TX-1"},
		{"camel alias", `{"txRef":"TX-2"}`, "TX-2"},
		{"reference field", `{"reference":"TX-3"}`, "TX-3"},
		{"nested transaction", `{"transaction":{"tx_ref":"TX-4"}}`, "TX-4"},
		{"flat wins over nested", `{"tx_ref":"TX-1","transaction":{"tx_ref":"TX-4"}}`, "TX-1"},
		{"empty object", `{}`, ""},
		{"not json", `tx_ref=TX-1`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTxRef([]byte(tt.body)))
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, entity.PaymentSuccess, normalizeStatus("success"))
	assert.Equal(t, entity.PaymentSuccess, normalizeStatus("SUCCESSFUL"))
	assert.Equal(t, entity.PaymentFailed, normalizeStatus(" failed "))
	assert.Equal(t, entity.PaymentPending, normalizeStatus(""))
}
