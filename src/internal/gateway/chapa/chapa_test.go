package chapa

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-service/src/pkg/log"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer CHASECK_TEST", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"message":"Hosted Link","status":"success","data":{"checkout_url":"https://checkout.chapa.co/checkout/payment/abc"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, SecretKey: "CHASECK_TEST"}, log.Log{})

	response, err := client.Initialize(context.Background(), &InitializeRequest{
		Amount:   "100",
		Currency: "ETB",
		TxRef:    "TX-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.chapa.co/checkout/payment/abc", response.Data.CheckoutURL)
	assert.NotEmpty(t, response.Raw)
}

func TestVerify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/TX-1", r.URL.Path)
		w.Write([]byte(`{"message":"verified","status":"success","data":{"status":"success","ref_id":"ref-9","tx_ref":"TX-1","amount":"50.25","currency":"ETB","email":"abebe@example.com"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, SecretKey: "CHASECK_TEST"}, log.Log{})

	response, err := client.Verify(context.Background(), "TX-1")

	require.NoError(t, err)
	assert.Equal(t, "success", response.Data.Status)
	assert.Equal(t, "ref-9", response.Data.RefID)
	assert.True(t, response.Data.Amount.Equal(decimal.RequireFromString("50.25")))
}

func TestVerify_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, log.Log{})

	_, err := client.Verify(context.Background(), "TX-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

// A 4xx is a definitive rejection, not an outage; it must not be retried as if
// the gateway were down.
func TestVerify_ClientErrorIsNotUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"invalid transaction reference","status":"failed"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, log.Log{})

	response, err := client.Verify(context.Background(), "TX-404")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
	require.NotNil(t, response)
	assert.Contains(t, string(response.Raw), "invalid transaction reference")
}

func TestVerify_TimeoutIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond}, log.Log{})

	_, err := client.Verify(context.Background(), "TX-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}
