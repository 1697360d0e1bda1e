package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"wallet-service/src/pkg/log"

	"github.com/shopspring/decimal"
)

// ErrUnavailable marks timeouts and transport failures. It is distinct from a
// definitive gateway rejection: a timed-out verify call says nothing about
// whether the payment failed.
var ErrUnavailable = errors.New("chapa gateway unavailable")

type Config struct {
	BaseURL       string
	SecretKey     string
	CallbackURL   string
	ReturnURL     string
	Timeout       time.Duration
	WebhookSecret string
}

type Client struct {
	config     Config
	httpClient *http.Client
	log        log.Log
}

func NewClient(cfg Config, logger log.Log) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

func (c *Client) CallbackURL() string {
	return c.config.CallbackURL
}

func (c *Client) ReturnURL() string {
	return c.config.ReturnURL
}

func (c *Client) WebhookSecret() string {
	return c.config.WebhookSecret
}

type InitializeRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	TxRef       string `json:"tx_ref"`
	CallbackURL string `json:"callback_url,omitempty"`
	ReturnURL   string `json:"return_url,omitempty"`
}

type InitializeResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
	Raw []byte `json:"-"`
}

type VerifyResponse struct {
	Message string     `json:"message"`
	Status  string     `json:"status"`
	Data    VerifyData `json:"data"`
	Raw     []byte     `json:"-"`
}

type VerifyData struct {
	Status    string          `json:"status"`
	RefID     string          `json:"ref_id"`
	TxRef     string          `json:"tx_ref"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
}

// Initialize calls POST /transaction/initialize and returns the raw body
// alongside the parsed response so callers can persist it for audit even when
// the gateway answer is unusable. On a gateway rejection the response still
// carries the raw rejection body.
func (c *Client) Initialize(ctx context.Context, req *InitializeRequest) (*InitializeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	raw, err := c.do(ctx, http.MethodPost, c.config.BaseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return &InitializeResponse{Raw: raw}, err
	}

	response := &InitializeResponse{Raw: raw}
	if err := json.Unmarshal(raw, response); err != nil {
		return response, fmt.Errorf("chapa initialize: malformed response: %w", err)
	}
	return response, nil
}

// Verify calls GET /transaction/verify/{tx_ref}, the single source of truth
// for a transaction's final status.
func (c *Client) Verify(ctx context.Context, txRef string) (*VerifyResponse, error) {
	raw, err := c.do(ctx, http.MethodGet, c.config.BaseURL+"/transaction/verify/"+txRef, nil)
	if err != nil {
		return &VerifyResponse{Raw: raw}, err
	}

	response := &VerifyResponse{Raw: raw}
	if err := json.Unmarshal(raw, response); err != nil {
		return response, fmt.Errorf("chapa verify: malformed response: %w", err)
	}
	return response, nil
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.log.Error("chapa-client", err.Error(), "timeout", url)
			return nil, fmt.Errorf("%s %s: %w", method, url, ErrUnavailable)
		}
		return nil, fmt.Errorf("%s %s: %w", method, url, ErrUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, url, err)
	}

	if resp.StatusCode >= 500 {
		c.log.Error("chapa-client", fmt.Sprintf("gateway returned %d", resp.StatusCode), "do", string(raw))
		return raw, fmt.Errorf("%s %s: status %d: %w", method, url, resp.StatusCode, ErrUnavailable)
	}
	if resp.StatusCode >= 400 {
		return raw, fmt.Errorf("%s %s: status %d", method, url, resp.StatusCode)
	}
	return raw, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
