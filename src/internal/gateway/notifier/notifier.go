package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wallet-service/src/pkg/log"
)

// Notifier delivers user notifications through the external notification
// service. Callers treat every delivery as best effort.
type Notifier interface {
	NotifyUser(ctx context.Context, userID, title, message, category string) error
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        log.Log
}

func NewClient(baseURL string, logger log.Log) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		log:        logger,
	}
}

type notifyRequest struct {
	UserID   string `json:"user_id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

func (c *Client) NotifyUser(ctx context.Context, userID, title, message, category string) error {
	body, err := json.Marshal(notifyRequest{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Category: category,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notifications", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notifier returned status %d", resp.StatusCode)
	}
	return nil
}
