package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ProductImage tells the downstream service where to pull a product's images from.
type ProductImage struct {
	ProductID string `json:"product_id"`
	ImageLink string `json:"image_link"`
}

// StatusError is returned when the endpoint answers with anything but 200 or 204.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("notify endpoint returned status %d", e.StatusCode)
}

// Client posts product image lists.
type Client struct {
	url    string
	token  string
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		url:    cfg.URL,
		token:  cfg.Token,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
	}
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

// SendProductImages posts the list as a JSON array.
func (c *Client) SendProductImages(ctx context.Context, images []ProductImage) error {
	if !c.Enabled() {
		return nil
	}
	if images == nil {
		images = []ProductImage{}
	}

	body, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("failed to encode image list: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Failed to send product images", zap.Error(err))
		return fmt.Errorf("failed to send product images: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		c.logger.Error("Product image notification rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(respBody)))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	c.logger.Info("Product images sent", zap.Int("count", len(images)))
	return nil
}
