package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Resource names of the catalog entities mirrored by the service.
const (
	ResourceCategory     = "productfolder"
	ResourceCounterparty = "counterparty"
	ResourceProduct      = "product"
)

const defaultPageLimit = 1000

// StatusError is returned when the catalog answers with a non-success status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog request %s failed with status %d", e.URL, e.StatusCode)
}

// Fetcher is the read side of the catalog API used by the sync features.
type Fetcher interface {
	// FetchAll returns every row of an entity collection, following pagination.
	// On failure the rows collected so far are returned together with the error.
	FetchAll(ctx context.Context, resource string) ([]json.RawMessage, error)
	// FetchStock returns current stock keyed by assortment id.
	FetchStock(ctx context.Context) (map[string]float64, error)
	// ProductImagesURL returns the catalog URL listing the images of a product.
	ProductImagesURL(productID string) string
}

// Client is an HTTP implementation of Fetcher.
type Client struct {
	baseURL   string
	token     string
	pageLimit int
	http      *http.Client
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewClient creates a catalog client from configuration.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	limit := cfg.PageLimit
	if limit <= 0 {
		limit = defaultPageLimit
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	httpClient := &http.Client{}
	if cfg.TimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		token:     cfg.Token,
		pageLimit: limit,
		http:      httpClient,
		limiter:   limiter,
		logger:    logger,
	}
}

// FetchAll requests pages of PageLimit rows with increasing offset until a short page arrives.
func (c *Client) FetchAll(ctx context.Context, resource string) ([]json.RawMessage, error) {
	endpoint := c.baseURL + "/entity/" + resource
	rows := make([]json.RawMessage, 0)
	offset := 0

	for {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(c.pageLimit))
		params.Set("offset", strconv.Itoa(offset))

		body, err := c.get(ctx, endpoint, params)
		if err != nil {
			fields := []zap.Field{zap.String("resource", resource), zap.Int("offset", offset), zap.Error(err)}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				fields = append(fields, zap.String("response", statusErr.Body))
			}
			c.logger.Error("Catalog page fetch failed", fields...)
			return rows, err
		}

		page := gjson.GetBytes(body, "rows").Array()
		for _, row := range page {
			rows = append(rows, json.RawMessage(row.Raw))
		}

		c.logger.Debug("Catalog page fetched",
			zap.String("resource", resource),
			zap.Int("offset", offset),
			zap.Int("rows", len(page)))

		if len(page) < c.pageLimit {
			break
		}
		offset += c.pageLimit
	}

	c.logger.Info("Catalog collection fetched", zap.String("resource", resource), zap.Int("total", len(rows)))
	return rows, nil
}

// FetchStock loads the current stock report. Entries lacking assortmentId or stock are ignored.
func (c *Client) FetchStock(ctx context.Context) (map[string]float64, error) {
	stock := make(map[string]float64)

	body, err := c.get(ctx, c.baseURL+"/report/stock/all/current", nil)
	if err != nil {
		c.logger.Error("Stock report fetch failed", zap.Error(err))
		return stock, err
	}

	for _, item := range gjson.ParseBytes(body).Array() {
		id := item.Get("assortmentId")
		qty := item.Get("stock")
		if !id.Exists() || !qty.Exists() {
			continue
		}
		stock[id.String()] = qty.Float()
	}

	c.logger.Info("Stock report fetched", zap.Int("entries", len(stock)))
	return stock, nil
}

// ProductImagesURL returns the catalog URL listing the images of a product.
func (c *Client) ProductImagesURL(productID string) string {
	return fmt.Sprintf("%s/entity/%s/%s/images", c.baseURL, ResourceProduct, productID)
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	target := endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json;charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// LastSegment returns the trailing path segment of a meta href such as
// ".../entity/productfolder/<id>".
func LastSegment(href string) string {
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}
