package dealfeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/AladdinPP/prox-moble/internal/domain"
	"github.com/AladdinPP/prox-moble/internal/metric"
	"golang.org/x/time/rate"
)

// Remote procedures exposed by the deal database.
const (
	rpcDealMenu = "get_deal_menu_v8"
	rpcAllDeals = "find_all_deals_v3"
)

// Client handles communication with the remote deal-feed RPC API.
type Client struct {
	httpClient  *http.Client
	serviceKey  string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new deal-feed client.
func NewClient(serviceKey, baseURL string) *Client {
	// The feed allows 300 requests per minute per key; 5/sec with a small
	// burst keeps us inside that.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		serviceKey:  serviceKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// rpcParams is the request body both procedures accept.
type rpcParams struct {
	UserZip      string            `json:"user_zip"`
	ItemsToFind  []domain.ItemSpec `json:"items_to_find"`
	RadiusMeters int               `json:"radius_meters"`
	MinDate      string            `json:"min_date"`
}

// FetchDealMenu fetches the flat deal menu for a cart-optimization search.
func (c *Client) FetchDealMenu(ctx context.Context, query domain.DealMenuQuery) ([]domain.Deal, error) {
	return c.call(ctx, rpcDealMenu, query)
}

// FindAllDeals fetches every matching deal for a flat single-deal search.
func (c *Client) FindAllDeals(ctx context.Context, query domain.DealMenuQuery) ([]domain.Deal, error) {
	return c.call(ctx, rpcAllDeals, query)
}

// call executes one RPC with rate limiting and up to 3 attempts on transient
// failures, then maps and validates the raw records.
func (c *Client) call(ctx context.Context, procedure string, query domain.DealMenuQuery) ([]domain.Deal, error) {
	if c.debug {
		log.Printf("[FEED] %s: zip=%s radius=%dm items=%d min_date=%s",
			procedure, query.UserZip, query.RadiusMeters, len(query.Items), query.MinDate)
	}

	body, err := json.Marshal(rpcParams{
		UserZip:      query.UserZip,
		ItemsToFind:  query.Items,
		RadiusMeters: query.RadiusMeters,
		MinDate:      query.MinDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/rest/v1/rpc/%s", c.baseURL, procedure)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		raw, retryable, err := c.doRequest(ctx, reqURL, body)
		if err != nil {
			metric.DealFeedRequestsTotal.WithLabelValues(procedure, "error").Inc()
			if c.debug {
				log.Printf("[FEED] %s attempt %d failed: %v", procedure, attempt, err)
			}
			lastErr = err
			if !retryable {
				return nil, err
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(exponentialBackoff(attempt)):
			}
			continue
		}

		metric.DealFeedRequestsTotal.WithLabelValues(procedure, "success").Inc()
		deals := mapDeals(raw, c.debug)
		if c.debug {
			log.Printf("[FEED] %s returned %d records, %d valid", procedure, len(raw), len(deals))
		}
		return deals, nil
	}

	return nil, lastErr
}

// doRequest executes one HTTP POST. The second return value reports whether
// the failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, reqURL string, body []byte) ([]rawDeal, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("User-Agent", "Prox/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", domain.ErrDealFeedFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%w: reading body: %v", domain.ErrDealFeedFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= http.StatusInternalServerError
		return nil, retryable, fmt.Errorf("%w: status %d", domain.ErrDealFeedFailure, resp.StatusCode)
	}

	var raw []rawDeal
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, false, fmt.Errorf("%w: decoding response: %v", domain.ErrDealFeedFailure, err)
	}

	return raw, false, nil
}

// exponentialBackoff returns the wait before retrying the given attempt.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}
