// Package board talks to the work-item board's GraphQL API: reading items,
// updates and columns, and writing extracted values back. All network access
// in the repository lives here; the extraction core never blocks.
package board

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"c3track/internal/config"
)

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.BoardTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.BoardRateLimitRPS),
	}
}

func (c *Client) execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	if strings.TrimSpace(c.cfg.BoardAPIToken) == "" {
		return nil, errors.New("missing BOARD_API_TOKEN")
	}

	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		c.limiter.WaitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BoardAPIURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", c.cfg.BoardAPIToken)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("board status %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("board api error: status=%d body=%s", resp.StatusCode, string(body))
		}

		var gqlResp graphqlResponse
		if err := json.Unmarshal(body, &gqlResp); err != nil {
			return nil, err
		}
		if len(gqlResp.Errors) > 0 && string(gqlResp.Errors) != "null" {
			return nil, fmt.Errorf("board api error: %s", string(gqlResp.Errors))
		}
		return gqlResp.Data, nil
	}

	if lastErr == nil {
		lastErr = errors.New("board request failed")
	}
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
