// Package source implements the HTTP client for the external vehicle source
// system.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mbatlle/motormercat/internal/common"
	"github.com/mbatlle/motormercat/internal/model"
)

// Config holds the source system connection settings.
type Config struct {
	BaseURL  string
	Username string
	APIKey   string
	PageSize int
	Timeout  time.Duration
}

// Client issues paginated, authenticated requests against the source system.
// It implements the service.VehicleSource interface.
type Client struct {
	config     Config
	httpClient *http.Client
}

// envelope is the alternative response shape: the record array wrapped under
// an "items" key. Callers must accept both this and a bare array.
type envelope struct {
	Items []model.ExternalRecord `json:"items"`
}

// NewClient creates a source client from the given configuration.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("%w: source base URL", common.ErrMissingConfig)
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: source base URL: %v", common.ErrInvalidConfig, err)
	}
	if config.PageSize <= 0 {
		config.PageSize = 50
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// FetchPage fetches one page of the sold or unsold partition.
func (c *Client) FetchPage(ctx context.Context, sold bool, page int) ([]model.ExternalRecord, error) {
	u, err := url.Parse(strings.TrimSuffix(c.config.BaseURL, "/") + "/vehicles")
	if err != nil {
		return nil, fmt.Errorf("failed to build request URL: %w", err)
	}

	q := u.Query()
	q.Set("venut", strconv.FormatBool(sold))
	q.Set("per_page", strconv.Itoa(c.config.PageSize))
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.config.Username, c.config.APIKey)
	req.Header.Set("Accept", "application/json")

	slog.Debug("Requesting source page", "sold", sold, "page", page, "per_page", c.config.PageSize)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, common.ErrSourceRateLimit
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("source API error: %d - %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return decodeRecords(body)
}

// decodeRecords accepts either a bare JSON array of records or an envelope
// object exposing the array under "items".
func decodeRecords(body []byte) ([]model.ExternalRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", common.ErrBadPayload)
	}

	if trimmed[0] == '[' {
		var records []model.ExternalRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrBadPayload, err)
		}
		return records, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBadPayload, err)
	}
	if env.Items == nil {
		return nil, fmt.Errorf("%w: object without items array", common.ErrBadPayload)
	}
	return env.Items, nil
}
