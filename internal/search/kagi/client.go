package kagi

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

	"go.uber.org/zap"

	"github.com/kitbuilder587/kagi-search/internal/metrics"
	"github.com/kitbuilder587/kagi-search/internal/search"
)

const (
	DefaultBaseURL = "https://kagi.com"
	searchPath     = "/api/v0/search"
)

var (
	errMissingData = errors.New("missing data")
	errMissingMeta = errors.New("missing meta")
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func New(cfg Config, logger *zap.Logger, m *metrics.Metrics) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		metrics: m,
	}
}

// meta и data - указатели, чтобы отличить отсутствующее поле от пустого
type kagiResponse struct {
	Meta  *search.Meta           `json:"meta"`
	Data  *[]search.SearchResult `json:"data"`
	Error []search.APIError      `json:"error,omitempty"`
}

// Search делает один GET без ретраев: ошибка сразу уходит наверх.
// Не-2xx -> *search.StatusError, непустой error в теле -> search.APIErrors.
func (c *Client) Search(ctx context.Context, req search.SearchRequest) (*search.SearchResponse, error) {
	if req.APIKey == "" {
		return nil, search.ErrMissingAPIKey
	}

	u, err := c.searchURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bot "+req.APIKey)
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.record("transport_error", start)
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("kagi response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.record(strconv.Itoa(resp.StatusCode), start)
		// тело может не прочитаться - тогда в сообщении будет status text
		body, _ := io.ReadAll(resp.Body)
		return nil, &search.StatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	var kagiResp kagiResponse
	if err := json.NewDecoder(resp.Body).Decode(&kagiResp); err != nil {
		c.record("decode_error", start)
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.record(strconv.Itoa(resp.StatusCode), start)

	if len(kagiResp.Error) > 0 {
		return nil, search.APIErrors(kagiResp.Error)
	}
	if kagiResp.Data == nil {
		return nil, fmt.Errorf("decode response: %w", errMissingData)
	}
	if kagiResp.Meta == nil {
		return nil, fmt.Errorf("decode response: %w", errMissingMeta)
	}

	if c.metrics != nil {
		c.metrics.SetAPIBalance(kagiResp.Meta.APIBalance)
	}

	return &search.SearchResponse{
		Meta:   *kagiResp.Meta,
		Data:   *kagiResp.Data,
		Errors: kagiResp.Error,
	}, nil
}

func (c *Client) searchURL(req search.SearchRequest) (string, error) {
	u, err := url.Parse(c.baseURL + searchPath)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("q", req.Query)
	q.Set("limit", strconv.Itoa(req.Limit))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) record(status string, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordAPIRequest(status, time.Since(start))
	}
}
