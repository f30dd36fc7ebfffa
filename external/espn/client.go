package espn

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/liamgecko/fantasy-football/internal/platform/logging"
	"github.com/liamgecko/fantasy-football/internal/platform/resilience"
)

const (
	defaultSiteBaseURL   = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	defaultCoreBaseURL   = "https://sports.core.api.espn.com/v2/sports/football/leagues/nfl"
	defaultCoreV3BaseURL = "https://sports.core.api.espn.com/v3/sports/football/nfl"
	defaultWebBaseURL    = "https://site.web.api.espn.com/apis/common/v3/sports/football/nfl"

	defaultUserAgent = "fantasy-app-v2/1.0 (+https://vercel.com)"

	maxResponseBytes = 6 << 20
)

var errTransient = crerr.New("espn transient failure")

// ErrUnavailable reports that the circuit breaker rejected a request.
var ErrUnavailable = stderrors.New("stat provider is temporarily unavailable")

// APIError carries a non-success upstream response to the API boundary.
type APIError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("espn api status=%d: %s", e.StatusCode, e.Body)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	SiteBaseURL    string
	CoreBaseURL    string
	CoreV3BaseURL  string
	WebBaseURL     string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	siteBaseURL    string
	coreBaseURL    string
	coreV3BaseURL  string
	webBaseURL     string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		siteBaseURL:    normalizeBaseURL(cfg.SiteBaseURL, defaultSiteBaseURL),
		coreBaseURL:    normalizeBaseURL(cfg.CoreBaseURL, defaultCoreBaseURL),
		coreV3BaseURL:  normalizeBaseURL(cfg.CoreV3BaseURL, defaultCoreV3BaseURL),
		webBaseURL:     normalizeBaseURL(cfg.WebBaseURL, defaultWebBaseURL),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func normalizeBaseURL(raw, fallback string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return fallback
	}
	return base
}

func (c *Client) siteJSON(ctx context.Context, path string, query map[string]string, target any) error {
	return c.getJSON(ctx, c.siteBaseURL, path, query, target)
}

func (c *Client) coreJSON(ctx context.Context, path string, query map[string]string, target any) error {
	return c.getJSON(ctx, c.coreBaseURL, path, query, target)
}

func (c *Client) coreV3JSON(ctx context.Context, path string, query map[string]string, target any) error {
	return c.getJSON(ctx, c.coreV3BaseURL, path, query, target)
}

func (c *Client) webJSON(ctx context.Context, path string, query map[string]string, target any) error {
	return c.getJSON(ctx, c.webBaseURL, path, query, target)
}

func (c *Client) getJSON(ctx context.Context, base, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: circuit is %s", ErrUnavailable, c.breaker.State())
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := base + "/" + strings.TrimLeft(path, "/")
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", defaultUserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				apiErr := &APIError{
					StatusCode: resp.StatusCode,
					Body:       abbreviateBody(raw),
					URL:        fullURL,
				}
				if !isRetryableStatus(resp.StatusCode) {
					return nil, apiErr
				}
				lastErr = fmt.Errorf("%w: %w", errTransient, apiErr)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 512
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
