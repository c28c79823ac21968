package cloudinary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gallerysync/internal/logging"
	"gallerysync/internal/services"
)

const (
	defaultHTTPTimeout    = 15 * time.Second
	defaultRetryBaseDelay = 1 * time.Second
	defaultRetryMaxDelay  = 10 * time.Second
	defaultRetryAttempts  = 4
	defaultPageSize       = 500
	maxPageSize           = 500
)

// Credentials are the Admin API key pair, supplied out of band via the
// environment.
type Credentials struct {
	APIKey    string
	APISecret string
}

// CredentialsFromEnv reads the key pair from the process environment. Both
// values missing or either one missing is a fatal configuration error,
// reported before any network call is attempted.
func CredentialsFromEnv(keyVar, secretVar string) (Credentials, error) {
	creds := Credentials{
		APIKey:    strings.TrimSpace(os.Getenv(keyVar)),
		APISecret: strings.TrimSpace(os.Getenv(secretVar)),
	}
	var missing []string
	if creds.APIKey == "" {
		missing = append(missing, keyVar)
	}
	if creds.APISecret == "" {
		missing = append(missing, secretVar)
	}
	if len(missing) > 0 {
		return Credentials{}, services.Wrap(services.ErrConfiguration, "cloudinary", "credentials",
			"missing environment variables: "+strings.Join(missing, ", "), nil)
	}
	return creds, nil
}

// Config captures the non-secret connection settings for the media host.
type Config struct {
	CloudName      string
	FolderPrefix   string
	BaseURL        string
	PageSize       int
	TimeoutSeconds int
	RetryAttempts  int
}

// Client queries the Cloudinary Admin API for stored objects. It retries
// transient failures (timeouts, 408/429/5xx) with capped exponential backoff;
// definitive failures surface immediately.
type Client struct {
	cfg        Config
	creds      Credentials
	httpClient *http.Client
	logger     *slog.Logger

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	sleeper          func(time.Duration)
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(baseDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.retryBaseDelay = baseDelay
		c.retryMaxDelay = maxDelay
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// WithLogger attaches a logger for per-page progress records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient constructs a Cloudinary Admin API client.
func NewClient(cfg Config, creds Credentials, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.cloudinary.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.PageSize <= 0 || cfg.PageSize > maxPageSize {
		cfg.PageSize = defaultPageSize
	}
	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}

	client := &Client{
		cfg:              cfg,
		creds:            creds,
		httpClient:       &http.Client{Timeout: timeout},
		logger:           logging.NewNop(),
		retryMaxAttempts: attempts,
		retryBaseDelay:   defaultRetryBaseDelay,
		retryMaxDelay:    defaultRetryMaxDelay,
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.WithComponent(client.logger, "cloudinary")
	return client
}

// FolderPath joins the fixed namespace prefix with an event folder name.
func (c *Client) FolderPath(folder string) string {
	prefix := strings.Trim(c.cfg.FolderPrefix, "/")
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if prefix == "" {
		return folder
	}
	return prefix + "/" + folder
}

// FolderURL derives the delivery base URL for a stored folder path.
func FolderURL(cloudName, folderPath string) string {
	return "https://res.cloudinary.com/" + cloudName + "/image/upload/" + folderPath + "/"
}

// ListFolder enumerates every object under the event folder, following
// pagination until the host stops returning a continuation cursor. It returns
// the objects' HTTPS URLs in the host's enumeration order plus the full folder
// path that was queried. Zero objects is a not-found failure: a record must
// never be created for an empty folder.
func (c *Client) ListFolder(ctx context.Context, folder string) ([]string, string, error) {
	fullPath := c.FolderPath(folder)
	if fullPath == "" {
		return nil, "", services.Wrap(services.ErrValidation, "cloudinary", "list", "folder must not be empty", nil)
	}

	var urls []string
	cursor := ""
	pages := 0
	for {
		page, err := c.listPageWithRetry(ctx, fullPath, cursor)
		if err != nil {
			return nil, "", services.Wrap(services.ErrExternal, "cloudinary", "list", fullPath, err)
		}
		pages++
		for _, res := range page.Resources {
			if res.SecureURL != "" {
				urls = append(urls, res.SecureURL)
			}
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	if len(urls) == 0 {
		return nil, "", services.Wrap(services.ErrNotFound, "cloudinary", "list",
			fmt.Sprintf("no photos found in folder %s", fullPath), nil)
	}
	c.logger.Info("folder enumerated", logging.Args(
		logging.String(logging.FieldFolder, fullPath),
		logging.Int(logging.FieldCount, len(urls)),
		logging.Int("pages", pages),
	)...)
	return urls, fullPath, nil
}

type resourcePage struct {
	Resources []struct {
		SecureURL string `json:"secure_url"`
	} `json:"resources"`
	NextCursor string `json:"next_cursor"`
}

type httpStatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("cloudinary request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

func (c *Client) listPageWithRetry(ctx context.Context, fullPath, cursor string) (resourcePage, error) {
	attempts := c.retryMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		page, err := c.listPageOnce(ctx, fullPath, cursor)
		if err == nil {
			return page, nil
		}

		delay, retry := c.retryDelay(ctx, err, attempt, attempts)
		if !retry {
			return resourcePage{}, err
		}
		c.logger.Warn("transient host failure, retrying", logging.Args(
			logging.String(logging.FieldFolder, fullPath),
			logging.Int("attempt", attempt),
			logging.Error(err),
		)...)
		if err := c.sleep(ctx, delay); err != nil {
			return resourcePage{}, err
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("unknown retry failure")
	}
	return resourcePage{}, fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}

func (c *Client) listPageOnce(ctx context.Context, fullPath, cursor string) (resourcePage, error) {
	var page resourcePage

	endpoint := fmt.Sprintf("%s/v1_1/%s/resources/image/upload", c.cfg.BaseURL, url.PathEscape(c.cfg.CloudName))
	query := url.Values{}
	query.Set("type", "upload")
	query.Set("prefix", fullPath)
	query.Set("max_results", strconv.Itoa(c.cfg.PageSize))
	if cursor != "" {
		query.Set("next_cursor", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return page, fmt.Errorf("cloudinary request: new request: %w", err)
	}
	req.SetBasicAuth(c.creds.APIKey, c.creds.APISecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return page, fmt.Errorf("cloudinary request: http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return page, fmt.Errorf("cloudinary request: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		retryAfter, _ := parseRetryAfter(resp.Header.Get("Retry-After"))
		return page, &httpStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			RetryAfter: retryAfter,
		}
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return page, fmt.Errorf("cloudinary request: decode response: %w", err)
	}
	return page, nil
}

func (c *Client) retryDelay(ctx context.Context, err error, attempt, maxAttempts int) (time.Duration, bool) {
	if attempt >= maxAttempts || err == nil || ctx == nil || ctx.Err() != nil {
		return 0, false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusRequestTimeout,
			statusErr.StatusCode == http.StatusTooManyRequests,
			statusErr.StatusCode >= http.StatusInternalServerError:
			if statusErr.RetryAfter > 0 {
				return c.capDelay(statusErr.RetryAfter), true
			}
			return c.backoffDelay(attempt), true
		default:
			return 0, false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return c.backoffDelay(attempt), true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return c.backoffDelay(attempt), true
	}

	return 0, false
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.retryBaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= c.retryMaxDelay {
			return c.retryMaxDelay
		}
	}
	return c.capDelay(delay)
}

func (c *Client) capDelay(delay time.Duration) time.Duration {
	if c.retryMaxDelay > 0 && delay > c.retryMaxDelay {
		return c.retryMaxDelay
	}
	return delay
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseRetryAfter(header string) (time.Duration, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second, true
	}
	if when, err := http.ParseTime(header); err == nil {
		if delay := time.Until(when); delay > 0 {
			return delay, true
		}
	}
	return 0, false
}
