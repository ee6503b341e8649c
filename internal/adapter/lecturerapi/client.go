// Package lecturerapi is the HTTP client for the course-review lecturer create endpoint.
package lecturerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptrace"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/heartmarshall/coursereview-backend/internal/auth"
	"github.com/heartmarshall/coursereview-backend/internal/domain"
)

// maxErrorBody caps how much of a rejection body is kept for logging.
const maxErrorBody = 4 << 10

// Options tunes the client. Zero values mean: 10s timeout, no retries.
type Options struct {
	Timeout time.Duration
	// MaxRetries bounds extra attempts after a 429, a 5xx, or a transport
	// error raised before the request was fully written. A request that was
	// written but got no response is not retried: the server may have
	// created the lecturer already.
	MaxRetries     int
	RetryBaseDelay time.Duration
	HTTPClient     *http.Client
}

// Client creates lecturers via POST {url} with a bearer token.
type Client struct {
	url        string
	token      string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	log        *slog.Logger
}

// NewClient creates a Client for the given endpoint URL and admin token.
func NewClient(url, token string, opts Options, logger *slog.Logger) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		url:        url,
		token:      auth.NormalizeToken(token),
		httpClient: httpClient,
		maxRetries: max(opts.MaxRetries, 0),
		baseDelay:  opts.RetryBaseDelay,
		log:        logger.With("adapter", "lecturerapi"),
	}
}

// Create submits one lecturer. It returns nil on any 2xx response,
// an *APIError on other statuses, and an error wrapping ErrNoResponse when
// no response was received. 429, 5xx and unsent-request transport errors are
// retried up to MaxRetries times with exponential backoff.
func (c *Client) Create(ctx context.Context, l domain.Lecturer) error {
	payload, err := json.Marshal(newCreateLecturerRequest(l))
	if err != nil {
		return fmt.Errorf("lecturer api: encode request: %w", err)
	}

	op := func() error {
		sent, err := c.post(ctx, payload)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		if errors.Is(err, ErrNoResponse) && sent {
			return backoff.Permanent(err)
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		c.log.WarnContext(ctx, "lecturer api retry",
			slog.String("name", l.Name),
			slog.String("reason", err.Error()),
			slog.Duration("wait", wait),
		)
	}

	return backoff.RetryNotify(op, c.newBackOff(ctx), notify)
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.baseDelay
	eb.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.maxRetries)), ctx)
}

// post sends one request. The returned bool reports whether the request was fully
// written to the connection, which decides if a transport error is safe to retry.
func (c *Client) post(ctx context.Context, payload []byte) (bool, error) {
	var wrote atomic.Bool
	trace := &httptrace.ClientTrace{
		WroteRequest: func(info httptrace.WroteRequestInfo) {
			if info.Err == nil {
				wrote.Store(true)
			}
		},
	}

	req, err := http.NewRequestWithContext(httptrace.WithClientTrace(ctx, trace), http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("lecturer api: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrote.Load(), fmt.Errorf("%w: %w", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.DebugContext(ctx, "lecturer api response", slog.Int("status", resp.StatusCode))
		return true, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return true, &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
