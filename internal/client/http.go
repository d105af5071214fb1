package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/models"
)

const webpagesPath = "/api/webpages"

// HTTP calls the webpages REST API. GET requests are retried on transport
// errors and 5xx answers.
type HTTP struct {
	baseURL string
	opts    options
}

// NewHTTP returns a client for the API rooted at baseURL.
func NewHTTP(baseURL string, opts ...Option) *HTTP {
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    newOptions(opts),
	}
}

func (c *HTTP) List(ctx context.Context) ([]models.Webpage, error) {
	var out []models.Webpage
	if err := c.do(ctx, http.MethodGet, webpagesPath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Webpage{}
	}
	return out, nil
}

func (c *HTTP) Get(ctx context.Context, id int64) (models.Webpage, error) {
	var out models.Webpage
	if err := c.do(ctx, http.MethodGet, webpagePath(id), nil, &out); err != nil {
		return models.Webpage{}, err
	}
	return out, nil
}

func (c *HTTP) Create(ctx context.Context, w models.Webpage) (models.Webpage, error) {
	var out models.Webpage
	if err := c.do(ctx, http.MethodPost, webpagesPath, toRequest(w), &out); err != nil {
		return models.Webpage{}, err
	}
	return out, nil
}

func (c *HTTP) Update(ctx context.Context, id int64, w models.Webpage) (models.Webpage, error) {
	var out models.Webpage
	if err := c.do(ctx, http.MethodPut, webpagePath(id), toRequest(w), &out); err != nil {
		return models.Webpage{}, err
	}
	return out, nil
}

func (c *HTTP) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, webpagePath(id), nil, nil)
}

func (c *HTTP) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = c.opts.attempts
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if werr := wait(ctx, c.opts.backoff); werr != nil {
				return err
			}
		}

		err = c.once(ctx, method, path, payload, out)
		if err == nil || !retryable(err) {
			return err
		}
		c.opts.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return err
}

func (c *HTTP) once(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.token)
	}

	resp, err := c.opts.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.failure(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// failure builds an Error from a failed response, logging the server's own
// message when the body carries one.
func (c *HTTP) failure(resp *http.Response) error {
	var server models.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&server); err == nil && server.Message != "" {
		c.opts.logger.Debug("server error",
			zap.Int("status", resp.StatusCode),
			zap.String("message", server.Message),
		)
	}

	return &Error{
		Status:  resp.StatusCode,
		Message: HTTPMessage(resp.StatusCode, http.StatusText(resp.StatusCode)),
		Err:     httpSentinel(resp.StatusCode),
	}
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrTransport) {
		return true
	}
	var e *Error
	return errors.As(err, &e) && e.Status >= http.StatusInternalServerError
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func webpagePath(id int64) string {
	return webpagesPath + "/" + strconv.FormatInt(id, 10)
}

func toRequest(w models.Webpage) models.WebpageRequest {
	return models.WebpageRequest{
		URL:         w.URL,
		Title:       w.Title,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
		ImageURL:    w.ImageURL,
	}
}
