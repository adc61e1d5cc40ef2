package interviews

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/interview-insights/internal/utils"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	maxErrorBody    = 256
)

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad status: %s", e.Status)
	}
	return fmt.Sprintf("bad status: %s: %s", e.Status, e.Body)
}

// getJSON performs a GET request and returns the response body.
// Transport errors and 5xx responses are retried with exponential backoff.
func (c *Client) getJSON(ctx context.Context, path string) ([]byte, error) {
	var data []byte

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		c.setHeaders(req)
		req.Header.Set("Accept", contentType)

		data, err = c.do(req)
		var statusErr *StatusError
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrNotFound):
			return backoff.Permanent(err)
		case errors.As(err, &statusErr) && statusErr.Code < http.StatusInternalServerError:
			return backoff.Permanent(err)
		}

		c.logger.Warn("request failed, will retry", zap.String("url", req.URL.String()), zap.Error(err))
		return err
	}

	if err := backoff.Retry(op, c.backOff(ctx)); err != nil {
		return nil, err
	}

	return data, nil
}

// postJSON sends body as JSON. POST requests are never retried.
func (c *Client) postJSON(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	c.logger.Debug("make request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", req.URL.Path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   utils.TruncateForLog(strings.TrimSpace(string(data)), maxErrorBody),
		}
	}

	return data, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)
	req.Header.Set("X-Request-ID", uuid.NewString())
}

func (c *Client) backOff(ctx context.Context) backoff.BackOff {
	if c.MaxRetryTime <= 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxElapsedTime = c.MaxRetryTime

	return backoff.WithContext(b, ctx)
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.APIURL, "/") + path
}
