// Package http provides a minimal HTTP client for fetching release artifacts.
package http

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	"github.com/vakoc/buildstamp/pkg/stamperrors"
)

type Client struct {
	http *nethttp.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &nethttp.Client{Timeout: timeout},
	}
}

// Get fetches the given URL and returns the response body and status code.
func (c *Client) Get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read body: %w", err)
	}

	if err := resp.Body.Close(); err != nil {
		return nil, 0, fmt.Errorf("failed to close body: %w", err)
	}

	return bodyBytes, resp.StatusCode, nil
}

// GetOK fetches the given URL and fails on any non-200 status.
func (c *Client) GetOK(ctx context.Context, url string) ([]byte, error) {
	body, status, err := c.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", stamperrors.ErrFetch, err)
	}

	if status != nethttp.StatusOK {
		return nil, fmt.Errorf("%w: %s: unexpected status %d", stamperrors.ErrFetch, url, status)
	}

	return body, nil
}
