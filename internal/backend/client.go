package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
	"github.com/thelegendaryarticuno/myfashion/pkg/httpclient"
)

const upstreamName = "fashion api"

// Client is the typed client for the remote fashion backend. All reads and
// writes the storefront performs against the catalog, carts, OTP login and
// the dashboard resources go through here; the service owns no data of its
// own besides sessions and recently-viewed lists.
type Client struct {
	baseURL string
	http    *httpclient.BreakerClient
	logger  *slog.Logger
}

// New creates a client rooted at baseURL.
func New(baseURL string, hc *httpclient.BreakerClient, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		logger:  logger,
	}
}

// do performs one JSON round trip. A nil in sends no body; a nil out
// discards the response body. Non-2xx responses come back as AppErrors with
// the upstream message preserved.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) {
			return apperrors.Unavailable("the store backend is temporarily unavailable")
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, upstreamName)
	}

	defer func() { _ = resp.Body.Close() }()
	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodDelete, path, in, out)
}

// messageResponse is the bare acknowledgement shape most mutating endpoints
// return.
type messageResponse struct {
	Message string `json:"message"`
}

// upstreamMessage pulls the human-readable message out of an error produced
// by do, so callers can branch on what the backend actually said.
func upstreamMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
