// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

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

	"github.com/danielhkuo/gamevote/models"
)

var (
	ErrNetworkFailure   = errors.New("network failure")
	ErrUnexpectedStatus = errors.New("unexpected response")
)

// maxBodySize bounds how much of a response is read
const maxBodySize = 1 << 20

// APIError is a failure envelope returned by the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every request made by the client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListEntries fetches every entry, most votes first
func (c *Client) ListEntries(ctx context.Context) ([]models.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/entries", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var resp models.ListEntriesResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []models.Entry{}
	}

	return resp.Data, nil
}

// Vote adds one vote to an entry and returns the server's count
func (c *Client) Vote(ctx context.Context, id int64) (models.VoteResponse, error) {
	form := url.Values{"id": {strconv.FormatInt(id, 10)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/vote", strings.NewReader(form.Encode()))
	if err != nil {
		return models.VoteResponse{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp models.VoteResponse
	if err := c.do(req, &resp); err != nil {
		return models.VoteResponse{}, err
	}

	return resp, nil
}

// do sends req and decodes a success envelope into out. Any non-2xx status
// is an error, whatever the body says.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", ErrNetworkFailure, err)
	}

	var envelope models.ErrorResponse
	envErr := json.Unmarshal(body, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if envErr == nil && envelope.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error}
		}
		return fmt.Errorf("%w: HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if envErr != nil {
		return fmt.Errorf("%w: invalid body: %w", ErrUnexpectedStatus, envErr)
	}
	if !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = "request failed"
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: invalid body: %w", ErrUnexpectedStatus, err)
	}

	return nil
}
