// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package api is the typed HTTP client for the Mealdeck backend. The
// consoles never carry business logic; every mutation here is a thin
// request the backend validates and executes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mealdeck/mealdeck/internal/model"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("backend returned %d", e.Code)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Code, body)
}

// Client talks to the Mealdeck backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the given base URL. A zero timeout falls back to
// ten seconds so a dead backend can never hang a console forever.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// post performs a POST request with an optional JSON body. The response body
// is discarded; the consoles re-fetch through the query layer afterwards.
func (c *Client) post(ctx context.Context, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", path, err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(b)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// ListOrders fetches orders, optionally filtered server-side by the free
// text query. Filtering always happens on the backend; the consoles never
// filter locally.
func (c *Client) ListOrders(ctx context.Context, search string) ([]model.Order, error) {
	q := url.Values{}
	if search != "" {
		q.Set("q", search)
	}
	var orders []model.Order
	if err := c.get(ctx, "/v1/orders", q, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CancelOrder asks the backend to cancel the order. Refund handling is
// entirely server-side.
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	return c.post(ctx, "/v1/orders/"+url.PathEscape(id)+"/cancel", nil)
}

// ListRestaurants fetches restaurants, optionally filtered server-side.
func (c *Client) ListRestaurants(ctx context.Context, search string) ([]model.Restaurant, error) {
	q := url.Values{}
	if search != "" {
		q.Set("q", search)
	}
	var rs []model.Restaurant
	if err := c.get(ctx, "/v1/restaurants", q, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// SetRestaurantActive opens or closes a restaurant for ordering.
func (c *Client) SetRestaurantActive(ctx context.Context, id string, active bool) error {
	payload := map[string]bool{"is_active": active}
	return c.post(ctx, "/v1/restaurants/"+url.PathEscape(id)+"/active", payload)
}

// ListCouriers fetches all couriers with their last reported positions.
func (c *Client) ListCouriers(ctx context.Context) ([]model.Courier, error) {
	var cs []model.Courier
	if err := c.get(ctx, "/v1/couriers", nil, &cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// ListTickets fetches the open kitchen tickets for the display board.
func (c *Client) ListTickets(ctx context.Context) ([]model.Ticket, error) {
	var ts []model.Ticket
	if err := c.get(ctx, "/v1/tickets", nil, &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// BumpTicket advances a ticket to the next lane.
func (c *Client) BumpTicket(ctx context.Context, id string) error {
	return c.post(ctx, "/v1/tickets/"+url.PathEscape(id)+"/bump", nil)
}

// RecallTicket moves a ticket back to the previous lane.
func (c *Client) RecallTicket(ctx context.Context, id string) error {
	return c.post(ctx, "/v1/tickets/"+url.PathEscape(id)+"/recall", nil)
}
