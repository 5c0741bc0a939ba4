// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// recordedRequest captures what the fake backend saw.
type recordedRequest struct {
	method string
	path   string
	query  string
	body   string
}

func newTestClient(t *testing.T, status int, response string) (*Client, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		b, _ := io.ReadAll(r.Body)
		rec.body = string(b)
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, time.Second), rec
}

func TestListOrdersPassesSearchQuery(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `[{"id":"ord-1","status":"placed"}]`)

	orders, err := c.ListOrders(context.Background(), "pizza margherita")
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if rec.path != "/v1/orders" {
		t.Fatalf("path = %q", rec.path)
	}
	if rec.query != "q=pizza+margherita" {
		t.Fatalf("query = %q", rec.query)
	}
	if len(orders) != 1 || orders[0].ID != "ord-1" {
		t.Fatalf("orders = %+v", orders)
	}
}

func TestListOrdersOmitsEmptySearch(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `[]`)
	if _, err := c.ListOrders(context.Background(), ""); err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if rec.query != "" {
		t.Fatalf("empty search should send no query string, got %q", rec.query)
	}
}

func TestCancelOrderEscapesID(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, "")
	if err := c.CancelOrder(context.Background(), "ord/7"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if rec.method != http.MethodPost {
		t.Fatalf("method = %q", rec.method)
	}
	if rec.path != "/v1/orders/ord%2F7/cancel" && rec.path != "/v1/orders/ord/7/cancel" {
		// httptest decodes the path; accept the raw form too.
		t.Fatalf("path = %q", rec.path)
	}
}

func TestSetRestaurantActiveSendsFlag(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, "")
	if err := c.SetRestaurantActive(context.Background(), "res-1", false); err != nil {
		t.Fatalf("set active: %v", err)
	}
	var payload map[string]bool
	if err := json.Unmarshal([]byte(rec.body), &payload); err != nil {
		t.Fatalf("body %q: %v", rec.body, err)
	}
	if payload["is_active"] != false {
		t.Fatalf("payload = %v", payload)
	}
	if rec.path != "/v1/restaurants/res-1/active" {
		t.Fatalf("path = %q", rec.path)
	}
}

func TestTicketLaneMoves(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, "")
	if err := c.BumpTicket(context.Background(), "tic-1"); err != nil {
		t.Fatalf("bump: %v", err)
	}
	if rec.path != "/v1/tickets/tic-1/bump" {
		t.Fatalf("bump path = %q", rec.path)
	}
	if err := c.RecallTicket(context.Background(), "tic-1"); err != nil {
		t.Fatalf("recall: %v", err)
	}
	if rec.path != "/v1/tickets/tic-1/recall" {
		t.Fatalf("recall path = %q", rec.path)
	}
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	c, _ := newTestClient(t, http.StatusConflict, "order already delivered")

	err := c.CancelOrder(context.Background(), "ord-1")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want StatusError", err)
	}
	if se.Code != http.StatusConflict {
		t.Fatalf("code = %d", se.Code)
	}
	if se.Body != "order already delivered" {
		t.Fatalf("body = %q", se.Body)
	}
}

func TestBadJSONSurfacesDecodeError(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, `{"not":"a list"`)
	if _, err := c.ListCouriers(context.Background()); err == nil {
		t.Fatal("expected a decode error")
	}
}
