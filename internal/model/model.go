// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the view-layer records the consoles render. All
// business meaning (pricing, state transitions, payment) lives in the
// backend; these structs only carry what the API returns.
package model

import "time"

// Order statuses as reported by the backend.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusAccepted  = "accepted"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusPickedUp  = "picked_up"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order is one customer order as the ops consoles see it.
type Order struct {
	ID         string      `json:"id"`
	Restaurant string      `json:"restaurant"`
	Courier    string      `json:"courier"`
	Status     string      `json:"status"`
	TotalCents int         `json:"total_cents"`
	Currency   string      `json:"currency"`
	PlacedAt   time.Time   `json:"placed_at"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Cents    int    `json:"cents"`
}

// Open reports whether the order still needs operator attention.
func (o Order) Open() bool {
	switch o.Status {
	case OrderStatusDelivered, OrderStatusCancelled:
		return false
	}
	return true
}

// Restaurant is a partner restaurant profile.
type Restaurant struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Rating   float64 `json:"rating"`
	IsActive bool    `json:"is_active"`
}

// Courier statuses as reported by the backend.
const (
	CourierStatusIdle       = "idle"
	CourierStatusDelivering = "delivering"
	CourierStatusOffline    = "offline"
)

// Courier is a delivery partner with their last reported position.
type Courier struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Vehicle    string  `json:"vehicle"`
	Status     string  `json:"status"`
	Deliveries int     `json:"deliveries"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// Online reports whether the courier should appear on the live map.
func (c Courier) Online() bool {
	return c.Status != CourierStatusOffline
}

// Ticket lanes on the kitchen display board, in bump order.
const (
	TicketLaneNew       = "new"
	TicketLanePreparing = "preparing"
	TicketLaneReady     = "ready"
)

// Ticket is one kitchen ticket on the display board.
type Ticket struct {
	ID       string    `json:"id"`
	OrderID  string    `json:"order_id"`
	Lane     string    `json:"lane"`
	Items    []string  `json:"items"`
	OpenedAt time.Time `json:"opened_at"`
}
