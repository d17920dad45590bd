/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package fixclient provides order management and tracking for FIX order
// entry against Coinbase Prime.
//
// OrderStore is the single owner of the client's view of live orders. It is
// read by the command thread (status, cancel, list) and written from the FIX
// engine's callback threads (order capture, execution reports), so every
// access goes through its readers-writer lock. Each mutation is persisted to
// the order cache before the write lock is released: a reader never observes
// in-memory state that has not been durably written.
package fixclient

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Order represents the client's belief about one order's identity and shape.
// Quantities and prices are decimal strings and are never round-tripped
// through binary floats.
type Order struct {
	ClOrdID      string `json:"clOrdId"`      // Client order ID, primary key
	OrderID      string `json:"orderId"`      // Venue-assigned order ID, empty until acknowledged
	Side         string `json:"side"`         // BUY or SELL
	Symbol       string `json:"symbol"`       // Product pair (e.g., BTC-USD)
	Quantity     string `json:"quantity"`     // Size, denominated per QuantityType
	LimitPrice   string `json:"limitPrice"`   // Limit price, empty for market orders
	QuantityType string `json:"quantityType"` // BASE or QUOTE, fixed at creation

	// VWAP window parameters as sent, if any.
	StartTime         string `json:"startTime,omitempty"`
	ExpireTime        string `json:"expireTime,omitempty"`
	ParticipationRate string `json:"participationRate,omitempty"`

	// Live state from execution reports.
	OrdStatus string `json:"ordStatus,omitempty"`
	CumQty    string `json:"cumQty,omitempty"`
	LeavesQty string `json:"leavesQty,omitempty"`
	AvgPx     string `json:"avgPx,omitempty"`
	Text      string `json:"text,omitempty"`
}

// ExecReport carries the fields extracted from an Execution Report (8).
// Extraction is best-effort; absent fields are empty strings.
type ExecReport struct {
	ClOrdID   string
	OrderID   string
	ExecID    string
	ExecType  string
	OrdStatus string
	Symbol    string
	Side      string
	LastPx    string
	LastQty   string
	CumQty    string
	LeavesQty string
	AvgPx     string
	Text      string
	Fees      []MiscFee
}

// OrderStore is the durable, concurrency-safe ledger of orders keyed by
// client order id.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*Order
	cache  *OrderCache
	log    *zap.Logger
}

// NewOrderStore loads the ledger from the cache. A corrupt cache file fails
// the call; the ledger must not silently start empty when a readable but
// invalid snapshot exists. A nil cache keeps the ledger memory-only.
func NewOrderStore(cache *OrderCache, log *zap.Logger) (*OrderStore, error) {
	orders := map[string]*Order{}
	if cache != nil {
		loaded, err := cache.Load()
		if err != nil {
			return nil, err
		}
		orders = loaded
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderStore{orders: orders, cache: cache, log: log}, nil
}

// persist saves the ledger while the caller holds the write lock, so
// concurrent saves cannot interleave and readers never race a save.
func (os *OrderStore) persist() {
	if os.cache == nil {
		return
	}
	if err := os.cache.Save(os.orders); err != nil {
		os.log.Error("failed to save order cache", zap.Error(err))
	}
}

// Add inserts or replaces an order and persists the ledger.
func (os *OrderStore) Add(order *Order) {
	os.mu.Lock()
	defer os.mu.Unlock()
	copied := *order
	os.orders[order.ClOrdID] = &copied
	os.persist()
}

// Get retrieves an order by ClOrdID. The returned copy is safe to mutate.
func (os *OrderStore) Get(clOrdID string) (Order, bool) {
	os.mu.RLock()
	defer os.mu.RUnlock()
	order, exists := os.orders[clOrdID]
	if !exists {
		return Order{}, false
	}
	return *order, true
}

// All returns a copy of every order, sorted by ClOrdID for stable listings.
func (os *OrderStore) All() []Order {
	os.mu.RLock()
	defer os.mu.RUnlock()

	result := make([]Order, 0, len(os.orders))
	for _, order := range os.orders {
		result = append(result, *order)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClOrdID < result[j].ClOrdID })
	return result
}

// Len returns the number of tracked orders.
func (os *OrderStore) Len() int {
	os.mu.RLock()
	defer os.mu.RUnlock()
	return len(os.orders)
}

// UpdateFromExecReport correlates an execution report back to a tracked
// order. Reports for unknown client order ids are dropped: in a shared-cache
// setup reports may arrive for orders this process never created, which is
// not an error. Replaying an identical report is a no-op; the ledger is only
// persisted when the record actually changed. A venue order id that differs
// from the one already recorded overwrites it, matching venue behavior where
// the latest report wins.
func (os *OrderStore) UpdateFromExecReport(er *ExecReport) bool {
	if er.ClOrdID == "" || er.OrderID == "" {
		return false
	}

	os.mu.Lock()
	defer os.mu.Unlock()

	order, exists := os.orders[er.ClOrdID]
	if !exists {
		os.log.Debug("execution report for untracked order",
			zap.String("clOrdId", er.ClOrdID),
			zap.String("orderId", er.OrderID))
		return false
	}

	before := *order

	if order.OrderID != "" && order.OrderID != er.OrderID {
		os.log.Warn("venue order id changed",
			zap.String("clOrdId", er.ClOrdID),
			zap.String("old", order.OrderID),
			zap.String("new", er.OrderID))
	}
	order.OrderID = er.OrderID

	if er.OrdStatus != "" {
		order.OrdStatus = er.OrdStatus
	}
	if er.CumQty != "" {
		order.CumQty = er.CumQty
	}
	if er.LeavesQty != "" {
		order.LeavesQty = er.LeavesQty
	}
	if er.AvgPx != "" {
		order.AvgPx = er.AvgPx
	}
	if er.Text != "" {
		order.Text = er.Text
	}

	if *order != before {
		os.persist()
	}
	return true
}

// Flush writes the ledger to the cache one final time. Called at shutdown.
func (os *OrderStore) Flush() {
	os.mu.Lock()
	defer os.mu.Unlock()
	os.persist()
}
