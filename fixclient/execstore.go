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

package fixclient

import (
	"sync"
	"time"
)

// ExecEvent is one received execution report, kept for the execs command.
type ExecEvent struct {
	ReceivedAt time.Time
	ClOrdID    string
	OrderID    string
	ExecID     string
	ExecType   string
	OrdStatus  string
	Symbol     string
	LastPx     string
	LastQty    string
	CumQty     string
	Text       string
	Fees       []MiscFee
}

// ExecStore keeps the most recent execution events in a fixed-size ring
// buffer. Insertion is O(1) with no allocation on eviction; the buffer is
// pre-allocated at construction.
type ExecStore struct {
	mu     sync.RWMutex
	events []ExecEvent
	head   int // next write position
	count  int // number of valid entries, <= len(events)
}

// NewExecStore creates a store retaining up to capacity events.
func NewExecStore(capacity int) *ExecStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &ExecStore{events: make([]ExecEvent, capacity)}
}

// Add records an event, evicting the oldest when the buffer is full.
func (es *ExecStore) Add(ev ExecEvent) {
	es.mu.Lock()
	defer es.mu.Unlock()

	es.events[es.head] = ev
	es.head = (es.head + 1) % len(es.events)
	if es.count < len(es.events) {
		es.count++
	}
}

// Recent returns up to n events, oldest first. The result is a copy.
func (es *ExecStore) Recent(n int) []ExecEvent {
	es.mu.RLock()
	defer es.mu.RUnlock()

	if n > es.count {
		n = es.count
	}
	if n <= 0 {
		return nil
	}

	result := make([]ExecEvent, n)
	start := es.head - n
	if start < 0 {
		start += len(es.events)
	}
	for i := 0; i < n; i++ {
		result[i] = es.events[(start+i)%len(es.events)]
	}
	return result
}

// Len returns the number of retained events.
func (es *ExecStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.count
}
