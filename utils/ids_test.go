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

package utils

import (
	"strings"
	"sync"
	"testing"
)

// TestNewOrderID_Prefix verifies order and cancel ids are distinguishable
// by prefix.
func TestNewOrderID_Prefix(t *testing.T) {
	if id := NewOrderID(); !strings.HasPrefix(id, "ord_") {
		t.Errorf("expected ord_ prefix, got %s", id)
	}
	if id := NewCancelID(); !strings.HasPrefix(id, "cxl_") {
		t.Errorf("expected cxl_ prefix, got %s", id)
	}
}

// TestNewOrderID_UniqueSequential verifies rapid sequential generation never
// repeats an id, even when the clock does not advance between calls.
func TestNewOrderID_UniqueSequential(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		id := NewOrderID()
		if seen[id] {
			t.Fatalf("duplicate id %s at iteration %d", id, i)
		}
		seen[id] = true
	}
}

// TestNewOrderID_UniqueConcurrent verifies uniqueness under concurrent
// generation from multiple goroutines.
func TestNewOrderID_UniqueConcurrent(t *testing.T) {
	const (
		goroutines = 16
		perG       = 500
	)

	var (
		mu   sync.Mutex
		seen = make(map[string]bool, goroutines*perG)
		wg   sync.WaitGroup
	)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]string, 0, perG)
			for i := 0; i < perG; i++ {
				ids = append(ids, NewOrderID())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				if seen[id] {
					t.Errorf("duplicate id %s", id)
				}
				seen[id] = true
			}
		}()
	}
	wg.Wait()

	if len(seen) != goroutines*perG {
		t.Errorf("expected %d unique ids, got %d", goroutines*perG, len(seen))
	}
}
