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
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestOrderCache_RoundTrip verifies a saved ledger loads back identically,
// including orders that have not been acknowledged yet.
func TestOrderCache_RoundTrip(t *testing.T) {
	cache := NewOrderCache(filepath.Join(t.TempDir(), "orders.json"))

	orders := map[string]*Order{
		"ord_1": {
			ClOrdID:      "ord_1",
			OrderID:      "venue-abc",
			Side:         "BUY",
			Symbol:       "BTC-USD",
			Quantity:     "0.01",
			QuantityType: "BASE",
			LimitPrice:   "50000",
			OrdStatus:    "1",
			CumQty:       "0.005",
		},
		"ord_2": {
			ClOrdID:      "ord_2",
			Side:         "SELL",
			Symbol:       "ETH-USD",
			Quantity:     "1000",
			QuantityType: "QUOTE",
		},
	}

	if err := cache.Save(orders); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := cache.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != len(orders) {
		t.Fatalf("expected %d orders, got %d", len(orders), len(loaded))
	}
	for id, want := range orders {
		got, ok := loaded[id]
		if !ok {
			t.Fatalf("missing order %s", id)
		}
		if *got != *want {
			t.Errorf("order %s: got %+v, want %+v", id, *got, *want)
		}
	}
}

// TestOrderCache_Load_MissingFile verifies a missing snapshot yields an
// empty ledger, not an error.
func TestOrderCache_Load_MissingFile(t *testing.T) {
	cache := NewOrderCache(filepath.Join(t.TempDir(), "does-not-exist.json"))

	orders, err := cache.Load()
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected empty ledger, got %d orders", len(orders))
	}
}

// TestOrderCache_Load_Corrupt verifies an unparsable snapshot surfaces
// ErrStoreCorrupt rather than an empty ledger.
func TestOrderCache_Load_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewOrderCache(path).Load()
	if !errors.Is(err, ErrStoreCorrupt) {
		t.Errorf("expected ErrStoreCorrupt, got %v", err)
	}
}

// TestOrderCache_Save_ReplacesExisting verifies a save fully replaces the
// previous snapshot.
func TestOrderCache_Save_ReplacesExisting(t *testing.T) {
	cache := NewOrderCache(filepath.Join(t.TempDir(), "orders.json"))

	if err := cache.Save(map[string]*Order{"ord_1": {ClOrdID: "ord_1"}}); err != nil {
		t.Fatal(err)
	}
	if err := cache.Save(map[string]*Order{"ord_2": {ClOrdID: "ord_2"}}); err != nil {
		t.Fatal(err)
	}

	loaded, err := cache.Load()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := loaded["ord_1"]; ok {
		t.Error("expected ord_1 to be gone after replacement save")
	}
	if _, ok := loaded["ord_2"]; !ok {
		t.Error("expected ord_2 to be present")
	}
}

// TestOrderStore_PersistsThroughCache verifies ledger mutations reach disk
// and survive a reload into a fresh store.
func TestOrderStore_PersistsThroughCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")

	store, err := NewOrderStore(NewOrderCache(path), nil)
	if err != nil {
		t.Fatal(err)
	}
	store.Add(&Order{ClOrdID: "ord_1", Symbol: "BTC-USD"})
	store.UpdateFromExecReport(&ExecReport{ClOrdID: "ord_1", OrderID: "venue-abc"})

	reloaded, err := NewOrderStore(NewOrderCache(path), nil)
	if err != nil {
		t.Fatal(err)
	}
	order, ok := reloaded.Get("ord_1")
	if !ok {
		t.Fatal("expected order to survive reload")
	}
	if order.OrderID != "venue-abc" {
		t.Errorf("expected venue id to survive reload, got %q", order.OrderID)
	}
}
