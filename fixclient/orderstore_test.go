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
	"fmt"
	"sync"
	"testing"
)

func newTestStore(t *testing.T) *OrderStore {
	t.Helper()
	store, err := NewOrderStore(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store
}

// TestOrderStore_AddAndGet verifies that orders can be added and retrieved
// by ClOrdID.
func TestOrderStore_AddAndGet(t *testing.T) {
	store := newTestStore(t)

	store.Add(&Order{
		ClOrdID:      "ord_1",
		Symbol:       "BTC-USD",
		Side:         "BUY",
		Quantity:     "0.01",
		QuantityType: "BASE",
		LimitPrice:   "50000",
	})

	order, ok := store.Get("ord_1")
	if !ok {
		t.Fatal("expected to retrieve order")
	}
	if order.Symbol != "BTC-USD" {
		t.Errorf("expected Symbol=BTC-USD, got %s", order.Symbol)
	}
	if order.LimitPrice != "50000" {
		t.Errorf("expected LimitPrice=50000, got %s", order.LimitPrice)
	}
}

// TestOrderStore_Get_NotFound verifies the miss path.
func TestOrderStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)
	if _, ok := store.Get("nonexistent"); ok {
		t.Error("expected miss for non-existent order")
	}
}

// TestOrderStore_Get_ReturnsDefensiveCopy verifies mutation of a retrieved
// order does not affect the stored record.
func TestOrderStore_Get_ReturnsDefensiveCopy(t *testing.T) {
	store := newTestStore(t)
	store.Add(&Order{ClOrdID: "ord_1", Symbol: "BTC-USD"})

	order, _ := store.Get("ord_1")
	order.Symbol = "MODIFIED"

	original, _ := store.Get("ord_1")
	if original.Symbol == "MODIFIED" {
		t.Error("Get should return a defensive copy, but the stored order was modified")
	}
}

// TestOrderStore_Add_CopiesInput verifies the caller keeps ownership of the
// order it passed in.
func TestOrderStore_Add_CopiesInput(t *testing.T) {
	store := newTestStore(t)

	order := &Order{ClOrdID: "ord_1", Symbol: "BTC-USD"}
	store.Add(order)
	order.Symbol = "MODIFIED"

	stored, _ := store.Get("ord_1")
	if stored.Symbol == "MODIFIED" {
		t.Error("Add should copy the input, but the stored order aliased it")
	}
}

// TestOrderStore_All_Sorted verifies listing is sorted by ClOrdID for
// stable output.
func TestOrderStore_All_Sorted(t *testing.T) {
	store := newTestStore(t)
	store.Add(&Order{ClOrdID: "ord_3"})
	store.Add(&Order{ClOrdID: "ord_1"})
	store.Add(&Order{ClOrdID: "ord_2"})

	all := store.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}
	for i, want := range []string{"ord_1", "ord_2", "ord_3"} {
		if all[i].ClOrdID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, all[i].ClOrdID)
		}
	}
}

// TestOrderStore_UpdateFromExecReport verifies correlation of an execution
// report to a tracked order.
func TestOrderStore_UpdateFromExecReport(t *testing.T) {
	store := newTestStore(t)
	store.Add(&Order{ClOrdID: "ord_1", Symbol: "BTC-USD"})

	updated := store.UpdateFromExecReport(&ExecReport{
		ClOrdID:   "ord_1",
		OrderID:   "venue-abc",
		OrdStatus: "0",
		CumQty:    "0.005",
		LeavesQty: "0.005",
	})
	if !updated {
		t.Fatal("expected update to apply")
	}

	order, _ := store.Get("ord_1")
	if order.OrderID != "venue-abc" {
		t.Errorf("expected OrderID=venue-abc, got %s", order.OrderID)
	}
	if order.OrdStatus != "0" {
		t.Errorf("expected OrdStatus=0, got %s", order.OrdStatus)
	}
	if order.CumQty != "0.005" {
		t.Errorf("expected CumQty=0.005, got %s", order.CumQty)
	}
}

// TestOrderStore_UpdateFromExecReport_UnknownOrder verifies reports for
// untracked orders are dropped without creating records.
func TestOrderStore_UpdateFromExecReport_UnknownOrder(t *testing.T) {
	store := newTestStore(t)

	if store.UpdateFromExecReport(&ExecReport{ClOrdID: "ghost", OrderID: "venue-abc"}) {
		t.Error("expected report for unknown order to be dropped")
	}
	if store.Len() != 0 {
		t.Errorf("expected no records created, got %d", store.Len())
	}
}

// TestOrderStore_UpdateFromExecReport_RequiresBothIds verifies reports
// missing either identifier are ignored.
func TestOrderStore_UpdateFromExecReport_RequiresBothIds(t *testing.T) {
	store := newTestStore(t)
	store.Add(&Order{ClOrdID: "ord_1"})

	if store.UpdateFromExecReport(&ExecReport{ClOrdID: "ord_1"}) {
		t.Error("expected report without OrderID to be ignored")
	}
	if store.UpdateFromExecReport(&ExecReport{OrderID: "venue-abc"}) {
		t.Error("expected report without ClOrdID to be ignored")
	}

	order, _ := store.Get("ord_1")
	if order.OrderID != "" {
		t.Errorf("expected OrderID to stay empty, got %s", order.OrderID)
	}
}

// TestOrderStore_UpdateFromExecReport_IdempotentReplay verifies replaying
// the same report leaves the record unchanged.
func TestOrderStore_UpdateFromExecReport_IdempotentReplay(t *testing.T) {
	store := newTestStore(t)
	store.Add(&Order{ClOrdID: "ord_1"})

	report := &ExecReport{ClOrdID: "ord_1", OrderID: "venue-abc", OrdStatus: "0"}
	store.UpdateFromExecReport(report)
	first, _ := store.Get("ord_1")

	store.UpdateFromExecReport(report)
	second, _ := store.Get("ord_1")

	if first != second {
		t.Errorf("replay changed the record: %+v vs %+v", first, second)
	}
}

// TestOrderStore_UpdateFromExecReport_VenueIdChange verifies a changed
// venue order id overwrites the recorded one.
func TestOrderStore_UpdateFromExecReport_VenueIdChange(t *testing.T) {
	store := newTestStore(t)
	store.Add(&Order{ClOrdID: "ord_1"})

	store.UpdateFromExecReport(&ExecReport{ClOrdID: "ord_1", OrderID: "venue-1"})
	store.UpdateFromExecReport(&ExecReport{ClOrdID: "ord_1", OrderID: "venue-2"})

	order, _ := store.Get("ord_1")
	if order.OrderID != "venue-2" {
		t.Errorf("expected latest venue id to win, got %s", order.OrderID)
	}
}

// TestOrderStore_UpdateFromExecReport_PreservesAbsentFields verifies fields
// absent from a report do not wipe earlier state.
func TestOrderStore_UpdateFromExecReport_PreservesAbsentFields(t *testing.T) {
	store := newTestStore(t)
	store.Add(&Order{ClOrdID: "ord_1"})

	store.UpdateFromExecReport(&ExecReport{ClOrdID: "ord_1", OrderID: "venue-abc", OrdStatus: "1", CumQty: "0.5"})
	store.UpdateFromExecReport(&ExecReport{ClOrdID: "ord_1", OrderID: "venue-abc", OrdStatus: "2"})

	order, _ := store.Get("ord_1")
	if order.OrdStatus != "2" {
		t.Errorf("expected OrdStatus=2, got %s", order.OrdStatus)
	}
	if order.CumQty != "0.5" {
		t.Errorf("expected CumQty preserved as 0.5, got %s", order.CumQty)
	}
}

// TestOrderStore_ConcurrentAccess verifies the ledger survives concurrent
// writers and readers without losing records. Run with -race.
func TestOrderStore_ConcurrentAccess(t *testing.T) {
	store := newTestStore(t)

	const orders = 100
	var wg sync.WaitGroup
	for i := 0; i < orders; i++ {
		wg.Add(2)
		clOrdID := fmt.Sprintf("ord_%d", i)
		go func() {
			defer wg.Done()
			store.Add(&Order{ClOrdID: clOrdID, Symbol: "BTC-USD"})
			store.UpdateFromExecReport(&ExecReport{ClOrdID: clOrdID, OrderID: "venue-" + clOrdID})
		}()
		go func() {
			defer wg.Done()
			store.Get(clOrdID)
			store.All()
		}()
	}
	wg.Wait()

	if store.Len() != orders {
		t.Errorf("expected %d orders, got %d", orders, store.Len())
	}
	for i := 0; i < orders; i++ {
		clOrdID := fmt.Sprintf("ord_%d", i)
		order, ok := store.Get(clOrdID)
		if !ok {
			t.Fatalf("missing order %s", clOrdID)
		}
		if order.OrderID != "venue-"+clOrdID {
			t.Errorf("order %s: expected venue id, got %q", clOrdID, order.OrderID)
		}
	}
}
