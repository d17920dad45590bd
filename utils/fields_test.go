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
	"testing"

	"prime-fix-go/constants"

	"github.com/quickfixgo/quickfix"
)

// TestGetString_AbsentField verifies absent fields read as empty strings
// rather than errors.
func TestGetString_AbsentField(t *testing.T) {
	msg := quickfix.NewMessage()
	if got := GetString(msg, constants.TagSymbol); got != "" {
		t.Errorf("expected empty string for absent field, got %q", got)
	}
}

// TestGetString_PresentField verifies present fields are returned verbatim.
func TestGetString_PresentField(t *testing.T) {
	msg := quickfix.NewMessage()
	msg.Body.SetField(constants.TagSymbol, quickfix.FIXString("BTC-USD"))

	if got := GetString(msg, constants.TagSymbol); got != "BTC-USD" {
		t.Errorf("expected BTC-USD, got %q", got)
	}
}

// TestExtractQuantity verifies quantity resolution order: OrderQty first,
// CashOrderQty second, zero BASE default last.
func TestExtractQuantity(t *testing.T) {
	tests := []struct {
		name          string
		orderQty      string
		cashOrderQty  string
		wantValue     string
		wantKind      string
		wantDefaulted bool
	}{
		{"base quantity", "0.5", "", "0.5", constants.QtyTypeBase, false},
		{"quote quantity", "", "1000", "1000", constants.QtyTypeQuote, false},
		{"base wins when both present", "0.5", "1000", "0.5", constants.QtyTypeBase, false},
		{"neither present defaults to zero base", "", "", "0", constants.QtyTypeBase, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := quickfix.NewMessage()
			if tt.orderQty != "" {
				msg.Body.SetField(constants.TagOrderQty, quickfix.FIXString(tt.orderQty))
			}
			if tt.cashOrderQty != "" {
				msg.Body.SetField(constants.TagCashOrderQty, quickfix.FIXString(tt.cashOrderQty))
			}

			got := ExtractQuantity(msg)
			if got.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", got.Value, tt.wantValue)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if got.Defaulted != tt.wantDefaulted {
				t.Errorf("Defaulted = %v, want %v", got.Defaulted, tt.wantDefaulted)
			}
		})
	}
}
