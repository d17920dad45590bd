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
	"prime-fix-go/constants"

	"github.com/quickfixgo/quickfix"
)

// GetString returns a body field value, or "" when the field is absent.
// Absence is an expected outcome during message capture, not an error.
func GetString(msg *quickfix.Message, tag quickfix.Tag) string {
	value, err := msg.Body.GetString(tag)
	if err != nil {
		return ""
	}
	return value
}

// Quantity is the result of an order-quantity lookup on a captured message.
// Defaulted is set when neither quantity tag was present and the zero
// quantity under BASE was substituted.
type Quantity struct {
	Value     string
	Kind      string // constants.QtyTypeBase or constants.QtyTypeQuote
	Defaulted bool
}

// quantityCandidates is the ordered list of quantity tags tried on a
// captured NewOrderSingle. First present tag wins.
var quantityCandidates = []struct {
	tag  quickfix.Tag
	kind string
}{
	{constants.TagOrderQty, constants.QtyTypeBase},
	{constants.TagCashOrderQty, constants.QtyTypeQuote},
}

// ExtractQuantity resolves the order quantity and its denomination from a
// captured message: OrderQty (38) first, CashOrderQty (152) second, then a
// zero BASE quantity. The venue always populates one of the two tags on
// messages this client builds; the default exists so a malformed capture
// never aborts message processing.
func ExtractQuantity(msg *quickfix.Message) Quantity {
	for _, candidate := range quantityCandidates {
		if value := GetString(msg, candidate.tag); value != "" {
			return Quantity{Value: value, Kind: candidate.kind}
		}
	}
	return Quantity{Value: constants.DefaultQuantity, Kind: constants.QtyTypeBase, Defaulted: true}
}
