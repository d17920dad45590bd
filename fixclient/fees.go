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
	"strconv"
	"strings"
)

// MiscFee is one entry of the MiscFees repeating group (tags 136/137/138/139)
// on an execution report.
type MiscFee struct {
	Amt      string `json:"amt"`
	Currency string `json:"currency"`
	FeeType  string `json:"feeType"`
}

const soh = "\x01"

// ParseMiscFees extracts the MiscFees group from a raw FIX message string.
// The group is scanned off the raw message rather than through the quickfix
// repeating-group API; group entries are tag-ordered per FIX encoding, so a
// single pass over the fields suffices. Returns nil when the group is absent
// or empty; a count larger than the entries actually present yields only the
// present entries.
func ParseMiscFees(raw string) []MiscFee {
	var (
		count int
		fees  []MiscFee
	)
	for _, field := range strings.Split(raw, soh) {
		tag, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch tag {
		case "136":
			count, _ = strconv.Atoi(value)
			if count > 0 {
				fees = make([]MiscFee, 0, count)
			}
		case "137":
			if fees != nil && len(fees) < count {
				fees = append(fees, MiscFee{Amt: value})
			}
		case "138":
			if n := len(fees); n > 0 && fees[n-1].Currency == "" {
				fees[n-1].Currency = value
			}
		case "139":
			if n := len(fees); n > 0 && fees[n-1].FeeType == "" {
				fees[n-1].FeeType = value
			}
		}
	}
	if len(fees) == 0 {
		return nil
	}
	return fees
}
