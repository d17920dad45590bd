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
	"strconv"
	"sync/atomic"
	"time"
)

var lastTick atomic.Int64

// nextTick returns a strictly increasing nanosecond tick. If the clock has
// not advanced since the previous call, the previous tick plus one is used,
// so concurrent callers never observe a duplicate.
func nextTick() int64 {
	for {
		now := time.Now().UnixNano()
		last := lastTick.Load()
		if now <= last {
			now = last + 1
		}
		if lastTick.CompareAndSwap(last, now) {
			return now
		}
	}
}

// NewOrderID returns a client order identifier unique for the process
// lifetime. The nanosecond base keeps identifiers unique across restarts of
// the same order cache as well.
func NewOrderID() string {
	return "ord_" + strconv.FormatInt(nextTick(), 10)
}

// NewCancelID returns a cancel request identifier. The prefix keeps cancel
// requests distinguishable from new orders in venue logs.
func NewCancelID() string {
	return "cxl_" + strconv.FormatInt(nextTick(), 10)
}
