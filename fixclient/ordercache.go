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
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrStoreCorrupt is returned when the order cache file exists but cannot be
// parsed. Startup must fail in that case rather than silently discarding
// whatever the file held.
var ErrStoreCorrupt = errors.New("order cache file is corrupt")

// OrderCache serializes the order ledger to a single JSON file. The file is
// replaced wholesale on every save; there is no append log and no schema
// versioning.
type OrderCache struct {
	path string
}

// NewOrderCache returns a cache backed by the given file path.
func NewOrderCache(path string) *OrderCache {
	return &OrderCache{path: path}
}

// Load reads the snapshot file. A missing file is not an error and yields an
// empty ledger; an unreadable or unparsable file is surfaced as
// ErrStoreCorrupt for the caller to treat as fatal.
func (c *OrderCache) Load() (map[string]*Order, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]*Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read order cache %s: %w", c.path, err)
	}

	var orders map[string]*Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreCorrupt, c.path, err)
	}
	if orders == nil {
		orders = map[string]*Order{}
	}
	return orders, nil
}

// Save atomically replaces the snapshot file with the given ledger contents.
// The write goes to a temp file first so a crash mid-save never leaves a
// truncated snapshot behind.
func (c *OrderCache) Save(orders map[string]*Order) error {
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode order cache: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write order cache %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace order cache %s: %w", c.path, err)
	}
	return nil
}
