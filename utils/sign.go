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
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// ErrEmptySigningKey is returned when the HMAC secret is missing. A logon
// without a signature is a protocol violation, so callers must not ignore it.
var ErrEmptySigningKey = errors.New("signing key is empty")

// Sign computes the Coinbase Prime logon signature:
// base64(HMAC-SHA256(secret, timestamp + msgType + seqNum + apiKey +
// targetCompId + passphrase)).
func Sign(timestamp, msgType, seqNum, apiKey, targetCompId, passphrase, apiSecret string) (string, error) {
	if apiSecret == "" {
		return "", ErrEmptySigningKey
	}

	h := hmac.New(sha256.New, []byte(apiSecret))
	h.Write([]byte(timestamp + msgType + seqNum + apiKey + targetCompId + passphrase))
	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}
