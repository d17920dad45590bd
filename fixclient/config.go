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
	"os"
	"strings"

	"prime-fix-go/constants"
)

// Config holds the Coinbase Prime credentials and session identity.
type Config struct {
	AccessKey    string // API access key (tag 9407)
	SigningKey   string // API secret used as the HMAC key
	Passphrase   string // API passphrase (tag 554)
	SvcAccountId string // Service account id, used as SenderCompID
	PortfolioId  string // Portfolio id (tag 1)
	TargetCompId string // Counterparty comp id, default COIN
}

// ConfigFromEnv builds a Config from environment variables. Call
// godotenv.Load first when a .env file should be honored.
func ConfigFromEnv() (*Config, error) {
	c := &Config{
		AccessKey:    strings.TrimSpace(os.Getenv("ACCESS_KEY")),
		SigningKey:   strings.TrimSpace(os.Getenv("SIGNING_KEY")),
		Passphrase:   strings.TrimSpace(os.Getenv("PASSPHRASE")),
		SvcAccountId: strings.TrimSpace(os.Getenv("SVC_ACCOUNT_ID")),
		PortfolioId:  strings.TrimSpace(os.Getenv("PORTFOLIO_ID")),
		TargetCompId: strings.TrimSpace(os.Getenv("TARGET_COMP_ID")),
	}
	if c.TargetCompId == "" {
		c.TargetCompId = constants.DefaultTargetCompID
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	for _, item := range []struct {
		name  string
		value string
	}{
		{"ACCESS_KEY", c.AccessKey},
		{"SIGNING_KEY", c.SigningKey},
		{"PASSPHRASE", c.Passphrase},
		{"SVC_ACCOUNT_ID", c.SvcAccountId},
		{"PORTFOLIO_ID", c.PortfolioId},
		{"TARGET_COMP_ID", c.TargetCompId},
	} {
		if item.value == "" {
			return fmt.Errorf("required environment variable %s is not set", item.name)
		}
	}
	return nil
}
