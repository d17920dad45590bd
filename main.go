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

// Command prime-fix-go is an interactive FIX order-entry client for
// Coinbase Prime. It connects as an initiator, authenticates with signed
// logons and exposes a command loop for submitting, canceling and tracking
// orders.
package main

import (
	"fmt"
	"os"
	"time"

	"prime-fix-go/database"
	"prime-fix-go/fixclient"
	"prime-fix-go/utils"

	"github.com/joho/godotenv"
	"github.com/quickfixgo/quickfix"
	"go.uber.org/zap"
)

const (
	orderCachePath  = "orders.json"
	executionDbPath = "executions.db"
	defaultFixCfg   = "fix.cfg"
)

func main() {
	fmt.Println(utils.FullVersion())

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env")
	}

	config, err := fixclient.ConfigFromEnv()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	cfgPath := defaultFixCfg
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfgFile, err := os.Open(cfgPath)
	if err != nil {
		logger.Fatal("failed to open fix settings", zap.String("path", cfgPath), zap.Error(err))
	}
	settings, err := quickfix.ParseSettings(cfgFile)
	cfgFile.Close()
	if err != nil {
		logger.Fatal("failed to parse fix settings", zap.String("path", cfgPath), zap.Error(err))
	}

	db, err := database.NewExecutionDb(executionDbPath)
	if err != nil {
		logger.Warn("execution history disabled", zap.Error(err))
		db = nil
	} else {
		defer db.Close()
	}

	cache := fixclient.NewOrderCache(orderCachePath)
	orders, err := fixclient.NewOrderStore(cache, logger)
	if err != nil {
		// A corrupt cache must stop startup; continuing would shadow
		// live orders with an empty ledger.
		logger.Fatal("failed to load order cache", zap.String("path", orderCachePath), zap.Error(err))
	}
	defer orders.Flush()
	logger.Info("order ledger loaded", zap.Int("orders", orders.Len()))

	app := fixclient.NewFixApp(config, orders, db, logger)

	initiator, err := quickfix.NewInitiator(
		app,
		quickfix.NewMemoryStoreFactory(),
		settings,
		quickfix.NewScreenLogFactory(),
	)
	if err != nil {
		logger.Fatal("failed to create initiator", zap.Error(err))
	}
	if err := initiator.Start(); err != nil {
		logger.Fatal("failed to start initiator", zap.Error(err))
	}
	defer initiator.Stop()

	// Wait for logon before handing over to the command loop. Bounded so a
	// dead endpoint or bad credentials cannot hang startup forever.
	for i := 0; i < 30; i++ {
		if app.LoggedOn() {
			break
		}
		if app.ShouldExit() {
			logger.Fatal("authentication failed, check your credentials")
		}
		time.Sleep(time.Second)
	}
	if !app.LoggedOn() {
		logger.Warn("no logon after 30s, commands will fail until the session is up")
	}

	fixclient.Repl(app)
}
