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
	"strings"
	"time"

	"prime-fix-go/builder"
	"prime-fix-go/constants"
	"prime-fix-go/utils"

	"github.com/chzyer/readline"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// newOrderIntent is the validated result of parsing a new-order command.
// All values are normalized to their user-facing uppercase form.
type newOrderIntent struct {
	Symbol            string
	OrdType           string
	Side              string
	QtyType           string
	Qty               string
	Price             string
	EffectiveTime     string
	ParticipationRate string
	ExpireTime        string
}

const newOrderUsage = "usage: new <symbol> <MARKET|LIMIT|VWAP> <BUY|SELL> <BASE|QUOTE> <qty> [price] [start] [rate] [end]"

// parseNewOrder validates a new-order command line. Validation is complete
// before any message is built: an invalid command never reaches the wire.
func parseNewOrder(parts []string) (newOrderIntent, error) {
	if len(parts) < 6 {
		return newOrderIntent{}, fmt.Errorf("%s", newOrderUsage)
	}

	intent := newOrderIntent{
		Symbol:  parts[1],
		OrdType: strings.ToUpper(parts[2]),
		Side:    strings.ToUpper(parts[3]),
		QtyType: strings.ToUpper(parts[4]),
		Qty:     parts[5],
	}

	switch intent.OrdType {
	case constants.OrdTypeMarket, constants.OrdTypeLimit, constants.OrdTypeVwap:
	default:
		return newOrderIntent{}, fmt.Errorf("unknown order type %q: must be MARKET, LIMIT or VWAP", parts[2])
	}

	switch intent.Side {
	case constants.SideBuy, constants.SideSell:
	default:
		return newOrderIntent{}, fmt.Errorf("unknown side %q: must be BUY or SELL", parts[3])
	}

	switch intent.QtyType {
	case constants.QtyTypeBase, constants.QtyTypeQuote:
	default:
		return newOrderIntent{}, fmt.Errorf("unknown quantity type %q: must be BASE or QUOTE", parts[4])
	}

	if err := validatePositiveDecimal("quantity", intent.Qty); err != nil {
		return newOrderIntent{}, err
	}

	switch intent.OrdType {
	case constants.OrdTypeMarket:
		if len(parts) > 6 {
			return newOrderIntent{}, fmt.Errorf("MARKET orders do not take a price")
		}

	case constants.OrdTypeLimit:
		if len(parts) < 7 {
			return newOrderIntent{}, fmt.Errorf("LIMIT orders require a price")
		}
		if len(parts) > 7 {
			return newOrderIntent{}, fmt.Errorf("%s", newOrderUsage)
		}
		if err := validatePositiveDecimal("price", parts[6]); err != nil {
			return newOrderIntent{}, err
		}
		intent.Price = parts[6]

	case constants.OrdTypeVwap:
		if len(parts) < 7 {
			return newOrderIntent{}, fmt.Errorf("VWAP orders require a price")
		}
		if len(parts) > 10 {
			return newOrderIntent{}, fmt.Errorf("%s", newOrderUsage)
		}
		if err := validatePositiveDecimal("price", parts[6]); err != nil {
			return newOrderIntent{}, err
		}
		intent.Price = parts[6]

		if len(parts) > 7 {
			if err := validateFixTime("start", parts[7]); err != nil {
				return newOrderIntent{}, err
			}
			intent.EffectiveTime = parts[7]
		}
		if len(parts) > 8 {
			if err := validatePositiveDecimal("participation rate", parts[8]); err != nil {
				return newOrderIntent{}, err
			}
			intent.ParticipationRate = parts[8]
		}
		if len(parts) > 9 {
			if err := validateFixTime("end", parts[9]); err != nil {
				return newOrderIntent{}, err
			}
			intent.ExpireTime = parts[9]
		}
	}

	return intent, nil
}

func validatePositiveDecimal(name, value string) error {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: not a number", name, value)
	}
	if !d.IsPositive() {
		return fmt.Errorf("invalid %s %q: must be positive", name, value)
	}
	return nil
}

func validateFixTime(name, value string) error {
	if _, err := time.Parse(constants.FixTimeFormat, value); err != nil {
		return fmt.Errorf("invalid %s time %q: expected %s", name, value, constants.FixTimeFormat)
	}
	return nil
}

func (a *FixApp) handleNewCommand(parts []string) {
	intent, err := parseNewOrder(parts)
	if err != nil {
		fmt.Println(err)
		return
	}

	msg, clOrdID := builder.BuildNewOrderSingle(builder.NewOrderParams{
		Account:           a.Config.PortfolioId,
		Symbol:            intent.Symbol,
		OrdType:           intent.OrdType,
		Side:              intent.Side,
		QtyType:           intent.QtyType,
		Qty:               intent.Qty,
		Price:             intent.Price,
		EffectiveTime:     intent.EffectiveTime,
		ParticipationRate: intent.ParticipationRate,
		ExpireTime:        intent.ExpireTime,
	}, a.Config.SvcAccountId, a.Config.TargetCompId)

	if err := a.send(msg); err != nil {
		fmt.Printf("Failed to send order: %v\n", err)
		return
	}
	fmt.Printf("Submitted %s %s %s %s %s, clOrdId=%s\n",
		intent.OrdType, intent.Side, intent.Qty, intent.QtyType, intent.Symbol, clOrdID)
}

// statusIntent holds the four fields an Order Status Request needs, after
// explicit arguments and the ledger have been merged.
type statusIntent struct {
	ClOrdID string
	OrderID string
	Side    string
	Symbol  string
}

const statusUsage = "usage: status <clOrdId> [orderId] [side] [symbol]"

// resolveStatusRequest merges explicit command arguments over the ledger
// record: a value supplied on the command line wins, missing ones are filled
// from the tracked order. An order absent from the ledger can still be
// queried when all fields are supplied explicitly. The request is rejected
// when any of the three remains unresolved; a partial status request is
// never sent.
func resolveStatusRequest(parts []string, lookup func(string) (Order, bool)) (statusIntent, error) {
	if len(parts) < 2 || len(parts) > 5 {
		return statusIntent{}, fmt.Errorf("%s", statusUsage)
	}

	intent := statusIntent{ClOrdID: parts[1]}
	if len(parts) > 2 {
		intent.OrderID = parts[2]
	}
	if len(parts) > 3 {
		intent.Side = strings.ToUpper(parts[3])
		if intent.Side != constants.SideBuy && intent.Side != constants.SideSell {
			return statusIntent{}, fmt.Errorf("unknown side %q: must be BUY or SELL", parts[3])
		}
	}
	if len(parts) > 4 {
		intent.Symbol = parts[4]
	}

	if order, ok := lookup(intent.ClOrdID); ok {
		if intent.OrderID == "" {
			intent.OrderID = order.OrderID
		}
		if intent.Side == "" {
			intent.Side = order.Side
		}
		if intent.Symbol == "" {
			intent.Symbol = order.Symbol
		}
	}

	switch {
	case intent.OrderID == "":
		return statusIntent{}, fmt.Errorf("no venue order id for %s: supply one or wait for the acknowledgment", intent.ClOrdID)
	case intent.Side == "":
		return statusIntent{}, fmt.Errorf("no side for %s: supply BUY or SELL", intent.ClOrdID)
	case intent.Symbol == "":
		return statusIntent{}, fmt.Errorf("no symbol for %s: supply one", intent.ClOrdID)
	}
	return intent, nil
}

// resolveCancelRequest validates a cancel command against the ledger. Only
// tracked, acknowledged orders can be canceled; the venue needs the order id
// it assigned.
func resolveCancelRequest(parts []string, lookup func(string) (Order, bool)) (Order, error) {
	if len(parts) != 2 {
		return Order{}, fmt.Errorf("usage: cancel <clOrdId>")
	}
	order, ok := lookup(parts[1])
	if !ok {
		return Order{}, fmt.Errorf("unknown order %q: use list to see tracked orders", parts[1])
	}
	if order.OrderID == "" {
		return Order{}, fmt.Errorf("order %s has no venue order id yet; wait for the acknowledgment", order.ClOrdID)
	}
	return order, nil
}

func (a *FixApp) handleStatusCommand(parts []string) {
	intent, err := resolveStatusRequest(parts, a.Orders.Get)
	if err != nil {
		fmt.Println(err)
		return
	}

	msg := builder.BuildOrderStatusRequest(
		intent.ClOrdID, intent.OrderID, intent.Side, intent.Symbol,
		a.Config.SvcAccountId, a.Config.TargetCompId)
	if err := a.send(msg); err != nil {
		fmt.Printf("Failed to send status request: %v\n", err)
		return
	}
	fmt.Printf("Status requested for %s\n", intent.ClOrdID)
	if order, ok := a.Orders.Get(intent.ClOrdID); ok {
		renderOrders([]Order{order})
	}
}

func (a *FixApp) handleCancelCommand(parts []string) {
	order, err := resolveCancelRequest(parts, a.Orders.Get)
	if err != nil {
		fmt.Println(err)
		return
	}

	msg, cancelID := builder.BuildOrderCancelRequest(builder.CancelOrderParams{
		Account:     a.Config.PortfolioId,
		OrigClOrdID: order.ClOrdID,
		OrderID:     order.OrderID,
		Symbol:      order.Symbol,
		Side:        order.Side,
		Qty:         order.Quantity,
		QtyType:     order.QuantityType,
	}, a.Config.SvcAccountId, a.Config.TargetCompId)

	if err := a.send(msg); err != nil {
		fmt.Printf("Failed to send cancel request: %v\n", err)
		return
	}
	fmt.Printf("Cancel requested for %s, cancelId=%s\n", order.ClOrdID, cancelID)
}

func (a *FixApp) handleListCommand() {
	renderOrders(a.Orders.All())
}

func (a *FixApp) handleExecsCommand(parts []string) {
	if len(parts) < 2 {
		renderExecs(a.Execs.Recent(20))
		return
	}

	if a.Db == nil {
		fmt.Println("Execution history database is not available.")
		return
	}
	history, err := a.Db.ExecutionsForOrder(parts[1])
	if err != nil {
		a.log.Error("failed to query execution history", zap.Error(err))
		fmt.Printf("Failed to query execution history: %v\n", err)
		return
	}

	events := make([]ExecEvent, len(history))
	for i, e := range history {
		events[i] = ExecEvent{
			ReceivedAt: e.ReceivedAt,
			ClOrdID:    e.ClOrdID,
			OrderID:    e.OrderID,
			ExecType:   e.ExecType,
			OrdStatus:  e.OrdStatus,
			Symbol:     e.Symbol,
			LastPx:     e.LastPx,
			LastQty:    e.LastQty,
			CumQty:     e.CumQty,
			Text:       e.Text,
		}
	}
	renderExecs(events)
}

// Repl runs the interactive command loop until exit or an authentication
// failure. It blocks the calling goroutine; FIX callbacks keep running on
// the engine's threads.
func Repl(app *FixApp) {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("new",
			readline.PcItem("BTC-USD",
				readline.PcItem("MARKET", readline.PcItem("BUY"), readline.PcItem("SELL")),
				readline.PcItem("LIMIT", readline.PcItem("BUY"), readline.PcItem("SELL")),
				readline.PcItem("VWAP", readline.PcItem("BUY"), readline.PcItem("SELL")),
			),
			readline.PcItem("ETH-USD",
				readline.PcItem("MARKET", readline.PcItem("BUY"), readline.PcItem("SELL")),
				readline.PcItem("LIMIT", readline.PcItem("BUY"), readline.PcItem("SELL")),
				readline.PcItem("VWAP", readline.PcItem("BUY"), readline.PcItem("SELL")),
			),
		),
		readline.PcItem("status"),
		readline.PcItem("cancel"),
		readline.PcItem("list"),
		readline.PcItem("execs"),
		readline.PcItem("help"),
		readline.PcItem("version"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "FIX> ",
		HistoryFile:     "/tmp/primefix_history",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Failed to create readline: %v\n", err)
		return
	}
	defer rl.Close()

	for {
		if app.ShouldExit() {
			fmt.Println("Exiting due to authentication failures. Please check your credentials.")
			return
		}

		line, err := rl.Readline()
		if err != nil {
			break
		}

		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "new":
			app.handleNewCommand(parts)
		case "status":
			app.handleStatusCommand(parts)
		case "cancel":
			app.handleCancelCommand(parts)
		case "list":
			app.handleListCommand()
		case "execs":
			app.handleExecsCommand(parts)
		case "help":
			displayHelp()
		case "version":
			fmt.Println(utils.FullVersion())
		case "exit", "quit":
			return
		default:
			fmt.Printf("Unknown command %q. Type help for usage.\n", parts[0])
		}
	}
}
