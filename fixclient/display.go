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

	"prime-fix-go/constants"
)

func displayConnectionSuccess(session string) {
	fmt.Printf("\n✓ Connected and authenticated: %s\n\n", session)
}

func displayHelp() {
	fmt.Print(`Commands:
  --- Order Entry ---
  new <symbol> <MARKET|LIMIT|VWAP> <BUY|SELL> <BASE|QUOTE> <qty> [price] [start] [rate] [end]
                                - Submit new order
  status <clOrdId> [orderId] [side] [symbol]
                                - Request order status; omitted fields are
                                  filled from the tracked order
  cancel <clOrdId>              - Cancel an order
  list                          - List tracked orders
  execs [clOrdId]               - Show recent execution reports

  --- General ---
  help                          - Show this help message
  version, exit, quit

Order Notes:
  MARKET  - immediate-or-cancel, no price
  LIMIT   - good-till-cancel, price required
  VWAP    - good-till-date, price required; optional window start,
            participation rate and window end (UTC, ` + constants.FixTimeFormat + `)
  BASE sizes the order in the traded asset, QUOTE in quote currency.

Examples:
  new BTC-USD LIMIT BUY BASE 0.01 50000   - Limit buy 0.01 BTC at $50k
  new ETH-USD MARKET SELL QUOTE 1000      - Market sell $1000 of ETH
  cancel ord_1712345678901234567          - Cancel order
`)
}

func displayExecReport(er *ExecReport) {
	fmt.Printf("\n📨 Execution Report: clOrdId=%s orderId=%s execType=%s ordStatus=%s\n",
		orDash(er.ClOrdID), orDash(er.OrderID),
		execTypeName(er.ExecType), ordStatusName(er.OrdStatus))
	if er.LastQty != "" || er.LastPx != "" {
		fmt.Printf("   fill: lastQty=%s lastPx=%s cumQty=%s leavesQty=%s avgPx=%s\n",
			orDash(er.LastQty), orDash(er.LastPx), orDash(er.CumQty),
			orDash(er.LeavesQty), orDash(er.AvgPx))
	}
	for _, fee := range er.Fees {
		fmt.Printf("   fee: %s %s (%s)\n", fee.Amt, fee.Currency, feeTypeName(fee.FeeType))
	}
	if er.Text != "" {
		fmt.Printf("   text: %s\n", er.Text)
	}
}

func displayCancelReject(origClOrdID, reason, text string) {
	fmt.Printf("\n❌ Cancel rejected for %s (reason=%s)", orDash(origClOrdID), orDash(reason))
	if text != "" {
		fmt.Printf(": %s", text)
	}
	fmt.Println()
}

func renderOrders(orders []Order) {
	if len(orders) == 0 {
		fmt.Println("No tracked orders.")
		return
	}

	fmt.Printf("┌─────────────────────────────┬──────────────────────────────────────┬──────┬──────────┬──────────────┬───────┬────────────┬──────────────┐\n")
	fmt.Printf("│ ClOrdID                     │ OrderID                              │ Side │ Symbol   │ Qty          │ Type  │ Price      │ Status       │\n")
	fmt.Printf("├─────────────────────────────┼──────────────────────────────────────┼──────┼──────────┼──────────────┼───────┼────────────┼──────────────┤\n")
	for _, o := range orders {
		fmt.Printf("│ %-27s │ %-36s │ %-4s │ %-8s │ %-12s │ %-5s │ %-10s │ %-12s │\n",
			truncate(o.ClOrdID, 27), truncate(orDash(o.OrderID), 36),
			o.Side, truncate(o.Symbol, 8), truncate(o.Quantity, 12),
			o.QuantityType, truncate(orDash(o.LimitPrice), 10),
			truncate(ordStatusName(o.OrdStatus), 12))
	}
	fmt.Printf("└─────────────────────────────┴──────────────────────────────────────┴──────┴──────────┴──────────────┴───────┴────────────┴──────────────┘\n")
}

func renderExecs(events []ExecEvent) {
	if len(events) == 0 {
		fmt.Println("No execution reports received.")
		return
	}

	fmt.Printf("┌──────────┬─────────────────────────────┬──────────────┬──────────────┬────────────┬────────────┬────────────┐\n")
	fmt.Printf("│ Time     │ ClOrdID                     │ ExecType     │ Status       │ LastQty    │ LastPx     │ CumQty     │\n")
	fmt.Printf("├──────────┼─────────────────────────────┼──────────────┼──────────────┼────────────┼────────────┼────────────┤\n")
	for _, ev := range events {
		fmt.Printf("│ %-8s │ %-27s │ %-12s │ %-12s │ %-10s │ %-10s │ %-10s │\n",
			ev.ReceivedAt.Format("15:04:05"), truncate(ev.ClOrdID, 27),
			truncate(execTypeName(ev.ExecType), 12), truncate(ordStatusName(ev.OrdStatus), 12),
			truncate(orDash(ev.LastQty), 10), truncate(orDash(ev.LastPx), 10),
			truncate(orDash(ev.CumQty), 10))
	}
	fmt.Printf("└──────────┴─────────────────────────────┴──────────────┴──────────────┴────────────┴────────────┴────────────┘\n")
}

func ordStatusName(status string) string {
	switch status {
	case constants.OrdStatusNew:
		return "New"
	case constants.OrdStatusPartiallyFilled:
		return "Partial"
	case constants.OrdStatusFilled:
		return "Filled"
	case constants.OrdStatusCanceled:
		return "Canceled"
	case constants.OrdStatusPendingCancel:
		return "PendingCxl"
	case constants.OrdStatusRejected:
		return "Rejected"
	case constants.OrdStatusPendingNew:
		return "PendingNew"
	case constants.OrdStatusExpired:
		return "Expired"
	case "":
		return "-"
	default:
		return status
	}
}

func execTypeName(execType string) string {
	switch execType {
	case constants.ExecTypeNew:
		return "New"
	case constants.ExecTypeCanceled:
		return "Canceled"
	case constants.ExecTypeRejected:
		return "Rejected"
	case constants.ExecTypeTrade:
		return "Trade"
	case constants.ExecTypeOrderStatus:
		return "OrderStatus"
	case "":
		return "-"
	default:
		return execType
	}
}

func feeTypeName(feeType string) string {
	switch feeType {
	case constants.MiscFeeTypeFinancing:
		return "Financing"
	case constants.MiscFeeTypeClientComm:
		return "Commission"
	case constants.MiscFeeTypeCESComm:
		return "CES Commission"
	case constants.MiscFeeTypeVenueFee:
		return "Venue Fee"
	default:
		return "Fee"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to max runes. Slicing runes rather than bytes keeps
// multi-byte symbols from being cut mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
