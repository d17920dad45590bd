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

// Package builder constructs outgoing FIX order-entry messages. Builders are
// pure transformations of already-validated inputs; command validation
// happens before a builder is ever called.
package builder

import (
	"fmt"
	"strings"
	"time"

	"prime-fix-go/constants"
	"prime-fix-go/utils"

	"github.com/quickfixgo/quickfix"
)

// FieldSetter abstracts setting fields on FIX message components.
type FieldSetter interface {
	SetField(tag quickfix.Tag, field quickfix.FieldValueWriter) *quickfix.FieldMap
}

func setString(fs FieldSetter, tag quickfix.Tag, value string) {
	fs.SetField(tag, quickfix.FIXString(value))
}

// setStringIfNotEmpty sets a field only if the value is non-empty.
func setStringIfNotEmpty(fs FieldSetter, tag quickfix.Tag, value string) {
	if value != "" {
		fs.SetField(tag, quickfix.FIXString(value))
	}
}

// buildHeader sets common header fields for outgoing messages.
func buildHeader(header *quickfix.Header, msgType, senderCompId, targetCompId string) {
	setString(header, constants.TagBeginString, constants.FixBeginString)
	setString(header, constants.TagMsgType, msgType)
	setString(header, constants.TagSenderCompId, senderCompId)
	setString(header, constants.TagTargetCompId, targetCompId)
	setString(header, constants.TagSendingTime, time.Now().UTC().Format(constants.FixTimeFormat))
}

// sideCode maps a user-facing side (BUY/SELL) to the wire value.
func sideCode(side string) string {
	if strings.EqualFold(side, constants.SideSell) {
		return constants.SideSellFix
	}
	return constants.SideBuyFix
}

// --- Logon Message ---

// BuildLogon injects the authentication fields into an outgoing Logon (A)
// body. The timestamp must be the SendingTime the engine already stamped
// into the header, so the signature covers the transmitted value. Returns an
// error when the signature cannot be computed; an unsigned logon must never
// be sent.
func BuildLogon(
	body *quickfix.Body,
	ts, apiKey, apiSecret, passphrase, targetCompId, portfolioId string,
) error {
	sig, err := utils.Sign(ts, constants.MsgTypeLogon, constants.MsgSeqNumInit, apiKey, targetCompId, passphrase, apiSecret)
	if err != nil {
		return fmt.Errorf("logon signature: %w", err)
	}

	setString(body, constants.TagEncryptMethod, constants.EncryptMethodNone)
	setString(body, constants.TagHeartBtInt, constants.HeartBtInterval)

	setString(body, constants.TagPassword, passphrase)
	setString(body, constants.TagAccount, portfolioId)
	setString(body, constants.TagHmac, sig)
	// Per Coinbase Prime FIX API: use Tag 9407 (AccessKey) for API key
	// https://docs.cdp.coinbase.com/prime/fix-api/admin-messages
	setString(body, constants.TagAccessKey, apiKey)
	setString(body, constants.TagDropCopyFlag, constants.DropCopyFlagYes)
	return nil
}

// --- New Order Single (D) ---

// NewOrderParams contains validated parameters for creating a new order.
// OrdType, Side and QtyType carry the user-facing values; the builder maps
// them to wire codes.
type NewOrderParams struct {
	Account string // Portfolio ID (required)
	Symbol  string // Product pair e.g. BTC-USD (required)
	OrdType string // MARKET, LIMIT or VWAP (required)
	Side    string // BUY or SELL (required)
	QtyType string // BASE or QUOTE (required)
	Qty     string // Size, denominated per QtyType (required)
	Price   string // Limit price (required for LIMIT and VWAP)

	// VWAP-only parameters, all optional.
	EffectiveTime     string // Execution window start
	ParticipationRate string // Target participation rate
	ExpireTime        string // Execution window end
}

// BuildNewOrderSingle creates a New Order Single (D) message and returns it
// together with the freshly generated client order id.
//
// The order type fixes time-in-force and target strategy:
//
//	MARKET -> IOC, strategy "M", no price
//	LIMIT  -> GTC, strategy "L", price required
//	VWAP   -> GTD, strategy "V", price required, optional window fields
//
// BASE quantities go out under OrderQty (38), QUOTE under CashOrderQty
// (152); never both.
func BuildNewOrderSingle(params NewOrderParams, senderCompId, targetCompId string) (*quickfix.Message, string) {
	m := quickfix.NewMessage()
	buildHeader(&m.Header, constants.MsgTypeNewOrderSingle, senderCompId, targetCompId)

	clOrdID := utils.NewOrderID()

	setString(&m.Body, constants.TagAccount, params.Account)
	setString(&m.Body, constants.TagClOrdID, clOrdID)
	setString(&m.Body, constants.TagSymbol, params.Symbol)
	setString(&m.Body, constants.TagTransactTime, time.Now().UTC().Format(constants.FixTimeFormat))

	if strings.EqualFold(params.QtyType, constants.QtyTypeQuote) {
		setString(&m.Body, constants.TagCashOrderQty, params.Qty)
	} else {
		setString(&m.Body, constants.TagOrderQty, params.Qty)
	}

	switch strings.ToUpper(params.OrdType) {
	case constants.OrdTypeLimit:
		setString(&m.Body, constants.TagOrdType, constants.OrdTypeLimitFix)
		setString(&m.Body, constants.TagTimeInForce, constants.TimeInForceGTC)
		setString(&m.Body, constants.TagPrice, params.Price)
		setString(&m.Body, constants.TagTargetStrategy, constants.TargetStrategyLimit)

	case constants.OrdTypeVwap:
		// VWAP rides the limit wire type; the strategy tag selects the algo.
		setString(&m.Body, constants.TagOrdType, constants.OrdTypeLimitFix)
		setString(&m.Body, constants.TagTimeInForce, constants.TimeInForceGTD)
		setString(&m.Body, constants.TagPrice, params.Price)
		setString(&m.Body, constants.TagTargetStrategy, constants.TargetStrategyVWAP)
		setStringIfNotEmpty(&m.Body, constants.TagEffectiveTime, params.EffectiveTime)
		setStringIfNotEmpty(&m.Body, constants.TagParticipationRate, params.ParticipationRate)
		setStringIfNotEmpty(&m.Body, constants.TagExpireTime, params.ExpireTime)

	default: // MARKET
		setString(&m.Body, constants.TagOrdType, constants.OrdTypeMarketFix)
		setString(&m.Body, constants.TagTimeInForce, constants.TimeInForceIOC)
		setString(&m.Body, constants.TagTargetStrategy, constants.TargetStrategyMarket)
	}

	setString(&m.Body, constants.TagSide, sideCode(params.Side))

	return m, clOrdID
}

// --- Order Cancel Request (F) ---

// CancelOrderParams contains parameters for canceling an order, taken from
// the ledger record of the order being canceled.
type CancelOrderParams struct {
	Account     string // Portfolio ID (required)
	OrigClOrdID string // Original order's ClOrdID (required)
	OrderID     string // Venue-assigned order ID (required)
	Symbol      string // Product pair (required)
	Side        string // BUY or SELL (required)
	Qty         string // Original order quantity
	QtyType     string // BASE or QUOTE; must match the original order
}

// BuildOrderCancelRequest creates an Order Cancel Request (F) message and
// returns it with the freshly generated cancel id. The quantity is re-emitted
// under the same tag the original order used; a cancel never switches
// quantity denomination.
func BuildOrderCancelRequest(params CancelOrderParams, senderCompId, targetCompId string) (*quickfix.Message, string) {
	m := quickfix.NewMessage()
	buildHeader(&m.Header, constants.MsgTypeOrderCancelRequest, senderCompId, targetCompId)

	cancelID := utils.NewCancelID()

	setString(&m.Body, constants.TagAccount, params.Account)
	setString(&m.Body, constants.TagClOrdID, cancelID)
	setString(&m.Body, constants.TagOrigClOrdID, params.OrigClOrdID)
	setString(&m.Body, constants.TagOrderID, params.OrderID)
	setString(&m.Body, constants.TagTransactTime, time.Now().UTC().Format(constants.FixTimeFormat))

	qty := params.Qty
	if qty == "" {
		qty = constants.DefaultQuantity
	}
	if strings.EqualFold(params.QtyType, constants.QtyTypeQuote) {
		setString(&m.Body, constants.TagCashOrderQty, qty)
	} else {
		setString(&m.Body, constants.TagOrderQty, qty)
	}

	setString(&m.Body, constants.TagSide, sideCode(params.Side))
	setString(&m.Body, constants.TagSymbol, params.Symbol)

	return m, cancelID
}

// --- Order Status Request (H) ---

// BuildOrderStatusRequest creates an Order Status Request (H) message. All
// four identifying fields are required; the caller resolves missing ones
// from the ledger before building.
func BuildOrderStatusRequest(clOrdID, orderID, side, symbol, senderCompId, targetCompId string) *quickfix.Message {
	m := quickfix.NewMessage()
	buildHeader(&m.Header, constants.MsgTypeOrderStatusRequest, senderCompId, targetCompId)

	setString(&m.Body, constants.TagClOrdID, clOrdID)
	setString(&m.Body, constants.TagOrderID, orderID)
	setString(&m.Body, constants.TagSide, sideCode(side))
	setString(&m.Body, constants.TagSymbol, symbol)

	return m
}
