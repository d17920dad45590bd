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

package constants

import (
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"
)

// --- Message Types ---
const (
	// Admin Messages
	MsgTypeLogon          = string(enum.MsgType_LOGON)
	MsgTypeReject         = string(enum.MsgType_REJECT)
	MsgTypeBusinessReject = string(enum.MsgType_BUSINESS_MESSAGE_REJECT)

	// Order Entry Messages
	MsgTypeNewOrderSingle     = string(enum.MsgType_ORDER_SINGLE)
	MsgTypeOrderCancelRequest = string(enum.MsgType_ORDER_CANCEL_REQUEST)
	MsgTypeOrderStatusRequest = string(enum.MsgType_ORDER_STATUS_REQUEST)
	MsgTypeExecutionReport    = string(enum.MsgType_EXECUTION_REPORT)
	MsgTypeOrderCancelReject  = string(enum.MsgType_ORDER_CANCEL_REJECT)
)

// --- Protocol Constants ---
const (
	FixTimeFormat     = "20060102-15:04:05.000"
	FixBeginString    = "FIXT.1.1"
	EncryptMethodNone = "0"
	HeartBtInterval   = "30"
	DropCopyFlagYes   = "Y"
	MsgSeqNumInit     = "1"
)

// --- User-Facing Order Types ---
const (
	OrdTypeMarket = "MARKET"
	OrdTypeLimit  = "LIMIT"
	OrdTypeVwap   = "VWAP"
)

// --- User-Facing Sides ---
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// --- Quantity Types ---
// BASE sizes the order in units of the traded asset (tag 38);
// QUOTE sizes it in quote-currency notional (tag 152).
const (
	QtyTypeBase  = "BASE"
	QtyTypeQuote = "QUOTE"
)

// --- Order Types (Tag 40, wire) ---
const (
	OrdTypeMarketFix = string(enum.OrdType_MARKET)
	OrdTypeLimitFix  = string(enum.OrdType_LIMIT)
)

// --- Side (Tag 54, wire) ---
const (
	SideBuyFix  = string(enum.Side_BUY)
	SideSellFix = string(enum.Side_SELL)
)

// --- Time In Force (Tag 59) ---
const (
	TimeInForceGTC = string(enum.TimeInForce_GOOD_TILL_CANCEL)
	TimeInForceIOC = string(enum.TimeInForce_IMMEDIATE_OR_CANCEL)
	TimeInForceGTD = string(enum.TimeInForce_GOOD_TILL_DATE)
)

// --- Target Strategy (Tag 847) ---
const (
	TargetStrategyLimit  = "L"
	TargetStrategyMarket = "M"
	TargetStrategyVWAP   = "V"
)

// --- Order Status (Tag 39) ---
const (
	OrdStatusNew             = string(enum.OrdStatus_NEW)
	OrdStatusPartiallyFilled = string(enum.OrdStatus_PARTIALLY_FILLED)
	OrdStatusFilled          = string(enum.OrdStatus_FILLED)
	OrdStatusCanceled        = string(enum.OrdStatus_CANCELED)
	OrdStatusPendingCancel   = string(enum.OrdStatus_PENDING_CANCEL)
	OrdStatusRejected        = string(enum.OrdStatus_REJECTED)
	OrdStatusPendingNew      = string(enum.OrdStatus_PENDING_NEW)
	OrdStatusExpired         = string(enum.OrdStatus_EXPIRED)
)

// --- Execution Type (Tag 150) ---
const (
	ExecTypeNew         = string(enum.ExecType_NEW)
	ExecTypeCanceled    = string(enum.ExecType_CANCELED)
	ExecTypeRejected    = string(enum.ExecType_REJECTED)
	ExecTypeTrade       = string(enum.ExecType_TRADE)
	ExecTypeOrderStatus = string(enum.ExecType_ORDER_STATUS)
)

// --- Cancel Reject Response To (Tag 434) ---
const (
	CxlRejResponseToCancel = "1" // Order Cancel Request (F)
)

// --- Misc Fee Type (Tag 139) ---
// Per Coinbase Prime FIX API Execution Report:
// https://docs.cdp.coinbase.com/prime/fix-api/order-entry-messages
// MiscFees is a repeating group with Tags 136 (count), 137 (amt), 138 (curr), 139 (type).
const (
	MiscFeeTypeFinancing  = "1" // Financing Fee
	MiscFeeTypeClientComm = "2" // Client Commission
	MiscFeeTypeCESComm    = "3" // CES Commission
	MiscFeeTypeVenueFee   = "4" // Venue Fee
)

// --- Standard FIX Tags ---
var (
	TagAccount       = quickfix.Tag(1)
	TagAvgPx         = quickfix.Tag(6)
	TagBeginString   = quickfix.Tag(8)
	TagClOrdID       = quickfix.Tag(11)
	TagCumQty        = quickfix.Tag(14)
	TagExecID        = quickfix.Tag(17)
	TagLastPx        = quickfix.Tag(31)
	TagLastShares    = quickfix.Tag(32)
	TagMsgSeqNum     = quickfix.Tag(34)
	TagMsgType       = quickfix.Tag(35)
	TagOrderID       = quickfix.Tag(37)
	TagOrderQty      = quickfix.Tag(38)
	TagOrdStatus     = quickfix.Tag(39)
	TagOrdType       = quickfix.Tag(40)
	TagOrigClOrdID   = quickfix.Tag(41)
	TagPrice         = quickfix.Tag(44)
	TagRefSeqNum     = quickfix.Tag(45)
	TagSenderCompId  = quickfix.Tag(49)
	TagSendingTime   = quickfix.Tag(52)
	TagSide          = quickfix.Tag(54)
	TagSymbol        = quickfix.Tag(55)
	TagTargetCompId  = quickfix.Tag(56)
	TagText          = quickfix.Tag(58)
	TagTimeInForce   = quickfix.Tag(59)
	TagTransactTime  = quickfix.Tag(60)
	TagHmac          = quickfix.Tag(96)
	TagEncryptMethod = quickfix.Tag(98)
	TagCxlRejReason  = quickfix.Tag(102)
	TagOrdRejReason  = quickfix.Tag(103)
	TagHeartBtInt    = quickfix.Tag(108)
	TagExpireTime    = quickfix.Tag(126)
	TagNoMiscFees    = quickfix.Tag(136)
	TagMiscFeeAmt    = quickfix.Tag(137)
	TagMiscFeeCurr   = quickfix.Tag(138)
	TagMiscFeeType   = quickfix.Tag(139)
	TagExecType      = quickfix.Tag(150)
	TagLeavesQty     = quickfix.Tag(151)
	TagCashOrderQty  = quickfix.Tag(152)
	TagEffectiveTime = quickfix.Tag(168)

	// Reject Tags
	TagRefMsgType           = quickfix.Tag(372)
	TagSessionRejectReason  = quickfix.Tag(373)
	TagBusinessRejectReason = quickfix.Tag(380)
	TagCxlRejResponseTo     = quickfix.Tag(434)

	// Order Tags
	TagPassword          = quickfix.Tag(554)
	TagTargetStrategy    = quickfix.Tag(847)
	TagParticipationRate = quickfix.Tag(849)

	// Coinbase Custom Tags
	TagDropCopyFlag = quickfix.Tag(9406)
	TagAccessKey    = quickfix.Tag(9407)
)

// --- Defaults ---
const (
	DefaultTargetCompID = "COIN"
	DefaultQuantity     = "0"
)
