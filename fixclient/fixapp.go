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
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"prime-fix-go/builder"
	"prime-fix-go/constants"
	"prime-fix-go/database"
	"prime-fix-go/utils"

	"github.com/quickfixgo/field"
	"github.com/quickfixgo/quickfix"
	"go.uber.org/zap"
)

// ErrNoSession is returned when a message is submitted before the FIX
// session has been created.
var ErrNoSession = errors.New("fix session not established")

// FixApp is the quickfix.Application implementation. It signs outgoing
// logons, records outgoing orders into the ledger, and correlates incoming
// execution reports back to it. All callback methods are invoked from the
// engine's threads, never from the command loop.
type FixApp struct {
	Config *Config

	SessionId quickfix.SessionID
	Orders    *OrderStore
	Execs     *ExecStore
	Db        *database.ExecutionDb

	log *zap.Logger

	shouldExit    atomic.Bool
	loggedOn      atomic.Bool
	lastLogonTime time.Time
}

// NewFixApp wires the application together. Db may be nil to disable
// execution history persistence.
func NewFixApp(config *Config, orders *OrderStore, db *database.ExecutionDb, log *zap.Logger) *FixApp {
	if log == nil {
		log = zap.NewNop()
	}
	return &FixApp{
		Config: config,
		Orders: orders,
		Execs:  NewExecStore(1000),
		Db:     db,
		log:    log,
	}
}

func (a *FixApp) OnCreate(sid quickfix.SessionID) {
	a.SessionId = sid
}

func (a *FixApp) OnLogon(sid quickfix.SessionID) {
	a.SessionId = sid
	a.lastLogonTime = time.Now()
	a.loggedOn.Store(true)
	a.log.Info("fix logon", zap.String("session", sid.String()))
	displayConnectionSuccess(sid.String())
	displayHelp()
}

func (a *FixApp) OnLogout(sid quickfix.SessionID) {
	a.loggedOn.Store(false)
	a.log.Info("fix logout", zap.String("session", sid.String()))

	// A logout within seconds of logon (or before any logon) means the
	// venue rejected the credentials; reconnecting would just loop.
	if time.Since(a.lastLogonTime) < 5*time.Second || a.lastLogonTime.IsZero() {
		a.log.Error("authentication failed, exiting to prevent reconnection loop")
		a.shouldExit.Store(true)
	}
}

func (a *FixApp) ToAdmin(msg *quickfix.Message, _ quickfix.SessionID) {
	if t, _ := msg.Header.GetString(constants.TagMsgType); t == constants.MsgTypeLogon {
		// The signature must cover the SendingTime the engine stamped
		// into the header, not a second reading of the clock.
		ts, err := msg.Header.GetString(constants.TagSendingTime)
		if err != nil {
			a.log.Error("logon header missing SendingTime, cannot sign", zap.Error(err))
			a.shouldExit.Store(true)
			return
		}
		if err := builder.BuildLogon(
			&msg.Body,
			ts,
			a.Config.AccessKey,
			a.Config.SigningKey,
			a.Config.Passphrase,
			a.Config.TargetCompId,
			a.Config.PortfolioId,
		); err != nil {
			a.log.Error("failed to build logon", zap.Error(err))
			a.shouldExit.Store(true)
			return
		}
	}
	a.logRaw("toAdmin", msg)
}

func (a *FixApp) FromAdmin(msg *quickfix.Message, _ quickfix.SessionID) quickfix.MessageRejectError {
	a.logRaw("fromAdmin", msg)
	return nil
}

// ToApp runs for every outgoing application message. New orders are recorded
// here, after the engine accepted the message for sending, so the ledger
// reflects exactly what went out on the wire.
func (a *FixApp) ToApp(msg *quickfix.Message, _ quickfix.SessionID) error {
	a.logRaw("toApp", msg)
	if t, _ := msg.Header.GetString(constants.TagMsgType); t == constants.MsgTypeNewOrderSingle {
		a.captureNewOrder(msg)
	}
	return nil
}

func (a *FixApp) FromApp(msg *quickfix.Message, _ quickfix.SessionID) quickfix.MessageRejectError {
	a.logRaw("fromApp", msg)

	switch t, _ := msg.Header.GetString(constants.TagMsgType); t {
	case constants.MsgTypeExecutionReport:
		a.handleExecutionReport(msg)
	case constants.MsgTypeOrderCancelReject:
		a.handleCancelReject(msg)
	default:
		a.log.Info("received application message", zap.String("msgType", t))
	}
	return nil
}

// captureNewOrder rebuilds the ledger record from the outgoing message
// fields rather than from command input, so the record always matches the
// wire.
func (a *FixApp) captureNewOrder(msg *quickfix.Message) {
	clOrdID := utils.GetString(msg, constants.TagClOrdID)
	if clOrdID == "" {
		a.log.Warn("outgoing order without ClOrdID, not tracking")
		return
	}

	side := constants.SideBuy
	if utils.GetString(msg, constants.TagSide) == constants.SideSellFix {
		side = constants.SideSell
	}

	qty := utils.ExtractQuantity(msg)

	order := &Order{
		ClOrdID:           clOrdID,
		Side:              side,
		Symbol:            utils.GetString(msg, constants.TagSymbol),
		Quantity:          qty.Value,
		QuantityType:      qty.Kind,
		LimitPrice:        utils.GetString(msg, constants.TagPrice),
		StartTime:         utils.GetString(msg, constants.TagEffectiveTime),
		ExpireTime:        utils.GetString(msg, constants.TagExpireTime),
		ParticipationRate: utils.GetString(msg, constants.TagParticipationRate),
	}
	a.Orders.Add(order)
	a.log.Info("order submitted",
		zap.String("clOrdId", clOrdID),
		zap.String("symbol", order.Symbol),
		zap.String("side", order.Side),
		zap.String("qty", order.Quantity),
		zap.String("qtyType", order.QuantityType))
}

func (a *FixApp) handleExecutionReport(msg *quickfix.Message) {
	var (
		clOrdID field.ClOrdIDField
		orderID field.OrderIDField
	)
	msg.Body.Get(&clOrdID)
	msg.Body.Get(&orderID)

	er := &ExecReport{
		ClOrdID:   clOrdID.Value(),
		OrderID:   orderID.Value(),
		ExecID:    utils.GetString(msg, constants.TagExecID),
		ExecType:  utils.GetString(msg, constants.TagExecType),
		OrdStatus: utils.GetString(msg, constants.TagOrdStatus),
		Symbol:    utils.GetString(msg, constants.TagSymbol),
		Side:      utils.GetString(msg, constants.TagSide),
		LastPx:    utils.GetString(msg, constants.TagLastPx),
		LastQty:   utils.GetString(msg, constants.TagLastShares),
		CumQty:    utils.GetString(msg, constants.TagCumQty),
		LeavesQty: utils.GetString(msg, constants.TagLeavesQty),
		AvgPx:     utils.GetString(msg, constants.TagAvgPx),
		Text:      utils.GetString(msg, constants.TagText),
		Fees:      ParseMiscFees(msg.String()),
	}

	a.Orders.UpdateFromExecReport(er)

	a.Execs.Add(ExecEvent{
		ReceivedAt: time.Now(),
		ClOrdID:    er.ClOrdID,
		OrderID:    er.OrderID,
		ExecID:     er.ExecID,
		ExecType:   er.ExecType,
		OrdStatus:  er.OrdStatus,
		Symbol:     er.Symbol,
		LastPx:     er.LastPx,
		LastQty:    er.LastQty,
		CumQty:     er.CumQty,
		Text:       er.Text,
		Fees:       er.Fees,
	})

	if a.Db != nil {
		if err := a.Db.InsertExecution(database.Execution{
			ReceivedAt: time.Now(),
			ClOrdID:    er.ClOrdID,
			OrderID:    er.OrderID,
			ExecID:     er.ExecID,
			ExecType:   er.ExecType,
			OrdStatus:  er.OrdStatus,
			Symbol:     er.Symbol,
			Side:       er.Side,
			LastPx:     er.LastPx,
			LastQty:    er.LastQty,
			CumQty:     er.CumQty,
			LeavesQty:  er.LeavesQty,
			AvgPx:      er.AvgPx,
			Text:       er.Text,
		}); err != nil {
			a.log.Error("failed to store execution", zap.Error(err))
		}
	}

	displayExecReport(er)
}

func (a *FixApp) handleCancelReject(msg *quickfix.Message) {
	clOrdID := utils.GetString(msg, constants.TagClOrdID)
	origClOrdID := utils.GetString(msg, constants.TagOrigClOrdID)
	reason := utils.GetString(msg, constants.TagCxlRejReason)
	text := utils.GetString(msg, constants.TagText)

	a.log.Warn("order cancel rejected",
		zap.String("clOrdId", clOrdID),
		zap.String("origClOrdId", origClOrdID),
		zap.String("reason", reason),
		zap.String("text", text))
	displayCancelReject(origClOrdID, reason, text)
}

// send submits a built message to the session. Fails fast when no session
// exists yet rather than letting quickfix queue into the void.
func (a *FixApp) send(msg *quickfix.Message) error {
	if a.SessionId == (quickfix.SessionID{}) {
		return ErrNoSession
	}
	return quickfix.SendToTarget(msg, a.SessionId)
}

// logRaw logs the full FIX message with SOH delimiters made printable.
func (a *FixApp) logRaw(direction string, msg *quickfix.Message) {
	a.log.Debug("fix "+direction, zap.String("msg", strings.ReplaceAll(msg.String(), soh, "|")))
}

// ShouldExit reports whether the app decided the process must stop, e.g.
// after an authentication failure.
func (a *FixApp) ShouldExit() bool {
	return a.shouldExit.Load()
}

// LoggedOn reports whether the session is currently authenticated.
func (a *FixApp) LoggedOn() bool {
	return a.loggedOn.Load()
}
