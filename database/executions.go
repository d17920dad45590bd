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

// Package database persists execution report history to SQLite. The order
// ledger itself lives in a JSON snapshot; the database is an append-only
// audit trail of every execution report received, queryable after the
// session ends.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Execution is one execution report row. All FIX values are stored as the
// decimal strings received on the wire.
type Execution struct {
	ReceivedAt time.Time
	ClOrdID    string
	OrderID    string
	ExecID     string
	ExecType   string
	OrdStatus  string
	Symbol     string
	Side       string
	LastPx     string
	LastQty    string
	CumQty     string
	LeavesQty  string
	AvgPx      string
	Text       string
}

// ExecutionDb wraps the SQLite handle and the prepared insert statement.
type ExecutionDb struct {
	db         *sql.DB
	insertStmt *sql.Stmt
}

// NewExecutionDb opens (creating if needed) the execution history database.
// WAL mode keeps inserts from the FIX callback thread from blocking readers.
func NewExecutionDb(dbPath string) (*ExecutionDb, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	edb := &ExecutionDb{db: db}
	if err := edb.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	if err := edb.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}
	return edb, nil
}

func (d *ExecutionDb) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS executions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		received_at DATETIME NOT NULL,
		cl_ord_id TEXT NOT NULL,
		order_id TEXT,
		exec_id TEXT,
		exec_type TEXT,
		ord_status TEXT,
		symbol TEXT,
		side TEXT,
		last_px TEXT,
		last_qty TEXT,
		cum_qty TEXT,
		leaves_qty TEXT,
		avg_px TEXT,
		text TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_executions_cl_ord_id ON executions(cl_ord_id);
	CREATE INDEX IF NOT EXISTS idx_executions_received_at ON executions(received_at);
	`
	_, err := d.db.Exec(schema)
	return err
}

func (d *ExecutionDb) prepareStatements() error {
	stmt, err := d.db.Prepare(`
		INSERT INTO executions (
			received_at, cl_ord_id, order_id, exec_id, exec_type, ord_status,
			symbol, side, last_px, last_qty, cum_qty, leaves_qty, avg_px, text
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	d.insertStmt = stmt
	return nil
}

// InsertExecution appends one execution report row.
func (d *ExecutionDb) InsertExecution(e Execution) error {
	_, err := d.insertStmt.Exec(
		e.ReceivedAt, e.ClOrdID, e.OrderID, e.ExecID, e.ExecType, e.OrdStatus,
		e.Symbol, e.Side, e.LastPx, e.LastQty, e.CumQty, e.LeavesQty, e.AvgPx, e.Text,
	)
	if err != nil {
		return fmt.Errorf("failed to insert execution: %w", err)
	}
	return nil
}

// ExecutionsForOrder returns the stored reports for one client order id,
// oldest first.
func (d *ExecutionDb) ExecutionsForOrder(clOrdID string) ([]Execution, error) {
	rows, err := d.db.Query(`
		SELECT received_at, cl_ord_id, order_id, exec_id, exec_type, ord_status,
		       symbol, side, last_px, last_qty, cum_qty, leaves_qty, avg_px, text
		FROM executions WHERE cl_ord_id = ? ORDER BY id
	`, clOrdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}
	defer rows.Close()

	var result []Execution
	for rows.Next() {
		var e Execution
		if err := rows.Scan(
			&e.ReceivedAt, &e.ClOrdID, &e.OrderID, &e.ExecID, &e.ExecType, &e.OrdStatus,
			&e.Symbol, &e.Side, &e.LastPx, &e.LastQty, &e.CumQty, &e.LeavesQty, &e.AvgPx, &e.Text,
		); err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// Close releases the prepared statement and the database handle.
func (d *ExecutionDb) Close() error {
	if d.insertStmt != nil {
		d.insertStmt.Close()
	}
	return d.db.Close()
}
