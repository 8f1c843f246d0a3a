// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb stores committed pool events in sqlite.
package eventdb

import (
	"context"
	"database/sql"
	"math/big"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/thor"
)

const insertEvent = "INSERT INTO event(kind, time, account, asset, amount, periodStart, periodEnd, rate) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"

type EventDB struct {
	path          string
	db            *sql.DB
	stmtCache     *stmtCache
	driverVersion string
}

// New create or open event db at given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	// a memory db lives and dies with its connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		stmtCache:     newStmtCache(db),
		driverVersion: driverVer,
	}, nil
}

// NewMem create an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

func (db *EventDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

func (db *EventDB) DriverVersion() string {
	return db.driverVersion
}

func nullableAddress(addr thor.Address) any {
	if addr.IsZero() {
		return nil
	}
	return addr.Bytes()
}

func nullableAmount(v *big.Int) any {
	if v == nil {
		return nil
	}
	return v.String()
}

// Insert writes events in one transaction.
func (db *EventDB) Insert(ctx context.Context, events []*rewards.Event) error {
	if len(events) == 0 {
		return nil
	}
	stmt, err := db.stmtCache.Prepare(insertEvent)
	if err != nil {
		return err
	}
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	txStmt := tx.StmtContext(ctx, stmt)
	for _, ev := range events {
		if _, err := txStmt.ExecContext(ctx,
			string(ev.Kind),
			ev.Time,
			nullableAddress(ev.Account),
			nullableAddress(ev.Asset),
			nullableAmount(ev.Amount),
			ev.Start,
			ev.End,
			nullableAmount(ev.Rate),
		); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "insert %s event", ev.Kind)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	metricInserted().Add(int64(len(events)))
	return nil
}

// Emit implements rewards.Emitter.
func (db *EventDB) Emit(events ...*rewards.Event) error {
	return db.Insert(context.Background(), events)
}

func (db *EventDB) Filter(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.query(ctx, "SELECT * FROM event ORDER BY seq ASC")
	}
	metricsHandleFilter(filter)

	var args []any
	stmt := "SELECT * FROM event WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND time >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND time <= ? "
		}
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ? "
	}
	if len(filter.Kinds) > 0 {
		placeholders := make([]string, 0, len(filter.Kinds))
		for _, kind := range filter.Kinds {
			args = append(args, string(kind))
			placeholders = append(placeholders, "?")
		}
		stmt += " AND kind IN (" + strings.Join(placeholders, ",") + ") "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

func parseAmount(s sql.NullString) (*big.Int, error) {
	if !s.Valid {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s.String, 10)
	if !ok {
		return nil, errors.Errorf("invalid stored amount %q", s.String)
	}
	return v, nil
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			seq         uint64
			kind        string
			time        uint64
			account     []byte
			asset       []byte
			amount      sql.NullString
			periodStart uint64
			periodEnd   uint64
			rate        sql.NullString
		)
		if err := rows.Scan(
			&seq,
			&kind,
			&time,
			&account,
			&asset,
			&amount,
			&periodStart,
			&periodEnd,
			&rate,
		); err != nil {
			return nil, err
		}
		ev := &Event{
			Seq: seq,
			Event: rewards.Event{
				Kind:  rewards.EventKind(kind),
				Time:  time,
				Start: periodStart,
				End:   periodEnd,
			},
		}
		if len(account) > 0 {
			ev.Account = thor.BytesToAddress(account)
		}
		if len(asset) > 0 {
			ev.Asset = thor.BytesToAddress(asset)
		}
		if ev.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		if ev.Rate, err = parseAmount(rate); err != nil {
			return nil, err
		}
		events = append(events, ev)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
