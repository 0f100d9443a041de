// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb stores committed module events in sqlite.
package eventdb

import (
	"context"
	"database/sql"
	"time"

	"github.com/holiman/uint256"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/saitachain/staking/events"
	"github.com/saitachain/staking/log"
	"github.com/saitachain/staking/saita"
)

var logger = log.WithContext("pkg", "eventdb")

type EventDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New creates or opens the event db at path.
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
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	logger.Debug("event db opened", "path", path, "sqlite", driverVer)
	return &EventDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem creates an event db in memory.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

func (db *EventDB) Close() error {
	return db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

func (db *EventDB) DriverVersion() string {
	return db.driverVersion
}

// Insert stores the events of a block in emission order.
func (db *EventDB) Insert(blockNumber uint32, evs []*events.Event) error {
	if len(evs) == 0 {
		return nil
	}
	return db.execInTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare("INSERT OR REPLACE INTO event(blockNumber, eventIndex, era, module, name, account, validator, amount, value) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);")
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, ev := range evs {
			if _, err := stmt.Exec(
				blockNumber,
				i,
				uint32(ev.Era),
				ev.Module,
				ev.Name,
				addressValue(ev.Account),
				addressValue(ev.Validator),
				amountValue(ev.Amount),
				ev.Value,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *EventDB) execInTx(proc func(*sql.Tx) error) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// FilterEvents queries stored events.
func (db *EventDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	start := time.Now()
	defer func() {
		metricFilterDuration().Observe(time.Since(start).Milliseconds())
	}()

	const query = "SELECT blockNumber, eventIndex, era, module, name, account, validator, amount, value FROM event"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY blockNumber ASC, eventIndex ASC")
	}
	var args []any
	stmt := query + " WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND blockNumber >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND blockNumber <= ?"
		}
	}
	if filter.Module != "" {
		args = append(args, filter.Module)
		stmt += " AND module = ?"
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		stmt += " AND name = ?"
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ?"
	}
	if filter.Validator != nil {
		args = append(args, filter.Validator.Bytes())
		stmt += " AND validator = ?"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY blockNumber DESC, eventIndex DESC"
	} else {
		stmt += " ORDER BY blockNumber ASC, eventIndex ASC"
	}
	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *EventDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evs []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			blockNumber uint32
			index       uint32
			era         uint32
			module      string
			name        string
			account     []byte
			validator   []byte
			amount      []byte
			value       uint64
		)
		if err := rows.Scan(
			&blockNumber,
			&index,
			&era,
			&module,
			&name,
			&account,
			&validator,
			&amount,
			&value,
		); err != nil {
			return nil, err
		}
		ev := &Event{
			BlockNumber: blockNumber,
			Index:       index,
			Era:         saita.EraIndex(era),
			Module:      module,
			Name:        name,
			Account:     saita.BytesToAddress(account),
			Validator:   saita.BytesToAddress(validator),
			Value:       value,
		}
		if amount != nil {
			ev.Amount = new(uint256.Int).SetBytes(amount)
		}
		evs = append(evs, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return evs, nil
}

func addressValue(addr saita.Address) []byte {
	if addr.IsZero() {
		return nil
	}
	return addr.Bytes()
}

// amountValue keeps zero amounts distinguishable from missing ones.
func amountValue(amount *uint256.Int) []byte {
	if amount == nil {
		return nil
	}
	if amount.IsZero() {
		return []byte{0}
	}
	return amount.Bytes()
}
