// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb is the append-only audit log of reward and spend actions.
package logdb

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"

	"github.com/speedyracing/speedy/speedy"
)

// LogDB is the sqlite-backed audit log. Records are only ever appended;
// nothing in the engine mutates or deletes them.
type LogDB struct {
	path string
	db   *sql.DB
}

// New creates or opens the log db at the given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(rewardTableSchema + spendTableSchema); err != nil {
		return nil, err
	}
	return &LogDB{
		path,
		db,
	}, nil
}

var memSeq uint32

// NewMem creates a log db in ram. Each call gets its own database, shared
// across the sql connection pool.
func NewMem() (*LogDB, error) {
	name := fmt.Sprintf("file:logdb-%d?mode=memory&cache=shared", atomic.AddUint32(&memSeq, 1))
	return New(name)
}

// Close closes the log db.
func (db *LogDB) Close() {
	db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// Batch stages appends inside a sql transaction. The enclosing operation
// commits only after its other effects are durable, so no record survives a
// failed operation.
type Batch struct {
	tx *sql.Tx
}

// BeginBatch opens a staging transaction.
func (db *LogDB) BeginBatch() (*Batch, error) {
	tx, err := db.db.Begin()
	if err != nil {
		return nil, err
	}
	return &Batch{tx}, nil
}

// InsertReward appends one reward record.
func (b *Batch) InsertReward(r *RewardRecord) error {
	_, err := b.tx.Exec(
		"INSERT INTO reward(player, amount, category, refID, ts) VALUES(?,?,?,?,?)",
		r.Player.Bytes(), amountBlob(r.Amount), r.Category, r.RefID, r.Timestamp)
	return err
}

// InsertSpend appends one spend record.
func (b *Batch) InsertSpend(s *SpendRecord) error {
	_, err := b.tx.Exec(
		"INSERT INTO spend(player, amount, category, ts) VALUES(?,?,?,?)",
		s.Player.Bytes(), amountBlob(s.Amount), s.Category, s.Timestamp)
	return err
}

// Commit makes the staged appends durable.
func (b *Batch) Commit() error {
	return b.tx.Commit()
}

// Rollback discards the staged appends.
func (b *Batch) Rollback() error {
	return b.tx.Rollback()
}

// FilterRewards queries reward records with optional filter.
func (db *LogDB) FilterRewards(ctx context.Context, filter *RewardFilter) ([]*RewardRecord, error) {
	if filter == nil {
		return db.queryRewards(ctx, "SELECT * FROM reward")
	}
	stmt := "SELECT * FROM reward WHERE 1"
	var args []interface{}
	if filter.Player != nil {
		args = append(args, filter.Player.Bytes())
		stmt += " AND player = ? "
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		stmt += " AND category = ? "
	}
	if filter.RefID != nil {
		args = append(args, *filter.RefID)
		stmt += " AND refID = ? "
	}
	stmt, args = appendRangeAndOptions(stmt, args, filter.Range, filter.Options, filter.Order)
	return db.queryRewards(ctx, stmt, args...)
}

// FilterSpends queries spend records with optional filter.
func (db *LogDB) FilterSpends(ctx context.Context, filter *SpendFilter) ([]*SpendRecord, error) {
	if filter == nil {
		return db.querySpends(ctx, "SELECT * FROM spend")
	}
	stmt := "SELECT * FROM spend WHERE 1"
	var args []interface{}
	if filter.Player != nil {
		args = append(args, filter.Player.Bytes())
		stmt += " AND player = ? "
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		stmt += " AND category = ? "
	}
	stmt, args = appendRangeAndOptions(stmt, args, filter.Range, filter.Options, filter.Order)
	return db.querySpends(ctx, stmt, args...)
}

func appendRangeAndOptions(stmt string, args []interface{}, rng *Range, options *Options, order Order) (string, []interface{}) {
	if rng != nil {
		args = append(args, rng.From)
		stmt += " AND ts >= ? "
		if rng.To >= rng.From {
			args = append(args, rng.To)
			stmt += " AND ts <= ? "
		}
	}
	if order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}
	if options != nil {
		stmt += " limit ?, ? "
		args = append(args, options.Offset, options.Limit)
	}
	return stmt, args
}

func (db *LogDB) queryRewards(ctx context.Context, stmt string, args ...interface{}) ([]*RewardRecord, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*RewardRecord
	for rows.Next() {
		var (
			seq       uint64
			player    []byte
			amount    []byte
			category  string
			refID     uint64
			timestamp uint64
		)
		if err := rows.Scan(&seq, &player, &amount, &category, &refID, &timestamp); err != nil {
			return nil, err
		}
		records = append(records, &RewardRecord{
			Seq:       seq,
			Player:    speedy.BytesToAddress(player),
			Amount:    amountFromBlob(amount),
			Category:  category,
			RefID:     refID,
			Timestamp: timestamp,
		})
	}
	return records, rows.Err()
}

func (db *LogDB) querySpends(ctx context.Context, stmt string, args ...interface{}) ([]*SpendRecord, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*SpendRecord
	for rows.Next() {
		var (
			seq       uint64
			player    []byte
			amount    []byte
			category  string
			timestamp uint64
		)
		if err := rows.Scan(&seq, &player, &amount, &category, &timestamp); err != nil {
			return nil, err
		}
		records = append(records, &SpendRecord{
			Seq:       seq,
			Player:    speedy.BytesToAddress(player),
			Amount:    amountFromBlob(amount),
			Category:  category,
			Timestamp: timestamp,
		})
	}
	return records, rows.Err()
}

func amountBlob(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

func amountFromBlob(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
