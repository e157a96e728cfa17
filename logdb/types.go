// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import "github.com/speedyracing/speedy/speedy"

// RewardRecord is one successful payout, immutable once written.
type RewardRecord struct {
	Seq       uint64         `json:"seq"`
	Player    speedy.Address `json:"player"`
	Amount    uint64         `json:"amount"`
	Category  string         `json:"category"`
	RefID     uint64         `json:"refId"`
	Timestamp uint64         `json:"timestamp"`
}

// SpendRecord is one successful burn, immutable once written.
type SpendRecord struct {
	Seq       uint64         `json:"seq"`
	Player    speedy.Address `json:"player"`
	Amount    uint64         `json:"amount"`
	Category  string         `json:"category"`
	Timestamp uint64         `json:"timestamp"`
}

// Order of returned records by sequence.
type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds records by unix timestamp, inclusive.
type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// Options applies pagination.
type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// RewardFilter selects reward records.
type RewardFilter struct {
	Player   *speedy.Address `json:"player"`
	Category *string         `json:"category"`
	RefID    *uint64         `json:"refId"`
	Range    *Range          `json:"range"`
	Options  *Options        `json:"options"`
	Order    Order           `json:"order"` // default asc
}

// SpendFilter selects spend records.
type SpendFilter struct {
	Player   *speedy.Address `json:"player"`
	Category *string         `json:"category"`
	Range    *Range          `json:"range"`
	Options  *Options        `json:"options"`
	Order    Order           `json:"order"` // default asc
}
