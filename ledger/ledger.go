// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger is the reward engine. It serializes every mutation behind a
// single writer lock and commits token state and the audit record together,
// so a failed operation leaves neither balances nor log entries behind.
package ledger

import (
	"math/bits"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/speedyracing/speedy/kv"
	"github.com/speedyracing/speedy/log"
	"github.com/speedyracing/speedy/logdb"
	"github.com/speedyracing/speedy/metrics"
	"github.com/speedyracing/speedy/rates"
	"github.com/speedyracing/speedy/rewards"
	"github.com/speedyracing/speedy/speedy"
	"github.com/speedyracing/speedy/token"
	"github.com/speedyracing/speedy/vault"
)

var logger = log.WithContext("pkg", "ledger")

var (
	// ErrUnauthorized the caller is not the ledger admin.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAlreadyInitialized a second initialization was attempted. The first
	// recorded state is preserved untouched.
	ErrAlreadyInitialized = errors.New("already initialized")
	// ErrNotInitialized the ledger has no recorded state yet.
	ErrNotInitialized = errors.New("not initialized")
	// ErrUnknownCategory the spend category is outside the closed set.
	ErrUnknownCategory = errors.New("unknown spend category")
)

var (
	metricsPayouts = metrics.LazyLoadCounterVec("reward_payouts_total", []string{"category"})
	metricsSpends  = metrics.LazyLoadCounterVec("spend_burns_total", []string{"category"})
	metricsPool    = metrics.LazyLoadGauge("pool_balance_units")
)

var stateKey = []byte("state")

// State is the persisted control record of the ledger. It is written at
// initialization and re-written whenever the cumulative counter or the rate
// table changes. Admin, AssetID, Pool and Proof never change afterwards.
type State struct {
	Admin                 speedy.Address
	AssetID               speedy.Bytes32
	Pool                  speedy.Address
	Proof                 speedy.AuthorityProof
	CumulativeDistributed uint64
	Rates                 rates.Table
}

// Ledger drives every reward and spend against the token book and the
// custody pool, and appends the matching audit record.
type Ledger struct {
	store kv.Store
	ks    kv.Keyspace
	logs  *logdb.LogDB

	mu   sync.RWMutex
	cur  State
	tok  *token.Ledger
	vlt  *vault.Vault
	init bool

	now func() uint64
}

// New opens the ledger over the store and log db, restoring state if the
// ledger was initialized before.
func New(store kv.Store, logs *logdb.LogDB) (*Ledger, error) {
	l := &Ledger{
		store: store,
		ks:    store.NewKeyspace("l/"),
		logs:  logs,
		now:   func() uint64 { return uint64(time.Now().Unix()) },
	}

	raw, err := l.ks.Get(stateKey)
	if err != nil {
		if l.ks.IsNotFound(err) {
			return l, nil
		}
		return nil, err
	}
	var st State
	if err := rlp.DecodeBytes(raw, &st); err != nil {
		return nil, errors.Wrap(err, "decode ledger state")
	}
	l.bind(st)
	return l, nil
}

func (l *Ledger) bind(st State) {
	l.cur = st
	l.tok = token.New(l.store, st.AssetID)
	l.vlt = vault.New(l.tok, st.Proof)
	l.init = true
}

func (l *Ledger) putState(w kv.Putter, st *State) error {
	raw, err := rlp.EncodeToBytes(st)
	if err != nil {
		return errors.Wrap(err, "encode ledger state")
	}
	return w.Put(stateKey, raw)
}

// Initialize records the admin, creates the custody pool account and
// optionally mints the initial supply to the admin. The first call wins;
// any later call fails with ErrAlreadyInitialized and changes nothing.
func (l *Ledger) Initialize(admin speedy.Address, assetID speedy.Bytes32, initialSupply uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.init {
		return ErrAlreadyInitialized
	}

	tok := token.New(l.store, assetID)
	proof, err := vault.Derive(tok, speedy.VaultSeedTag)
	if err != nil {
		return err
	}

	batch := l.store.NewBatch()
	w := tok.BatchPutter(batch)
	if err := tok.CreateProgramAccount(w, proof.Address()); err != nil {
		return err
	}
	if err := tok.EnsureAccount(w, admin); err != nil {
		return err
	}
	if initialSupply > 0 {
		if err := tok.Mint(w, admin, initialSupply); err != nil {
			return err
		}
	}

	st := State{
		Admin:   admin,
		AssetID: assetID,
		Pool:    proof.Address(),
		Proof:   proof,
		Rates:   rates.Defaults(),
	}
	if err := l.putState(l.ks.NewBatchPutter(batch), &st); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	l.bind(st)
	metricsPool().Set(0)

	logger.Info("ledger initialized",
		"admin", admin,
		"pool", st.Pool,
		"supply", initialSupply)
	return nil
}

// FundPool moves amount from the admin account into the custody pool.
func (l *Ledger) FundPool(caller speedy.Address, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.init {
		return ErrNotInitialized
	}
	if caller != l.cur.Admin {
		return ErrUnauthorized
	}

	batch := l.store.NewBatch()
	if err := l.vlt.Fund(l.tok.BatchPutter(batch), caller, amount); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	l.updatePoolGauge()

	logger.Info("pool funded", "from", caller, "amount", amount)
	return nil
}

// AwardRace pays the race formula result for the given statistics.
func (l *Ledger) AwardRace(player speedy.Address, ev rewards.RaceResult) (uint64, error) {
	return l.award(player, ev)
}

// AwardChallenge pays the flat rate of the challenge difficulty.
func (l *Ledger) AwardChallenge(player speedy.Address, ev rewards.ChallengeResult) (uint64, error) {
	if !ev.Difficulty.Valid() {
		return 0, errors.WithMessage(rewards.ErrUnknownVariant, "difficulty")
	}
	return l.award(player, ev)
}

// AwardTournament pays the flat rate of the tournament placement.
func (l *Ledger) AwardTournament(player speedy.Address, ev rewards.TournamentResult) (uint64, error) {
	if !ev.Placement.Valid() {
		return 0, errors.WithMessage(rewards.ErrUnknownVariant, "placement")
	}
	return l.award(player, ev)
}

// AwardWelcomeBonus pays the one-shot welcome grant. Deduplication is the
// caller's concern; the engine pays every request it is handed.
func (l *Ledger) AwardWelcomeBonus(player speedy.Address) (uint64, error) {
	return l.award(player, rewards.WelcomeGrant{})
}

// AwardStaking pays the hourly staking yield for the car rarity.
func (l *Ledger) AwardStaking(player speedy.Address, ev rewards.StakingYield) (uint64, error) {
	if !ev.Rarity.Valid() {
		return 0, errors.WithMessage(rewards.ErrUnknownVariant, "rarity")
	}
	return l.award(player, ev)
}

func (l *Ledger) award(player speedy.Address, ev rewards.Event) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.init {
		return 0, ErrNotInitialized
	}

	amount, err := rewards.Compute(ev, l.cur.Rates)
	if err != nil {
		return 0, err
	}
	newCum, carry := bits.Add64(l.cur.CumulativeDistributed, amount, 0)
	if carry != 0 {
		return 0, rewards.ErrArithmeticOverflow
	}

	batch := l.store.NewBatch()
	if err := l.vlt.Payout(l.tok.BatchPutter(batch), player, amount); err != nil {
		return 0, err
	}
	next := l.cur
	next.CumulativeDistributed = newCum
	if err := l.putState(l.ks.NewBatchPutter(batch), &next); err != nil {
		return 0, err
	}

	lb, err := l.logs.BeginBatch()
	if err != nil {
		return 0, err
	}
	if err := lb.InsertReward(&logdb.RewardRecord{
		Player:    player,
		Amount:    amount,
		Category:  string(ev.Category()),
		RefID:     ev.RefID(),
		Timestamp: l.now(),
	}); err != nil {
		lb.Rollback()
		return 0, err
	}

	if err := batch.Write(); err != nil {
		lb.Rollback()
		return 0, err
	}
	l.cur = next
	if err := lb.Commit(); err != nil {
		// state is committed; the operation stands but the audit trail has a gap
		logger.Error("audit record lost", "category", ev.Category(), "err", err)
		return 0, err
	}

	metricsPayouts().AddWithLabel(int64(amount), map[string]string{"category": string(ev.Category())})
	l.updatePoolGauge()

	logger.Debug("reward paid",
		"player", player,
		"category", ev.Category(),
		"amount", amount)
	return amount, nil
}

// Spend burns amount from the player's balance against the given category.
// Spent tokens leave circulation; nothing is transferred anywhere.
func (l *Ledger) Spend(player speedy.Address, amount uint64, category SpendCategory) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.init {
		return ErrNotInitialized
	}
	if !category.Valid() {
		return errors.WithMessage(ErrUnknownCategory, string(category))
	}

	batch := l.store.NewBatch()
	if err := l.tok.Burn(l.tok.BatchPutter(batch), player, amount, token.HolderAuthority(player)); err != nil {
		return err
	}

	lb, err := l.logs.BeginBatch()
	if err != nil {
		return err
	}
	if err := lb.InsertSpend(&logdb.SpendRecord{
		Player:    player,
		Amount:    amount,
		Category:  string(category),
		Timestamp: l.now(),
	}); err != nil {
		lb.Rollback()
		return err
	}

	if err := batch.Write(); err != nil {
		lb.Rollback()
		return err
	}
	if err := lb.Commit(); err != nil {
		logger.Error("audit record lost", "category", category, "err", err)
		return err
	}

	metricsSpends().AddWithLabel(int64(amount), map[string]string{"category": string(category)})

	logger.Debug("tokens spent",
		"player", player,
		"category", category,
		"amount", amount)
	return nil
}

// UpdateRates replaces the whole rate table. Zero rates are legal and
// disable their category.
func (l *Ledger) UpdateRates(caller speedy.Address, table rates.Table) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.init {
		return ErrNotInitialized
	}
	if caller != l.cur.Admin {
		return ErrUnauthorized
	}

	next := l.cur
	next.Rates = table
	if err := l.putState(l.ks, &next); err != nil {
		return err
	}
	l.cur = next

	logger.Info("rate table updated", "admin", caller)
	return nil
}

// State returns a copy of the current control record.
func (l *Ledger) State() (State, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.init {
		return State{}, ErrNotInitialized
	}
	return l.cur, nil
}

// PoolBalance returns the custody pool holdings.
func (l *Ledger) PoolBalance() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.init {
		return 0, ErrNotInitialized
	}
	return l.vlt.Balance()
}

// BalanceOf returns the balance of any account, zero for absent accounts.
func (l *Ledger) BalanceOf(addr speedy.Address) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.init {
		return 0, ErrNotInitialized
	}
	return l.tok.BalanceOf(addr)
}

// Supply returns the circulating supply and the amount ever burned.
func (l *Ledger) Supply() (total uint64, burned uint64, err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.init {
		return 0, 0, ErrNotInitialized
	}
	if total, err = l.tok.TotalSupply(); err != nil {
		return
	}
	burned, err = l.tok.TotalBurned()
	return
}

func (l *Ledger) updatePoolGauge() {
	if bal, err := l.vlt.Balance(); err == nil {
		metricsPool().Set(int64(bal))
	}
}
