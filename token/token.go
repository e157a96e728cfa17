// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is the fungible-asset ledger primitive: balances keyed by
// address, atomic transfer and burn, and supply bookkeeping. Mutations are
// staged into a caller-owned batch putter so an enclosing operation commits
// them atomically or not at all.
package token

import (
	"fmt"
	"math/bits"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/speedyracing/speedy/kv"
	"github.com/speedyracing/speedy/speedy"
)

var (
	// ErrInsufficientFunds the debited account holds less than the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAuthorityRejected the presented authority does not cover the debited account.
	ErrAuthorityRejected = errors.New("authority rejected")
	// ErrAccountExists account creation hit an already existing account.
	ErrAccountExists = errors.New("account exists")
	// ErrAmountOverflow a balance or supply counter would exceed the uint64 range.
	ErrAmountOverflow = errors.New("amount overflow")
)

var (
	totalSupplyKey = speedy.Bytes32(crypto.Keccak256Hash([]byte("total-supply")))
	totalBurnedKey = speedy.Bytes32(crypto.Keccak256Hash([]byte("total-burned")))
)

func accountKey(addr speedy.Address) []byte {
	return append([]byte("a"), addr.Bytes()...)
}

// account is the stored per-address record.
type account struct {
	Balance uint64
	// ProgramOwned accounts have no holder credential; only a derived
	// authority resolving to the account address can debit them.
	ProgramOwned bool
}

const accountCacheSize = 1024

// Ledger is the balance book of a single asset.
type Ledger struct {
	assetID speedy.Bytes32
	state   kv.Keyspace
	cache   *lru.Cache
}

// New creates a ledger bound to the given asset id over the store.
func New(store kv.Store, assetID speedy.Bytes32) *Ledger {
	cache, _ := lru.New(accountCacheSize)
	return &Ledger{
		assetID: assetID,
		state:   store.NewKeyspace(fmt.Sprintf("t/%x/", assetID[:8])),
		cache:   cache,
	}
}

// AssetID returns the asset identifier the ledger is bound to.
func (l *Ledger) AssetID() speedy.Bytes32 {
	return l.assetID
}

func (l *Ledger) getAccount(addr speedy.Address) (acc account, exists bool, err error) {
	if cached, ok := l.cache.Get(string(addr.Bytes())); ok {
		return cached.(account), true, nil
	}
	raw, err := l.state.Get(accountKey(addr))
	if err != nil {
		if l.state.IsNotFound(err) {
			return account{}, false, nil
		}
		return account{}, false, err
	}
	if err := rlp.DecodeBytes(raw, &acc); err != nil {
		return account{}, false, errors.Wrap(err, "decode account")
	}
	l.cache.Add(string(addr.Bytes()), acc)
	return acc, true, nil
}

func (l *Ledger) putAccount(w kv.Putter, addr speedy.Address, acc account) error {
	// the staged value is not visible until the batch commits
	l.cache.Remove(string(addr.Bytes()))
	raw, err := rlp.EncodeToBytes(&acc)
	if err != nil {
		return errors.Wrap(err, "encode account")
	}
	return w.Put(accountKey(addr), raw)
}

func (l *Ledger) getCounter(key speedy.Bytes32) (uint64, error) {
	raw, err := l.state.Get(key.Bytes())
	if err != nil {
		if l.state.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	var v uint64
	if err := rlp.DecodeBytes(raw, &v); err != nil {
		return 0, errors.Wrap(err, "decode counter")
	}
	return v, nil
}

func (l *Ledger) putCounter(w kv.Putter, key speedy.Bytes32, v uint64) error {
	raw, err := rlp.EncodeToBytes(v)
	if err != nil {
		return errors.Wrap(err, "encode counter")
	}
	return w.Put(key.Bytes(), raw)
}

// BalanceOf returns the balance of an account, zero for absent accounts.
func (l *Ledger) BalanceOf(addr speedy.Address) (uint64, error) {
	acc, _, err := l.getAccount(addr)
	return acc.Balance, err
}

// Exists reports whether the account has been created.
func (l *Ledger) Exists(addr speedy.Address) (bool, error) {
	_, exists, err := l.getAccount(addr)
	return exists, err
}

// TotalSupply returns the amount ever minted minus the amount ever burned.
func (l *Ledger) TotalSupply() (uint64, error) {
	return l.getCounter(totalSupplyKey)
}

// TotalBurned returns the amount ever destroyed via Burn.
func (l *Ledger) TotalBurned() (uint64, error) {
	return l.getCounter(totalBurnedKey)
}

// BatchPutter adapts a store batch into the ledger's keyspace.
func (l *Ledger) BatchPutter(b kv.Batch) kv.Putter {
	return l.state.NewBatchPutter(b)
}

// EnsureAccount stages creation of an empty holder account if absent.
func (l *Ledger) EnsureAccount(w kv.Putter, addr speedy.Address) error {
	_, exists, err := l.getAccount(addr)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return l.putAccount(w, addr, account{})
}

// CreateProgramAccount stages creation of a program-owned account, which no
// holder credential can ever debit.
func (l *Ledger) CreateProgramAccount(w kv.Putter, addr speedy.Address) error {
	_, exists, err := l.getAccount(addr)
	if err != nil {
		return err
	}
	if exists {
		return errors.WithMessage(ErrAccountExists, addr.String())
	}
	return l.putAccount(w, addr, account{ProgramOwned: true})
}

// Transfer stages a move of amount from one account to another. The receiving
// account is created if absent. The debit requires an authority covering the
// source account and fails with ErrInsufficientFunds when the balance is short.
func (l *Ledger) Transfer(w kv.Putter, from, to speedy.Address, amount uint64, auth Authority) error {
	fromAcc, _, err := l.getAccount(from)
	if err != nil {
		return err
	}
	if !auth.covers(from, fromAcc.ProgramOwned) {
		return errors.WithMessage(ErrAuthorityRejected, from.String())
	}
	if fromAcc.Balance < amount {
		return ErrInsufficientFunds
	}
	if from == to {
		return nil
	}

	toAcc, _, err := l.getAccount(to)
	if err != nil {
		return err
	}
	newBalance, carry := bits.Add64(toAcc.Balance, amount, 0)
	if carry != 0 {
		return ErrAmountOverflow
	}

	fromAcc.Balance -= amount
	toAcc.Balance = newBalance
	if err := l.putAccount(w, from, fromAcc); err != nil {
		return err
	}
	return l.putAccount(w, to, toAcc)
}

// Burn stages destruction of amount from an account, permanently removing it
// from circulation. The debit requires an authority covering the account.
func (l *Ledger) Burn(w kv.Putter, from speedy.Address, amount uint64, auth Authority) error {
	fromAcc, _, err := l.getAccount(from)
	if err != nil {
		return err
	}
	if !auth.covers(from, fromAcc.ProgramOwned) {
		return errors.WithMessage(ErrAuthorityRejected, from.String())
	}
	if fromAcc.Balance < amount {
		return ErrInsufficientFunds
	}

	supply, err := l.getCounter(totalSupplyKey)
	if err != nil {
		return err
	}
	burned, err := l.getCounter(totalBurnedKey)
	if err != nil {
		return err
	}
	newBurned, carry := bits.Add64(burned, amount, 0)
	if carry != 0 {
		return ErrAmountOverflow
	}

	fromAcc.Balance -= amount
	if err := l.putAccount(w, from, fromAcc); err != nil {
		return err
	}
	if err := l.putCounter(w, totalSupplyKey, supply-amount); err != nil {
		return err
	}
	return l.putCounter(w, totalBurnedKey, newBurned)
}

// Mint stages creation of amount into an account and grows the supply.
// It is reserved for ledger initialization; nothing else creates value.
func (l *Ledger) Mint(w kv.Putter, to speedy.Address, amount uint64) error {
	toAcc, _, err := l.getAccount(to)
	if err != nil {
		return err
	}
	newBalance, carry := bits.Add64(toAcc.Balance, amount, 0)
	if carry != 0 {
		return ErrAmountOverflow
	}

	supply, err := l.getCounter(totalSupplyKey)
	if err != nil {
		return err
	}
	newSupply, carry := bits.Add64(supply, amount, 0)
	if carry != 0 {
		return ErrAmountOverflow
	}

	toAcc.Balance = newBalance
	if err := l.putAccount(w, to, toAcc); err != nil {
		return err
	}
	return l.putCounter(w, totalSupplyKey, newSupply)
}
