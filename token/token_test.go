// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedyracing/speedy/kv"
	"github.com/speedyracing/speedy/speedy"
)

var (
	alice = speedy.BytesToAddress([]byte("alice"))
	bob   = speedy.BytesToAddress([]byte("bob"))
)

func newTestLedger(t *testing.T) (*Ledger, kv.Store) {
	store, err := kv.NewMem()
	require.NoError(t, err)
	return New(store, speedy.AssetID), store
}

// commit runs a staged mutation and writes it, failing the test on any error.
func commit(t *testing.T, l *Ledger, store kv.Store, fn func(w kv.Putter) error) {
	batch := store.NewBatch()
	require.NoError(t, fn(l.BatchPutter(batch)))
	require.NoError(t, batch.Write())
}

func TestMintAndBalance(t *testing.T) {
	l, store := newTestLedger(t)

	balance, err := l.BalanceOf(alice)
	require.NoError(t, err)
	assert.Zero(t, balance)

	commit(t, l, store, func(w kv.Putter) error {
		return l.Mint(w, alice, 1000)
	})

	balance, err = l.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), balance)

	supply, err := l.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), supply)
}

func TestTransfer(t *testing.T) {
	l, store := newTestLedger(t)

	commit(t, l, store, func(w kv.Putter) error {
		return l.Mint(w, alice, 1000)
	})
	commit(t, l, store, func(w kv.Putter) error {
		return l.Transfer(w, alice, bob, 400, HolderAuthority(alice))
	})

	aliceBalance, err := l.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), aliceBalance)

	bobBalance, err := l.BalanceOf(bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), bobBalance)

	// supply is untouched by transfers
	supply, err := l.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), supply)
}

func TestTransferInsufficientFunds(t *testing.T) {
	l, store := newTestLedger(t)

	commit(t, l, store, func(w kv.Putter) error {
		return l.Mint(w, alice, 100)
	})

	batch := store.NewBatch()
	err := l.Transfer(l.BatchPutter(batch), alice, bob, 101, HolderAuthority(alice))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Zero(t, batch.Len())
}

func TestTransferAuthority(t *testing.T) {
	l, store := newTestLedger(t)

	commit(t, l, store, func(w kv.Putter) error {
		return l.Mint(w, alice, 100)
	})

	// bob's credential cannot debit alice
	batch := store.NewBatch()
	err := l.Transfer(l.BatchPutter(batch), alice, bob, 1, HolderAuthority(bob))
	assert.ErrorIs(t, err, ErrAuthorityRejected)

	// a derivation that does not resolve to alice cannot debit her either
	proof := speedy.AuthorityProof{SeedTag: []byte("wrong"), Salt: 0}
	err = l.Transfer(l.BatchPutter(batch), alice, bob, 1, DerivedAuthority(proof))
	assert.ErrorIs(t, err, ErrAuthorityRejected)
}

func TestProgramAccount(t *testing.T) {
	l, store := newTestLedger(t)

	proof := speedy.AuthorityProof{SeedTag: []byte("test-pool"), Salt: 0}
	pool := proof.Address()

	commit(t, l, store, func(w kv.Putter) error {
		return l.CreateProgramAccount(w, pool)
	})
	commit(t, l, store, func(w kv.Putter) error {
		return l.Mint(w, pool, 500)
	})

	// no holder credential ever debits a program-owned account
	batch := store.NewBatch()
	err := l.Transfer(l.BatchPutter(batch), pool, bob, 100, HolderAuthority(pool))
	assert.ErrorIs(t, err, ErrAuthorityRejected)

	// the matching derivation does
	commit(t, l, store, func(w kv.Putter) error {
		return l.Transfer(w, pool, bob, 100, DerivedAuthority(proof))
	})
	bobBalance, err := l.BalanceOf(bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), bobBalance)

	// creating the same account twice is rejected
	err = l.CreateProgramAccount(l.BatchPutter(store.NewBatch()), pool)
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestBurn(t *testing.T) {
	l, store := newTestLedger(t)

	commit(t, l, store, func(w kv.Putter) error {
		return l.Mint(w, alice, 1000)
	})
	commit(t, l, store, func(w kv.Putter) error {
		return l.Burn(w, alice, 300, HolderAuthority(alice))
	})

	balance, err := l.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(700), balance)

	supply, err := l.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, uint64(700), supply)

	burned, err := l.TotalBurned()
	require.NoError(t, err)
	assert.Equal(t, uint64(300), burned)

	// burning more than the balance fails
	err = l.Burn(l.BatchPutter(store.NewBatch()), alice, 701, HolderAuthority(alice))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestMintOverflow(t *testing.T) {
	l, store := newTestLedger(t)

	commit(t, l, store, func(w kv.Putter) error {
		return l.Mint(w, alice, math.MaxUint64)
	})

	err := l.Mint(l.BatchPutter(store.NewBatch()), alice, 1)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}

func TestSelfTransfer(t *testing.T) {
	l, store := newTestLedger(t)

	commit(t, l, store, func(w kv.Putter) error {
		return l.Mint(w, alice, 100)
	})
	commit(t, l, store, func(w kv.Putter) error {
		return l.Transfer(w, alice, alice, 100, HolderAuthority(alice))
	})

	balance, err := l.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), balance)
}
