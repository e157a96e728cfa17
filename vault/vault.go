// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vault authorizes and executes outbound transfers from the custody
// pool. The pool is controlled by no private credential: its address is
// derived from a seed tag and a salt, and debits are authorized by
// reconstructing that derivation on demand.
package vault

import (
	"github.com/pkg/errors"

	"github.com/speedyracing/speedy/kv"
	"github.com/speedyracing/speedy/speedy"
	"github.com/speedyracing/speedy/token"
)

// ErrInsufficientPoolBalance a payout exceeds the custody pool holdings.
var ErrInsufficientPoolBalance = errors.New("insufficient pool balance")

// ErrNoFreeSalt no salt in 0..255 derives an unoccupied pool address.
var ErrNoFreeSalt = errors.New("no free salt for vault derivation")

// Vault is the custody handle over the pool account of a token ledger.
type Vault struct {
	tok   *token.Ledger
	proof speedy.AuthorityProof
	pool  speedy.Address
}

// Derive finds the smallest salt whose derived address has no existing
// account on the ledger, and returns the proof material to keep. The search
// mirrors the derivation used at payout time, so the proof always resolves
// back to the pool address.
func Derive(tok *token.Ledger, seedTag []byte) (speedy.AuthorityProof, error) {
	for salt := 0; salt <= 255; salt++ {
		addr := speedy.DeriveAuthorityAddress(seedTag, uint8(salt))
		exists, err := tok.Exists(addr)
		if err != nil {
			return speedy.AuthorityProof{}, err
		}
		if !exists {
			return speedy.AuthorityProof{SeedTag: seedTag, Salt: uint8(salt)}, nil
		}
	}
	return speedy.AuthorityProof{}, ErrNoFreeSalt
}

// New reconstructs the vault from stored proof material.
func New(tok *token.Ledger, proof speedy.AuthorityProof) *Vault {
	return &Vault{
		tok:   tok,
		proof: proof,
		pool:  proof.Address(),
	}
}

// Address returns the pool account address.
func (v *Vault) Address() speedy.Address {
	return v.pool
}

// Balance returns the pool holdings.
func (v *Vault) Balance() (uint64, error) {
	return v.tok.BalanceOf(v.pool)
}

// Payout stages a transfer of amount from the pool to the player under the
// derived authority. The solvency check precedes the transfer; a short pool
// fails with ErrInsufficientPoolBalance and stages nothing.
func (v *Vault) Payout(w kv.Putter, player speedy.Address, amount uint64) error {
	balance, err := v.tok.BalanceOf(v.pool)
	if err != nil {
		return err
	}
	if amount > balance {
		return ErrInsufficientPoolBalance
	}
	return v.tok.Transfer(w, v.pool, player, amount, token.DerivedAuthority(v.proof))
}

// Fund stages a transfer of amount from the funder into the pool under the
// funder's own authority.
func (v *Vault) Fund(w kv.Putter, from speedy.Address, amount uint64) error {
	return v.tok.Transfer(w, from, v.pool, amount, token.HolderAuthority(from))
}
