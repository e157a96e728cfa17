// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package speedy

import (
	"github.com/ethereum/go-ethereum/crypto"
)

// Constants of the SPEEDY asset.
const (
	// TokenDecimals number of decimal places of the token.
	TokenDecimals = 6
	// TokenUnit the smallest-unit value of one whole token.
	TokenUnit = uint64(1_000_000)
)

// VaultSeedTag is the well-known seed tag the custody vault address is derived from.
var VaultSeedTag = []byte("speedy-vault")

// AssetID identifies the SPEEDY asset.
var AssetID = Bytes32(crypto.Keccak256Hash([]byte("speedy-token")))

// AuthorityProof is the derivation material of the keyless custody authority.
// It holds no secret: anyone can recompute the vault address from it, but the
// address has no corresponding holder credential, so only the engine invoking
// the derivation can authorize debits of the vault.
type AuthorityProof struct {
	SeedTag []byte
	Salt    uint8
}

// DeriveAuthorityAddress deterministically derives the keyless authority address
// for the given seed tag and salt. Collision resistance against holder addresses
// follows from keccak256.
func DeriveAuthorityAddress(seedTag []byte, salt uint8) Address {
	return BytesToAddress(crypto.Keccak256(seedTag, []byte{salt})[12:])
}

// Address derives the authority address from the proof.
func (p *AuthorityProof) Address() Address {
	return DeriveAuthorityAddress(p.SeedTag, p.Salt)
}
