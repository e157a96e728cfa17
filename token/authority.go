// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import "github.com/speedyracing/speedy/speedy"

// Authority authorizes a debit of an account. Two kinds exist:
//
//   - holder authority: the account owner acting on their own balance. It is
//     rejected for program-owned accounts, which have no holder credential.
//   - derived authority: reconstructed from an AuthorityProof. It is accepted
//     only when the derivation resolves to the debited address, so it cannot
//     be replayed against any other account.
type Authority struct {
	holder speedy.Address
	proof  *speedy.AuthorityProof
}

// HolderAuthority returns the authority of an account owner over their own balance.
func HolderAuthority(addr speedy.Address) Authority {
	return Authority{holder: addr}
}

// DerivedAuthority returns the keyless authority reconstructed from proof.
func DerivedAuthority(proof speedy.AuthorityProof) Authority {
	return Authority{proof: &proof}
}

// covers reports whether the authority is valid for debiting the given account.
func (a Authority) covers(addr speedy.Address, programOwned bool) bool {
	if a.proof != nil {
		return a.proof.Address() == addr
	}
	if programOwned {
		return false
	}
	return a.holder == addr
}
