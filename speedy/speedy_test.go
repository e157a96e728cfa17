// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package speedy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	addr := BytesToAddress([]byte("account1"))
	assert.False(t, addr.IsZero())
	assert.True(t, Address{}.IsZero())

	parsed, err := ParseAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, *parsed)

	_, err = ParseAddress("0x123")
	assert.Error(t, err)
	_, err = ParseAddress("zz123456789012345678901234567890123456789012")
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	addr := MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")

	data, err := json.Marshal(&addr)
	require.NoError(t, err)
	assert.Equal(t, `"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestDeriveAuthorityAddress(t *testing.T) {
	a := DeriveAuthorityAddress(VaultSeedTag, 0)
	b := DeriveAuthorityAddress(VaultSeedTag, 0)
	assert.Equal(t, a, b)

	// different salts and seed tags land on different addresses
	assert.NotEqual(t, a, DeriveAuthorityAddress(VaultSeedTag, 1))
	assert.NotEqual(t, a, DeriveAuthorityAddress([]byte("other"), 0))

	proof := AuthorityProof{SeedTag: VaultSeedTag, Salt: 3}
	assert.Equal(t, DeriveAuthorityAddress(VaultSeedTag, 3), proof.Address())
}
