// Copyright 2026 The ledger-iota-go Authors
// This file is part of the ledger-iota-go library.
//
// The ledger-iota-go library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ledger-iota-go library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ledger-iota-go library. If not, see <http://www.gnu.org/licenses/>.

package ledgeriota

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

// These tests verify signatures a device would have produced; the library
// itself never verifies — see the Non-goals in SPEC_FULL.md. They exist to
// prove the wire format this package hands the device (the Blake2b-256
// personal-message digest, the raw Ed25519 signature bytes) is something a
// real verifier can actually check.

func TestSignMessageDigestVerifiesWithEd25519(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	msg := []byte("transfer 500 nanos to 0xBB...")
	prefixed := append([]byte{3, 0, 0}, msg...)
	digest := blake2b.Sum256(prefixed)

	sig := ed25519.Sign(priv, digest[:])
	assert.True(t, ed25519.Verify(pub, digest[:], sig))
}

func TestSignMessageDigestRejectsTamperedMessage(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	digest := blake2b.Sum256(append([]byte{3, 0, 0}, []byte("original")...))
	sig := ed25519.Sign(priv, digest[:])

	tampered := blake2b.Sum256(append([]byte{3, 0, 0}, []byte("tampered")...))
	assert.False(t, ed25519.Verify(pub, tampered[:], sig))
}

func TestSignTxSignatureVerifiesOverRawTransactionBytes(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := []byte{0x00, 0x00, 0x00, 0x01, 0xAA, 0xBB, 0xCC}
	sig := ed25519.Sign(priv, tx)

	var out Signature
	copy(out[:], sig)
	assert.True(t, ed25519.Verify(pub, tx, out[:]))
}
