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

package apdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandSerializeHeader(t *testing.T) {
	cmd := WithData(InsGetPubkey, []byte{0xAA, 0xBB, 0xCC})
	out, err := cmd.Serialize()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, byte(InsGetPubkey), 0x00, 0x00, 0x03, 0xAA, 0xBB, 0xCC}, out)
}

func TestCommandSerializeNoData(t *testing.T) {
	cmd := NewCommand(InsGetVersion)
	out, err := cmd.Serialize()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, byte(InsGetVersion), 0x00, 0x00, 0x00}, out)
}

func TestCommandSerializeMaxData(t *testing.T) {
	cmd := WithData(InsSignTx, make([]byte, 255))
	out, err := cmd.Serialize()
	require.NoError(t, err)
	assert.Len(t, out, 5+255)
	assert.EqualValues(t, 255, out[4])
}

func TestCommandSerializeTooLongRejected(t *testing.T) {
	cmd := WithData(InsSignTx, make([]byte, 256))
	_, err := cmd.Serialize()
	assert.Error(t, err)
}

func TestInstructionString(t *testing.T) {
	assert.Equal(t, "get-version", InsGetVersion.String())
	assert.Equal(t, "quit", InsQuit.String())
}
