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

package blockproto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildChainSingleSmallBlock(t *testing.T) {
	blocks := BuildChain([]byte("hello"))
	assert.Len(t, blocks, 1)
	assert.Equal(t, []byte("hello"), blocks[0].Data)
	assert.Equal(t, [32]byte{}, blocks[0].Successor)
}

func TestBuildChainEmptyData(t *testing.T) {
	blocks := BuildChain(nil)
	assert.Len(t, blocks, 1)
	assert.Empty(t, blocks[0].Data)
	assert.Equal(t, [32]byte{}, blocks[0].Successor)
}

func TestBuildChainMultipleBlocks(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 400) // 180 + 180 + 40
	blocks := BuildChain(data)
	assert.Len(t, blocks, 3)
	assert.Len(t, blocks[0].Data, 180)
	assert.Len(t, blocks[1].Data, 180)
	assert.Len(t, blocks[2].Data, 40)
	assert.Equal(t, [32]byte{}, blocks[2].Successor)
	assert.Equal(t, Hash(blocks[2]), blocks[1].Successor)
	assert.Equal(t, Hash(blocks[1]), blocks[0].Successor)
}

func TestBuildChainExactBoundary(t *testing.T) {
	data := bytes.Repeat([]byte{0xCD}, 180)
	blocks := BuildChain(data)
	assert.Len(t, blocks, 1)
	assert.Len(t, blocks[0].Data, 180)
}

func TestBuildChainHashIntegrity(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, 500)
	blocks := BuildChain(data)
	for i := 0; i < len(blocks)-1; i++ {
		assert.Equal(t, Hash(blocks[i+1]), blocks[i].Successor)
	}
}

func TestBuildChainReassemblesOriginal(t *testing.T) {
	for _, n := range []int{0, 1, 179, 180, 181, 359, 360, 361, 1000} {
		data := bytes.Repeat([]byte{0x42}, n)
		blocks := BuildChain(data)

		expectedBlocks := 1
		if n > 0 {
			expectedBlocks = (n + 179) / 180
		}
		assert.Len(t, blocks, expectedBlocks)

		var reassembled []byte
		for _, b := range blocks {
			reassembled = append(reassembled, b.Data...)
		}
		assert.Equal(t, data, reassembled)
	}
}
