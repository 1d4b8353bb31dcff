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

// Package blockproto implements the content-addressed block-transfer
// protocol the device uses to pull large payloads from the host, push
// derived data back, and stream results in accumulating chunks.
package blockproto

import "crypto/sha256"

// blockDataSize is the maximum data payload of a single block.
const blockDataSize = 180

// Block is a bounded-size unit of a content-addressed linked list: a
// 32-byte hash of the successor block (all zero for the tail) followed by
// up to 180 bytes of data.
type Block struct {
	Successor [32]byte
	Data      []byte
}

// serializedLen is the wire length of the block: 32 successor bytes plus
// the data.
func (b Block) serializedLen() int { return 32 + len(b.Data) }

// Serialize encodes the block as successor-digest-then-data.
func (b Block) Serialize() []byte {
	buf := make([]byte, 0, b.serializedLen())
	buf = append(buf, b.Successor[:]...)
	buf = append(buf, b.Data...)
	return buf
}

// Hash returns SHA-256 of the block's serialized form.
func Hash(b Block) [32]byte {
	return sha256.Sum256(b.Serialize())
}

// BuildChain splits data into 180-byte blocks, linked tail-first so each
// block's Successor is the hash of the next block's serialized form. The
// tail block's Successor is all zero. An empty payload yields exactly one
// block with empty data and a zero successor.
func BuildChain(data []byte) []Block {
	if len(data) == 0 {
		return []Block{{}}
	}

	n := (len(data) + blockDataSize - 1) / blockDataSize
	chunks := make([][]byte, 0, n)
	for i := 0; i < len(data); i += blockDataSize {
		end := i + blockDataSize
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[i:end])
	}

	blocks := make([]Block, len(chunks))
	var next [32]byte
	for i := len(chunks) - 1; i >= 0; i-- {
		blocks[i] = Block{Successor: next, Data: chunks[i]}
		next = Hash(blocks[i])
	}
	return blocks
}
