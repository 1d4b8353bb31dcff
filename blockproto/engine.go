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
	"crypto/sha256"
	"fmt"

	"github.com/iotaledger/ledger-iota-go/apdu"
)

// host -> device message tags.
const (
	hostStart               byte = 0x00
	hostGetChunkSuccess     byte = 0x01
	hostGetChunkFailure     byte = 0x02
	hostPutChunkAck         byte = 0x03
	hostResultAccumulateAck byte = 0x04
)

// device -> host message tags.
const (
	deviceResultAccumulating byte = 0x00
	deviceResultFinal        byte = 0x01
	deviceGetChunk           byte = 0x02
	devicePutChunk           byte = 0x03
)

// ProtocolError reports a violation of the block-protocol's framing
// invariants: an unrecognized device message tag, a truncated GET_CHUNK
// request, or an empty response that carries no error status to explain it.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string { return "block protocol error: " + e.Msg }

// Exchanger sends one APDU command and returns the device's response. It
// is satisfied by transport.Transport without an import cycle.
type Exchanger interface {
	Exchange(cmd apdu.Command) (apdu.Response, error)
}

// Execute drives the block protocol for one instruction. Each entry in
// params is chunked into a SHA-256-linked block chain; the chains' head
// hashes are announced to the device in a START message, and the engine
// then services GET_CHUNK / PUT_CHUNK / accumulating-result messages from
// the device until a final result arrives.
//
// The block protocol has its own flow control via the leading tag byte of
// each response payload, so the status word of intermediate exchanges is
// not inspected — only an empty payload falls back to the status word to
// explain itself.
func Execute(ex Exchanger, ins apdu.Instruction, params [][]byte) ([]byte, error) {
	index := make(map[[32]byte]Block)
	putStore := make(map[[32]byte][]byte)

	heads := make([][32]byte, 0, len(params))
	for _, param := range params {
		chain := BuildChain(param)
		heads = append(heads, Hash(chain[0]))
		for _, block := range chain {
			index[Hash(block)] = block
		}
	}

	start := make([]byte, 0, 1+len(heads)*32)
	start = append(start, hostStart)
	for _, h := range heads {
		start = append(start, h[:]...)
	}

	resp, err := send(ex, ins, start)
	if err != nil {
		return nil, err
	}

	var result []byte
	for {
		data := resp.Payload
		if len(data) == 0 {
			if resp.Status != apdu.StatusNone && !resp.Status.IsSuccess() {
				return nil, apdu.ClassifyStatus(resp.Status)
			}
			return nil, &ProtocolError{Msg: "empty response"}
		}

		switch data[0] {
		case deviceResultFinal:
			result = append(result, data[1:]...)
			return result, nil

		case deviceResultAccumulating:
			result = append(result, data[1:]...)
			resp, err = send(ex, ins, []byte{hostResultAccumulateAck})
			if err != nil {
				return nil, err
			}

		case deviceGetChunk:
			if len(data) < 33 {
				return nil, &ProtocolError{Msg: "GET_CHUNK request too short"}
			}
			var hash [32]byte
			copy(hash[:], data[1:33])

			var reply []byte
			if block, ok := index[hash]; ok {
				reply = append([]byte{hostGetChunkSuccess}, block.Serialize()...)
			} else if stored, ok := putStore[hash]; ok {
				reply = append([]byte{hostGetChunkSuccess}, stored...)
			} else {
				reply = []byte{hostGetChunkFailure}
			}
			resp, err = send(ex, ins, reply)
			if err != nil {
				return nil, err
			}

		case devicePutChunk:
			chunk := append([]byte(nil), data[1:]...)
			hash := sha256.Sum256(chunk)
			putStore[hash] = chunk
			resp, err = send(ex, ins, []byte{hostPutChunkAck})
			if err != nil {
				return nil, err
			}

		default:
			return nil, &ProtocolError{Msg: fmt.Sprintf("unknown device message type: 0x%02X", data[0])}
		}
	}
}

func send(ex Exchanger, ins apdu.Instruction, data []byte) (apdu.Response, error) {
	return ex.Exchange(apdu.WithData(ins, data))
}
