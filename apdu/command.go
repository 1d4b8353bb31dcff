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

// Package apdu implements the short-form command frame exchanged with the
// IOTA Rebased Ledger application, and the status-word taxonomy carried in
// every response.
package apdu

import "fmt"

// Instruction identifies the operation a Command requests of the device.
// CLA, P1 and P2 are fixed at zero for every instruction in this
// application, so they are not represented as fields.
type Instruction byte

const (
	InsGetVersion    Instruction = 0x00
	InsVerifyAddress Instruction = 0x01
	InsGetPubkey     Instruction = 0x02
	InsSignTx        Instruction = 0x03
	InsQuit          Instruction = 0xFF
)

func (i Instruction) String() string {
	switch i {
	case InsGetVersion:
		return "get-version"
	case InsVerifyAddress:
		return "verify-address"
	case InsGetPubkey:
		return "get-pubkey"
	case InsSignTx:
		return "sign-tx"
	case InsQuit:
		return "quit"
	default:
		return fmt.Sprintf("instruction(0x%02X)", byte(i))
	}
}

// maxDataLen is the short-APDU LC field limit: a single byte length prefix.
const maxDataLen = 255

// Command is a single short-form command frame: a 5-byte header
// (CLA=0x00, INS, P1=0x00, P2=0x00, LC) followed by up to 255 data bytes.
type Command struct {
	Ins  Instruction
	Data []byte
}

// NewCommand builds a Command with no data.
func NewCommand(ins Instruction) Command {
	return Command{Ins: ins}
}

// WithData builds a Command carrying data. Serialize rejects payloads
// longer than 255 bytes; this constructor performs no validation so that
// callers can build a Command before deciding whether to serialize it.
func WithData(ins Instruction, data []byte) Command {
	return Command{Ins: ins, Data: data}
}

// Serialize encodes the command as [0x00][INS][0x00][0x00][LC][DATA...].
// It fails if Data is longer than 255 bytes.
func (c Command) Serialize() ([]byte, error) {
	if len(c.Data) > maxDataLen {
		return nil, fmt.Errorf("apdu: command data too long: %d bytes (max %d)", len(c.Data), maxDataLen)
	}
	buf := make([]byte, 5, 5+len(c.Data))
	buf[0] = 0x00 // CLA
	buf[1] = byte(c.Ins)
	buf[2] = 0x00 // P1
	buf[3] = 0x00 // P2
	buf[4] = byte(len(c.Data))
	buf = append(buf, c.Data...)
	return buf, nil
}
