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

// Package txbuilder builds the deterministic byte layout of the transfer
// transaction the device is asked to sign, so callers don't have to
// hand-roll the binary format.
package txbuilder

// GasCoinRef references the gas coin object funding a transaction, as
// returned by an RPC coin lookup.
type GasCoinRef struct {
	ObjectID [32]byte
	Version  uint64
	Digest   [32]byte
}

// BuildTransfer encodes an IntentMessage<TransactionData::V1> that splits
// amount nanos from the gas coin and transfers them to recipient.
//
// Layout: intent prefix [0,0,0], TransactionData::V1 (0),
// TransactionKind::ProgrammableTransaction (0), two Pure inputs
// (recipient, amount), two commands (SplitCoins(GasCoin, [Input(1)]),
// TransferObjects([Result(0)], Input(0))), the sender address, the gas
// reference, and an empty expiration marker. All multi-byte integers are
// little-endian. The result is deterministic: identical inputs always
// produce byte-identical output.
func BuildTransfer(sender, recipient [32]byte, amount uint64, gas GasCoinRef, gasBudget, gasPrice uint64) []byte {
	tx := make([]byte, 0, 256)

	// IntentMessage prefix: version=0, scope=0 (TransactionData), app_id=0 (IOTA).
	tx = append(tx, 0x00, 0x00, 0x00)

	tx = append(tx, 0x00) // TransactionData::V1
	tx = append(tx, 0x00) // TransactionKind::ProgrammableTransaction

	// inputs: Vec<CallArg> (length=2)
	tx = append(tx, 0x02)
	// [0] Pure(recipient)
	tx = append(tx, 0x00, 32)
	tx = append(tx, recipient[:]...)
	// [1] Pure(amount as u64 LE)
	tx = append(tx, 0x00, 8)
	tx = appendU64LE(tx, amount)

	// commands: Vec<Command> (length=2)
	tx = append(tx, 0x02)
	// [0] SplitCoins(GasCoin, [Input(1)])
	tx = append(tx, 0x02) // SplitCoins
	tx = append(tx, 0x00) // Argument::GasCoin
	tx = append(tx, 0x01) // vec len=1
	tx = append(tx, 0x01) // Argument::Input
	tx = appendU16LE(tx, 1)
	// [1] TransferObjects([Result(0)], Input(0))
	tx = append(tx, 0x01) // TransferObjects
	tx = append(tx, 0x01) // vec len=1
	tx = append(tx, 0x02) // Argument::Result
	tx = appendU16LE(tx, 0)
	tx = append(tx, 0x01) // Argument::Input
	tx = appendU16LE(tx, 0)

	// sender
	tx = append(tx, sender[:]...)

	// GasData: payment Vec<ObjectRef> (length=1)
	tx = append(tx, 0x01)
	tx = append(tx, gas.ObjectID[:]...)
	tx = appendU64LE(tx, gas.Version)
	tx = append(tx, 32) // BCS digest length prefix
	tx = append(tx, gas.Digest[:]...)
	tx = append(tx, sender[:]...) // owner
	tx = appendU64LE(tx, gasPrice)
	tx = appendU64LE(tx, gasBudget)

	// TransactionExpiration::None
	tx = append(tx, 0x00)

	return tx
}

func appendU64LE(buf []byte, v uint64) []byte {
	return append(buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56),
	)
}

func appendU16LE(buf []byte, v uint16) []byte {
	return append(buf, byte(v), byte(v>>8))
}
