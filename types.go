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

// Package ledgeriota is the high-level client for the IOTA Rebased Ledger
// hardware-wallet application: connect, derive keys and addresses, show an
// address for on-device confirmation, and sign transactions and personal
// messages.
//
// The block-transfer protocol, the frame codecs, and the serializers live
// in subpackages (blockproto, apdu, bip32, objects, txbuilder) and are
// composed here; most callers only need this package and a transport from
// transport/hidtransport or transport/simulator.
package ledgeriota

import (
	"encoding/hex"
	"fmt"
)

// PublicKey is a 32-byte Ed25519 public key.
type PublicKey [32]byte

func (k PublicKey) String() string { return hex.EncodeToString(k[:]) }

// Address is a 32-byte Blake2b-256 address.
type Address [32]byte

func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }

// Signature is a 64-byte Ed25519 signature.
type Signature [64]byte

func (s Signature) String() string { return hex.EncodeToString(s[:]) }

// AppVersion is the device application's version triple and name.
type AppVersion struct {
	Major, Minor, Patch byte
	Name                string
}

func (v AppVersion) String() string {
	return fmt.Sprintf("%s v%d.%d.%d", v.Name, v.Major, v.Minor, v.Patch)
}
