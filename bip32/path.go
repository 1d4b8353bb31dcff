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

// Package bip32 implements the hardened-only BIP32 derivation path used to
// select IOTA signing keys, and its wire and display forms.
package bip32

import (
	"fmt"
	"strings"
)

// Hardened is the high bit that marks a hardened derivation component.
const Hardened uint32 = 0x8000_0000

const (
	purposeIndex  = 44
	mainnetCoin   = 4218
	testnetCoin   = 1
)

// InvalidPathError reports a derivation path that fails this library's
// invariants (too short, wrong purpose/coin type, or a non-hardened
// component).
type InvalidPathError struct {
	Msg string
}

func (e *InvalidPathError) Error() string { return "invalid BIP32 path: " + e.Msg }

// Path is an ordered sequence of hardened 32-bit derivation components.
type Path []uint32

// New validates components (each already expected to carry the hardened
// bit) and returns a Path, or an *InvalidPathError.
func New(components []uint32) (Path, error) {
	p := Path(append([]uint32(nil), components...))
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Iota builds the mainnet path 44'/4218'/account'/change'/index'.
func Iota(account, change, index uint32) Path {
	return Path{
		purposeIndex | Hardened,
		mainnetCoin | Hardened,
		account | Hardened,
		change | Hardened,
		index | Hardened,
	}
}

// Testnet builds the testnet path 44'/1'/account'/change'/index'.
func Testnet(account, change, index uint32) Path {
	return Path{
		purposeIndex | Hardened,
		testnetCoin | Hardened,
		account | Hardened,
		change | Hardened,
		index | Hardened,
	}
}

func (p Path) validate() error {
	if len(p) < 2 {
		return &InvalidPathError{Msg: "path must have at least 2 components"}
	}
	if p[0] != purposeIndex|Hardened {
		return &InvalidPathError{Msg: "first component must be 44'"}
	}
	coin := p[1]
	if coin != mainnetCoin|Hardened && coin != testnetCoin|Hardened {
		return &InvalidPathError{Msg: "coin type must be 4218' (mainnet) or 1' (testnet)"}
	}
	for i, c := range p {
		if c&Hardened == 0 {
			return &InvalidPathError{Msg: fmt.Sprintf("component %d must be hardened", i)}
		}
	}
	return nil
}

// Serialize encodes the path as [count: u8][component: u32 LE]*.
func (p Path) Serialize() []byte {
	buf := make([]byte, 1, 1+len(p)*4)
	buf[0] = byte(len(p))
	for _, c := range p {
		buf = append(buf, byte(c), byte(c>>8), byte(c>>16), byte(c>>24))
	}
	return buf
}

// Deserialize parses the wire form produced by Serialize, without
// re-validating IOTA-specific invariants (purpose/coin type/hardening).
func Deserialize(data []byte) (Path, error) {
	if len(data) < 1 {
		return nil, &InvalidPathError{Msg: "empty path encoding"}
	}
	n := int(data[0])
	if len(data) != 1+n*4 {
		return nil, &InvalidPathError{Msg: fmt.Sprintf("expected %d bytes, got %d", 1+n*4, len(data))}
	}
	p := make(Path, n)
	for i := 0; i < n; i++ {
		off := 1 + i*4
		p[i] = uint32(data[off]) | uint32(data[off+1])<<8 | uint32(data[off+2])<<16 | uint32(data[off+3])<<24
	}
	return p, nil
}

// String renders the display form, e.g. "m/44'/4218'/0'/0'/0'".
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('m')
	for _, c := range p {
		val := c &^ Hardened
		b.WriteByte('/')
		fmt.Fprintf(&b, "%d", val)
		if c&Hardened != 0 {
			b.WriteByte('\'')
		}
	}
	return b.String()
}
