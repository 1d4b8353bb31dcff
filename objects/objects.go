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

// Package objects encodes the object-data envelopes that let the device
// clear-sign non-standard token transfers instead of falling back to
// blind signing.
package objects

import "encoding/binary"

// TypeTag identifies a Move struct type: a 32-byte module address plus
// module and type names. Only the zero-type-parameters case is supported
// (matching the device's parser).
type TypeTag struct {
	Address [32]byte
	Module  string
	Name    string
}

// MoveObjectKind selects the object variant the device renders.
type MoveObjectKind int

const (
	KindGasCoin MoveObjectKind = iota + 1
	KindStakedIota
	KindCoin
)

// MoveObject is the BCS-shaped payload describing one coin or staked-IOTA
// object.
type MoveObject struct {
	Kind               MoveObjectKind
	CoinType           TypeTag // only meaningful when Kind == KindCoin
	HasPublicTransfer  bool
	Version            uint64
	Contents           []byte
}

// OwnerKind selects the owner variant.
type OwnerKind int

const (
	OwnerAddress OwnerKind = iota
	OwnerObject
	OwnerShared
	OwnerImmutable
)

// Owner is the BCS Owner enum: an address-owner or object-owner (each 32
// bytes), a shared object (with its initial shared version), or immutable.
type Owner struct {
	Kind                  OwnerKind
	Addr                  [32]byte // AddressOwner / ObjectOwner
	InitialSharedVersion  uint64   // Shared
}

func AddressOwner(addr [32]byte) Owner { return Owner{Kind: OwnerAddress, Addr: addr} }
func ObjectOwner(addr [32]byte) Owner  { return Owner{Kind: OwnerObject, Addr: addr} }
func SharedOwner(initialVersion uint64) Owner {
	return Owner{Kind: OwnerShared, InitialSharedVersion: initialVersion}
}
func ImmutableOwner() Owner { return Owner{Kind: OwnerImmutable} }

// Data is one object envelope the device needs to render a human-readable
// transaction detail for.
type Data struct {
	Object              MoveObject
	Owner               Owner
	PreviousTransaction [33]byte // already BCS-pre-encoded: 0x20 length byte + 32-byte digest
	StorageRebate        uint64
}

// GasCoin builds the envelope for the gas coin being spent.
func GasCoin(version uint64, contents []byte, owner Owner, prevTx [33]byte, storageRebate uint64) Data {
	return Data{
		Object: MoveObject{
			Kind:              KindGasCoin,
			HasPublicTransfer: true,
			Version:           version,
			Contents:          contents,
		},
		Owner:               owner,
		PreviousTransaction: prevTx,
		StorageRebate:       storageRebate,
	}
}

// Coin builds the envelope for a non-standard coin type.
func Coin(tag TypeTag, version uint64, contents []byte, owner Owner, prevTx [33]byte, storageRebate uint64) Data {
	return Data{
		Object: MoveObject{
			Kind:              KindCoin,
			CoinType:          tag,
			HasPublicTransfer: true,
			Version:           version,
			Contents:          contents,
		},
		Owner:               owner,
		PreviousTransaction: prevTx,
		StorageRebate:       storageRebate,
	}
}

// StakedIota builds the envelope for a staked-IOTA object.
func StakedIota(version uint64, contents []byte, owner Owner, prevTx [33]byte, storageRebate uint64) Data {
	return Data{
		Object: MoveObject{
			Kind:              KindStakedIota,
			HasPublicTransfer: false,
			Version:           version,
			Contents:          contents,
		},
		Owner:               owner,
		PreviousTransaction: prevTx,
		StorageRebate:       storageRebate,
	}
}

// encode serializes one envelope's inner, variable-length encoding.
func (d Data) encode() []byte {
	buf := make([]byte, 0, 64+len(d.Object.Contents))

	buf = append(buf, 0x00) // ObjectData::Move
	switch d.Object.Kind {
	case KindGasCoin:
		buf = append(buf, 1)
	case KindStakedIota:
		buf = append(buf, 2)
	case KindCoin:
		buf = append(buf, 3)
		buf = append(buf, d.Object.CoinType.Address[:]...)
		buf = appendBCSString(buf, d.Object.CoinType.Module)
		buf = appendBCSString(buf, d.Object.CoinType.Name)
		buf = AppendULEB128(buf, 0) // no type_params
	}

	if d.Object.HasPublicTransfer {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}

	var versionBuf [8]byte
	binary.LittleEndian.PutUint64(versionBuf[:], d.Object.Version)
	buf = append(buf, versionBuf[:]...)

	buf = AppendULEB128(buf, uint64(len(d.Object.Contents)))
	buf = append(buf, d.Object.Contents...)

	switch d.Owner.Kind {
	case OwnerAddress:
		buf = append(buf, 0)
		buf = append(buf, d.Owner.Addr[:]...)
	case OwnerObject:
		buf = append(buf, 1)
		buf = append(buf, d.Owner.Addr[:]...)
	case OwnerShared:
		buf = append(buf, 2)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], d.Owner.InitialSharedVersion)
		buf = append(buf, b[:]...)
	case OwnerImmutable:
		buf = append(buf, 3)
	}

	buf = append(buf, d.PreviousTransaction[:]...)

	var rebateBuf [8]byte
	binary.LittleEndian.PutUint64(rebateBuf[:], d.StorageRebate)
	buf = append(buf, rebateBuf[:]...)

	return buf
}

func appendBCSString(buf []byte, s string) []byte {
	buf = AppendULEB128(buf, uint64(len(s)))
	return append(buf, s...)
}

// Encode frames the object list as [count: u32 LE]([length: u32 LE][envelope])*.
func Encode(objects []Data) []byte {
	buf := make([]byte, 4, 64*len(objects)+4)
	binary.LittleEndian.PutUint32(buf, uint32(len(objects)))

	for _, obj := range objects {
		encoded := obj.encode()
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(encoded)))
		buf = append(buf, lenBuf[:]...)
		buf = append(buf, encoded...)
	}
	return buf
}
