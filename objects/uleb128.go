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

package objects

// AppendULEB128 appends the ULEB128 encoding of val to buf and returns the
// extended slice.
func AppendULEB128(buf []byte, val uint64) []byte {
	for {
		b := byte(val & 0x7F)
		val >>= 7
		if val != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
		if val == 0 {
			break
		}
	}
	return buf
}

// ReadULEB128 decodes a ULEB128-encoded value from the start of buf,
// returning the value and the number of bytes consumed.
func ReadULEB128(buf []byte) (val uint64, n int) {
	var shift uint
	for n < len(buf) {
		b := buf[n]
		val |= uint64(b&0x7F) << shift
		n++
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}
	return val, n
}
