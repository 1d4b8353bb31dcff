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

// Status is the two trailing bytes of a response, carrying a disposition
// code. Zero means "no status present" (a truncated response).
type Status uint16

const (
	StatusNone                 Status = 0x0000
	StatusOK                   Status = 0x9000
	StatusLocked                Status = 0x5515
	StatusBlindSigningDisabled Status = 0x6808
	StatusNothingReceived      Status = 0x6982
	StatusUserRejected         Status = 0x6985
	StatusGeneralError         Status = 0x6D00
	StatusWrongApp             Status = 0x6E00
	StatusAppNotOpen           Status = 0x6E01
)

// IsSuccess reports whether the status word is 0x9000.
func (s Status) IsSuccess() bool { return s == StatusOK }

// Response is the envelope every exchange returns: a payload followed by a
// 2-byte big-endian status word. The codec never interprets the payload;
// upper layers decide when a zero status or an empty payload is an error.
type Response struct {
	Payload []byte
	Status  Status
}

// ParseResponse splits the trailing 2 bytes of raw as a big-endian status
// word. If raw is shorter than 2 bytes, the status is StatusNone and the
// payload is empty — it never panics on a short buffer.
func ParseResponse(raw []byte) Response {
	if len(raw) < 2 {
		return Response{Payload: nil, Status: StatusNone}
	}
	n := len(raw)
	status := Status(uint16(raw[n-2])<<8 | uint16(raw[n-1]))
	payload := raw[:n-2]
	return Response{Payload: payload, Status: status}
}
