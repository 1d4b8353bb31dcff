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

package ledgeriota

import (
	"github.com/iotaledger/ledger-iota-go/apdu"
)

// scriptedTransport replays one apdu.Response per Exchange call, the same
// shape the block protocol itself expects (a single-message final result,
// tag 0x01 already folded into Payload).
type scriptedTransport struct {
	responses []apdu.Response
	sent      []apdu.Command
	closed    bool
}

func (s *scriptedTransport) Exchange(cmd apdu.Command) (apdu.Response, error) {
	s.sent = append(s.sent, cmd)
	if len(s.responses) == 0 {
		return apdu.Response{}, nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *scriptedTransport) Close() error {
	s.closed = true
	return nil
}

// finalResponse wraps payload as a one-shot block-protocol final result.
func finalResponse(payload []byte) apdu.Response {
	return apdu.Response{Payload: append([]byte{0x01}, payload...), Status: apdu.StatusOK}
}

// errorResponse simulates the device answering with an empty payload and
// an error status word, the shape the block protocol maps to ClassifyStatus.
func errorResponse(status apdu.Status) apdu.Response {
	return apdu.Response{Payload: nil, Status: status}
}

func versionPayload(major, minor, patch byte, name string) []byte {
	return append([]byte{major, minor, patch}, []byte(name)...)
}
