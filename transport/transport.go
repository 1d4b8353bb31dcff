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

// Package transport defines the capability the block protocol and the
// operation layer depend on — deliver one command frame, return one
// response envelope — and the shared transport-level error taxonomy. The
// two concrete implementations (USB HID-style packetized frames, and a
// length-prefixed TCP stream for the Speculos simulator) live in the
// hidtransport and simulator subpackages.
package transport

import (
	"errors"
	"fmt"

	"github.com/iotaledger/ledger-iota-go/apdu"
)

// Transport delivers one command frame to the device and returns its
// response. Implementations must be safe for concurrent use: exchange
// acquires exclusive access to the underlying handle for the duration of
// one request/response cycle.
type Transport interface {
	Exchange(cmd apdu.Command) (apdu.Response, error)
	Close() error
}

// Reconnector is an optional capability: transports that can close their
// handle and open a new one (re-running device discovery) implement it.
// The streaming (simulator) transport does not.
type Reconnector interface {
	Reconnect() error
}

// Sentinel and parametrized transport errors.
var (
	ErrDeviceNotFound = errors.New("no device found — is it plugged in and unlocked?")
	ErrClosed         = errors.New("transport is closed")
	ErrUnsupported    = errors.New("operation not supported by this transport")
)

// ConnectionError reports a failure to open the underlying handle.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed (%s): %v", e.Addr, e.Err)
}
func (e *ConnectionError) Unwrap() error { return e.Err }

// CommError wraps a lower-level I/O or framing failure observed mid-exchange.
type CommError struct {
	Msg string
	Err error
}

func (e *CommError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("communication error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("communication error: %s", e.Msg)
}
func (e *CommError) Unwrap() error { return e.Err }

// TimeoutError reports that a read deadline elapsed before a full response
// was received.
type TimeoutError struct {
	Milliseconds int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("device timed out after %dms", e.Milliseconds)
}
