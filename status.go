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
	"errors"

	"github.com/iotaledger/ledger-iota-go/apdu"
	"github.com/iotaledger/ledger-iota-go/transport"
)

// State is the high-level device state the status façade classifies a
// probe into.
type State int

const (
	StateConnected State = iota
	StateLocked
	StateWrongApp
	StateClosed
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateLocked:
		return "locked"
	case StateWrongApp:
		return "wrong-application"
	case StateClosed:
		return "closed"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// DeviceStatus is the result of a Probe: a classification plus, for
// StateWrongApp, the name of the application the device actually answered
// with.
type DeviceStatus struct {
	State   State
	AppName string
}

// Probe invokes get-version and classifies the device's current
// high-level state. Any error other than locked, app-not-open or
// wrong-application triggers a single reconnect attempt when the
// transport supports it (transport.Reconnector); this covers transport
// errors and also protocol and parse errors, which are not told apart.
// Without that capability the state is Disconnected. If the reconnect
// succeeds the probe is retried once more and an outcome that still
// cannot be classified is Locked; if the reconnect fails the state is
// Disconnected when no device was found and Locked otherwise.
func (c *Client) Probe() DeviceStatus {
	if status, ok := c.probeOnce(); ok {
		return status
	}

	reconnector, ok := c.transport.(transport.Reconnector)
	if !ok {
		return DeviceStatus{State: StateDisconnected}
	}

	if err := reconnector.Reconnect(); err != nil {
		if errors.Is(err, transport.ErrDeviceNotFound) {
			return DeviceStatus{State: StateDisconnected}
		}
		return DeviceStatus{State: StateLocked}
	}

	if status, ok := c.probeOnce(); ok {
		return status
	}
	return DeviceStatus{State: StateLocked}
}

// probeOnce performs one get-version exchange and maps the outcome to a
// DeviceStatus. The bool return is false for any error other than locked,
// app-not-open or wrong-application, whether it came from the transport
// or from the block protocol or response parsing, signaling the caller to
// attempt reconnection.
func (c *Client) probeOnce() (DeviceStatus, bool) {
	version, err := c.GetVersion()
	if err == nil {
		if isIotaApp(version.Name) {
			return DeviceStatus{State: StateConnected, AppName: version.Name}, true
		}
		return DeviceStatus{State: StateWrongApp, AppName: version.Name}, true
	}

	switch {
	case errors.Is(err, apdu.ErrLocked):
		return DeviceStatus{State: StateLocked}, true
	case errors.Is(err, apdu.ErrAppNotOpen):
		return DeviceStatus{State: StateClosed}, true
	}

	var wrongApp *apdu.WrongAppError
	if errors.As(err, &wrongApp) {
		return DeviceStatus{State: StateWrongApp, AppName: wrongApp.Name}, true
	}

	return DeviceStatus{}, false
}
