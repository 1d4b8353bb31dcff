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
	"fmt"
	"strings"

	"github.com/iotaledger/ledger-iota-go/apdu"
	"github.com/iotaledger/ledger-iota-go/bip32"
	"github.com/iotaledger/ledger-iota-go/internal/xlog"
	"github.com/iotaledger/ledger-iota-go/objects"
	"github.com/iotaledger/ledger-iota-go/transport"
	"github.com/iotaledger/ledger-iota-go/transport/hidtransport"
	"github.com/iotaledger/ledger-iota-go/transport/simulator"
)

// minVersion is the oldest application version this library will drive.
var minVersion = [3]byte{0, 9, 0}

const appNameToken = "iota"

// Client is a connection to the IOTA Ledger application over one
// transport. All methods block the caller until the device responds or
// the transport's read deadline expires.
type Client struct {
	transport transport.Transport
}

// NewWithTransport wraps an already-open transport without performing the
// identity/version handshake. Useful for tests or advanced callers that
// want to talk to an app other than the one Dial enforces.
func NewWithTransport(t transport.Transport) *Client {
	return &Client{transport: t}
}

// Dial wraps t, queries the app version, and verifies the application
// identity and minimum version before returning. On any failure the
// transport is closed and not retained.
func Dial(t transport.Transport) (*Client, error) {
	c := &Client{transport: t}

	version, err := getVersion(c.transport)
	if err != nil {
		_ = t.Close()
		return nil, err
	}
	if !isIotaApp(version.Name) {
		_ = t.Close()
		return nil, &apdu.WrongAppError{Name: version.Name}
	}
	if !versionAtLeast(version, minVersion) {
		_ = t.Close()
		return nil, &InvalidResponseError{Msg: fmt.Sprintf(
			"app %s is too old — update to at least %d.%d.%d",
			version, minVersion[0], minVersion[1], minVersion[2],
		)}
	}

	xlog.L().Infow("connected to ledger app", "version", version.String())
	return c, nil
}

// NewHID discovers and connects to a USB-attached Ledger device.
func NewHID() (*Client, error) {
	t, err := hidtransport.New()
	if err != nil {
		return nil, err
	}
	return Dial(t)
}

// NewSimulator connects to a Speculos simulator at host:port.
func NewSimulator(host string, port int) (*Client, error) {
	t, err := simulator.New(host, port)
	if err != nil {
		return nil, err
	}
	return Dial(t)
}

// NewSimulatorFromEnv connects to the simulator at the default address, or
// the address named by simulator.EnvAddr if set.
func NewSimulatorFromEnv() (*Client, error) {
	t, err := simulator.NewFromEnv()
	if err != nil {
		return nil, err
	}
	return Dial(t)
}

// Close releases the underlying transport handle.
func (c *Client) Close() error { return c.transport.Close() }

// GetVersion queries the app's version triple and name.
func (c *Client) GetVersion() (AppVersion, error) { return getVersion(c.transport) }

// GetPubkey derives the public key and address for path.
func (c *Client) GetPubkey(path bip32.Path) (PublicKey, Address, error) {
	return getPubkey(c.transport, path)
}

// VerifyAddress shows the address on the device for visual confirmation
// and blocks until the user approves or rejects.
func (c *Client) VerifyAddress(path bip32.Path) (PublicKey, Address, error) {
	return verifyAddress(c.transport, path)
}

// SignTx signs tx with the key at path. Pass objs to enable clear signing
// of non-standard token transfers; nil falls back to blind signing.
func (c *Client) SignTx(tx []byte, path bip32.Path, objs []objects.Data) (Signature, error) {
	return signTx(c.transport, tx, path, objs)
}

// SignMessage is a convenience over SignTx: it prepends the personal-
// message intent prefix [3,0,0] to msg and signs the result with no
// clear-signing objects. The device hashes the prefixed buffer with
// Blake2b-256 before signing it.
func (c *Client) SignMessage(msg []byte, path bip32.Path) (Signature, error) {
	prefixed := make([]byte, 0, 3+len(msg))
	prefixed = append(prefixed, 3, 0, 0)
	prefixed = append(prefixed, msg...)
	return signTx(c.transport, prefixed, path, nil)
}

// Quit tells the app to exit back to the dashboard. Errors are never
// returned: the app terminates before it can answer.
func (c *Client) Quit() { quit(c.transport) }

// IsAppOpen reports whether the IOTA app currently answers get-version.
func (c *Client) IsAppOpen() bool {
	v, err := c.GetVersion()
	return err == nil && isIotaApp(v.Name)
}

func isIotaApp(name string) bool {
	return strings.Contains(strings.ToLower(name), appNameToken)
}

func versionAtLeast(v AppVersion, min [3]byte) bool {
	if v.Major != min[0] {
		return v.Major > min[0]
	}
	if v.Minor != min[1] {
		return v.Minor > min[1]
	}
	return v.Patch >= min[2]
}
