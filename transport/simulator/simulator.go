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

// Package simulator implements the length-prefixed TCP transport used to
// talk to the Speculos device simulator.
package simulator

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/iotaledger/ledger-iota-go/apdu"
	"github.com/iotaledger/ledger-iota-go/internal/xlog"
	"github.com/iotaledger/ledger-iota-go/transport"
)

// DefaultHost and DefaultPort are the Speculos simulator's usual address.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 9999
)

// EnvAddr, when set to "host:port", overrides the default simulator
// address for NewFromEnv. This is the only environment variable the core
// library reads.
const EnvAddr = "LEDGER_IOTA_SIMULATOR_ADDR"

// maxResponseLen rejects simulator responses larger than this, guarding
// against a corrupt or malicious length prefix.
const maxResponseLen = 65536

const defaultReadTimeout = 30 * time.Second

// Transport is the length-prefixed TCP transport: `[u32 BE length][APDU]`
// to send, `[u32 BE length][payload]` to receive, followed by two bare
// trailing bytes that are the status word (a Speculos quirk this package
// hides from callers by stitching the two reads into one response).
type Transport struct {
	mu     sync.Mutex
	conn   net.Conn
	closed bool
}

var _ transport.Transport = (*Transport)(nil)

// New dials host:port with a 30-second connect timeout. Each Exchange
// sets its own 30-second deadline on the connection.
func New(host string, port int) (*Transport, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := net.DialTimeout("tcp", addr, defaultReadTimeout)
	if err != nil {
		return nil, &transport.ConnectionError{Addr: addr, Err: err}
	}
	xlog.L().Debugw("connected to simulator", "addr", addr)
	return &Transport{conn: conn}, nil
}

// NewFromEnv dials DefaultHost:DefaultPort, or the address named by
// EnvAddr if it is set.
func NewFromEnv() (*Transport, error) {
	host, port := DefaultHost, DefaultPort
	if addr := os.Getenv(EnvAddr); addr != "" {
		h, p, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, &transport.ConnectionError{Addr: addr, Err: err}
		}
		var portNum int
		if _, err := fmt.Sscanf(p, "%d", &portNum); err != nil {
			return nil, &transport.ConnectionError{Addr: addr, Err: err}
		}
		host, port = h, portNum
	}
	return New(host, port)
}

// Close closes the underlying TCP connection.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	return t.conn.Close()
}

// Exchange sends one framed command and reads the framed response plus
// its trailing bare status word.
func (t *Transport) Exchange(cmd apdu.Command) (apdu.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return apdu.Response{}, transport.ErrClosed
	}

	serialized, err := cmd.Serialize()
	if err != nil {
		return apdu.Response{}, err
	}

	_ = t.conn.SetDeadline(time.Now().Add(defaultReadTimeout))

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(serialized)))
	if _, err := t.conn.Write(lenBuf[:]); err != nil {
		return apdu.Response{}, wrapIOErr(err)
	}
	if _, err := t.conn.Write(serialized); err != nil {
		return apdu.Response{}, wrapIOErr(err)
	}

	if _, err := io.ReadFull(t.conn, lenBuf[:]); err != nil {
		return apdu.Response{}, wrapIOErr(err)
	}
	respLen := binary.BigEndian.Uint32(lenBuf[:])
	if respLen > maxResponseLen {
		return apdu.Response{}, &transport.CommError{Msg: fmt.Sprintf("response too large: %d bytes (max %d)", respLen, maxResponseLen)}
	}

	raw := make([]byte, respLen+2)
	if _, err := io.ReadFull(t.conn, raw[:respLen]); err != nil {
		return apdu.Response{}, wrapIOErr(err)
	}
	// SW is sent bare after the framed payload — Speculos quirk.
	if _, err := io.ReadFull(t.conn, raw[respLen:]); err != nil {
		return apdu.Response{}, wrapIOErr(err)
	}

	return apdu.ParseResponse(raw), nil
}

func wrapIOErr(err error) error {
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return &transport.TimeoutError{Milliseconds: int(defaultReadTimeout / time.Millisecond)}
	}
	return &transport.CommError{Msg: "tcp io", Err: err}
}
