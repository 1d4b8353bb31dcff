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

package simulator

import (
	"encoding/binary"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/ledger-iota-go/apdu"
	"github.com/iotaledger/ledger-iota-go/transport"
)

// mockSimulator listens on an ephemeral local port and plays the role of a
// single Speculos session: read one framed command, write back one framed
// payload plus its bare trailing status word.
func mockSimulator(t *testing.T, handle func(conn net.Conn)) (host string, port int, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		handle(conn)
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port, func() { ln.Close() }
}

func readFramedCommand(conn net.Conn) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(conn, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	buf := make([]byte, n)
	_, err := io.ReadFull(conn, buf)
	return buf, err
}

func writeFramedResponse(conn net.Conn, payload []byte, status uint16) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := conn.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := conn.Write(payload); err != nil {
		return err
	}
	var sw [2]byte
	binary.BigEndian.PutUint16(sw[:], status)
	_, err := conn.Write(sw[:])
	return err
}

func TestExchangeNormalRoundTrip(t *testing.T) {
	host, port, stop := mockSimulator(t, func(conn net.Conn) {
		if _, err := readFramedCommand(conn); err != nil {
			return
		}
		_ = writeFramedResponse(conn, []byte{0xDE, 0xAD}, uint16(apdu.StatusOK))
	})
	defer stop()

	tr, err := New(host, port)
	require.NoError(t, err)
	defer tr.Close()

	resp, err := tr.Exchange(apdu.NewCommand(apdu.InsGetVersion))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD}, resp.Payload)
	assert.Equal(t, apdu.StatusOK, resp.Status)
}

func TestExchangeZeroLengthResponse(t *testing.T) {
	host, port, stop := mockSimulator(t, func(conn net.Conn) {
		if _, err := readFramedCommand(conn); err != nil {
			return
		}
		_ = writeFramedResponse(conn, nil, uint16(apdu.StatusUserRejected))
	})
	defer stop()

	tr, err := New(host, port)
	require.NoError(t, err)
	defer tr.Close()

	resp, err := tr.Exchange(apdu.NewCommand(apdu.InsSignTx))
	require.NoError(t, err)
	assert.Empty(t, resp.Payload)
	assert.Equal(t, apdu.StatusUserRejected, resp.Status)
}

func TestExchangeResponseTooLargeRejected(t *testing.T) {
	host, port, stop := mockSimulator(t, func(conn net.Conn) {
		if _, err := readFramedCommand(conn); err != nil {
			return
		}
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], maxResponseLen+1)
		_, _ = conn.Write(lenBuf[:])
	})
	defer stop()

	tr, err := New(host, port)
	require.NoError(t, err)
	defer tr.Close()

	_, err = tr.Exchange(apdu.NewCommand(apdu.InsGetVersion))
	var ce *transport.CommError
	assert.ErrorAs(t, err, &ce)
}

func TestNewConnectionRefused(t *testing.T) {
	host, port, stop := mockSimulator(t, func(conn net.Conn) {})
	stop() // close the listener immediately so the port refuses connections

	_, err := New(host, port)
	var ce *transport.ConnectionError
	assert.ErrorAs(t, err, &ce)
}

func TestExchangeAfterCloseFails(t *testing.T) {
	host, port, stop := mockSimulator(t, func(conn net.Conn) {})
	defer stop()

	tr, err := New(host, port)
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	_, err = tr.Exchange(apdu.NewCommand(apdu.InsGetVersion))
	assert.ErrorIs(t, err, transport.ErrClosed)
}
