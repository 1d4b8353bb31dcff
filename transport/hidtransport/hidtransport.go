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

// Package hidtransport implements the USB HID-class packetized transport:
// 64-byte frames carrying a fixed channel and tag, chunked APDU payloads,
// and device discovery by vendor ID and HID usage page.
package hidtransport

import (
	"fmt"
	"sync"
	"time"

	"github.com/iotaledger/ledger-iota-go/apdu"
	"github.com/iotaledger/ledger-iota-go/internal/xlog"
	"github.com/iotaledger/ledger-iota-go/transport"
	"github.com/karalabe/hid"
)

const (
	vendorID  uint16 = 0x2c97
	usagePage uint16 = 0xFFA0

	reportPrefix byte = 0x00
	channel      uint16 = 0x0101
	tag          byte   = 0x05

	packetWriteSize = 65 // report prefix + 64-byte HID frame
	packetReadSize  = 64
	chunkSize       = packetWriteSize - 6

	readTimeout = 30 * time.Second
)

// Family is the device model, derived from the upper byte of the USB
// product ID.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyNanoS
	FamilyNanoSPlus
	FamilyNanoX
	FamilyFlex
	FamilyStax
)

// FamilyFromProductID classifies the upper byte of a USB product ID into
// a known Ledger device family.
func FamilyFromProductID(pid uint16) Family {
	switch pid >> 8 {
	case 0x10:
		return FamilyNanoS
	case 0x40:
		return FamilyNanoX
	case 0x50:
		return FamilyNanoSPlus
	case 0x60:
		return FamilyStax
	case 0x70:
		return FamilyFlex
	default:
		return FamilyUnknown
	}
}

func (f Family) String() string {
	switch f {
	case FamilyNanoS:
		return "Nano S"
	case FamilyNanoSPlus:
		return "Nano S+"
	case FamilyNanoX:
		return "Nano X"
	case FamilyFlex:
		return "Flex"
	case FamilyStax:
		return "Stax"
	default:
		return "unknown"
	}
}

// hidDevice is the subset of *hid.Device this package depends on, broken
// out so tests can substitute a fake without opening real hardware.
type hidDevice interface {
	Write(b []byte) (int, error)
	ReadTimeout(b []byte, durationMs int) (int, error)
	Close() error
}

// hidEnumerate and hidOpen are package vars so tests can stub USB discovery,
// mirroring the usbEnumerate hook in go-ethereum's usbwallet hub tests.
var (
	hidEnumerate = hid.Enumerate
	hidOpen      = func(info hid.DeviceInfo) (hidDevice, error) { return info.Open() }
)

// Transport is the USB HID-class packetized transport for real Ledger
// hardware.
type Transport struct {
	mu     sync.Mutex
	device hidDevice
	family Family
	closed bool
}

var _ transport.Transport = (*Transport)(nil)
var _ transport.Reconnector = (*Transport)(nil)

// New discovers and opens the first attached Ledger device matching the
// fixed vendor ID and HID usage page.
func New() (*Transport, error) {
	device, family, err := discover()
	if err != nil {
		return nil, err
	}
	xlog.L().Debugw("opened ledger HID device", "family", family.String())
	return &Transport{device: device, family: family}, nil
}

func discover() (hidDevice, Family, error) {
	infos, err := hidEnumerate(vendorID, 0)
	if err != nil {
		return nil, FamilyUnknown, &transport.CommError{Msg: "hid enumerate", Err: err}
	}
	for _, info := range infos {
		if info.UsagePage != usagePage {
			continue
		}
		device, err := hidOpen(info)
		if err != nil {
			continue
		}
		return device, FamilyFromProductID(info.ProductID), nil
	}
	return nil, FamilyUnknown, transport.ErrDeviceNotFound
}

// Family reports the detected Ledger device model.
func (t *Transport) Family() Family {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.family
}

// Reconnect closes the current handle (if any) and re-runs discovery.
func (t *Transport) Reconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.device != nil {
		_ = t.device.Close()
	}
	device, family, err := discover()
	if err != nil {
		t.closed = true
		return err
	}
	t.device, t.family, t.closed = device, family, false
	return nil
}

// Close releases the underlying HID handle.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	return t.device.Close()
}

// Exchange writes one APDU command and reads one response, holding the
// handle for the duration of the round trip.
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

	if err := writeAPDU(t.device, serialized); err != nil {
		return apdu.Response{}, err
	}
	raw, err := readAPDU(t.device)
	if err != nil {
		return apdu.Response{}, err
	}
	return apdu.ParseResponse(raw), nil
}

// writeAPDU frames apdu as a 2-byte length prefix followed by the command
// bytes, then splits that combined buffer into chunkSize-byte frames, each
// stamped with the fixed channel, tag and an incrementing sequence number.
func writeAPDU(device hidDevice, cmd []byte) error {
	payload := make([]byte, 0, 2+len(cmd))
	payload = append(payload, byte(len(cmd)>>8), byte(len(cmd)))
	payload = append(payload, cmd...)

	buffer := make([]byte, packetWriteSize)
	for seq := 0; seq*chunkSize < len(payload); seq++ {
		start := seq * chunkSize
		end := start + chunkSize
		if end > len(payload) {
			end = len(payload)
		}
		chunk := payload[start:end]

		buffer[0] = reportPrefix
		buffer[1] = byte(channel >> 8)
		buffer[2] = byte(channel)
		buffer[3] = tag
		buffer[4] = byte(seq >> 8)
		buffer[5] = byte(seq)

		for i := 6; i < packetWriteSize; i++ {
			buffer[i] = 0
		}
		copy(buffer[6:], chunk)

		if _, err := device.Write(buffer); err != nil {
			return &transport.CommError{Msg: "hid write", Err: err}
		}
	}
	return nil
}

// readAPDU reads successive 64-byte frames, validating channel, tag and
// sequence number, until the length declared by the first frame has been
// satisfied.
func readAPDU(device hidDevice) ([]byte, error) {
	buffer := make([]byte, packetReadSize)
	result := make([]byte, 0, packetReadSize)
	expectedLen := -1
	seq := 0

	for {
		n, err := device.ReadTimeout(buffer, int(readTimeout/time.Millisecond))
		if err != nil {
			return nil, &transport.CommError{Msg: "hid read", Err: err}
		}
		if n == 0 {
			return nil, &transport.TimeoutError{Milliseconds: int(readTimeout / time.Millisecond)}
		}

		gotChannel := uint16(buffer[0])<<8 | uint16(buffer[1])
		if gotChannel != channel {
			return nil, &transport.CommError{Msg: "HID channel mismatch"}
		}
		if buffer[2] != tag {
			return nil, &transport.CommError{Msg: "HID tag mismatch"}
		}
		gotSeq := int(buffer[3])<<8 | int(buffer[4])
		if gotSeq != seq {
			return nil, &transport.CommError{Msg: fmt.Sprintf("sequence mismatch: expected %d, got %d", seq, gotSeq)}
		}

		var dataStart int
		if seq == 0 {
			expectedLen = int(buffer[5])<<8 | int(buffer[6])
			dataStart = 7
		} else {
			dataStart = 5
		}
		if n < dataStart {
			return nil, &transport.CommError{Msg: fmt.Sprintf("HID short read: got %d bytes, need at least %d", n, dataStart)}
		}

		remaining := expectedLen - len(result)
		available := n - dataStart
		take := remaining
		if available < take {
			take = available
		}
		result = append(result, buffer[dataStart:dataStart+take]...)

		if len(result) >= expectedLen {
			break
		}
		seq++
	}
	return result, nil
}
