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

import (
	"errors"
	"fmt"
)

// Sentinel device-status errors. WrongApp and StatusError carry their own
// parameters and so are not sentinels; use errors.As against *WrongAppError
// and *StatusError respectively.
var (
	ErrLocked               = errors.New("device is locked or asleep — unlock it and open the IOTA app")
	ErrBlindSigningDisabled = errors.New("blind signing is disabled — enable it in the IOTA app settings")
	ErrUserRejected         = errors.New("user rejected the request on the device")
	ErrAppNotOpen           = errors.New("IOTA app is not open on the device — open it and try again")
)

// WrongAppError reports that the device answered from a different
// application than the one this library drives.
type WrongAppError struct {
	Name string
}

func (e *WrongAppError) Error() string {
	return fmt.Sprintf("wrong application open on device (found %q) — close it and open the IOTA app", e.Name)
}

// StatusError is the fallback for any status word not covered by a more
// specific sentinel: NothingReceived and any genuinely unrecognized code.
type StatusError struct {
	Code Status
	Tag  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("device returned status 0x%04X: %s", uint16(e.Code), e.Tag)
}

// ClassifyStatus maps a non-success status word to the library's closed
// error taxonomy. It is a pure, total function over uint16: every input
// value yields exactly one error value, and StatusOK yields nil.
//
// 0x6985 (UserRejected) and 0x6D00 (GeneralError) both map to
// ErrUserRejected — the device conflates the two and this library does
// not attempt to split them back apart.
func ClassifyStatus(code Status) error {
	switch code {
	case StatusOK:
		return nil
	case StatusLocked:
		return ErrLocked
	case StatusBlindSigningDisabled:
		return ErrBlindSigningDisabled
	case StatusNothingReceived:
		return &StatusError{Code: code, Tag: "nothing received"}
	case StatusUserRejected, StatusGeneralError:
		return ErrUserRejected
	case StatusWrongApp:
		return &WrongAppError{Name: "unknown"}
	case StatusAppNotOpen:
		return ErrAppNotOpen
	default:
		return &StatusError{Code: code, Tag: "unknown"}
	}
}
