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
	"encoding/binary"
	"fmt"

	"github.com/iotaledger/ledger-iota-go/apdu"
	"github.com/iotaledger/ledger-iota-go/bip32"
	"github.com/iotaledger/ledger-iota-go/blockproto"
	"github.com/iotaledger/ledger-iota-go/objects"
)

// InvalidResponseError reports a device response that doesn't match the
// shape an operation expects (too short, or a length field that doesn't
// agree with the bytes that follow).
type InvalidResponseError struct {
	Msg string
}

func (e *InvalidResponseError) Error() string { return "invalid response: " + e.Msg }

func execute(ex blockproto.Exchanger, ins apdu.Instruction, params [][]byte) ([]byte, error) {
	return blockproto.Execute(ex, ins, params)
}

// getVersion queries the app version and name. Response: [major][minor][patch][name...].
func getVersion(ex blockproto.Exchanger) (AppVersion, error) {
	result, err := execute(ex, apdu.InsGetVersion, nil)
	if err != nil {
		return AppVersion{}, err
	}
	return parseVersion(result)
}

func parseVersion(data []byte) (AppVersion, error) {
	if len(data) < 4 {
		return AppVersion{}, &InvalidResponseError{Msg: "version response too short — is the IOTA app running?"}
	}
	return AppVersion{
		Major: data[0],
		Minor: data[1],
		Patch: data[2],
		Name:  decodeUTF8Lossy(data[3:]),
	}, nil
}

// getPubkey and verifyAddress share the same parameter and response shape;
// only the instruction differs (VerifyAddress additionally blocks on
// on-device user confirmation before the device answers).
func getPubkey(ex blockproto.Exchanger, path bip32.Path) (PublicKey, Address, error) {
	return dispatchPubkey(ex, apdu.InsGetPubkey, path)
}

func verifyAddress(ex blockproto.Exchanger, path bip32.Path) (PublicKey, Address, error) {
	return dispatchPubkey(ex, apdu.InsVerifyAddress, path)
}

func dispatchPubkey(ex blockproto.Exchanger, ins apdu.Instruction, path bip32.Path) (PublicKey, Address, error) {
	result, err := execute(ex, ins, [][]byte{path.Serialize()})
	if err != nil {
		return PublicKey{}, Address{}, err
	}
	return parsePubkeyResponse(result)
}

// parsePubkeyResponse parses [len=32][pubkey(32)][len=32][address(32)].
func parsePubkeyResponse(data []byte) (PublicKey, Address, error) {
	if len(data) == 0 {
		return PublicKey{}, Address{}, &InvalidResponseError{Msg: "empty pubkey response"}
	}

	pkLen := int(data[0])
	if pkLen != 32 || len(data) < 1+pkLen+1 {
		return PublicKey{}, Address{}, &InvalidResponseError{Msg: fmt.Sprintf("unexpected pubkey length: %d", pkLen)}
	}
	var pk PublicKey
	copy(pk[:], data[1:33])

	addrLen := int(data[33])
	if addrLen != 32 || len(data) < 34+addrLen {
		return PublicKey{}, Address{}, &InvalidResponseError{Msg: fmt.Sprintf("unexpected address length: %d", addrLen)}
	}
	var addr Address
	copy(addr[:], data[34:66])

	return pk, addr, nil
}

// signTx builds the three SignTx parameters — length-prefixed tx bytes,
// the derivation path, and optionally an encoded object list for clear
// signing — and parses the signature out of the result.
func signTx(ex blockproto.Exchanger, tx []byte, path bip32.Path, objs []objects.Data) (Signature, error) {
	param1 := make([]byte, 4, 4+len(tx))
	binary.LittleEndian.PutUint32(param1, uint32(len(tx)))
	param1 = append(param1, tx...)

	params := [][]byte{param1, path.Serialize()}
	if objs != nil {
		params = append(params, objects.Encode(objs))
	}

	result, err := execute(ex, apdu.InsSignTx, params)
	if err != nil {
		return Signature{}, err
	}
	return parseSignature(result)
}

func parseSignature(data []byte) (Signature, error) {
	if len(data) < 64 {
		return Signature{}, &InvalidResponseError{Msg: fmt.Sprintf("expected 64-byte signature, got %d bytes", len(data))}
	}
	var sig Signature
	copy(sig[:], data[:64])
	return sig, nil
}

// quit asks the device to exit the app; the app terminates before it can
// answer, so transport/protocol errors from this exchange are ignored.
func quit(ex blockproto.Exchanger) {
	_, _ = execute(ex, apdu.InsQuit, nil)
}

func decodeUTF8Lossy(b []byte) string {
	// The device name field is unvalidated bytes; decode permissively,
	// matching String::from_utf8_lossy (invalid sequences become U+FFFD).
	return fromUTF8Lossy(b)
}
