// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package urcbor holds the CBOR modes shared by the part codec and the
// single-part payload helpers. Encoding uses the smallest integer forms and
// emits nil byte slices as empty byte strings; decoding rejects
// indefinite-length items and trailing data.
package urcbor

import (
	"errors"

	"github.com/fxamacker/cbor/v2"
)

var encMode cbor.EncMode

var decMode cbor.DecMode

// ErrNotByteString is returned when a value expected to be a CBOR byte string
// has any other major type.
var ErrNotByteString = errors.New("cbor: not a byte string")

const majorTypeByteString = 2

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.NilContainers = cbor.NilContainerAsEmpty
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("urcbor: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic("urcbor: CBOR decoder initialization failed: " + err.Error())
	}
}

func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes exactly one CBOR item, trailing bytes are an error.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// RawMessage delays decoding of a single item.
type RawMessage = cbor.RawMessage

// UnmarshalByteString decodes data which must hold exactly one definite-length
// byte string. Arrays of small integers are rejected, even though they would
// decode into a []byte.
func UnmarshalByteString(data []byte) ([]byte, error) {
	if len(data) == 0 || data[0]>>5 != majorTypeByteString {
		return nil, ErrNotByteString
	}
	var value []byte
	if err := decMode.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}
