// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package format holds offset-threading readers and appenders for small
// fixed binary layouts. Every reader takes the body and the current offset and
// returns the offset past what it consumed, so a header is parsed as a chain of
// calls with a single error check each.
package format

import (
	"encoding/binary"
	"errors"
)

var ErrBodyTooShort = errors.New("body too short")
var ErrBodyExcessBytes = errors.New("body excess bytes")

func ParserReadFinish(body []byte, offset int) error {
	if offset != len(body) {
		return ErrBodyExcessBytes
	}
	return nil
}

func ParserReadByte(body []byte, offset int) (_ int, value byte, err error) {
	if len(body) < offset+1 {
		return offset, 0, ErrBodyTooShort
	}
	return offset + 1, body[offset], nil
}

func ParserReadByteConst(body []byte, offset int, value byte, err error) (_ int, _ error) {
	if len(body) < offset+1 {
		return offset, ErrBodyTooShort
	}
	if body[offset] != value {
		return offset, err
	}
	return offset + 1, nil
}

func ParserReadUint32(body []byte, offset int) (_ int, value uint32, err error) {
	if len(body) < offset+4 {
		return offset, 0, ErrBodyTooShort
	}
	return offset + 4, binary.BigEndian.Uint32(body[offset:]), nil
}

func ParserReadFixedBytes(body []byte, offset int, value []byte) (_ int, _ error) {
	if len(body) < offset+len(value) {
		return offset, ErrBodyTooShort
	}
	copy(value, body[offset:])
	return offset + len(value), nil
}

// ParserReadRest returns everything after offset, aliasing body.
func ParserReadRest(body []byte, offset int) (_ int, value []byte, err error) {
	if len(body) < offset {
		return offset, nil, ErrBodyTooShort
	}
	return len(body), body[offset:], nil
}
