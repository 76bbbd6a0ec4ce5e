// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package safecast converts between integer types, failing instead of wrapping.
// The wire format carries u32 fields while lengths and indexes are int in Go,
// so every crossing between the two goes through here.
package safecast

import (
	"errors"
)

// Based on https://github.com/fortio/safecast

type Integer interface {
	~uintptr |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var ErrIntegerOverflowSign = errors.New("integer overflow - loss of sign")
var ErrIntegerOverflow = errors.New("integer overflow")

func TryCast[Result Integer, Arg Integer](arg Arg) (Result, error) {
	argPositive := arg > 0
	converted := Result(arg)
	if argPositive != (converted > 0) {
		return converted, ErrIntegerOverflowSign // return converted to examine
	}
	if Arg(converted) != arg {
		return converted, ErrIntegerOverflow // return converted to examine
	}
	return converted, nil
}

// Cast is TryCast for values the caller has already bounded; overflow is a bug.
func Cast[Result Integer, Arg Integer](arg Arg) Result {
	converted, err := TryCast[Result](arg)
	if err != nil {
		panic(err.Error())
	}
	return converted
}

// Uint32 is the conversion used for sequence numbers, counts and lengths on the wire.
func Uint32[Arg Integer](arg Arg) (uint32, error) {
	return TryCast[uint32](arg)
}
