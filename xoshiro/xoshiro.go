// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package xoshiro implements the xoshiro256** generator seeded from a SHA-256
// digest, as used by the fountain code to pick fragments. Both sides of a
// transfer must produce identical streams, so the seeding and the arithmetic
// of NextDouble and NextInt are part of the wire contract.
package xoshiro

import (
	"crypto/sha256"
	"encoding/binary"
	"hash/crc32"
	"math"
	"math/bits"
)

type Xoshiro256 struct {
	s [4]uint64
}

// FromDigest uses the 32 bytes directly. State word i is the big-endian
// value of digest bytes [8i, 8i+8).
func FromDigest(digest [32]byte) Xoshiro256 {
	var x Xoshiro256
	for i := range x.s {
		x.s[i] = binary.BigEndian.Uint64(digest[8*i:])
	}
	return x
}

func FromBytes(seed []byte) Xoshiro256 {
	return FromDigest(sha256.Sum256(seed))
}

func FromString(seed string) Xoshiro256 {
	return FromBytes([]byte(seed))
}

// FromCRC seeds from the big-endian CRC32 of data.
func FromCRC(data []byte) Xoshiro256 {
	var seed [4]byte
	binary.BigEndian.PutUint32(seed[:], crc32.ChecksumIEEE(data))
	return FromBytes(seed[:])
}

func (x *Xoshiro256) Next() uint64 {
	result := bits.RotateLeft64(x.s[1]*5, 7) * 9
	t := x.s[1] << 17

	x.s[2] ^= x.s[0]
	x.s[3] ^= x.s[1]
	x.s[1] ^= x.s[2]
	x.s[0] ^= x.s[3]

	x.s[2] ^= t
	x.s[3] = bits.RotateLeft64(x.s[3], 45)
	return result
}

// NextDouble returns a value in [0, 1).
func (x *Xoshiro256) NextDouble() float64 {
	return float64(x.Next()) / (float64(math.MaxUint64) + 1)
}

// NextInt returns a value in [low, high], both inclusive.
func (x *Xoshiro256) NextInt(low uint64, high uint64) uint64 {
	return uint64(x.NextDouble()*float64(high-low+1)) + low
}

func (x *Xoshiro256) NextByte() byte {
	return byte(x.NextInt(0, 255))
}

func (x *Xoshiro256) NextBytes(n int) []byte {
	result := make([]byte, n)
	for i := range result {
		result[i] = x.NextByte()
	}
	return result
}

// MakeMessage returns n pseudo-random bytes derived from seed. Used to build
// reproducible payloads for tests and self-checks.
func MakeMessage(seed string, n int) []byte {
	x := FromString(seed)
	return x.NextBytes(n)
}
