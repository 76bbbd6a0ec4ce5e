// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package constants

// Largest CBOR encoding of a part without its data bytes:
// array(5) header, u32 sequence, u64 count, u64 length, u32 checksum, u64 bytes header.
// Enough to size fixed buffers as MaxPartEncodedLen + fragment length.
const MaxPartEncodedLen = 1 + 5 + 9 + 9 + 5 + 9

// Bytewords checksum is CRC32, appended big-endian
const ChecksumLength = 4

// Decoder progress assumes about 1.75 parts are needed per fragment
const ExpectedPartsPerFragment = 1.75

// Progress never reports 100% until the message is actually complete
const MaxEstimatedProgress = 0.99

// Reasonable default for QR codes of moderate density
const DefaultMaxFragmentLength = 200

// Fixed-capacity UR decoders reserve this much for the type string if not configured
const DefaultMaxURTypeLength = 64
