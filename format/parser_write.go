// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package format

import (
	"encoding/binary"
)

func AppendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// MarkByteOffset reserves a byte to be filled later by FillByteOffset,
// for flags that are only known after the body is produced.
func MarkByteOffset(body []byte) ([]byte, int) {
	body = append(body, 0)
	return body, len(body) - 1
}

func FillByteOffset(body []byte, mark int, value byte) {
	body[mark] = value
}
