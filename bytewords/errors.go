package bytewords

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrNonASCII             = errors.New("bytewords: string contains non-ASCII characters")
	ErrChecksumNotPresent   = errors.New("bytewords: checksum is not present")
	ErrInvalidLength        = errors.New("bytewords: invalid length")
	ErrEncodeNotEnoughSpace = errors.New("bytewords: not enough space to encode into")
)

// InvalidWordError usually means a wrong Style was used for decoding.
// Position is the index of the payload word, -1 for a word of the checksum.
type InvalidWordError struct {
	Position int
}

func (e *InvalidWordError) Error() string {
	if e.Position < 0 {
		return "bytewords: invalid word in checksum"
	}
	return fmt.Sprintf("bytewords: invalid word at position %d", e.Position)
}

type InvalidChecksumError struct {
	Expected   [4]byte
	Calculated [4]byte
}

func (e *InvalidChecksumError) Error() string {
	return fmt.Sprintf("bytewords: expected checksum %d is different from the calculated %d",
		binary.BigEndian.Uint32(e.Expected[:]), binary.BigEndian.Uint32(e.Calculated[:]))
}

type NotEnoughSpaceError struct {
	Available int
	Needed    int
}

func (e *NotEnoughSpaceError) Error() string {
	return fmt.Sprintf("bytewords: not enough space to decode, needed %d but only %d bytes available", e.Needed, e.Available)
}
