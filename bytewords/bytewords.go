// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package bytewords converts bytes to checksummed text and back. Every byte
// maps to a four-letter word, and a big-endian CRC32 of the payload is
// appended as four more words. Minimal style keeps only the first and last
// letter of each word and is what UR payloads use.
package bytewords

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/hrissan/ur/constants"
)

type Style int

const (
	Standard Style = iota // words separated by spaces
	URI                   // words separated by dashes
	Minimal               // two letters per word, no separator
)

func (s Style) String() string {
	switch s {
	case Standard:
		return "standard"
	case URI:
		return "uri"
	case Minimal:
		return "minimal"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

func ParseStyle(text string) (Style, error) {
	switch strings.ToLower(text) {
	case "standard":
		return Standard, nil
	case "uri":
		return URI, nil
	case "minimal":
		return Minimal, nil
	}
	return 0, fmt.Errorf("bytewords: unknown style %q, expected standard, uri or minimal", text)
}

func (s Style) separator() byte {
	switch s {
	case Standard:
		return ' '
	case URI:
		return '-'
	}
	panic("minimal style does not use separators")
}

// EncodedLen is the length of the encoding of n bytes.
func EncodedLen(n int, style Style) int {
	count := n + constants.ChecksumLength
	if style == Minimal {
		return 2 * count
	}
	return 5*count - 1
}

func Encode(data []byte, style Style) string {
	return string(AppendEncode(make([]byte, 0, EncodedLen(len(data), style)), data, style))
}

// AppendEncode appends the encoding of data to dst.
func AppendEncode(dst []byte, data []byte, style Style) []byte {
	var checksum [constants.ChecksumLength]byte
	binary.BigEndian.PutUint32(checksum[:], crc32.ChecksumIEEE(data))
	for i, b := range data {
		dst = appendWord(dst, i, b, style)
	}
	for i, b := range checksum {
		dst = appendWord(dst, len(data)+i, b, style)
	}
	return dst
}

func appendWord(dst []byte, position int, b byte, style Style) []byte {
	w := words[b]
	if style == Minimal {
		return append(dst, w[0], w[3])
	}
	if position != 0 {
		dst = append(dst, style.separator())
	}
	return append(dst, w...)
}

// EncodeTo writes the encoding of data to dst and returns the number of bytes written.
func EncodeTo(dst []byte, data []byte, style Style) (int, error) {
	n := EncodedLen(len(data), style)
	if len(dst) < n {
		return 0, ErrEncodeNotEnoughSpace
	}
	AppendEncode(dst[:0], data, style)
	return n, nil
}

func Decode(encoded string, style Style) ([]byte, error) {
	dst := make([]byte, max(0, maxDecodedLen(len(encoded), style)))
	n, err := decode(encoded, style, dst, true)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// Validate checks encoded fully and returns the decoded length, without allocating.
func Validate(encoded string, style Style) (int, error) {
	return decode(encoded, style, nil, false)
}

// DecodeTo decodes into dst and returns the number of bytes written.
// When dst is short, NotEnoughSpaceError reports the full decoded length.
func DecodeTo(dst []byte, encoded string, style Style) (int, error) {
	return decode(encoded, style, dst, true)
}

// upper bound when every token is a valid word
func maxDecodedLen(encodedLen int, style Style) int {
	if style == Minimal {
		return encodedLen/2 - constants.ChecksumLength
	}
	return (encodedLen+1)/5 - constants.ChecksumLength
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// splitChecksum takes the last four words off encoded. hasBody is false when
// nothing precedes them, an empty token before a separator still counts as body.
func splitChecksum(encoded string, style Style) (body string, hasBody bool, checksum [constants.ChecksumLength]byte, err error) {
	if !isASCII(encoded) {
		return "", false, checksum, ErrNonASCII
	}
	if encoded == "" {
		return "", false, checksum, ErrChecksumNotPresent
	}
	if style == Minimal && len(encoded)%2 != 0 {
		return "", false, checksum, ErrInvalidLength
	}
	body, hasBody = encoded, true
	for i := len(checksum) - 1; i >= 0; i-- {
		if !hasBody {
			return "", false, checksum, ErrChecksumNotPresent
		}
		var token string
		if style == Minimal {
			token, body = body[len(body)-2:], body[:len(body)-2]
			hasBody = body != ""
		} else if pos := strings.LastIndexByte(body, style.separator()); pos >= 0 {
			token, body = body[pos+1:], body[:pos]
		} else {
			token, body, hasBody = body, "", false
		}
		b, ok := lookupWord(token, style)
		if !ok {
			return "", false, checksum, &InvalidWordError{Position: -1}
		}
		checksum[i] = b
	}
	return body, hasBody, checksum, nil
}

// decode checks every word and the checksum. With store set, bytes go to dst
// while it has room.
func decode(encoded string, style Style, dst []byte, store bool) (int, error) {
	body, hasBody, expected, err := splitChecksum(encoded, style)
	if err != nil {
		return 0, err
	}

	var chunk [64]byte
	chunkLen := 0
	crc := uint32(0)
	n := 0
	for hasBody {
		var token string
		if style == Minimal {
			token, body = body[:2], body[2:]
			hasBody = body != ""
		} else if pos := strings.IndexByte(body, style.separator()); pos >= 0 {
			token, body = body[:pos], body[pos+1:]
		} else {
			token, hasBody = body, false
		}
		b, ok := lookupWord(token, style)
		if !ok {
			return 0, &InvalidWordError{Position: n}
		}
		if store && n < len(dst) {
			dst[n] = b
		}
		n++
		if !store {
			chunk[chunkLen] = b
			chunkLen++
			if chunkLen == len(chunk) {
				crc = crc32.Update(crc, crc32.IEEETable, chunk[:])
				chunkLen = 0
			}
		}
	}
	if store {
		if n > len(dst) {
			return 0, &NotEnoughSpaceError{Available: len(dst), Needed: n}
		}
		crc = crc32.ChecksumIEEE(dst[:n])
	} else {
		crc = crc32.Update(crc, crc32.IEEETable, chunk[:chunkLen])
	}

	var calculated [constants.ChecksumLength]byte
	binary.BigEndian.PutUint32(calculated[:], crc)
	if calculated != expected {
		return 0, &InvalidChecksumError{Expected: expected, Calculated: calculated}
	}
	return n, nil
}
