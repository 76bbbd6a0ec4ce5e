// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package ur frames byte payloads and fountain parts as Uniform Resource URIs:
//
//	ur:<type>/<bytewords>                   single part
//	ur:<type>/<seq>-<count>/<bytewords>     one part of a multi-part message
//
// Payloads are Minimal bytewords. A multi-part payload is the CBOR form of a
// fountain.Part. Parse does not decode payloads, the Decoder does.
package ur

import (
	"strconv"
	"strings"

	"github.com/hrissan/ur/bytewords"
	"github.com/hrissan/ur/fountain"
	"github.com/hrissan/ur/urcbor"
)

const scheme = "ur:"

type Kind uint8

const (
	SinglePart             Kind = iota // bytewords text of a whole message
	SinglePartDeserialized             // raw bytes of a whole message
	MultiPart                          // bytewords text of one part, with indices
	MultiPartDeserialized              // decoded fountain part
)

func (k Kind) String() string {
	switch k {
	case SinglePart:
		return "single-part"
	case SinglePartDeserialized:
		return "single-part-deserialized"
	case MultiPart:
		return "multi-part"
	case MultiPartDeserialized:
		return "multi-part-deserialized"
	}
	return "unknown"
}

// UR is a parsed or constructed Uniform Resource. Which accessors return
// values depends on Kind. Deserialized values reference the caller's bytes.
type UR struct {
	kind   Kind
	urType string

	text    string // SinglePart, MultiPart
	message []byte // SinglePartDeserialized
	part    fountain.Part

	sequence      uint32 // MultiPart
	sequenceCount uint32
}

// New constructs a single-part UR around message.
func New(urType string, message []byte) UR {
	return UR{kind: SinglePartDeserialized, urType: urType, message: message}
}

// NewMultiPart wraps a fountain part. Part data is referenced, not copied.
func NewMultiPart(urType string, part fountain.Part) UR {
	return UR{kind: MultiPartDeserialized, urType: urType, part: part}
}

// Parse splits a UR string into its type, indices and payload text.
// An all-uppercase UR, as produced by QR alphanumeric mode, is accepted.
func Parse(s string) (UR, error) {
	if strings.HasPrefix(s, "UR:") && isUpper(s) {
		s = strings.ToLower(s)
	}
	rest, ok := strings.CutPrefix(s, scheme)
	if !ok {
		return UR{}, ErrInvalidScheme
	}
	urType, rest, ok := strings.Cut(rest, "/")
	if !ok {
		return UR{}, ErrTypeUnspecified
	}
	if !IsValidType(urType) {
		return UR{}, ErrInvalidCharacters
	}

	slash := strings.LastIndexByte(rest, '/')
	if slash < 0 {
		return UR{kind: SinglePart, urType: urType, text: rest}, nil
	}
	indices, text := rest[:slash], rest[slash+1:]
	seqText, countText, ok := strings.Cut(indices, "-")
	if !ok {
		return UR{}, ErrInvalidIndices
	}
	sequence, err := parseIndex(seqText)
	if err != nil {
		return UR{}, err
	}
	sequenceCount, err := parseIndex(countText)
	if err != nil {
		return UR{}, err
	}
	return UR{
		kind:          MultiPart,
		urType:        urType,
		text:          text,
		sequence:      sequence,
		sequenceCount: sequenceCount,
	}, nil
}

func parseIndex(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, &ParseIntError{Err: err}
	}
	return uint32(v), nil
}

// IsValidType reports whether urType consists of ASCII letters, digits and dashes.
// The empty type is valid.
func IsValidType(urType string) bool {
	for i := 0; i < len(urType); i++ {
		c := urType[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '-':
		default:
			return false
		}
	}
	return true
}

func isUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if 'a' <= s[i] && s[i] <= 'z' {
			return false
		}
	}
	return true
}

func (u UR) Kind() Kind { return u.kind }

func (u UR) IsSinglePart() bool {
	return u.kind == SinglePart || u.kind == SinglePartDeserialized
}

func (u UR) IsMultiPart() bool {
	return u.kind == MultiPart || u.kind == MultiPartDeserialized
}

func (u UR) IsDeserialized() bool {
	return u.kind == SinglePartDeserialized || u.kind == MultiPartDeserialized
}

func (u UR) Type() string { return u.urType }

// Bytewords returns the payload text of a serialized UR.
func (u UR) Bytewords() (string, bool) {
	if u.kind == SinglePart || u.kind == MultiPart {
		return u.text, true
	}
	return "", false
}

// Part returns the fountain part of a deserialized multi-part UR.
func (u UR) Part() (fountain.Part, bool) {
	if u.kind == MultiPartDeserialized {
		return u.part, true
	}
	return fountain.Part{}, false
}

func (u UR) Sequence() (uint32, bool) {
	switch u.kind {
	case MultiPart:
		return u.sequence, true
	case MultiPartDeserialized:
		return u.part.Sequence, true
	}
	return 0, false
}

func (u UR) SequenceCount() (uint32, bool) {
	switch u.kind {
	case MultiPart:
		return u.sequenceCount, true
	case MultiPartDeserialized:
		return u.part.SequenceCount, true
	}
	return 0, false
}

// Payload returns the message of a single-part UR, decoding bytewords if needed.
func (u UR) Payload() ([]byte, error) {
	switch u.kind {
	case SinglePartDeserialized:
		return u.message, nil
	case SinglePart:
		return bytewords.Decode(u.text, bytewords.Minimal)
	}
	return nil, ErrNotSinglePart
}

func (u UR) String() string {
	var sb strings.Builder
	sb.WriteString(scheme)
	sb.WriteString(u.urType)
	sb.WriteByte('/')
	switch u.kind {
	case SinglePart:
		sb.WriteString(u.text)
	case SinglePartDeserialized:
		sb.WriteString(bytewords.Encode(u.message, bytewords.Minimal))
	case MultiPart:
		writeIndices(&sb, u.sequence, u.sequenceCount)
		sb.WriteString(u.text)
	case MultiPartDeserialized:
		writeIndices(&sb, u.part.Sequence, u.part.SequenceCount)
		sb.WriteString(u.part.String())
	}
	return sb.String()
}

func writeIndices(sb *strings.Builder, sequence uint32, sequenceCount uint32) {
	var buf [24]byte
	sb.Write(strconv.AppendUint(buf[:0], uint64(sequence), 10))
	sb.WriteByte('-')
	sb.Write(strconv.AppendUint(buf[:0], uint64(sequenceCount), 10))
	sb.WriteByte('/')
}

// ToString encodes message as a single-part UR.
func ToString(urType string, message []byte) string {
	return New(urType, message).String()
}

// EncodeBytes wraps message in a CBOR byte string, the payload of the "bytes" type.
func EncodeBytes(message []byte) []byte {
	data, err := urcbor.Marshal(message)
	if err != nil {
		panic("ur: byte string encoding failed: " + err.Error()) // cannot fail for []byte
	}
	return data
}

// DecodeBytes unwraps the CBOR byte string of a "bytes" payload.
func DecodeBytes(data []byte) ([]byte, error) {
	message, err := urcbor.UnmarshalByteString(data)
	if err != nil {
		return nil, wrapCBOR(err)
	}
	return message, nil
}
