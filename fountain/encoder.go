// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package fountain

import (
	"hash/crc32"

	"github.com/hrissan/ur/safecast"
)

// Encoder emits parts of one message. The message is referenced, not copied,
// and must not change while the encoder is in use.
type Encoder struct {
	message         []byte
	fragmentLength  int
	sequenceCount   uint32
	checksum        uint32
	currentSequence uint32

	chooser FragmentChooser
	indexes []int
	data    []byte
}

// Start panics on an empty message or a zero maxFragmentLength.
func (e *Encoder) Start(message []byte, maxFragmentLength int) {
	if len(message) == 0 {
		panic("message must not be empty")
	}
	if maxFragmentLength <= 0 {
		panic("fragment length must be greater than zero")
	}
	e.fragmentLength = FragmentLength(len(message), maxFragmentLength)
	e.sequenceCount = safecast.Cast[uint32](divCeil(len(message), e.fragmentLength))
	e.message = message
	e.checksum = crc32.ChecksumIEEE(message)
	e.currentSequence = 0
	e.data = resizeZeroed(e.data, e.fragmentLength)
}

// CurrentSequence is the number of parts emitted so far, modulo 2^32.
func (e *Encoder) CurrentSequence() uint32 { return e.currentSequence }

func (e *Encoder) SequenceCount() uint32 { return e.sequenceCount }

func (e *Encoder) FragmentLength() int { return e.fragmentLength }

func (e *Encoder) Checksum() uint32 { return e.checksum }

func (e *Encoder) MessageLength() int { return len(e.message) }

// IsComplete reports whether every fragment was emitted at least once.
// The encoder can still produce more parts.
func (e *Encoder) IsComplete() bool {
	return e.currentSequence >= e.sequenceCount
}

// NextPart returns the next part. Its Data aliases a buffer owned by the
// encoder and is overwritten by the following call.
func (e *Encoder) NextPart() Part {
	if e.message == nil {
		panic("encoder is not started")
	}
	e.currentSequence++ // wraps around intentionally

	e.indexes = e.chooser.AppendFragments(e.indexes[:0], e.currentSequence, e.sequenceCount, e.checksum)

	clear(e.data)
	for _, index := range e.indexes {
		fragment := e.message[index*e.fragmentLength:]
		if len(fragment) > e.fragmentLength {
			fragment = fragment[:e.fragmentLength]
		}
		xorInto(e.data[:len(fragment)], fragment) // the rest of the last fragment is zero padding
	}

	return Part{
		Sequence:      e.currentSequence,
		SequenceCount: e.sequenceCount,
		MessageLength: len(e.message),
		Checksum:      e.checksum,
		Data:          e.data,
	}
}
