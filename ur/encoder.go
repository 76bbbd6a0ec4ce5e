// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ur

import (
	"github.com/hrissan/ur/fountain"
)

// Encoder emits the parts of one message as multi-part URs.
type Encoder struct {
	urType   string
	started  bool
	fountain fountain.Encoder
}

// Start panics on an empty message, a zero maxFragmentLength or a type with
// characters other than letters, digits and dashes.
func (e *Encoder) Start(urType string, message []byte, maxFragmentLength int) {
	if !IsValidType(urType) {
		panic("ur type contains invalid characters")
	}
	e.fountain.Start(message, maxFragmentLength)
	e.urType = urType
	e.started = true
}

func (e *Encoder) Type() string { return e.urType }

// CurrentSequence is the number of parts emitted so far.
func (e *Encoder) CurrentSequence() uint32 { return e.fountain.CurrentSequence() }

// SequenceCount is the number of fragments the message is split into.
func (e *Encoder) SequenceCount() uint32 { return e.fountain.SequenceCount() }

// IsComplete reports whether every fragment was emitted at least once.
func (e *Encoder) IsComplete() bool { return e.fountain.IsComplete() }

// NextPart returns the next part. Its data aliases encoder storage, convert it
// to a string before the following call.
func (e *Encoder) NextPart() UR {
	if !e.started {
		panic("encoder is not started")
	}
	return NewMultiPart(e.urType, e.fountain.NextPart())
}
