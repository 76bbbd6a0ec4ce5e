// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package fountain

import (
	"fmt"

	"github.com/hrissan/ur/bytewords"
	"github.com/hrissan/ur/safecast"
	"github.com/hrissan/ur/urcbor"
)

// MessageDescription is shared by every part of one message.
type MessageDescription struct {
	SequenceCount  uint32
	MessageLength  int // without padding
	Checksum       uint32
	FragmentLength int
}

// Part is the unit the encoder emits. Sequence may exceed SequenceCount,
// such parts carry XOR combinations of fragments.
type Part struct {
	Sequence      uint32
	SequenceCount uint32
	MessageLength int
	Checksum      uint32
	Data          []byte
}

// IsValid checks the fields that must be positive, and that the data is not
// longer than the message.
func (p *Part) IsValid() bool {
	return p.Sequence > 0 &&
		p.SequenceCount > 0 &&
		p.MessageLength > 0 &&
		len(p.Data) != 0 &&
		len(p.Data) <= p.MessageLength
}

// Indexes recomputes the fragments mixed into this part.
func (p *Part) Indexes() []int {
	return ChooseFragments(p.Sequence, p.SequenceCount, p.Checksum)
}

func (p *Part) MessageDescription() MessageDescription {
	return MessageDescription{
		SequenceCount:  p.SequenceCount,
		MessageLength:  p.MessageLength,
		Checksum:       p.Checksum,
		FragmentLength: len(p.Data),
	}
}

func (p *Part) Matches(md MessageDescription) bool {
	return p.SequenceCount == md.SequenceCount &&
		p.MessageLength == md.MessageLength &&
		p.Checksum == md.Checksum &&
		len(p.Data) == md.FragmentLength
}

// String returns the minimal bytewords of the CBOR form, the payload of a
// multi-part UR.
func (p Part) String() string {
	data, err := p.MarshalCBOR()
	if err != nil {
		return fmt.Sprintf("<invalid part: %v>", err)
	}
	return bytewords.Encode(data, bytewords.Minimal)
}

// [seq, count, length, checksum, data]
type partWire struct {
	_             struct{} `cbor:",toarray"`
	Sequence      uint32
	SequenceCount uint32
	MessageLength uint32
	Checksum      uint32
	Data          urcbor.RawMessage
}

type partWireEncode struct {
	_             struct{} `cbor:",toarray"`
	Sequence      uint32
	SequenceCount uint32
	MessageLength uint32
	Checksum      uint32
	Data          []byte
}

func (p Part) MarshalCBOR() ([]byte, error) {
	messageLength, err := safecast.Uint32(p.MessageLength)
	if err != nil {
		return nil, fmt.Errorf("part message length %d: %w", p.MessageLength, err)
	}
	return urcbor.Marshal(partWireEncode{
		Sequence:      p.Sequence,
		SequenceCount: p.SequenceCount,
		MessageLength: messageLength,
		Checksum:      p.Checksum,
		Data:          p.Data,
	})
}

// UnmarshalCBOR accepts exactly one 5-element array. Integers must fit u32
// and data must be a byte string.
func (p *Part) UnmarshalCBOR(data []byte) error {
	var w partWire
	if err := urcbor.Unmarshal(data, &w); err != nil {
		return err
	}
	payload, err := urcbor.UnmarshalByteString(w.Data)
	if err != nil {
		return fmt.Errorf("part data: %w", err)
	}
	messageLength, err := safecast.TryCast[int](w.MessageLength)
	if err != nil {
		return fmt.Errorf("part message length %d: %w", w.MessageLength, err)
	}
	*p = Part{
		Sequence:      w.Sequence,
		SequenceCount: w.SequenceCount,
		MessageLength: messageLength,
		Checksum:      w.Checksum,
		Data:          payload,
	}
	return nil
}

// indexedPart is a part with its fragment set resolved. Simple parts carry
// exactly one fragment.
type indexedPart struct {
	data    []byte
	indexes []int // sorted
}

func (p *indexedPart) isSimple() bool { return len(p.indexes) == 1 }

// reduce removes other's fragments from p if other is a subset of p.
func (p *indexedPart) reduce(other *indexedPart) {
	if p.isSimple() {
		return
	}
	if isSubset(other.indexes, p.indexes) {
		p.indexes = subtractInPlace(p.indexes, other.indexes)
		xorInto(p.data, other.data)
	}
}

func (p *indexedPart) reduceBySimple(data []byte, index int) {
	if p.isSimple() {
		panic("cannot reduce a simple part")
	}
	if containsIndex(p.indexes, index) {
		p.indexes = subtractInPlace(p.indexes, []int{index})
		xorInto(p.data, data)
	}
}
