// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ur

import (
	"fmt"

	"github.com/hrissan/ur/bytewords"
	"github.com/hrissan/ur/constants"
	"github.com/hrissan/ur/fountain"
	"github.com/hrissan/ur/urstats"
)

type DecoderOptions struct {
	Fountain fountain.Options

	MaxURTypeLength int // 0 means unbounded
}

func DefaultDecoderOptions(stats urstats.Stats) *DecoderOptions {
	return &DecoderOptions{
		Fountain: *fountain.DefaultDecoderOptions(stats),
	}
}

// FixedDecoderOptions bounds every buffer of the decoder, see fountain.FixedDecoderOptions.
func FixedDecoderOptions(maxFragmentLength int, maxSequenceCount int, stats urstats.Stats) *DecoderOptions {
	return &DecoderOptions{
		Fountain:        *fountain.FixedDecoderOptions(maxFragmentLength, maxSequenceCount, stats),
		MaxURTypeLength: constants.DefaultMaxURTypeLength,
	}
}

func (opts *DecoderOptions) Validate() error {
	if err := opts.Fountain.Validate(); err != nil {
		return err
	}
	if opts.MaxURTypeLength < 0 {
		return fmt.Errorf("MaxURTypeLength (%d) should not be negative", opts.MaxURTypeLength)
	}
	return nil
}

// Decoder reassembles a message from multi-part URs. A zero Decoder is
// ready to use and unbounded. Not safe for concurrent use.
type Decoder struct {
	opts     DecoderOptions
	fountain *fountain.Decoder

	urType   string
	hasType  bool
	fragment []byte // CBOR of the last part, reused
}

func NewDecoder(opts *DecoderOptions) *Decoder {
	d := &Decoder{
		opts:     *opts,
		fountain: fountain.NewDecoder(&opts.Fountain),
	}
	if opts.Fountain.Preallocate && opts.Fountain.MaxFragmentLength > 0 {
		d.fragment = make([]byte, 0, d.maxCBORLength())
	}
	return d
}

func (d *Decoder) stats() urstats.Stats {
	if d.opts.Fountain.Stats == nil {
		return urstats.NewStatsNop()
	}
	return d.opts.Fountain.Stats
}

func (d *Decoder) getFountain() *fountain.Decoder {
	if d.fountain == nil {
		d.fountain = fountain.NewDecoder(&d.opts.Fountain)
	}
	return d.fountain
}

func (d *Decoder) maxCBORLength() int {
	return d.opts.Fountain.MaxFragmentLength + constants.MaxPartEncodedLen
}

// ReceiveString parses s and receives it.
func (d *Decoder) ReceiveString(s string) error {
	u, err := Parse(s)
	if err != nil {
		d.stats().URRejected(s, err)
		return err
	}
	return d.Receive(u)
}

// Receive decodes a multi-part UR and passes its part to the fountain
// decoder. Fatal errors (see urerrors.IsFatal) require Clear before reuse.
// Parts received after completion are ignored.
func (d *Decoder) Receive(u UR) error {
	if d.IsComplete() {
		return nil
	}
	part, err := d.decodePart(u)
	if err != nil {
		d.stats().URRejected(u.String(), err)
		return err
	}
	if _, err := d.getFountain().Receive(&part); err != nil {
		return err // reported by the fountain decoder
	}
	if !d.hasType {
		d.urType = u.Type()
		d.hasType = true
	}
	return nil
}

func (d *Decoder) decodePart(u UR) (fountain.Part, error) {
	if !u.IsMultiPart() {
		return fountain.Part{}, ErrNotMultiPart
	}
	if d.hasType {
		if u.Type() != d.urType {
			return fountain.Part{}, ErrInconsistentType
		}
	} else if d.opts.MaxURTypeLength != 0 && len(u.Type()) > d.opts.MaxURTypeLength {
		return fountain.Part{}, &URTypeTooBigError{Size: len(u.Type())}
	}

	if part, ok := u.Part(); ok {
		return part, nil
	}
	text, _ := u.Bytewords()
	size, err := bytewords.Validate(text, bytewords.Minimal)
	if err != nil {
		return fountain.Part{}, fmt.Errorf("fragment bytewords: %w", err)
	}
	if d.opts.Fountain.MaxFragmentLength != 0 && size > d.maxCBORLength() {
		return fountain.Part{}, &FragmentTooBigError{Size: size}
	}
	if cap(d.fragment) < size {
		d.fragment = make([]byte, size)
	}
	d.fragment = d.fragment[:size]
	if _, err := bytewords.DecodeTo(d.fragment, text, bytewords.Minimal); err != nil {
		return fountain.Part{}, fmt.Errorf("fragment bytewords: %w", err)
	}
	var part fountain.Part
	if err := part.UnmarshalCBOR(d.fragment); err != nil {
		return fountain.Part{}, wrapCBOR(err)
	}
	return part, nil
}

func (d *Decoder) IsComplete() bool {
	return d.fountain != nil && d.fountain.IsComplete()
}

// URType returns the type fixed by the first accepted part.
func (d *Decoder) URType() (string, bool) {
	return d.urType, d.hasType
}

// Message returns nil, nil until the decoder is complete.
func (d *Decoder) Message() ([]byte, error) {
	if d.fountain == nil {
		return nil, nil
	}
	return d.fountain.Message()
}

func (d *Decoder) EstimatedPercentComplete() float64 {
	if d.fountain == nil {
		return 0
	}
	return d.fountain.EstimatedPercentComplete()
}

func (d *Decoder) IsEmpty() bool {
	return d.fountain == nil || d.fountain.IsEmpty()
}

// Clear resets the decoder keeping allocated storage.
func (d *Decoder) Clear() {
	if d.fountain != nil {
		d.fountain.Clear()
	}
	d.fragment = d.fragment[:0]
	d.urType = ""
	d.hasType = false
}
