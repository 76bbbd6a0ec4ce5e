// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package fountain

import (
	"github.com/hrissan/ur/constants"
	"github.com/hrissan/ur/urstats"
)

// Decoder reassembles a message from parts received in any order, with
// duplicates and loss. A zero Decoder is ready to use and unbounded.
// Not safe for concurrent use.
type Decoder struct {
	opts Options

	message     []byte
	received    []bool
	resolved    int
	mixed       []*indexedPart
	queue       partQueue
	chooser     FragmentChooser
	description MessageDescription
	started     bool

	scratch []int
}

func NewDecoder(opts *Options) *Decoder {
	d := &Decoder{opts: *opts}
	if opts.QueueSize > 0 {
		d.queue = newFixedQueue(opts.QueueSize)
	}
	if opts.Preallocate {
		if opts.MaxMessageLength > 0 {
			d.message = make([]byte, 0, opts.MaxMessageLength)
		}
		if opts.MaxSequenceCount > 0 {
			d.received = make([]bool, 0, opts.MaxSequenceCount)
		}
		if opts.MaxMixedParts > 0 {
			d.mixed = make([]*indexedPart, 0, opts.MaxMixedParts)
		}
	}
	return d
}

func (d *Decoder) stats() urstats.Stats {
	if d.opts.Stats == nil {
		return urstats.NewStatsNop()
	}
	return d.opts.Stats
}

func (d *Decoder) getQueue() partQueue {
	if d.queue == nil {
		d.queue = &growableQueue{}
	}
	return d.queue
}

// Receive adds a part. It returns true while more parts are needed and false
// once the message is complete. Parts received after completion are ignored.
// Capacity errors are fatal (see urerrors.IsFatal), the decoder must be
// cleared before reuse.
func (d *Decoder) Receive(part *Part) (bool, error) {
	if d.IsComplete() {
		return false, nil
	}
	if err := d.receive(part); err != nil {
		d.stats().PartRejected(part.Sequence, err)
		return false, err
	}
	if d.IsComplete() {
		d.stats().MessageComplete(d.description.MessageLength, d.description.SequenceCount)
		return false, nil
	}
	return true, nil
}

func (d *Decoder) receive(part *Part) error {
	if !part.IsValid() {
		return ErrInvalidPart
	}
	if d.opts.MaxFragmentLength != 0 && len(part.Data) > d.opts.MaxFragmentLength {
		return &NotEnoughSpaceError{Needed: len(part.Data), Capacity: d.opts.MaxFragmentLength}
	}
	if !d.started {
		if err := d.start(part); err != nil {
			return err
		}
	} else if !part.Matches(d.description) {
		return &InconsistentPartError{
			Received: part.MessageDescription(),
			Expected: d.description,
		}
	}

	p := &indexedPart{
		data:    append([]byte(nil), part.Data...),
		indexes: d.chooser.AppendFragments(nil, part.Sequence, part.SequenceCount, part.Checksum),
	}
	d.stats().PartReceived(part.Sequence, part.SequenceCount, len(p.indexes))
	if err := d.enqueue(p); err != nil {
		return err
	}

	queue := d.getQueue()
	for !d.IsComplete() && queue.Len() != 0 {
		p := queue.PopFront()
		var err error
		if p.isSimple() {
			err = d.processSimple(p)
		} else {
			err = d.processMixed(p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) start(part *Part) error {
	if d.opts.MaxSequenceCount != 0 && int64(part.SequenceCount) > int64(d.opts.MaxSequenceCount) {
		return ErrTooManyFragments
	}
	messageLength := len(part.Data) * int(part.SequenceCount)
	if messageLength < part.MessageLength {
		return ErrInvalidPart // fragments cannot hold the message
	}
	if d.opts.MaxMessageLength != 0 && messageLength > d.opts.MaxMessageLength {
		return &NotEnoughSpaceError{Needed: messageLength, Capacity: d.opts.MaxMessageLength}
	}
	d.message = resizeZeroed(d.message, messageLength)
	d.received = resizeZeroed(d.received, int(part.SequenceCount))
	d.resolved = 0
	d.description = part.MessageDescription()
	d.started = true
	return nil
}

func (d *Decoder) enqueue(p *indexedPart) error {
	queue := d.getQueue()
	if !queue.PushBack(p) {
		return &NotEnoughSpaceError{Needed: queue.Len() + 1, Capacity: queue.Cap()}
	}
	return nil
}

func (d *Decoder) fragment(index int) []byte {
	fl := d.description.FragmentLength
	return d.message[index*fl : (index+1)*fl]
}

// reduceMixed removes p from every pending mixed part containing it.
// Parts becoming simple move to the queue.
func (d *Decoder) reduceMixed(p *indexedPart) error {
	var err error
	kept := d.mixed[:0]
	for _, m := range d.mixed {
		m.reduce(p)
		if len(m.indexes) == 0 {
			continue // p repeats a pending combination
		}
		if m.isSimple() {
			if err == nil {
				err = d.enqueue(m)
			}
			continue
		}
		kept = append(kept, m)
	}
	clear(d.mixed[len(kept):])
	d.mixed = kept
	return err
}

func (d *Decoder) processSimple(p *indexedPart) error {
	index := p.indexes[0]
	if d.received[index] {
		return nil
	}
	if err := d.reduceMixed(p); err != nil {
		return err
	}
	copy(d.fragment(index), p.data)
	d.received[index] = true
	d.resolved++
	d.stats().FragmentResolved(index, d.resolved, len(d.received))
	return nil
}

func (d *Decoder) processMixed(p *indexedPart) error {
	for _, m := range d.mixed {
		if equalIndexes(m.indexes, p.indexes) {
			return nil
		}
	}

	d.scratch = append(d.scratch[:0], p.indexes...)
	for _, index := range d.scratch {
		if !d.received[index] {
			continue
		}
		p.reduceBySimple(d.fragment(index), index)
		if p.isSimple() {
			break
		}
	}

	if !p.isSimple() {
		for _, m := range d.mixed {
			p.reduce(m)
			if p.isSimple() {
				break
			}
		}
	}

	if p.isSimple() {
		return d.enqueue(p)
	}
	if len(p.indexes) == 0 {
		return nil // equal to a combination already pending
	}
	if err := d.reduceMixed(p); err != nil {
		return err
	}
	if d.opts.MaxMixedParts != 0 && len(d.mixed) >= d.opts.MaxMixedParts {
		d.stats().MixedPartDropped(len(p.indexes), len(d.mixed))
		return nil
	}
	d.mixed = append(d.mixed, p)
	return nil
}

// IsPartConsistent reports whether part belongs to the message being
// assembled. Always false on an empty decoder.
func (d *Decoder) IsPartConsistent(part *Part) bool {
	return d.started && part.Matches(d.description)
}

// Message returns nil, nil until the decoder is complete.
func (d *Decoder) Message() ([]byte, error) {
	if !d.IsComplete() {
		return nil, nil
	}
	messageLength := d.description.MessageLength
	for _, b := range d.message[messageLength:] {
		if b != 0 {
			return nil, ErrInvalidPadding
		}
	}
	return d.message[:messageLength], nil
}

func (d *Decoder) IsComplete() bool {
	return d.started && d.resolved == len(d.received)
}

func (d *Decoder) IsEmpty() bool {
	return !d.started
}

func (d *Decoder) MessageDescription() (MessageDescription, bool) {
	return d.description, d.started
}

// ResolvedFragments is the number of fragments known so far.
func (d *Decoder) ResolvedFragments() int {
	return d.resolved
}

func (d *Decoder) EstimatedPercentComplete() float64 {
	if d.IsComplete() {
		return 1
	}
	if !d.started {
		return 0
	}
	estimatedInputParts := float64(d.description.SequenceCount) * constants.ExpectedPartsPerFragment
	return min(constants.MaxEstimatedProgress, float64(d.resolved)/estimatedInputParts)
}

// Clear resets the decoder keeping allocated storage.
func (d *Decoder) Clear() {
	d.message = d.message[:0]
	d.received = d.received[:0]
	d.resolved = 0
	clear(d.mixed)
	d.mixed = d.mixed[:0]
	if d.queue != nil {
		d.queue.Clear()
	}
	d.description = MessageDescription{}
	d.started = false
}
