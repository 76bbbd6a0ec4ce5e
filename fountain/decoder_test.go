// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package fountain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrissan/ur/fountain"
	"github.com/hrissan/ur/urerrors"
	"github.com/hrissan/ur/urstats"
	"github.com/hrissan/ur/xoshiro"
)

type recordingStats struct {
	urstats.Stats
	received int
	rejected []error
	dropped  int
	complete int
}

func newRecordingStats() *recordingStats {
	return &recordingStats{Stats: urstats.NewStatsNop()}
}

func (s *recordingStats) PartReceived(uint32, uint32, int) { s.received++ }
func (s *recordingStats) PartRejected(_ uint32, err error) { s.rejected = append(s.rejected, err) }
func (s *recordingStats) MixedPartDropped(int, int)        { s.dropped++ }
func (s *recordingStats) MessageComplete(int, uint32)      { s.complete++ }

// receiveSkipping feeds every other part starting with the first and returns
// the sequence of the part that completed the message.
func receiveSkipping(t *testing.T, d *fountain.Decoder, message []byte, maxFragmentLength int) uint32 {
	var e fountain.Encoder
	e.Start(message, maxFragmentLength)
	skip := false
	for {
		part := e.NextPart()
		if skip {
			skip = false
			continue
		}
		skip = true
		more, err := d.Receive(&part)
		require.NoError(t, err)
		if !more {
			return part.Sequence
		}
		require.Less(t, part.Sequence, uint32(1000))
	}
}

func TestDecoderSkippingParts(t *testing.T) {
	message := xoshiro.MakeMessage("Wolf", 32767)
	fragmentLength := fountain.FragmentLength(len(message), 1000)
	require.Equal(t, 993, fragmentLength)

	optionsList := map[string]*fountain.Options{
		"growable": fountain.DefaultDecoderOptions(nil),
		"fixed":    fountain.FixedDecoderOptions(1000, 64, nil),
	}
	for name, opts := range optionsList {
		require.NoError(t, opts.Validate(), name)
		d := fountain.NewDecoder(opts)
		require.True(t, d.IsEmpty())
		require.Equal(t, uint32(71), receiveSkipping(t, d, message, 1000), name)
		require.True(t, d.IsComplete())
		require.Equal(t, 33, d.ResolvedFragments())
		require.Equal(t, 1.0, d.EstimatedPercentComplete())

		result, err := d.Message()
		require.NoError(t, err, name)
		require.Equal(t, message, result, name)
	}
}

func TestDecoderMixedOnly(t *testing.T) {
	message := xoshiro.MakeMessage("Wolf", 256)
	var e fountain.Encoder
	e.Start(message, 30)
	for i := 0; i < 9; i++ {
		e.NextPart()
	}
	d := fountain.NewDecoder(fountain.DefaultDecoderOptions(nil))
	for {
		part := e.NextPart()
		more, err := d.Receive(&part)
		require.NoError(t, err)
		if !more {
			require.Equal(t, uint32(19), part.Sequence)
			break
		}
	}
	result, err := d.Message()
	require.NoError(t, err)
	require.Equal(t, message, result)
}

func TestDecoderDropsMixedParts(t *testing.T) {
	message := xoshiro.MakeMessage("Wolf", 256)
	var e fountain.Encoder
	e.Start(message, 30)
	for i := 0; i < 9; i++ {
		e.NextPart()
	}
	stats := newRecordingStats()
	opts := fountain.DefaultDecoderOptions(stats)
	opts.MaxMixedParts = 1
	d := fountain.NewDecoder(opts)
	for i := 0; i < 100 && !d.IsComplete(); i++ {
		part := e.NextPart()
		_, err := d.Receive(&part)
		require.NoError(t, err)
	}
	require.True(t, d.IsComplete())
	require.Equal(t, 10, stats.dropped)
	require.Equal(t, 1, stats.complete)
	require.Empty(t, stats.rejected)
}

func TestDecoderPartValidation(t *testing.T) {
	var e fountain.Encoder
	e.Start([]byte("foo"), 2)
	require.Equal(t, uint32(2), e.SequenceCount())

	stats := newRecordingStats()
	d := fountain.NewDecoder(fountain.DefaultDecoderOptions(stats))
	part := e.NextPart()
	more, err := d.Receive(&part)
	require.NoError(t, err)
	require.True(t, more)
	require.True(t, d.IsPartConsistent(&part))

	md, ok := d.MessageDescription()
	require.True(t, ok)
	require.Equal(t, fountain.MessageDescription{SequenceCount: 2, MessageLength: 3, Checksum: e.Checksum(), FragmentLength: 2}, md)

	mismatches := []func(p *fountain.Part){
		func(p *fountain.Part) { p.Checksum++ },
		func(p *fountain.Part) { p.MessageLength = 4 },
		func(p *fountain.Part) { p.SequenceCount = 3 },
		func(p *fountain.Part) { p.Data = []byte{1} },
	}
	for _, mutate := range mismatches {
		p := e.NextPart()
		mutate(&p)
		require.False(t, d.IsPartConsistent(&p))
		_, err := d.Receive(&p)
		var inconsistent *fountain.InconsistentPartError
		require.True(t, errors.As(err, &inconsistent), "%v", err)
		require.False(t, urerrors.IsFatal(err))
	}
	require.Len(t, stats.rejected, len(mismatches))

	p := e.NextPart()
	p.Sequence = 0
	_, err = d.Receive(&p)
	require.ErrorIs(t, err, fountain.ErrInvalidPart)
	require.False(t, d.IsComplete())
	require.Nil(t, must(d.Message()))
}

func TestDecoderEmpty(t *testing.T) {
	d := fountain.NewDecoder(fountain.FixedDecoderOptions(8, 5, nil))
	part := fountain.Part{Sequence: 1, SequenceCount: 1, MessageLength: 1}
	require.False(t, d.IsPartConsistent(&part))
	_, err := d.Receive(&part)
	require.ErrorIs(t, err, fountain.ErrInvalidPart)
	require.True(t, d.IsEmpty())
	require.Equal(t, 0.0, d.EstimatedPercentComplete())
	_, ok := d.MessageDescription()
	require.False(t, ok)
}

func TestDecoderCapacity(t *testing.T) {
	d := fountain.NewDecoder(fountain.FixedDecoderOptions(8, 5, nil))

	tooLong := fountain.Part{Sequence: 1, SequenceCount: 2, MessageLength: 18, Data: make([]byte, 9)}
	_, err := d.Receive(&tooLong)
	var space *fountain.NotEnoughSpaceError
	require.True(t, errors.As(err, &space))
	require.Equal(t, fountain.NotEnoughSpaceError{Needed: 9, Capacity: 8}, *space)
	require.True(t, urerrors.IsFatal(err))
	require.True(t, d.IsEmpty())

	tooMany := fountain.Part{Sequence: 1, SequenceCount: 6, MessageLength: 40, Data: make([]byte, 7)}
	_, err = d.Receive(&tooMany)
	require.ErrorIs(t, err, fountain.ErrTooManyFragments)
	require.True(t, urerrors.IsFatal(err))

	short := fountain.Part{Sequence: 1, SequenceCount: 2, MessageLength: 17, Data: make([]byte, 8)}
	_, err = d.Receive(&short)
	require.ErrorIs(t, err, fountain.ErrInvalidPart)

	opts := &fountain.Options{MaxMessageLength: 20}
	d = fountain.NewDecoder(opts)
	big := fountain.Part{Sequence: 1, SequenceCount: 3, MessageLength: 21, Data: make([]byte, 7)}
	_, err = d.Receive(&big)
	require.True(t, errors.As(err, &space))
	require.Equal(t, fountain.NotEnoughSpaceError{Needed: 21, Capacity: 20}, *space)
}

func TestDecoderInvalidPadding(t *testing.T) {
	d := fountain.NewDecoder(fountain.DefaultDecoderOptions(nil))
	first := fountain.Part{Sequence: 1, SequenceCount: 2, MessageLength: 3, Checksum: 7, Data: []byte{'a', 'b'}}
	second := fountain.Part{Sequence: 2, SequenceCount: 2, MessageLength: 3, Checksum: 7, Data: []byte{'c', 9}}
	more, err := d.Receive(&first)
	require.NoError(t, err)
	require.True(t, more)
	more, err = d.Receive(&second)
	require.NoError(t, err)
	require.False(t, more)

	_, err = d.Message()
	require.ErrorIs(t, err, fountain.ErrInvalidPadding)
	require.True(t, urerrors.IsFatal(err))
}

func TestDecoderIgnoresPartsAfterCompletion(t *testing.T) {
	stats := newRecordingStats()
	d := fountain.NewDecoder(fountain.DefaultDecoderOptions(stats))
	var e fountain.Encoder
	e.Start([]byte("Ten chars!"), 4)
	for i := 0; i < 3; i++ {
		part := e.NextPart()
		_, err := d.Receive(&part)
		require.NoError(t, err)
	}
	require.True(t, d.IsComplete())

	part := e.NextPart()
	part.Checksum++ // inconsistent, but not even looked at
	more, err := d.Receive(&part)
	require.NoError(t, err)
	require.False(t, more)
	require.Equal(t, 3, stats.received)
	require.Equal(t, 1, stats.complete)
}

func TestDecoderDuplicates(t *testing.T) {
	message := xoshiro.MakeMessage("Wolf", 256)
	var e fountain.Encoder
	e.Start(message, 30)
	d := fountain.NewDecoder(fountain.DefaultDecoderOptions(nil))
	part := e.NextPart()
	for i := 0; i < 5; i++ {
		more, err := d.Receive(&part)
		require.NoError(t, err)
		require.True(t, more)
	}
	require.Equal(t, 1, d.ResolvedFragments())
	require.InDelta(t, 1/(9*1.75), d.EstimatedPercentComplete(), 1e-9)

	for !d.IsComplete() {
		part := e.NextPart()
		_, err := d.Receive(&part)
		require.NoError(t, err)
	}
	result, err := d.Message()
	require.NoError(t, err)
	require.Equal(t, message, result)
}

func TestDecoderClear(t *testing.T) {
	d := fountain.NewDecoder(fountain.FixedDecoderOptions(100, 16, nil))
	for _, length := range []int{256, 1000, 17} {
		message := xoshiro.MakeMessage("Clear", length)
		var e fountain.Encoder
		e.Start(message, 100)
		for !d.IsComplete() {
			part := e.NextPart()
			_, err := d.Receive(&part)
			require.NoError(t, err)
		}
		result, err := d.Message()
		require.NoError(t, err)
		require.Equal(t, message, result)
		d.Clear()
		require.True(t, d.IsEmpty())
		require.False(t, d.IsComplete())
	}
}

func TestDecoderRoundTrip(t *testing.T) {
	prng := xoshiro.FromString("round trip")
	for length := 1; length < 2000; length += 37 {
		message := xoshiro.MakeMessage("Wolf", length)
		maxFragmentLength := int(prng.NextInt(1, 300))
		var e fountain.Encoder
		e.Start(message, maxFragmentLength)
		d := fountain.NewDecoder(fountain.DefaultDecoderOptions(nil))
		for i := 0; !d.IsComplete(); i++ {
			require.Less(t, i, 10000, "length %d fragment %d", length, maxFragmentLength)
			part := e.NextPart()
			if prng.NextInt(0, 3) == 0 {
				continue // lost
			}
			_, err := d.Receive(&part)
			require.NoError(t, err)
		}
		result, err := d.Message()
		require.NoError(t, err)
		require.Equal(t, message, result, "length %d fragment %d", length, maxFragmentLength)
	}
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, fountain.DefaultDecoderOptions(nil).Validate())
	require.NoError(t, fountain.FixedDecoderOptions(200, 100, nil).Validate())

	invalid := []fountain.Options{
		{MaxMessageLength: -1},
		{MaxFragmentLength: -1},
		{MaxSequenceCount: -1},
		{MaxMixedParts: -1},
		{QueueSize: -1},
		{MaxMessageLength: 10, MaxFragmentLength: 11},
	}
	for _, opts := range invalid {
		require.Error(t, opts.Validate(), "%+v", opts)
	}
}

func FuzzDecoder(f *testing.F) {
	f.Add(uint32(1), uint32(2), 3, uint32(0), []byte{1, 2})
	f.Add(uint32(10), uint32(9), 256, uint32(23570951), make([]byte, 29))
	f.Fuzz(func(t *testing.T, seq uint32, count uint32, length int, checksum uint32, data []byte) {
		if count > 1000 || length > 100000 {
			return
		}
		d := fountain.NewDecoder(fountain.FixedDecoderOptions(1000, 1000, nil))
		part := fountain.Part{Sequence: seq, SequenceCount: count, MessageLength: length, Checksum: checksum, Data: data}
		_, _ = d.Receive(&part)
		_, _ = d.Message()
	})
}

func must(b []byte, err error) []byte {
	if err != nil {
		panic(err)
	}
	return b
}
