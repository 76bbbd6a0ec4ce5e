package fountain

import (
	"fmt"

	"github.com/hrissan/ur/urstats"
)

// Options bound the memory a Decoder may use. Zero means unbounded. With all
// limits set and Preallocate, the decoder does not grow its buffers while
// receiving, which suits scanners with a fixed memory budget.
type Options struct {
	Stats urstats.Stats

	Preallocate bool // reserve message buffer and queue storage in NewDecoder

	MaxMessageLength  int // padded length, FragmentLength * SequenceCount
	MaxFragmentLength int
	MaxSequenceCount  int
	MaxMixedParts     int // further mixed parts are dropped and reported to Stats
	QueueSize         int // 0 selects a growable queue
}

func DefaultDecoderOptions(stats urstats.Stats) *Options {
	return &Options{
		Stats: stats,
	}
}

// FixedDecoderOptions returns options for a decoder able to assemble messages
// of up to maxSequenceCount fragments of maxFragmentLength bytes.
func FixedDecoderOptions(maxFragmentLength int, maxSequenceCount int, stats urstats.Stats) *Options {
	return &Options{
		Stats:             stats,
		Preallocate:       true,
		MaxMessageLength:  maxFragmentLength * maxSequenceCount,
		MaxFragmentLength: maxFragmentLength,
		MaxSequenceCount:  maxSequenceCount,
		MaxMixedParts:     maxSequenceCount,
		QueueSize:         maxSequenceCount,
	}
}

func (opts *Options) Validate() error {
	if opts.MaxMessageLength < 0 {
		return fmt.Errorf("MaxMessageLength (%d) should not be negative", opts.MaxMessageLength)
	}
	if opts.MaxFragmentLength < 0 {
		return fmt.Errorf("MaxFragmentLength (%d) should not be negative", opts.MaxFragmentLength)
	}
	if opts.MaxSequenceCount < 0 {
		return fmt.Errorf("MaxSequenceCount (%d) should not be negative", opts.MaxSequenceCount)
	}
	if opts.MaxMixedParts < 0 {
		return fmt.Errorf("MaxMixedParts (%d) should not be negative", opts.MaxMixedParts)
	}
	if opts.QueueSize < 0 {
		return fmt.Errorf("QueueSize (%d) should not be negative", opts.QueueSize)
	}
	if opts.MaxMessageLength != 0 && opts.MaxFragmentLength > opts.MaxMessageLength {
		return fmt.Errorf("MaxFragmentLength (%d) should not exceed MaxMessageLength (%d)", opts.MaxFragmentLength, opts.MaxMessageLength)
	}
	return nil
}
