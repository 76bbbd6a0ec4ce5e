package fountain

import (
	"fmt"
	"strings"

	"github.com/hrissan/ur/urerrors"
)

var (
	ErrInvalidPart      = urerrors.NewWarning(-101, "part is empty or has zero sequence, count or length")
	ErrInvalidPadding   = urerrors.NewFatal(-102, "message padding is not zero")
	ErrTooManyFragments = urerrors.NewFatal(-103, "too many fragments for the current message")
)

// InconsistentPartError is returned when a part does not belong to the
// message the decoder is assembling.
type InconsistentPartError struct {
	Received MessageDescription
	Expected MessageDescription
}

func (e *InconsistentPartError) Error() string {
	var sb strings.Builder
	sb.WriteString("inconsistent part:")
	if e.Received.SequenceCount != e.Expected.SequenceCount {
		fmt.Fprintf(&sb, " sequence count mismatch (received %d, expected %d)", e.Received.SequenceCount, e.Expected.SequenceCount)
	}
	if e.Received.MessageLength != e.Expected.MessageLength {
		fmt.Fprintf(&sb, " message length mismatch (received %d, expected %d)", e.Received.MessageLength, e.Expected.MessageLength)
	}
	if e.Received.Checksum != e.Expected.Checksum {
		fmt.Fprintf(&sb, " checksum mismatch (received %X, expected %X)", e.Received.Checksum, e.Expected.Checksum)
	}
	if e.Received.FragmentLength != e.Expected.FragmentLength {
		fmt.Fprintf(&sb, " fragment length mismatch (received %d, expected %d)", e.Received.FragmentLength, e.Expected.FragmentLength)
	}
	return sb.String()
}

func (e *InconsistentPartError) Fatal() bool { return false }

// NotEnoughSpaceError is returned by decoders with fixed capacities.
type NotEnoughSpaceError struct {
	Needed   int
	Capacity int
}

func (e *NotEnoughSpaceError) Error() string {
	return fmt.Sprintf("not enough space: needed %d, capacity %d", e.Needed, e.Capacity)
}

func (e *NotEnoughSpaceError) Fatal() bool { return true }
