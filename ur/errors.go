package ur

import (
	"errors"
	"fmt"

	"github.com/hrissan/ur/urerrors"
)

var (
	ErrInvalidScheme     = errors.New("invalid uniform resource scheme")
	ErrTypeUnspecified   = errors.New("no type was specified for the uniform resource")
	ErrInvalidCharacters = errors.New("uniform resource type contains invalid characters")
	ErrInvalidIndices    = errors.New("uniform resource indices are invalid")
	ErrNotSinglePart     = errors.New("uniform resource is not single-part")
	ErrNotMultiPart      = urerrors.NewWarning(-201, "uniform resource is not multi-part")
	ErrInconsistentType  = urerrors.NewWarning(-202, "fragment type differs from the type of the previous fragments")
	ErrInvalidCBOR       = urerrors.NewWarning(-203, "fragment is not a valid CBOR part")
)

// ParseIntError is returned when the indices of a multi-part UR are not
// decimal u32 values. Err is a *strconv.NumError.
type ParseIntError struct {
	Err error
}

func (e *ParseIntError) Error() string {
	return "could not parse uniform resource indices: " + e.Err.Error()
}

func (e *ParseIntError) Unwrap() error { return e.Err }

// URTypeTooBigError is returned by decoders with a bounded type length.
type URTypeTooBigError struct {
	Size int
}

func (e *URTypeTooBigError) Error() string {
	return fmt.Sprintf("the UR type (%d bytes) is too big for the decoder", e.Size)
}

func (e *URTypeTooBigError) Fatal() bool { return true }

// FragmentTooBigError is returned by decoders with a bounded fragment length.
type FragmentTooBigError struct {
	Size int
}

func (e *FragmentTooBigError) Error() string {
	return fmt.Sprintf("the fragment size (%d bytes) is too big for the decoder", e.Size)
}

func (e *FragmentTooBigError) Fatal() bool { return true }

func wrapCBOR(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidCBOR, err)
}
