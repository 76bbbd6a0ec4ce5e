// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package urerrors

import (
	"errors"
	"fmt"
)

// Decoder errors are either warnings (the part is rejected, state is intact,
// keep scanning) or fatal (the decoder instance must be cleared and restarted).
// Static errors are created once, so returning them does not allocate.

type Error struct {
	fatal bool
	code  int
	text  string
}

func (e *Error) Error() string {
	if e.fatal {
		return fmt.Sprintf("ur (fatal): %d %s", e.code, e.text)
	}
	return fmt.Sprintf("ur (warning): %d %s", e.code, e.text)
}

func (e *Error) Fatal() bool { return e.fatal }

func (e *Error) Code() int { return e.code }

func NewFatal(code int, text string) error {
	return &Error{
		fatal: true,
		code:  code,
		text:  text,
	}
}

func NewWarning(code int, text string) error {
	return &Error{
		fatal: false,
		code:  code,
		text:  text,
	}
}

// Classified is implemented by errors carrying their own severity,
// including the data-carrying capacity errors of the decoders.
type Classified interface {
	error
	Fatal() bool
}

// IsFatal reports whether the first classified error in err's chain is fatal.
// Unclassified errors are not fatal.
func IsFatal(err error) bool {
	var c Classified
	if errors.As(err, &c) {
		return c.Fatal()
	}
	return false
}
