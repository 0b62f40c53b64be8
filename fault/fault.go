// SPDX-License-Identifier: GPL-2.0-or-later

// Package fault classifies the pipeline's fatal errors into the kinds the
// top-level entry point reports differently: configuration mistakes,
// capacity overflows, I/O failures and internal post-condition violations.
// Stages wrap a *fault.Error with errors.Wrap as it travels up, so the CLI
// can recover the kind with errors.Cause instead of string-matching.
package fault

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the failure category, per the error handling design.
type Kind int

const (
	// Configuration is a conflicting or impossible input constraint,
	// reported with the offending sprite or texture name.
	Configuration Kind = iota
	// Capacity means a sprite cannot fit any permitted sheet, or more
	// sheets are required than the filename sequence allows.
	Capacity
	// IO is a filesystem failure, surfaced with the path involved.
	IO
	// Internal is a packer post-condition violation. It indicates a bug,
	// not bad input.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case Capacity:
		return "capacity"
	case IO:
		return "io"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a classified fatal error.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// New builds a classified error from a format string.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf unwraps err down to its cause and returns its Kind. Errors that
// did not originate as a *fault.Error report Internal, since anything the
// pipeline did not classify on purpose is a bug.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(errors.Cause(err), &fe) {
		return fe.Kind
	}
	return Internal
}
