// Package rankerr defines the error taxonomy surfaced by the rank engine.
//
// All three sentinels are terminal: the engine does not retry, and it does
// not attempt local recovery. An invocation either succeeds end-to-end or
// returns one of these wrapped with context via Wrapf.
package rankerr

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Codespace namespaces this package's error codes within the sdkerrors registry.
const Codespace = "rank"

var (
	// ErrPrecondition is returned when the caller supplies inconsistent
	// sizes, out-of-range indices, or an unsorted inbound slice.
	ErrPrecondition = sdkerrors.Register(Codespace, 2, "precondition violation")

	// ErrResourceExhaustion is the code registered for scratch allocation
	// failure. No function in this module returns it: the engine allocates
	// scratch with make, which does not report failure to the caller.
	ErrResourceExhaustion = sdkerrors.Register(Codespace, 3, "resource exhaustion")

	// ErrNumericalDegeneracy is returned when dampingFactor is outside
	// (0, 1) or tolerance is not positive. Rejected before any allocation.
	ErrNumericalDegeneracy = sdkerrors.Register(Codespace, 4, "numerical degeneracy")
)

// Wrap attaches a message to one of the sentinels above.
func Wrap(err error, msg string) error {
	return sdkerrors.Wrap(err, msg)
}

// Wrapf attaches a formatted message to one of the sentinels above.
func Wrapf(err error, format string, args ...interface{}) error {
	return sdkerrors.Wrapf(err, format, args...)
}
