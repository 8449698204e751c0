// SPDX-License-Identifier: MIT
//
// File: errors.go
// Role: Shared error taxonomy (kinds, structured *Error, cancellation outcome,
// non-fatal warnings) used by core and by every algorithm package.
// Policy:
//   - Validation and configuration failures are *Error values; match them with
//     errors.Is against the Err* sentinels below.
//   - Cancellation is NOT an *Error: it wraps ErrCancelled and the context cause.
//   - Warnings never abort a computation; they travel inside results.

package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure or a warning.
type Kind uint8

const (
	// KindMalformedStructure marks a structural invariant violated at construction.
	KindMalformedStructure Kind = iota + 1

	// KindNegativeWeight marks a traversal that received a negative edge weight.
	KindNegativeWeight

	// KindIncompatibleStructure marks a kernel variant that cannot compare its inputs.
	KindIncompatibleStructure

	// KindInvalidDimension marks an out-of-range dimension or shape request.
	KindInvalidDimension

	// KindNumericalInstability marks a non-fatal numerical correction.
	KindNumericalInstability
)

// String returns the taxonomy name of k.
func (k Kind) String() string {
	switch k {
	case KindMalformedStructure:
		return "MalformedStructure"
	case KindNegativeWeight:
		return "NegativeWeight"
	case KindIncompatibleStructure:
		return "IncompatibleStructure"
	case KindInvalidDimension:
		return "InvalidDimension"
	case KindNumericalInstability:
		return "NumericalInstability"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Sentinel errors. A *Error matches exactly one of them via errors.Is.
var (
	// ErrMalformedStructure: dangling edge, duplicate node id, cycle in a tree, ...
	ErrMalformedStructure = errors.New("core: malformed structure")

	// ErrNegativeWeight: a traversal met an edge weight < 0.
	ErrNegativeWeight = errors.New("core: negative edge weight")

	// ErrIncompatibleStructure: the kernel variant cannot compare the pair.
	ErrIncompatibleStructure = errors.New("core: incompatible structure")

	// ErrInvalidDimension: requested dimension outside its valid range.
	ErrInvalidDimension = errors.New("core: invalid dimension")

	// ErrNumericalInstability is only used to classify warnings.
	ErrNumericalInstability = errors.New("core: numerical instability")

	// ErrCancelled is the distinct outcome of a caller-initiated abort.
	ErrCancelled = errors.New("core: computation cancelled")
)

// NoIndex is the Index of an *Error that is not tied to one structure.
const NoIndex = -1

// sentinel maps a Kind onto its package sentinel.
func (k Kind) sentinel() error {
	switch k {
	case KindMalformedStructure:
		return ErrMalformedStructure
	case KindNegativeWeight:
		return ErrNegativeWeight
	case KindIncompatibleStructure:
		return ErrIncompatibleStructure
	case KindInvalidDimension:
		return ErrInvalidDimension
	case KindNumericalInstability:
		return ErrNumericalInstability
	default:
		return nil
	}
}

// Error is the structured failure surfaced to callers.
//
// Index identifies the offending structure inside a Dataset (NoIndex when the
// failure is not tied to one structure). Op names the operation that detected
// the problem ("Build", "Dijkstra", "KernelPCA", ...). Err optionally carries a
// lower-level cause.
type Error struct {
	Kind  Kind
	Index int
	Op    string
	Msg   string
	Err   error
}

// Errorf builds a *Error with no structure index.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Index: NoIndex, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Error renders "core: <Kind>: structure <i>: <Op>: <Msg>: <cause>".
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("core: ")
	sb.WriteString(e.Kind.String())
	if e.Index >= 0 {
		fmt.Fprintf(&sb, ": structure %d", e.Index)
	}
	if e.Op != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Op)
	}
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Unwrap exposes the lower-level cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of e.Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()

	return s != nil && target == s
}

// AtIndex returns err tagged with structure index i.
// A *Error that already names an index is returned unchanged; any other
// *Error is copied with Index = i. Non-*Error values pass through.
func AtIndex(err error, i int) error {
	var ce *Error
	if !errors.As(err, &ce) || ce.Index >= 0 {
		return err
	}
	cp := *ce
	cp.Index = i

	return &cp
}

// KindOf extracts the taxonomy kind of err (0 when err is not a *Error).
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}

	return 0
}

// Cancelled wraps cause as a cancellation outcome.
func Cancelled(cause error) error {
	if cause == nil {
		return ErrCancelled
	}

	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}

// IsCancelled reports whether err is a cancellation outcome.
func IsCancelled(err error) bool { return errors.Is(err, ErrCancelled) }

// CheckContext returns a cancellation outcome once ctx is done, nil otherwise.
// It is the cooperative suspension point used between major phases.
func CheckContext(ctx context.Context) error {
	if ctx == nil || ctx.Err() == nil {
		return nil
	}

	return Cancelled(context.Cause(ctx))
}

// Warning is a non-fatal condition (for example eigenvalue clipping) that was
// corrected locally and does not invalidate the result.
type Warning struct {
	Kind  Kind
	Index int
	Op    string
	Msg   string
}

// String renders the warning in the same shape as Error.
func (w Warning) String() string {
	if w.Index >= 0 {
		return fmt.Sprintf("%sWarning: structure %d: %s: %s", w.Kind, w.Index, w.Op, w.Msg)
	}

	return fmt.Sprintf("%sWarning: %s: %s", w.Kind, w.Op, w.Msg)
}
