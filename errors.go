package trailproof

import (
	"errors"
	"fmt"
)

// Kind categorizes a Trailproof error per the specification's five error
// kinds: validation, store, chain, signature, and a shared base.
type Kind string

const (
	// KindValidation marks a missing or empty required field, an
	// unknown store kind, or a missing path for the jsonl store.
	KindValidation Kind = "validation"
	// KindStore marks a file I/O failure: read, write, permission, or
	// a fatal propagated corruption.
	KindStore Kind = "store"
	// KindChain is reserved for explicit chain-mismatch reporting
	// outside Verify, which instead returns a VerificationResult.
	KindChain Kind = "chain"
	// KindSignature marks a missing signature when one is required, a
	// malformed signature prefix, a MAC mismatch, or a signed record
	// encountered with no key configured.
	KindSignature Kind = "signature"
)

// ErrBase is the root sentinel: errors.Is(err, ErrBase) is true for
// every error this package raises, regardless of its specific Kind —
// the shared "Base" catch-all category of the error design.
var ErrBase = errors.New("trailproof: error")

// Error is the concrete error type every Trailproof operation returns.
// Its Is method lets callers branch with errors.Is(err, trailproof.ErrValidation)
// (matches any validation-kind error) or errors.Is(err, trailproof.ErrBase)
// (matches any Trailproof error at all).
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("trailproof: %s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("trailproof: %s: %s", e.Kind, e.Op)
}

// Unwrap exposes the wrapped cause for errors.As/errors.Is chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrBase, or a kind sentinel
// (ErrValidation, ErrStore, ErrChain, ErrSignature) matching e.Kind.
func (e *Error) Is(target error) bool {
	if target == ErrBase {
		return true
	}
	sentinel, ok := target.(*Error)
	if !ok {
		return false
	}
	if sentinel.Err == nil && sentinel.Op == "" {
		return e.Kind == sentinel.Kind
	}
	return e == target
}

// Kind-specific sentinels for errors.Is comparisons. Each carries no Op
// or wrapped cause, so Error.Is treats a match on Kind alone as enough.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrStore      = &Error{Kind: KindStore}
	ErrChain      = &Error{Kind: KindChain}
	ErrSignature  = &Error{Kind: KindSignature}
)

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
