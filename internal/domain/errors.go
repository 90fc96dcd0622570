package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrder marks an attempt to construct a plane of non-prime
	// order. This is a precondition failure, distinct from invariant
	// violations detected after construction.
	ErrInvalidOrder = errors.New("plane order must be prime")

	// ErrNoValidOrder means the parameter solver could not produce a
	// prime order covering the requested symbol count. It should not
	// occur for any positive input.
	ErrNoValidOrder = errors.New("no valid plane order")

	ErrInvalidSetRef     = errors.New("invalid icon set reference")
	ErrSetNotFound       = errors.New("icon set not found")
	ErrJobNotFound       = errors.New("job not found")
	ErrInsufficientIcons = errors.New("not enough icons for deck")
)

// InvariantError reports a card pair that breaks the one-shared-symbol
// property. It always indicates a bug in plane construction or deck
// assembly, never bad user input, so callers should surface it loudly
// rather than retry.
type InvariantError struct {
	CardA  int
	CardB  int
	Shared []int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("cards %d and %d share %d symbols %v, want exactly 1",
		e.CardA, e.CardB, len(e.Shared), e.Shared)
}
