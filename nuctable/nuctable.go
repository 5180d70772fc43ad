// Package nuctable implements a fixed four-slot mapping keyed by nucleotide,
// used in place of a hash map wherever the FM-index needs a total function
// from {A,C,G,T} to some value. Querying with any other byte is an error.
package nuctable

import (
	"github.com/pkg/errors"

	"github.com/dnaseq/fmindex/errs"
)

// Table is a total function from {A,C,G,T} to T, represented as four named
// fields rather than a map: lookups are a sum-of-positions switch, not a
// hash lookup. The zero value is ready to use whenever T's zero value is the
// desired default (e.g. T = int, or T = []uint64).
type Table[T any] struct {
	A, C, G, T T
}

// Get returns a pointer to the slot for c, so callers can both read and
// mutate it in place. It returns ErrInvalidNucleotide for any c outside
// {A,C,G,T}.
func (t *Table[T]) Get(c byte) (*T, error) {
	switch c {
	case 'A':
		return &t.A, nil
	case 'C':
		return &t.C, nil
	case 'G':
		return &t.G, nil
	case 'T':
		return &t.T, nil
	default:
		return nil, errors.Wrapf(errs.ErrInvalidNucleotide, "byte %q", c)
	}
}

// MustGet is Get without the error return, for call sites that have already
// validated c (e.g. iterating a fixed alphabet slice). It panics if c is not
// a nucleotide.
func (t *Table[T]) MustGet(c byte) *T {
	v, err := t.Get(c)
	if err != nil {
		panic(err)
	}
	return v
}

// Alphabet is Sigma = {A, C, G, T}, in the canonical order used to derive
// first-column offsets (spec.md's C[A] < C[C] < C[G] < C[T]).
var Alphabet = [4]byte{'A', 'C', 'G', 'T'}

// IsNucleotide reports whether c is one of {A,C,G,T}.
func IsNucleotide(c byte) bool {
	switch c {
	case 'A', 'C', 'G', 'T':
		return true
	default:
		return false
	}
}
