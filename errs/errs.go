// Package errs defines the sentinel error kinds shared across the FM-index
// core and its I/O adapters.
package errs

import "errors"

var (
	// ErrInvalidNucleotide is returned when a character outside {A,C,G,T} is
	// passed to a nucleotide-typed operation.
	ErrInvalidNucleotide = errors.New("fmindex: invalid nucleotide")

	// ErrIndexCorruption is returned when a sampled-suffix-array walk-back
	// fails to find a sampled entry within the configured number of steps,
	// or another internal rank/RLE invariant is violated.
	ErrIndexCorruption = errors.New("fmindex: index corruption")

	// ErrIOFailure wraps read failures raised by the FASTA adapter
	// (encoding/fasta.Load). The FASTQ scanner does not use it: it returns
	// the underlying reader's error, or its own ErrShort/ErrInvalid.
	ErrIOFailure = errors.New("fmindex: io failure")

	// ErrDecodeFailure is returned when deserialized index bytes are
	// malformed, truncated, or fail their checksum.
	ErrDecodeFailure = errors.New("fmindex: decode failure")
)
