// Package fasta reads FASTA-formatted reference sequences.  FASTA files
// consist of a number of named sequences that may be interrupted by
// newlines.  For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Load discards every '>' header line whole: sequence names are not parsed
// or returned.
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/dnaseq/fmindex/errs"
)

const (
	mib            = 1024 * 1024
	bufferInitSize = 300 * mib
)

// Load reads a single-reference FASTA stream and returns its concatenated,
// uppercased sequence, discarding '>'-prefixed header lines. It does not
// retain per-sequence boundaries: it exists for callers (such as a
// ReadMapper) that only ever need the whole reference as one string. A
// FASTA file with more than one '>' record is accepted; its records are
// concatenated in file order with no separator, matching how the
// single-reference case degenerates.
func Load(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)

	var seq strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == '>' {
			continue
		}
		seq.WriteString(strings.ToUpper(line))
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrapf(errs.ErrIOFailure, "fasta: reading stream: %v", err)
	}
	return seq.String(), nil
}
