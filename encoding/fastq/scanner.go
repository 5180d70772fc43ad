// Package fastq reads FASTQ-formatted reads for sequence-only consumers:
// it keeps the teacher's line-oriented validation (ID lines start with
// '@', the third line of each record starts with '+') but yields only the
// sequence, silently skipping any record whose sequence contains a
// character outside {A,C,G,T}.
package fastq

import (
	"bufio"
	"errors"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/dnaseq/fmindex/nuctable"
)

var (
	// ErrShort is returned when a FASTQ record is truncated mid-stream.
	ErrShort = errors.New("fastq: short record")
	// ErrInvalid is returned when a record's ID or separator line is malformed.
	ErrInvalid = errors.New("fastq: invalid record")
)

var errEOF = errors.New("fastq: eof")

// Scanner reads successive FASTQ records from an underlying stream and
// yields the sequence of each record that is pure {A,C,G,T}, skipping any
// record that contains another character (most commonly 'N'). Scanners
// are not thread-safe.
type Scanner struct {
	b   *bufio.Scanner
	gz  *gzip.Reader
	err error
	seq string
}

// NewScanner constructs a Scanner reading plain-text FASTQ from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{b: bufio.NewScanner(r)}
}

// NewGzipScanner constructs a Scanner reading gzip-compressed FASTQ from r.
func NewGzipScanner(r io.Reader) (*Scanner, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &Scanner{b: bufio.NewScanner(gz), gz: gz}, nil
}

// Scan advances to the next record whose sequence is pure {A,C,G,T},
// returning false once the stream is exhausted or a malformed record is
// found. Once Scan returns false it never returns true again; callers
// should check Err to distinguish a clean EOF from an error.
func (s *Scanner) Scan() bool {
	for {
		if s.err != nil {
			return false
		}
		id, ok := s.scanLine()
		if !ok {
			if s.err = s.b.Err(); s.err == nil {
				s.err = errEOF
			}
			return false
		}
		if len(id) == 0 || id[0] != '@' {
			s.err = ErrInvalid
			return false
		}

		seq, ok := s.scanLine()
		if !ok {
			s.setShort()
			return false
		}

		sep, ok := s.scanLine()
		if !ok {
			s.setShort()
			return false
		}
		if len(sep) == 0 || sep[0] != '+' {
			s.err = ErrInvalid
			return false
		}

		if _, ok := s.scanLine(); !ok {
			s.setShort()
			return false
		}

		if !allNucleotides(seq) {
			continue
		}
		s.seq = seq
		return true
	}
}

// Read returns the sequence of the record most recently selected by Scan.
func (s *Scanner) Read() string { return s.seq }

// Err returns the scanning error, if any, other than a clean EOF.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

// Close releases the underlying gzip reader, if any.
func (s *Scanner) Close() error {
	if s.gz == nil {
		return nil
	}
	return s.gz.Close()
}

func (s *Scanner) scanLine() (string, bool) {
	if !s.b.Scan() {
		return "", false
	}
	return s.b.Text(), true
}

func (s *Scanner) setShort() {
	if s.err = s.b.Err(); s.err == nil {
		s.err = ErrShort
	}
}

func allNucleotides(seq string) bool {
	for i := 0; i < len(seq); i++ {
		if !nuctable.IsNucleotide(seq[i]) {
			return false
		}
	}
	return len(seq) > 0
}
