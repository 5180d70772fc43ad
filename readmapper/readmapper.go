// Package readmapper implements seed-and-extend short-read alignment
// against a nucleotide reference, composing a forward FM-index (over the
// reference) and a reverse FM-index (over the character-reversed
// reference) to find the longest contiguous alignment of a read without
// ever materializing a bidirectional FM-index.
package readmapper

import (
	"github.com/pkg/errors"

	"github.com/dnaseq/fmindex/fmindex"
	"github.com/dnaseq/fmindex/internal/fatal"
)

// DefaultSamplingStep is the SA and rank sampling step (S_s = S_r) used by
// New. It is fixed and identical on both the forward and reverse indexes so
// seed lookups on either side cost the same.
const DefaultSamplingStep = 128

// MapResult is the outcome of a successful MapRead call: the leftmost
// genome position of the alignment, its length, and the seed attempt
// (0-based) at which it was found.
type MapResult struct {
	GenomePosition int
	MatchLength    int
	SeedAttempt    int
}

// ReadMapper owns a forward and a reverse FMIndex over a single reference
// for its entire lifetime. Both indexes are immutable after construction,
// so a ReadMapper is safe for unsynchronized concurrent MapRead calls.
type ReadMapper struct {
	forward      *fmindex.FMIndex
	reverse      *fmindex.FMIndex
	genomeLength int
}

// New builds a ReadMapper over reference (which must not already carry a
// sentinel) using DefaultSamplingStep for both the SA and rank sampling
// steps.
func New(reference string) (*ReadMapper, error) {
	return NewWithSteps(reference, DefaultSamplingStep, DefaultSamplingStep)
}

// NewWithSteps builds a ReadMapper with explicit SA/rank sampling steps,
// for callers that want to trade index size against query speed.
func NewWithSteps(reference string, saStep, rankStep int) (*ReadMapper, error) {
	forwardRef := reference + "$"
	reverseRef := reverseString(reference) + "$"

	forward, err := fmindex.New(forwardRef, saStep, rankStep)
	if err != nil {
		return nil, errors.Wrap(err, "readmapper: building forward index")
	}
	reverse, err := fmindex.New(reverseRef, saStep, rankStep)
	if err != nil {
		return nil, errors.Wrap(err, "readmapper: building reverse index")
	}

	return &ReadMapper{
		forward:      forward,
		reverse:      reverse,
		genomeLength: len(reference) + 1,
	}, nil
}

// GenomeLength returns |R| + 1 (the reference length including its
// sentinel).
func (m *ReadMapper) GenomeLength() int { return m.genomeLength }

type candidate struct {
	pos, length int
}

// MapRead maps read against the reference using seed-and-extend: for each
// seed_attempt = 0, 1, ..., min(len(read)/seedLength, maxSeeds)-1, it carves
// a seed of length seedLength, looks it up in the reverse index, extends
// right via the reverse index and (when the seed doesn't start at the
// read's first base) left via the forward index, and returns the
// greatest-length candidate found at the first seed_attempt that produces
// any hit.
//
// MapRead returns (nil, nil) if no seed_attempt produces a hit — that is a
// valid result, not an error. It panics if len(read) < seedLength or
// seedLength < 1, matching the precondition in the distilled source this
// package implements. It does not validate that read contains only
// {A,C,G,T}; a seed containing another character causes the underlying
// FMIndex.Lookup call to return ErrInvalidNucleotide, which MapRead
// propagates as a non-nil error distinct from the (nil, nil) "no match"
// result. Such a character in an extension is not an error: it simply ends
// the extension at that position.
func (m *ReadMapper) MapRead(read string, seedLength, maxSeeds int) (*MapResult, error) {
	fatal.Invariant(seedLength >= 1, "readmapper: seedLength must be >= 1, got %d", seedLength)
	fatal.Invariant(len(read) >= seedLength, "readmapper: read length %d is shorter than seed length %d", len(read), seedLength)

	reversedRead := reverseString(read)

	numSeeds := len(read) / seedLength
	if maxSeeds < numSeeds {
		numSeeds = maxSeeds
	}

	for seedAttempt := 0; seedAttempt < numSeeds; seedAttempt++ {
		seedStart := seedAttempt * seedLength
		seedEnd := seedStart + seedLength

		reverseSeedStart := len(read) - seedEnd
		reverseSeedEnd := len(read) - seedStart
		reverseSeed := reversedRead[reverseSeedStart:reverseSeedEnd]

		lo, hi, err := m.reverse.Lookup(reverseSeed)
		if err != nil {
			return nil, errors.Wrap(err, "readmapper: reverse seed lookup")
		}
		if lo == hi {
			continue
		}

		reverseExtension := read[seedEnd:]

		candidates := make([]candidate, 0, hi-lo)
		posIndex := make(map[int]int, hi-lo)
		for saIdx := lo; saIdx < hi; saIdx++ {
			revPos, err := m.reverse.GenomePosition(saIdx)
			if err != nil {
				return nil, errors.Wrap(err, "readmapper: recovering reverse-index genome position")
			}
			extLen, err := m.reverse.CountExtensionMatches(saIdx, reverseExtension)
			if err != nil {
				return nil, errors.Wrap(err, "readmapper: extending right in reverse index")
			}
			genomePos := m.genomeLength - revPos - seedLength - 1
			matchLength := seedLength + extLen

			posIndex[genomePos] = len(candidates)
			candidates = append(candidates, candidate{pos: genomePos, length: matchLength})
		}

		if seedStart > 0 {
			forwardSeed := read[seedStart:seedEnd]
			flo, fhi, err := m.forward.Lookup(forwardSeed)
			if err != nil {
				return nil, errors.Wrap(err, "readmapper: forward seed lookup")
			}

			forwardExtension := reversedRead[len(read)-seedStart:]
			if len(forwardExtension) > 0 {
				for saIdx := flo; saIdx < fhi; saIdx++ {
					fwdPos, err := m.forward.GenomePosition(saIdx)
					if err != nil {
						return nil, errors.Wrap(err, "readmapper: recovering forward-index genome position")
					}
					leftExtLen, err := m.forward.CountExtensionMatches(saIdx, forwardExtension)
					if err != nil {
						return nil, errors.Wrap(err, "readmapper: extending left in forward index")
					}
					newPos := fwdPos - leftExtLen

					idx, ok := posIndex[fwdPos]
					fatal.Invariant(ok, "readmapper: no reverse-index match recorded for forward hit at genome position %d", fwdPos)
					newLength := leftExtLen + candidates[idx].length

					delete(posIndex, fwdPos)
					candidates[idx] = candidate{pos: newPos, length: newLength}
					posIndex[newPos] = idx
				}
			}
		}

		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.length > best.length {
				best = c
			}
		}
		return &MapResult{GenomePosition: best.pos, MatchLength: best.length, SeedAttempt: seedAttempt}, nil
	}

	return nil, nil
}

func reverseString(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[i] = s[len(s)-1-i]
	}
	return string(b)
}
