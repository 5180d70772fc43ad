// Package fmindex implements a Burrows-Wheeler/FM-index over a
// sentinel-terminated nucleotide string: suffix-array construction, BWT
// derivation, a sampled rank table backed by a run-length-encoded BWT, a
// by-value sampled suffix array, and the backward-search / LF-mapping /
// SA-walkback algorithms built on top of them.
//
// An FMIndex is built once from an immutable reference and is safe for
// unsynchronized concurrent reads thereafter: all public methods are pure
// functions of the construction inputs.
package fmindex

import (
	"github.com/pkg/errors"

	"github.com/dnaseq/fmindex/errs"
	"github.com/dnaseq/fmindex/nuctable"
	"github.com/dnaseq/fmindex/rle"
	"github.com/dnaseq/fmindex/suffixarray"
)

// FMIndex owns a run-length-encoded BWT, a sampled rank table, a
// sampled-by-value suffix array, and first-column offsets, all derived from
// a sentinel-terminated reference string at construction time.
type FMIndex struct {
	bwt       *rle.String
	rankTable nuctable.Table[[]int]
	firstCol  nuctable.Table[int]
	ssa       map[int]int // SA-index -> SA value, present iff SA value mod saStep == 0
	saStep    int         // S_s
	rankStep  int         // S_r
	n         int         // |R|, including the sentinel
}

// New builds an FMIndex over r, which must be sentinel-terminated (end in
// exactly one '$', with no '$' elsewhere). saStep and rankStep are the SA
// and rank sampling steps (S_s, S_r); both must be >= 1.
func New(r string, saStep, rankStep int) (*FMIndex, error) {
	if saStep < 1 || rankStep < 1 {
		return nil, errors.New("fmindex: saStep and rankStep must be >= 1")
	}
	n := len(r)

	sa := suffixarray.Build(r)

	bwtBytes := make([]byte, n)
	for i, sufStart := range sa {
		bwtBytes[i] = r[(sufStart+n-1)%n]
	}
	bwt := rle.New(string(bwtBytes), rankStep)

	var rankTable nuctable.Table[[]int]
	var counts nuctable.Table[int]
	for i := 0; i < n; i++ {
		c := bwtBytes[i]
		if c != '$' {
			p, err := counts.Get(c)
			if err != nil {
				return nil, errors.Wrapf(err, "fmindex: invalid BWT byte at %d", i)
			}
			*p++
		}
		if i%rankStep == 0 {
			rankTable.A = append(rankTable.A, counts.A)
			rankTable.C = append(rankTable.C, counts.C)
			rankTable.G = append(rankTable.G, counts.G)
			rankTable.T = append(rankTable.T, counts.T)
		}
	}

	firstCol := nuctable.Table[int]{
		A: 1,
		C: 1 + counts.A,
		G: 1 + counts.A + counts.C,
		T: 1 + counts.A + counts.C + counts.G,
	}

	ssa := make(map[int]int, (n+saStep-1)/saStep)
	for i, sufStart := range sa {
		if sufStart%saStep == 0 {
			ssa[i] = sufStart
		}
	}

	return &FMIndex{
		bwt:       bwt,
		rankTable: rankTable,
		firstCol:  firstCol,
		ssa:       ssa,
		saStep:    saStep,
		rankStep:  rankStep,
		n:         n,
	}, nil
}

// Len returns |R|, the length of the sentinel-terminated reference this
// index was built over.
func (f *FMIndex) Len() int { return f.n }

// rank returns the number of occurrences of c in L[0..i] (inclusive).
func (f *FMIndex) rank(c byte, i int) (int, error) {
	if i < 0 || i >= f.n {
		return 0, errors.Errorf("fmindex: rank index %d out of range [0,%d)", i, f.n)
	}
	slice, err := f.rankTable.Get(c)
	if err != nil {
		return 0, err
	}
	cpIdx := (i / f.rankStep) * f.rankStep
	extra, err := f.bwt.CountInInterval(c, cpIdx, i)
	if err != nil {
		return 0, errors.Wrap(err, "fmindex: rank")
	}
	return (*slice)[i/f.rankStep] + extra, nil
}

// lf is the last-to-first mapping: the row in the first column matching the
// 1-based rank-r occurrence of c in the last column.
func (f *FMIndex) lf(c byte, r int) (int, error) {
	base, err := f.firstCol.Get(c)
	if err != nil {
		return 0, err
	}
	return *base + r - 1, nil
}

// Lookup performs backward search for pattern, returning the SA interval
// [lo, hi) of all its occurrences. An empty range (lo == hi) is a valid
// result meaning pattern does not occur in the reference.
func (f *FMIndex) Lookup(pattern string) (lo, hi int, err error) {
	lo, hi = 0, f.n
	for idx := len(pattern) - 1; idx >= 0; idx-- {
		c := pattern[idx]
		if !nuctable.IsNucleotide(c) {
			return 0, 0, errors.Wrapf(errs.ErrInvalidNucleotide, "fmindex: lookup byte %q", c)
		}

		var bottomRank int
		if lo == 0 {
			bottomRank = 1
		} else {
			br, err := f.rank(c, lo-1)
			if err != nil {
				return 0, 0, err
			}
			bottomRank = br + 1
		}
		topRank, err := f.rank(c, hi-1)
		if err != nil {
			return 0, 0, err
		}

		if bottomRank > topRank {
			return 0, 0, nil
		}

		newLo, err := f.lf(c, bottomRank)
		if err != nil {
			return 0, 0, err
		}
		newHi, err := f.lf(c, topRank)
		if err != nil {
			return 0, 0, err
		}
		lo, hi = newLo, newHi+1
	}
	return lo, hi, nil
}

// GenomePosition recovers SA[saIdx] without storing the full suffix array,
// walking back via LF-mapping from saIdx until a sampled entry is hit. It
// returns ErrIndexCorruption if no sampled entry is found within saStep
// steps, which should not occur on a well-constructed index.
func (f *FMIndex) GenomePosition(saIdx int) (int, error) {
	cur := saIdx
	for steps := 0; ; steps++ {
		if val, ok := f.ssa[cur]; ok {
			return val + steps, nil
		}
		if steps >= f.saStep {
			return 0, errs.ErrIndexCorruption
		}
		c := f.bwt.CharAt(cur)
		r, err := f.rank(c, cur)
		if err != nil {
			return 0, errors.Wrap(err, "fmindex: genome position walk-back")
		}
		cur, err = f.lf(c, r)
		if err != nil {
			return 0, errors.Wrap(err, "fmindex: genome position walk-back")
		}
	}
}

// CountExtensionMatches starts from a BWT row saIdx representing a matched
// suffix of the reference and walks preceding characters via LF-mapping,
// returning the length of the longest prefix of extension that matches the
// characters immediately preceding saIdx's position in the reference.
func (f *FMIndex) CountExtensionMatches(saIdx int, extension string) (int, error) {
	cur := saIdx
	for i := 0; i < len(extension); i++ {
		c := f.bwt.CharAt(cur)
		if c != extension[i] {
			return i, nil
		}
		r, err := f.rank(c, cur)
		if err != nil {
			return 0, errors.Wrap(err, "fmindex: count extension matches")
		}
		cur, err = f.lf(c, r)
		if err != nil {
			return 0, errors.Wrap(err, "fmindex: count extension matches")
		}
	}
	return len(extension), nil
}
