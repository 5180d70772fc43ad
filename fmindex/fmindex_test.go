package fmindex_test

import (
	"bytes"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnaseq/fmindex/fmindex"
)

const spec8Ref = "ACGCGCTTCGCCTT$"

func occurrences(s, target string) []int {
	var positions []int
	for i := 0; i+len(target) <= len(s); i++ {
		if s[i:i+len(target)] == target {
			positions = append(positions, i)
		}
	}
	return positions
}

func recoveredPositions(t *testing.T, fm *fmindex.FMIndex, lo, hi int) []int {
	t.Helper()
	var got []int
	for i := lo; i < hi; i++ {
		pos, err := fm.GenomePosition(i)
		require.NoError(t, err)
		got = append(got, pos)
	}
	sort.Ints(got)
	return got
}

func TestSpec8LookupATGEmpty(t *testing.T) {
	fm, err := fmindex.New(spec8Ref, 3, 4)
	require.NoError(t, err)
	lo, hi, err := fm.Lookup("ATG")
	require.NoError(t, err)
	assert.Equal(t, lo, hi)
}

func TestSpec8LookupC(t *testing.T) {
	fm, err := fmindex.New(spec8Ref, 3, 4)
	require.NoError(t, err)
	lo, hi, err := fm.Lookup("C")
	require.NoError(t, err)
	assert.Equal(t, 6, hi-lo)
	assert.Equal(t, []int{1, 3, 5, 8, 10, 11}, recoveredPositions(t, fm, lo, hi))
}

func TestSpec8LookupCGC(t *testing.T) {
	fm, err := fmindex.New(spec8Ref, 3, 4)
	require.NoError(t, err)
	lo, hi, err := fm.Lookup("CGC")
	require.NoError(t, err)
	assert.Equal(t, 3, hi-lo)
	assert.Equal(t, []int{1, 3, 8}, recoveredPositions(t, fm, lo, hi))
}

func TestSpec8ExtensionMatches(t *testing.T) {
	fm, err := fmindex.New(spec8Ref, 3, 4)
	require.NoError(t, err)

	n, err := fm.CountExtensionMatches(2, "GCTAAA")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = fm.CountExtensionMatches(7, "")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = fm.CountExtensionMatches(10, "CGCA")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestSpec8GenomePositions(t *testing.T) {
	fm, err := fmindex.New(spec8Ref, 3, 4)
	require.NoError(t, err)
	want := []int{14, 0, 10, 8, 1, 3, 11, 5, 9, 2, 4, 13, 7, 12, 6}
	for i, w := range want {
		got, err := fm.GenomePosition(i)
		require.NoError(t, err)
		assert.Equal(t, w, got, "genome_position(%d)", i)
	}
}

// TestLookupCorrectness is property 3: for every substring of R, Lookup
// returns a range whose size equals the number of occurrences, and every
// recovered position matches.
func TestLookupCorrectness(t *testing.T) {
	ref := "ATACTTTATCAAATGTAAAAGTATCTCCTTCGTTTACGTCTAATTTTT$"
	fm, err := fmindex.New(ref, 4, 4)
	require.NoError(t, err)

	for length := 1; length <= 6; length++ {
		for start := 0; start+length <= len(ref)-1; start++ { // never test the sentinel itself
			sub := ref[start : start+length]
			if strings.Contains(sub, "$") {
				continue
			}
			lo, hi, err := fm.Lookup(sub)
			require.NoError(t, err)
			want := occurrences(ref[:len(ref)-1], sub)
			require.Equal(t, len(want), hi-lo, "substring %q", sub)
			for i := lo; i < hi; i++ {
				pos, err := fm.GenomePosition(i)
				require.NoError(t, err)
				assert.Equal(t, sub, ref[pos:pos+length])
			}
		}
	}
}

// TestLookupAbsence is property 4.
func TestLookupAbsence(t *testing.T) {
	ref := "ACGCGCTTCGCCTT$"
	fm, err := fmindex.New(ref, 3, 4)
	require.NoError(t, err)
	for _, s := range []string{"ATG", "GGGG", "TTTTT", "CCCCCC"} {
		if strings.Contains(ref[:len(ref)-1], s) {
			continue
		}
		lo, hi, err := fm.Lookup(s)
		require.NoError(t, err)
		assert.Equal(t, lo, hi)
	}
}

// TestSamplingIndependence is property 7.
func TestSamplingIndependence(t *testing.T) {
	ref := "ATACTTTATCAAATGTAAAAGTATCTCCTTCGTTTACGTCTAATTTTT$"
	steps := [][2]int{{1, 1}, {2, 3}, {4, 4}, {5, 7}, {16, 16}}

	type result struct {
		lo, hi int
		pos    []int
	}
	run := func(ss, sr int, pattern string) result {
		fm, err := fmindex.New(ref, ss, sr)
		require.NoError(t, err)
		lo, hi, err := fm.Lookup(pattern)
		require.NoError(t, err)
		return result{lo, hi, recoveredPositions(t, fm, lo, hi)}
	}

	for _, pattern := range []string{"ATAC", "TTT", "CGT", "A"} {
		var want result
		for i, s := range steps {
			got := run(s[0], s[1], pattern)
			if i == 0 {
				want = result{got.hi - got.lo, got.hi - got.lo, got.pos}
				continue
			}
			assert.Equal(t, len(want.pos), got.hi-got.lo, "pattern %q steps %v", pattern, s)
			assert.Equal(t, want.pos, got.pos, "pattern %q steps %v", pattern, s)
		}
	}
}

func TestCodecRoundTrip(t *testing.T) {
	ref := "ACGCGCTTCGCCTTATATATGGGGCCCCAAAA$"
	fm, err := fmindex.New(ref, 4, 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, fm.EncodeTo(&buf))

	decoded, err := fmindex.Decode(&buf)
	require.NoError(t, err)

	lo1, hi1, err := fm.Lookup("CGCC")
	require.NoError(t, err)
	lo2, hi2, err := decoded.Lookup("CGCC")
	require.NoError(t, err)
	assert.Equal(t, lo1, lo2)
	assert.Equal(t, hi1, hi2)

	var buf2 bytes.Buffer
	require.NoError(t, decoded.EncodeTo(&buf2))
	var buf3 bytes.Buffer
	require.NoError(t, fm.EncodeTo(&buf3))
	assert.Equal(t, buf3.Bytes(), buf2.Bytes())
}

func TestLookupInvalidNucleotide(t *testing.T) {
	fm, err := fmindex.New(spec8Ref, 3, 4)
	require.NoError(t, err)
	_, _, err = fm.Lookup("CGN")
	require.Error(t, err)
}

func randomReference(rng *rand.Rand, n int) string {
	alphabet := []byte{'A', 'C', 'G', 'T'}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(buf) + "$"
}

func TestPropertyLookupAgainstNaiveRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 10; trial++ {
		ref := randomReference(rng, 10+rng.Intn(30))
		fm, err := fmindex.New(ref, 2+rng.Intn(5), 2+rng.Intn(5))
		require.NoError(t, err)

		body := ref[:len(ref)-1]
		for subTrial := 0; subTrial < 10; subTrial++ {
			length := 1 + rng.Intn(4)
			if length > len(body) {
				continue
			}
			start := rng.Intn(len(body) - length + 1)
			sub := body[start : start+length]

			lo, hi, err := fm.Lookup(sub)
			require.NoError(t, err)
			want := occurrences(body, sub)
			assert.Equal(t, len(want), hi-lo, "ref=%q sub=%q", ref, sub)
		}
	}
}
