// Package rle implements a run-length-encoded character sequence backed by
// block-indexed checkpoints, used as the cache-friendly storage for an
// FM-index's BWT column (see fmindex.FMIndex).
package rle

import (
	"github.com/pkg/errors"
)

// run is a single (char, length) run, with len >= 1.
type run struct {
	char byte
	len  int
}

// checkpoint records, for the block starting at position k*blockSize, which
// run covers that position (entryIndex) and how many of that run's
// characters were already consumed before the block start (offset).
type checkpoint struct {
	entryIndex int
	offset     int
}

// String is a run-length-encoded sequence over an arbitrary byte alphabet,
// with one checkpoint per block of blockSize input positions.
type String struct {
	runs        []run
	checkpoints []checkpoint
	blockSize   int
	n           int
}

// New scans s once and builds its run-length encoding, with a checkpoint
// recorded at every position i where i mod blockSize == 0. blockSize must be
// >= 1.
func New(s string, blockSize int) *String {
	if blockSize < 1 {
		panic("rle: blockSize must be >= 1")
	}

	rs := &String{blockSize: blockSize, n: len(s)}

	var (
		have    bool
		curChar byte
		curLen  int
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if have && c != curChar {
			rs.runs = append(rs.runs, run{curChar, curLen})
			curLen = 0
		}
		if i%blockSize == 0 {
			rs.checkpoints = append(rs.checkpoints, checkpoint{
				entryIndex: len(rs.runs),
				offset:     curLen,
			})
		}
		curLen++
		curChar = c
		have = true
	}
	if have {
		rs.runs = append(rs.runs, run{curChar, curLen})
	}
	return rs
}

// Len returns the length of the original string.
func (r *String) Len() int { return r.n }

// CharAt returns the character covering position i. It runs in O(blockSize)
// worst case, walking forward from the nearest checkpoint at i/blockSize.
func (r *String) CharAt(i int) byte {
	cpIdx := i / r.blockSize
	cp := r.checkpoints[cpIdx]

	pos := cpIdx * r.blockSize
	entryIdx := cp.entryIndex
	offset := cp.offset

	for {
		run := r.runs[entryIdx]
		remaining := run.len - offset
		if i < pos+remaining {
			return run.char
		}
		pos += remaining
		entryIdx++
		offset = 0
	}
}

// CountInInterval returns the number of positions j with cpIdx < j <= i at
// which the string equals target. cpIdx must be a checkpoint position
// (cpIdx mod blockSize == 0) with cpIdx <= i.
func (r *String) CountInInterval(target byte, cpIdx, i int) (int, error) {
	if cpIdx%r.blockSize != 0 {
		return 0, errors.Errorf("rle: %d is not a checkpoint for block size %d", cpIdx, r.blockSize)
	}
	if cpIdx > i {
		return 0, errors.Errorf("rle: checkpoint %d is after target index %d", cpIdx, i)
	}
	if cpIdx == i {
		return 0, nil
	}

	cp := r.checkpoints[cpIdx/r.blockSize]
	firstRun := r.runs[cp.entryIndex]

	count := 0
	// Chars in firstRun strictly after cpIdx, capped by the requested window
	// (cpIdx, i].
	remainingInFirstRun := firstRun.len - cp.offset
	if firstRun.char == target {
		count += min(remainingInFirstRun-1, i-cpIdx)
	}

	currentStrIndex := cpIdx + remainingInFirstRun
	runIdx := cp.entryIndex + 1
	for currentStrIndex <= i {
		entry := r.runs[runIdx]
		if entry.char == target {
			count += min(entry.len, i-currentStrIndex+1)
		}
		currentStrIndex += entry.len
		runIdx++
	}
	return count, nil
}

// Reconstruct concatenates the runs back into the original string. It exists
// for testing the round-trip invariant; the FM-index never needs it.
func (r *String) Reconstruct() string {
	buf := make([]byte, 0, r.n)
	for _, run := range r.runs {
		for j := 0; j < run.len; j++ {
			buf = append(buf, run.char)
		}
	}
	return string(buf)
}

// NumCheckpoints returns the number of checkpoints recorded, exposed for
// testing the ceil(n/B) invariant.
func (r *String) NumCheckpoints() int { return len(r.checkpoints) }

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
