package fmindex

import (
	"io"
	"sort"

	"github.com/dnaseq/fmindex/internal/codec"
	"github.com/dnaseq/fmindex/rle"
)

// EncodeTo writes a deterministic binary encoding of the full FMIndex
// state (BWT, rank table, first-column offsets, sampled SA, sampling
// steps), so Decode reconstructs it without recomputing anything from
// the original reference.
func (f *FMIndex) EncodeTo(w io.Writer) error {
	if err := codec.WriteInt(w, f.saStep); err != nil {
		return err
	}
	if err := codec.WriteInt(w, f.rankStep); err != nil {
		return err
	}
	if err := codec.WriteInt(w, f.n); err != nil {
		return err
	}
	if err := f.bwt.EncodeTo(w); err != nil {
		return err
	}
	for _, slice := range [][]int{f.rankTable.A, f.rankTable.C, f.rankTable.G, f.rankTable.T} {
		if err := codec.WriteIntSlice(w, slice); err != nil {
			return err
		}
	}
	for _, v := range []int{f.firstCol.A, f.firstCol.C, f.firstCol.G, f.firstCol.T} {
		if err := codec.WriteInt(w, v); err != nil {
			return err
		}
	}

	// The sampled SA is a map; serialize it as a slice sorted by SA-index
	// key so re-encoding a decoded index is byte-identical (map iteration
	// order in Go is randomized and must never reach the wire format).
	keys := make([]int, 0, len(f.ssa))
	for k := range f.ssa {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	if err := codec.WriteUint64(w, uint64(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := codec.WriteInt(w, k); err != nil {
			return err
		}
		if err := codec.WriteInt(w, f.ssa[k]); err != nil {
			return err
		}
	}
	return nil
}

// Decode reconstructs an FMIndex written by EncodeTo.
func Decode(r io.Reader) (*FMIndex, error) {
	saStep, err := codec.ReadInt(r)
	if err != nil {
		return nil, err
	}
	rankStep, err := codec.ReadInt(r)
	if err != nil {
		return nil, err
	}
	n, err := codec.ReadInt(r)
	if err != nil {
		return nil, err
	}
	bwt, err := rle.DecodeFrom(r)
	if err != nil {
		return nil, err
	}

	var rankTable struct{ A, C, G, T []int }
	slices := make([][]int, 4)
	for i := range slices {
		if slices[i], err = codec.ReadIntSlice(r); err != nil {
			return nil, err
		}
	}
	rankTable.A, rankTable.C, rankTable.G, rankTable.T = slices[0], slices[1], slices[2], slices[3]

	firstColVals := make([]int, 4)
	for i := range firstColVals {
		if firstColVals[i], err = codec.ReadInt(r); err != nil {
			return nil, err
		}
	}

	numEntries, err := codec.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	ssa := make(map[int]int, numEntries)
	for i := uint64(0); i < numEntries; i++ {
		k, err := codec.ReadInt(r)
		if err != nil {
			return nil, err
		}
		v, err := codec.ReadInt(r)
		if err != nil {
			return nil, err
		}
		ssa[k] = v
	}

	fm := &FMIndex{
		bwt:      bwt,
		ssa:      ssa,
		saStep:   saStep,
		rankStep: rankStep,
		n:        n,
	}
	fm.rankTable.A, fm.rankTable.C, fm.rankTable.G, fm.rankTable.T = rankTable.A, rankTable.C, rankTable.G, rankTable.T
	fm.firstCol.A, fm.firstCol.C, fm.firstCol.G, fm.firstCol.T = firstColVals[0], firstColVals[1], firstColVals[2], firstColVals[3]
	return fm, nil
}
