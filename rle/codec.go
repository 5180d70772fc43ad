package rle

import (
	"io"

	"github.com/dnaseq/fmindex/internal/codec"
)

// EncodeTo writes a deterministic binary encoding of r: block size, string
// length, then every run (char byte, length), then every checkpoint
// (entryIndex, offset).
// Checkpoints and runs are plain slices, never maps, so repeated encodes of
// the same String are byte-identical.
func (r *String) EncodeTo(w io.Writer) error {
	if err := codec.WriteInt(w, r.blockSize); err != nil {
		return err
	}
	if err := codec.WriteInt(w, r.n); err != nil {
		return err
	}
	if err := codec.WriteUint64(w, uint64(len(r.runs))); err != nil {
		return err
	}
	for _, run := range r.runs {
		if _, err := w.Write([]byte{run.char}); err != nil {
			return err
		}
		if err := codec.WriteInt(w, run.len); err != nil {
			return err
		}
	}
	if err := codec.WriteUint64(w, uint64(len(r.checkpoints))); err != nil {
		return err
	}
	for _, cp := range r.checkpoints {
		if err := codec.WriteInt(w, cp.entryIndex); err != nil {
			return err
		}
		if err := codec.WriteInt(w, cp.offset); err != nil {
			return err
		}
	}
	return nil
}

// DecodeFrom reconstructs a String written by EncodeTo.
func DecodeFrom(r io.Reader) (*String, error) {
	blockSize, err := codec.ReadInt(r)
	if err != nil {
		return nil, err
	}
	n, err := codec.ReadInt(r)
	if err != nil {
		return nil, err
	}
	numRuns, err := codec.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	runs := make([]run, numRuns)
	var charBuf [1]byte
	for i := range runs {
		if _, err := io.ReadFull(r, charBuf[:]); err != nil {
			return nil, err
		}
		length, err := codec.ReadInt(r)
		if err != nil {
			return nil, err
		}
		runs[i] = run{char: charBuf[0], len: length}
	}
	numCps, err := codec.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	checkpoints := make([]checkpoint, numCps)
	for i := range checkpoints {
		entryIdx, err := codec.ReadInt(r)
		if err != nil {
			return nil, err
		}
		offset, err := codec.ReadInt(r)
		if err != nil {
			return nil, err
		}
		checkpoints[i] = checkpoint{entryIndex: entryIdx, offset: offset}
	}
	return &String{
		runs:        runs,
		checkpoints: checkpoints,
		blockSize:   blockSize,
		n:           n,
	}, nil
}
