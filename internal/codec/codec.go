// Package codec provides the small set of deterministic, length-prefixed
// binary primitives the persisted index format (readmapper.Serialize) is
// built from. It deliberately avoids reflection-based encoders: every field
// of every structure is framed explicitly, matching the teacher codebase's
// own preference for explicit binary framing in its BAM/PAM encoders over
// a generic struct codec.
package codec

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// WriteUint64 writes v as 8 little-endian bytes.
func WriteUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return errors.Wrap(err, "codec: write uint64")
}

// ReadUint64 reads 8 little-endian bytes.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.Wrap(err, "codec: read uint64")
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// WriteInt writes v as a signed 64-bit little-endian value.
func WriteInt(w io.Writer, v int) error {
	return WriteUint64(w, uint64(v))
}

// ReadInt reads a signed 64-bit little-endian value.
func ReadInt(r io.Reader) (int, error) {
	v, err := ReadUint64(r)
	return int(v), err
}

// WriteBytes writes b as a uint64 length prefix followed by the raw bytes.
func WriteBytes(w io.Writer, b []byte) error {
	if err := WriteUint64(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return errors.Wrap(err, "codec: write bytes")
}

// ReadBytes reads a length-prefixed byte slice written by WriteBytes.
func ReadBytes(r io.Reader) ([]byte, error) {
	n, err := ReadUint64(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "codec: read bytes")
	}
	return buf, nil
}

// WriteIntSlice writes a length-prefixed slice of ints.
func WriteIntSlice(w io.Writer, s []int) error {
	if err := WriteUint64(w, uint64(len(s))); err != nil {
		return err
	}
	for _, v := range s {
		if err := WriteInt(w, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadIntSlice reads a length-prefixed slice of ints written by
// WriteIntSlice.
func ReadIntSlice(r io.Reader) ([]int, error) {
	n, err := ReadUint64(r)
	if err != nil {
		return nil, err
	}
	s := make([]int, n)
	for i := range s {
		if s[i], err = ReadInt(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}
