package readmapper

import (
	"bytes"
	"encoding/binary"
	"io"

	"blainsmith.com/go/seahash"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/dnaseq/fmindex/errs"
	"github.com/dnaseq/fmindex/fmindex"
	"github.com/dnaseq/fmindex/internal/codec"
)

const checksumSize = 8

type serializeConfig struct {
	gzip      bool
	gzipLevel int
}

// SerializeOption configures Serialize/Deserialize. The same options must be
// passed to both sides of a round trip.
type SerializeOption func(*serializeConfig)

// WithGzip wraps the serialized payload in gzip compression at the default
// compression level.
func WithGzip() SerializeOption {
	return func(c *serializeConfig) {
		c.gzip = true
		c.gzipLevel = gzip.DefaultCompression
	}
}

// WithGzipLevel wraps the serialized payload in gzip compression at an
// explicit level (see compress/flate's level constants).
func WithGzipLevel(level int) SerializeOption {
	return func(c *serializeConfig) {
		c.gzip = true
		c.gzipLevel = level
	}
}

func applyOptions(opts []SerializeOption) serializeConfig {
	cfg := serializeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Serialize writes a persisted ReadMapper: genome length followed by the
// encoded forward and reverse FMIndex, trailed by a seahash checksum of that
// payload so Deserialize can detect on-disk corruption before handing back a
// ReadMapper that would silently misbehave.
func Serialize(m *ReadMapper, w io.Writer, opts ...SerializeOption) error {
	cfg := applyOptions(opts)

	var payload bytes.Buffer
	if err := codec.WriteInt(&payload, m.genomeLength); err != nil {
		return err
	}
	if err := m.forward.EncodeTo(&payload); err != nil {
		return errors.Wrap(err, "readmapper: encoding forward index")
	}
	if err := m.reverse.EncodeTo(&payload); err != nil {
		return errors.Wrap(err, "readmapper: encoding reverse index")
	}

	h := seahash.New()
	if _, err := h.Write(payload.Bytes()); err != nil {
		return errors.Wrap(err, "readmapper: checksumming payload")
	}

	var body bytes.Buffer
	body.Write(payload.Bytes())
	var checksumBytes [checksumSize]byte
	binary.LittleEndian.PutUint64(checksumBytes[:], h.Sum64())
	body.Write(checksumBytes[:])

	if !cfg.gzip {
		_, err := w.Write(body.Bytes())
		return errors.Wrap(err, "readmapper: writing serialized index")
	}

	gz, err := gzip.NewWriterLevel(w, cfg.gzipLevel)
	if err != nil {
		return errors.Wrap(err, "readmapper: opening gzip writer")
	}
	if _, err := gz.Write(body.Bytes()); err != nil {
		gz.Close()
		return errors.Wrap(err, "readmapper: writing gzip-compressed index")
	}
	return errors.Wrap(gz.Close(), "readmapper: closing gzip writer")
}

// Deserialize reconstructs a ReadMapper written by Serialize, rejecting the
// payload with ErrDecodeFailure if its trailing checksum does not match.
func Deserialize(r io.Reader, opts ...SerializeOption) (*ReadMapper, error) {
	cfg := applyOptions(opts)

	var body io.Reader = r
	if cfg.gzip {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "readmapper: opening gzip reader")
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "readmapper: reading serialized index")
	}
	if len(data) < checksumSize {
		return nil, errors.Wrap(errs.ErrDecodeFailure, "readmapper: serialized index too short")
	}

	payload, wantChecksum := data[:len(data)-checksumSize], data[len(data)-checksumSize:]
	h := seahash.New()
	if _, err := h.Write(payload); err != nil {
		return nil, errors.Wrap(err, "readmapper: checksumming payload")
	}
	if h.Sum64() != binary.LittleEndian.Uint64(wantChecksum) {
		return nil, errors.Wrap(errs.ErrDecodeFailure, "readmapper: checksum mismatch")
	}

	buf := bytes.NewReader(payload)
	genomeLength, err := codec.ReadInt(buf)
	if err != nil {
		return nil, err
	}
	forward, err := fmindex.Decode(buf)
	if err != nil {
		return nil, errors.Wrap(err, "readmapper: decoding forward index")
	}
	reverse, err := fmindex.Decode(buf)
	if err != nil {
		return nil, errors.Wrap(err, "readmapper: decoding reverse index")
	}

	return &ReadMapper{forward: forward, reverse: reverse, genomeLength: genomeLength}, nil
}
