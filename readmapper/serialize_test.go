package readmapper_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnaseq/fmindex/readmapper"
)

func TestSerializeRoundTrip(t *testing.T) {
	m := mustMapper(t, spec8Reference)

	var buf bytes.Buffer
	require.NoError(t, readmapper.Serialize(m, &buf))

	decoded, err := readmapper.Deserialize(&buf)
	require.NoError(t, err)

	want, err := m.MapRead("ATCAAATGTAAAAG", 7, 2)
	require.NoError(t, err)
	got, err := decoded.MapRead("ATCAAATGTAAAAG", 7, 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSerializeRoundTripGzip(t *testing.T) {
	m := mustMapper(t, spec8Reference)

	var buf bytes.Buffer
	require.NoError(t, readmapper.Serialize(m, &buf, readmapper.WithGzip()))

	decoded, err := readmapper.Deserialize(&buf, readmapper.WithGzip())
	require.NoError(t, err)

	want, err := m.MapRead("GTATCTTCTACGTTTACGTCTAATTT", 7, 3)
	require.NoError(t, err)
	got, err := decoded.MapRead("GTATCTTCTACGTTTACGTCTAATTT", 7, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDeserializeRejectsCorruption(t *testing.T) {
	m := mustMapper(t, spec8Reference)

	var buf bytes.Buffer
	require.NoError(t, readmapper.Serialize(m, &buf))

	corrupted := buf.Bytes()
	corrupted[0] ^= 0xFF

	_, err := readmapper.Deserialize(bytes.NewReader(corrupted))
	assert.Error(t, err)
}

func TestDeserializeRejectsTruncated(t *testing.T) {
	_, err := readmapper.Deserialize(bytes.NewReader([]byte{1, 2, 3}))
	assert.Error(t, err)
}
