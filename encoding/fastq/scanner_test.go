package fastq_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnaseq/fmindex/encoding/fastq"
)

func TestScanSkipsNonACGT(t *testing.T) {
	data := "@r1\nACGT\n+\nIIII\n@r2\nACGN\n+\nIIII\n@r3\nTTTT\n+\nIIII\n"
	s := fastq.NewScanner(strings.NewReader(data))

	var got []string
	for s.Scan() {
		got = append(got, s.Read())
	}
	require.NoError(t, s.Err())
	assert.Equal(t, []string{"ACGT", "TTTT"}, got)
}

func TestScanInvalidIDLine(t *testing.T) {
	s := fastq.NewScanner(strings.NewReader("r1\nACGT\n+\nIIII\n"))
	assert.False(t, s.Scan())
	assert.ErrorIs(t, s.Err(), fastq.ErrInvalid)
}

func TestScanInvalidSeparatorLine(t *testing.T) {
	s := fastq.NewScanner(strings.NewReader("@r1\nACGT\nXYZ\nIIII\n"))
	assert.False(t, s.Scan())
	assert.ErrorIs(t, s.Err(), fastq.ErrInvalid)
}

func TestScanTruncated(t *testing.T) {
	s := fastq.NewScanner(strings.NewReader("@r1\nACGT\n+\n"))
	assert.False(t, s.Scan())
	assert.ErrorIs(t, s.Err(), fastq.ErrShort)
}

func TestScanCleanEOF(t *testing.T) {
	s := fastq.NewScanner(strings.NewReader(""))
	assert.False(t, s.Scan())
	assert.NoError(t, s.Err())
}

func TestScanGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("@r1\nACGT\n+\nIIII\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	s, err := fastq.NewGzipScanner(&buf)
	require.NoError(t, err)
	require.True(t, s.Scan())
	assert.Equal(t, "ACGT", s.Read())
	require.False(t, s.Scan())
	require.NoError(t, s.Err())
	require.NoError(t, s.Close())
}
