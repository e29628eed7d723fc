package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testMetadata() Metadata {
	return Metadata{
		Name:        "dune_sequence",
		Description: "frost dune test frames",
		Format:      "png",
		Width:       64,
		Height:      36,
		FrameCount:  3,
		ProjectJSON: `{"name":"dune_sequence"}`,
		Palette:     "frosty",
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequence.fdseq")

	writer, err := NewWriter(path, testMetadata())
	require.NoError(t, err)

	frames := [][]byte{
		[]byte("frame-zero-png-bytes"),
		[]byte("frame-one-png-bytes"),
		[]byte("frame-two-png-bytes"),
	}
	for i, data := range frames {
		require.NoError(t, writer.WriteFrame(i, fmt.Sprintf("frame_%03d", i), data))
	}
	require.NoError(t, writer.Close())

	reader, err := OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	count, err := reader.FrameCount()
	require.NoError(t, err)
	require.Equal(t, 3, count)

	for i, want := range frames {
		name, data, err := reader.ReadFrame(i)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("frame_%03d", i), name)
		require.Equal(t, want, data)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequence.fdseq")

	writer, err := NewWriter(path, testMetadata())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader, err := OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	meta, err := reader.Metadata()
	require.NoError(t, err)
	require.Equal(t, testMetadata(), meta)
}

func TestWriteFrameReplacesIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequence.fdseq")

	writer, err := NewWriter(path, testMetadata())
	require.NoError(t, err)

	require.NoError(t, writer.WriteFrame(0, "frame_000", []byte("first")))
	require.NoError(t, writer.Flush())
	require.NoError(t, writer.WriteFrame(0, "frame_000", []byte("second")))
	require.NoError(t, writer.Close())

	reader, err := OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	count, err := reader.FrameCount()
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, data, err := reader.ReadFrame(0)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), data)
}

func TestIndicesSortedAscending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequence.fdseq")

	writer, err := NewWriter(path, testMetadata())
	require.NoError(t, err)

	// Written out of order; the reader must return them sorted.
	for _, i := range []int{4, 0, 2} {
		require.NoError(t, writer.WriteFrame(i, fmt.Sprintf("frame_%03d", i), []byte("data")))
	}
	require.NoError(t, writer.Close())

	reader, err := OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	indices, err := reader.Indices()
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 4}, indices)
}

func TestBatchAutoFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequence.fdseq")

	writer, err := NewWriter(path, testMetadata())
	require.NoError(t, err)
	defer writer.Close()

	for i := 0; i < DefaultBatchSize; i++ {
		require.NoError(t, writer.WriteFrame(i, fmt.Sprintf("frame_%03d", i), []byte("data")))
	}

	// The full batch is flushed without an explicit Flush or Close.
	reader, err := OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	count, err := reader.FrameCount()
	require.NoError(t, err)
	require.Equal(t, DefaultBatchSize, count)
}

func TestReadMissingFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequence.fdseq")

	writer, err := NewWriter(path, testMetadata())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader, err := OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	_, _, err = reader.ReadFrame(42)
	require.Error(t, err)
	require.Contains(t, err.Error(), "frame not found")
}

func TestOpenReaderRejectsForeignDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-sequence.db")

	// A sqlite file without a frames table must be rejected.
	w, err := NewWriter(path, Metadata{})
	require.NoError(t, err)
	_, err = w.db.Exec("DROP TABLE frames")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = OpenReader(path)
	require.Error(t, err)
}
