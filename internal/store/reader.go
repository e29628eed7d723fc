package store

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"fmt"
	"io"
	"strconv"
)

// Reader reads frames from a sequence archive.
type Reader struct {
	db   *sql.DB
	path string
}

// OpenReader opens a sequence archive for reading.
func OpenReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro&immutable=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='frames'").Scan(&count)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}
	if count == 0 {
		db.Close()
		return nil, fmt.Errorf("archive does not contain a frames table")
	}

	return &Reader{
		db:   db,
		path: path,
	}, nil
}

// ReadFrame returns the ungzipped PNG data and name of one frame.
func (r *Reader) ReadFrame(index int) (name string, data []byte, err error) {
	var compressed []byte
	err = r.db.QueryRow(
		"SELECT frame_name, frame_data FROM frames WHERE frame_index=?",
		index,
	).Scan(&name, &compressed)

	if err == sql.ErrNoRows {
		return "", nil, fmt.Errorf("frame not found: %d", index)
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to query frame: %w", err)
	}

	data, err = gzipDecompress(compressed)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decompress frame %d: %w", index, err)
	}
	return name, data, nil
}

// Indices returns the stored frame indices in ascending order.
func (r *Reader) Indices() ([]int, error) {
	rows, err := r.db.Query("SELECT frame_index FROM frames ORDER BY frame_index")
	if err != nil {
		return nil, fmt.Errorf("failed to query frame indices: %w", err)
	}
	defer rows.Close()

	var indices []int
	for rows.Next() {
		var index int
		if err := rows.Scan(&index); err != nil {
			return nil, fmt.Errorf("failed to scan frame index: %w", err)
		}
		indices = append(indices, index)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating frame indices: %w", err)
	}
	return indices, nil
}

// FrameCount returns the number of frames stored in the archive.
func (r *Reader) FrameCount() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM frames").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count frames: %w", err)
	}
	return count, nil
}

// Metadata reads the sequence metadata.
func (r *Reader) Metadata() (Metadata, error) {
	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	metaMap := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return Metadata{}, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		metaMap[name] = value
	}
	if err := rows.Err(); err != nil {
		return Metadata{}, fmt.Errorf("error iterating metadata: %w", err)
	}

	meta := Metadata{
		Name:        metaMap["name"],
		Description: metaMap["description"],
		Format:      metaMap["format"],
		ProjectJSON: metaMap["project"],
		Palette:     metaMap["palette"],
	}
	if v, ok := metaMap["width"]; ok {
		if i, err := strconv.Atoi(v); err == nil {
			meta.Width = i
		}
	}
	if v, ok := metaMap["height"]; ok {
		if i, err := strconv.Atoi(v); err == nil {
			meta.Height = i
		}
	}
	if v, ok := metaMap["frame_count"]; ok {
		if i, err := strconv.Atoi(v); err == nil {
			meta.FrameCount = i
		}
	}
	return meta, nil
}

// Close closes the archive.
func (r *Reader) Close() error {
	return r.db.Close()
}

func gzipDecompress(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return io.ReadAll(gr)
}
