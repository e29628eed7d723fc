// Package store persists rendered frame sequences in a single SQLite
// archive file: one row per frame plus a metadata table describing the
// sequence.
package store

import "fmt"

// Metadata describes a frame sequence archive.
type Metadata struct {
	Name        string // sequence identifier
	Description string
	Format      string // frame encoding (png)
	Width       int
	Height      int
	FrameCount  int
	ProjectJSON string // serialized project configuration the sequence was rendered from
	Palette     string // palette name, informational
}

// ToMap converts Metadata to a map for database insertion.
func (m Metadata) ToMap() map[string]string {
	result := make(map[string]string)

	if m.Name != "" {
		result["name"] = m.Name
	}
	if m.Description != "" {
		result["description"] = m.Description
	}
	if m.Format != "" {
		result["format"] = m.Format
	}
	if m.Width > 0 {
		result["width"] = fmt.Sprintf("%d", m.Width)
	}
	if m.Height > 0 {
		result["height"] = fmt.Sprintf("%d", m.Height)
	}
	if m.FrameCount > 0 {
		result["frame_count"] = fmt.Sprintf("%d", m.FrameCount)
	}
	if m.ProjectJSON != "" {
		result["project"] = m.ProjectJSON
	}
	if m.Palette != "" {
		result["palette"] = m.Palette
	}

	return result
}
