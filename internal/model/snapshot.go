package model

import "time"

// SnapshotVersion is the current export format version.
const SnapshotVersion = 1

// Snapshot is the whole diary in one document. The export command writes
// it and the import command reads it back.
type Snapshot struct {
	Version    int        `json:"version"    yaml:"version"`
	ExportedAt time.Time  `json:"exportedAt" yaml:"exportedAt"`
	Tags       []Tag      `json:"tags"       yaml:"tags"`
	Templates  []Template `json:"templates"  yaml:"templates"`
	Entries    []Entry    `json:"entries"    yaml:"entries"`
}
