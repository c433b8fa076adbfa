package report

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Entry is one line of a two-column error artifact.
type Entry struct {
	Description string
	Location    string
}

// Artifact accumulates error entries during a run and writes them out
// as a two-column CSV once the run is over. Entries are kept in the
// order they were recorded.
type Artifact struct {
	entries []Entry
}

// NewArtifact creates an empty error artifact.
func NewArtifact() *Artifact {
	return &Artifact{}
}

// Append records an entry. Nothing is written until Write is called.
func (a *Artifact) Append(description, location string) {
	a.entries = append(a.entries, Entry{Description: description, Location: location})
}

// Appendf records an entry with a formatted description.
func (a *Artifact) Appendf(location, format string, args ...interface{}) {
	a.Append(fmt.Sprintf(format, args...), location)
}

// Entries returns the recorded entries.
func (a *Artifact) Entries() []Entry {
	return a.entries
}

// Empty reports whether anything has been recorded.
func (a *Artifact) Empty() bool {
	return len(a.entries) == 0
}

// Write commits the artifact to the given path as a Description,Location
// CSV with a header row.
func (a *Artifact) Write(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create error artifact: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"Description", "Location"}); err != nil {
		return fmt.Errorf("write artifact header: %w", err)
	}
	for _, entry := range a.entries {
		if err := w.Write([]string{entry.Description, entry.Location}); err != nil {
			return fmt.Errorf("write artifact row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush error artifact: %w", err)
	}
	return nil
}
