// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data; the json tags below are the
// wire shape the HTTP API and the export command share.
package model

import "time"

// DateLayout is the calendar date format used for Entry.Date (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Entry is a single dated diary record.
//
// Tags holds Tag ids only (weak references). The order is the order the user
// attached them in; it carries no meaning beyond display.
type Entry struct {
	ID        string    `json:"id"        yaml:"id"`
	Date      string    `json:"date"      yaml:"date"`
	Title     string    `json:"title"     yaml:"title,omitempty"`
	Content   string    `json:"content"   yaml:"content"`
	Tags      []string  `json:"tags"      yaml:"tags,omitempty"`
	IsPinned  bool      `json:"isPinned"  yaml:"isPinned"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// HasTag reports whether the entry references tagID.
func (e *Entry) HasTag(tagID string) bool {
	for _, id := range e.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with e.
func (e Entry) Clone() Entry {
	if e.Tags != nil {
		e.Tags = append([]string(nil), e.Tags...)
	}
	return e
}

// ParseDate parses an Entry.Date value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
