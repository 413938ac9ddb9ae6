package model

import "time"

// Template is a reusable content/tag preset for starting a new Entry.
// Its Tags are weak references and are not cleaned when a tag is deleted.
type Template struct {
	ID        string    `json:"id"        yaml:"id"`
	Title     string    `json:"title"     yaml:"title"`
	Content   string    `json:"content"   yaml:"content"`
	Tags      []string  `json:"tags"      yaml:"tags,omitempty"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Clone returns a copy that shares no slices with t.
func (t Template) Clone() Template {
	if t.Tags != nil {
		t.Tags = append([]string(nil), t.Tags...)
	}
	return t
}
