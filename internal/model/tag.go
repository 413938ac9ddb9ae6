package model

import "time"

// DefaultTagColor is the neutral gray a Tag gets when no color was chosen.
const DefaultTagColor = "#6B7280"

// Shade levels accepted for Tag.ShadeLevel. Level 1 is the base color itself.
const (
	MinShadeLevel = 1
	MaxShadeLevel = 5
)

// Tag is a named label. Tags form a forest through ParentID:
// a nil ParentID means the tag sits at root level.
//
// WHY *string FOR ParentID?
// "no parent" and "parent with id X" are different states; the pointer keeps
// nil distinct from any real id and maps directly onto a NULL column.
type Tag struct {
	ID         string    `json:"id"                   yaml:"id"`
	Name       string    `json:"name"                 yaml:"name"`
	ParentID   *string   `json:"parentId"             yaml:"parentId,omitempty"`
	Color      string    `json:"color"                yaml:"color"`
	BaseColor  string    `json:"baseColor,omitempty"  yaml:"baseColor,omitempty"`
	ShadeLevel int       `json:"shadeLevel,omitempty" yaml:"shadeLevel,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"            yaml:"updatedAt"`
}

// Parent returns the parent id, or "" for a root tag.
func (t *Tag) Parent() string {
	if t.ParentID == nil {
		return ""
	}
	return *t.ParentID
}

// Clone returns a copy with its own ParentID pointer.
func (t Tag) Clone() Tag {
	if t.ParentID != nil {
		p := *t.ParentID
		t.ParentID = &p
	}
	return t
}

// NormalizeParentID turns an empty string into nil so "" and null mean the same thing.
func NormalizeParentID(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	v := *p
	return &v
}
