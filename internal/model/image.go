package model

import "time"

// Image is a binary attachment owned by exactly one Entry.
// Blob is left out of JSON listings; the API serves it from its own route.
type Image struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entryId"`
	Blob      []byte    `json:"-"`
	MimeType  string    `json:"mimeType"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}
