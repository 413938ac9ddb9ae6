package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/diary/internal/model"
)

func TestFieldScore(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		match bool
		exact bool
	}{
		{"exact substring", "coffee", "Morning Coffee run", true, true},
		{"one typo", "cofee", "coffee", true, false},
		{"typo inside sentence", "cofee", "We had coffee.", true, false},
		{"multi word window", "team standup", "the daily team stand-up", true, false},
		{"reordered words", "coffee drank", "I drank coffee", true, false},
		{"reordered words with typo", "cofee drank", "I drank coffee", true, false},
		{"one word unrelated", "coffee zebra", "I drank coffee", false, false},
		{"unrelated", "coffee", "tax return paperwork", false, false},
		{"empty text", "coffee", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fieldScore(tt.query, tt.text)
			if tt.exact {
				assert.Zero(t, s)
			}
			if tt.match {
				assert.LessOrEqual(t, s, Threshold)
			} else {
				assert.Greater(t, s, Threshold)
			}
		})
	}
}

func TestEntryScore_NoMatchingField(t *testing.T) {
	_, ok := entryScore("zebra", entryWith("Groceries", "milk and eggs"))
	assert.False(t, ok)
}

func TestEntryScore_WeightsFavourTitle(t *testing.T) {
	title, ok := entryScore("garden", entryWith("Garden", ""))
	assert.True(t, ok)
	content, ok := entryScore("garden", entryWith("", "garden"))
	assert.True(t, ok)

	assert.Less(t, title, content)
}

func entryWith(title, content string) model.Entry {
	return model.Entry{ID: "e", Date: "2024-01-01", Title: title, Content: content}
}
