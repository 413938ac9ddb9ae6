// Package legacy reads the diary's old single-document JSON format (the
// "diary_app_data" local-storage blob) and converts it to a model.Snapshot
// the Store can import.
//
// The old document has two objects, entries and tags, keyed by id. Very old
// documents keyed entries by date instead ("2024-01-31": {...}) and their
// entries may have no id at all; those get a fresh UUID, the same id format
// the old app generated.
package legacy

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

// StorageKey is the local-storage key the old app kept its document under.
const StorageKey = "diary_app_data"

var dateKey = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type entry struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	IsPinned  bool     `json:"isPinned"`
	UpdatedAt string   `json:"updatedAt"`
}

type tag struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
	Color    string  `json:"color"`
}

// Parse reads a legacy document. Tags keep the order they appear in; entries
// are ordered by date then id.
func Parse(r io.Reader) (*model.Snapshot, error) {
	dec := json.NewDecoder(r)
	snap := &model.Snapshot{
		Version:   model.SnapshotVersion,
		Tags:      []model.Tag{},
		Templates: []model.Template{},
		Entries:   []model.Entry{},
	}

	err := eachMember(dec, func(section string) error {
		switch section {
		case "entries":
			return eachMember(dec, func(key string) error {
				var e entry
				if err := dec.Decode(&e); err != nil {
					return fmt.Errorf("entry %q: %w", key, err)
				}
				converted, err := convertEntry(key, e)
				if err != nil {
					return err
				}
				snap.Entries = append(snap.Entries, converted)
				return nil
			})
		case "tags":
			return eachMember(dec, func(key string) error {
				var t tag
				if err := dec.Decode(&t); err != nil {
					return fmt.Errorf("tag %q: %w", key, err)
				}
				snap.Tags = append(snap.Tags, convertTag(key, t))
				return nil
			})
		default:
			var skip json.RawMessage
			return dec.Decode(&skip)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("legacy: %w", err)
	}

	sort.SliceStable(snap.Entries, func(i, j int) bool {
		if snap.Entries[i].Date != snap.Entries[j].Date {
			return snap.Entries[i].Date < snap.Entries[j].Date
		}
		return snap.Entries[i].ID < snap.Entries[j].ID
	})
	return snap, nil
}

// eachMember walks a JSON object member by member, calling fn with each key
// while the decoder is positioned at the value. fn must consume the value.
// Unlike decoding into a map, this keeps document order.
func eachMember(dec *json.Decoder, fn func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected an object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %v", tok)
		}
		if err := fn(key); err != nil {
			return err
		}
	}
	_, err = dec.Token() // closing '}'
	return err
}

func convertEntry(key string, e entry) (model.Entry, error) {
	id := strings.TrimSpace(e.ID)
	date := strings.TrimSpace(e.Date)
	if dateKey.MatchString(key) {
		// date-keyed document
		if date == "" {
			date = key
		}
		if id == "" {
			id = uuid.NewString()
		}
	} else if id == "" {
		id = key
	}
	if _, err := model.ParseDate(date); err != nil {
		return model.Entry{}, apperror.ValidationFailed("date",
			fmt.Sprintf("entry %q has invalid date %q", key, date))
	}

	out := model.Entry{
		ID:       id,
		Date:     date,
		Title:    e.Title,
		Content:  e.Content,
		Tags:     e.Tags,
		IsPinned: e.IsPinned,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, e.UpdatedAt); err == nil {
		out.UpdatedAt = ts.UTC()
	}
	return out, nil
}

func convertTag(key string, t tag) model.Tag {
	id := strings.TrimSpace(t.ID)
	if id == "" {
		id = key
	}
	if id == "" {
		id = uuid.NewString()
	}
	color := strings.TrimSpace(t.Color)
	if color == "" {
		color = model.DefaultTagColor
	}
	return model.Tag{
		ID:       id,
		Name:     strings.TrimSpace(t.Name),
		ParentID: model.NormalizeParentID(t.ParentID),
		Color:    color,
	}
}
