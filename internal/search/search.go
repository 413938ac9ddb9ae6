// Package search filters and ranks diary entries held in memory.
//
// The pipeline is staged: cheap exact filters (pinned, tags, date range) run
// first and only the survivors reach the fuzzy ranking step.
package search

import (
	"sort"
	"strings"

	"github.com/sakif/diary/internal/apperror"
	"github.com/sakif/diary/internal/model"
)

// Filter is a search request. Zero values disable the corresponding stage.
type Filter struct {
	Query      string   `json:"query"`
	TagIDs     []string `json:"tagIds"`
	StartDate  *string  `json:"startDate"`
	EndDate    *string  `json:"endDate"`
	OnlyPinned bool     `json:"onlyPinned"`
}

// Validate checks that both date bounds, when present, are YYYY-MM-DD dates.
func (f Filter) Validate() error {
	bounds := []struct {
		field string
		value string
	}{
		{"startDate", bound(f.StartDate)},
		{"endDate", bound(f.EndDate)},
	}
	for _, b := range bounds {
		if b.value == "" {
			continue
		}
		if _, err := model.ParseDate(b.value); err != nil {
			return apperror.ValidationFailed(b.field, "date must be in YYYY-MM-DD format")
		}
	}
	return nil
}

// Search applies f to entries and returns the matches in result order.
// The input slice is never modified.
//
// With a query the result is ordered best match first; without one it is
// ordered most recent date first.
func Search(entries []model.Entry, f Filter) []model.Entry {
	candidates := make([]model.Entry, 0, len(entries))
	start, end := bound(f.StartDate), bound(f.EndDate)
	for _, e := range entries {
		if f.OnlyPinned && !e.IsPinned {
			continue
		}
		if !hasAllTags(e, f.TagIDs) {
			continue
		}
		// YYYY-MM-DD compares correctly as a string, and comparing whole
		// dates makes both bounds inclusive for the full day.
		if start != "" && e.Date < start {
			continue
		}
		if end != "" && e.Date > end {
			continue
		}
		candidates = append(candidates, e.Clone())
	}

	query := strings.TrimSpace(f.Query)
	if query == "" {
		SortByDateDesc(candidates)
		return candidates
	}
	return rank(candidates, query)
}

// ByAnyTag returns the entries carrying at least one of tagIDs, most recent
// first. It backs the tag page, where tagIDs is a tag plus its descendants.
func ByAnyTag(entries []model.Entry, tagIDs []string) []model.Entry {
	set := make(map[string]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		set[id] = struct{}{}
	}
	out := []model.Entry{}
	for _, e := range entries {
		for _, id := range e.Tags {
			if _, ok := set[id]; ok {
				out = append(out, e.Clone())
				break
			}
		}
	}
	SortByDateDesc(out)
	return out
}

// ByDate returns the entries written on date, most recently updated first.
func ByDate(entries []model.Entry, date string) []model.Entry {
	out := []model.Entry{}
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e.Clone())
		}
	}
	SortByDateDesc(out)
	return out
}

// SortByDateDesc orders entries by date, newest first, then by UpdatedAt.
func SortByDateDesc(entries []model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
}

func hasAllTags(e model.Entry, tagIDs []string) bool {
	for _, id := range tagIDs {
		if !e.HasTag(id) {
			return false
		}
	}
	return true
}

func bound(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
