package service

import (
	"sort"
	"strings"
	"time"

	"github.com/sakif/diary/internal/apperror"
)

// CalendarDay summarizes one day that has at least one entry.
type CalendarDay struct {
	Date    string `json:"date"`
	Entries int    `json:"entries"`
	Pinned  bool   `json:"pinned"`
}

// CalendarMonth lists the days of year/month that have entries, in date order.
func (s *Store) CalendarMonth(year, month int) ([]CalendarDay, error) {
	if month < 1 || month > 12 {
		return nil, apperror.ValidationFailed("month", "month must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return nil, apperror.ValidationFailed("year", "year must be between 1 and 9999")
	}
	prefix := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-")

	byDate := map[string]*CalendarDay{}
	for _, e := range s.snapshotEntries() {
		if !strings.HasPrefix(e.Date, prefix) {
			continue
		}
		day, ok := byDate[e.Date]
		if !ok {
			day = &CalendarDay{Date: e.Date}
			byDate[e.Date] = day
		}
		day.Entries++
		day.Pinned = day.Pinned || e.IsPinned
	}

	out := make([]CalendarDay, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
