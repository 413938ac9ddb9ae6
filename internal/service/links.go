package service

import (
	"strings"

	"github.com/sakif/diary/internal/links"
)

// LinkForDate returns a markdown link to date; see links.ForDate.
func (s *Store) LinkForDate(date string) (string, error) {
	entries, err := s.EntriesByDate(date)
	if err != nil {
		return "", err
	}
	return links.ForDate(strings.TrimSpace(date), entries), nil
}

func (s *Store) LinkForEntry(id string) (string, error) {
	e, err := s.GetEntry(id)
	if err != nil {
		return "", err
	}
	return links.ForEntry(*e), nil
}

func (s *Store) LinkForTag(id string) (string, error) {
	t, err := s.GetTag(id)
	if err != nil {
		return "", err
	}
	return links.ForTag(*t), nil
}
