package search

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/sakif/diary/internal/model"
)

// Ranking parameters. Scores run from 0 (exact) to 1 (no resemblance).
const (
	// Threshold is the worst field score that still counts as a match.
	Threshold = 0.4

	TitleWeight   = 0.7
	ContentWeight = 0.3

	// minScore stands in for a perfect field score so the weight still
	// separates an exact title hit from an exact content hit.
	minScore = 0.001
)

type scored struct {
	entry model.Entry
	score float64
}

func rank(entries []model.Entry, query string) []model.Entry {
	q := strings.ToLower(query)
	hits := make([]scored, 0, len(entries))
	for _, e := range entries {
		if s, ok := entryScore(q, e); ok {
			hits = append(hits, scored{entry: e, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].entry.Date > hits[j].entry.Date
	})
	out := make([]model.Entry, len(hits))
	for i, h := range hits {
		out[i] = h.entry
	}
	return out
}

// entryScore combines the matching fields into one score: the product of
// score^weight over every field at or under Threshold. ok is false when no
// field matched.
func entryScore(q string, e model.Entry) (float64, bool) {
	total, matched := 1.0, false
	for _, f := range []struct {
		text   string
		weight float64
	}{
		{e.Title, TitleWeight},
		{e.Content, ContentWeight},
	} {
		s := fieldScore(q, f.text)
		if s > Threshold {
			continue
		}
		matched = true
		total *= math.Pow(math.Max(s, minScore), f.weight)
	}
	return total, matched
}

// fieldScore rates how well the lower-cased query q matches text.
//
//  1. q occurs in text (case-insensitive): 0.
//  2. otherwise the closest run of words the same length as q, by
//     Levenshtein distance over the longer of the two.
//  3. for a multi-word q, each query word scored on its own against its
//     closest text word and averaged, so reordered words still match.
//  4. if q's characters occur in order in text, the subsequence rank over
//     the text length.
//
// The best of 2, 3 and 4 wins. No resemblance at all scores 1.
func fieldScore(q, text string) float64 {
	if text == "" || q == "" {
		return 1
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, q) {
		return 0
	}

	best := 1.0
	qWords := words(q)
	needle := strings.Join(qWords, " ")
	tWords := words(lower)
	for i := 0; len(qWords) > 0 && i+len(qWords) <= len(tWords); i++ {
		window := strings.Join(tWords[i:i+len(qWords)], " ")
		d := fuzzy.LevenshteinDistance(needle, window)
		s := float64(d) / float64(max(utf8.RuneCountInString(needle), utf8.RuneCountInString(window)))
		if s < best {
			best = s
		}
		if best == 0 {
			return 0
		}
	}

	if len(qWords) > 1 {
		if s := unorderedScore(qWords, tWords); s < best {
			best = s
		}
	}

	if r := fuzzy.RankMatchFold(q, text); r >= 0 {
		if s := float64(r) / float64(utf8.RuneCountInString(text)); s < best {
			best = s
		}
	}
	return best
}

// unorderedScore averages, over the query words, the distance from each to
// its closest text word. Word order is ignored.
func unorderedScore(qWords, tWords []string) float64 {
	if len(tWords) == 0 {
		return 1
	}
	total := 0.0
	for _, qw := range qWords {
		closest := 1.0
		for _, tw := range tWords {
			if strings.Contains(tw, qw) {
				closest = 0
				break
			}
			d := fuzzy.LevenshteinDistance(qw, tw)
			s := float64(d) / float64(max(utf8.RuneCountInString(qw), utf8.RuneCountInString(tw)))
			closest = min(closest, s)
		}
		total += closest
	}
	return total / float64(len(qWords))
}

// words splits s on anything that is not a letter or digit.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
