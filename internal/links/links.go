// Package links builds the markdown link snippets an editor inserts to
// cross-reference days, entries and tags, and derives short display titles
// from entry markdown.
package links

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/sakif/diary/internal/model"
)

// Title lengths used in link labels.
const (
	DateLinkTitleLength  = 20
	EntryLinkTitleLength = 30
)

// FallbackTitle labels an entry with no usable text.
const FallbackTitle = "Entry"

var md = goldmark.New()

// DayPath and friends are the in-app routes the snippets point at.
func DayPath(date string) string { return "/day/" + date }
func EntryPath(id string) string { return "/entry/" + id }
func TagPath(id string) string { return "/tag/" + id }

// ForDate links to a day. A day with exactly one entry links straight to
// that entry; an empty day or a day with several entries links to the day.
func ForDate(date string, dayEntries []model.Entry) string {
	switch len(dayEntries) {
	case 0:
		return fmt.Sprintf("[%s](%s)", date, DayPath(date))
	case 1:
		e := dayEntries[0]
		return fmt.Sprintf("[%s: %s...](%s)", date, Title(e, DateLinkTitleLength), EntryPath(e.ID))
	default:
		return fmt.Sprintf("[%s (%d entries)](%s)", date, len(dayEntries), DayPath(date))
	}
}

// ForEntry links to a single entry, labelled with its date and title.
func ForEntry(e model.Entry) string {
	return fmt.Sprintf("[%s: %s...](%s)", e.Date, Title(e, EntryLinkTitleLength), EntryPath(e.ID))
}

// ForTag links to a tag page.
func ForTag(t model.Tag) string {
	return fmt.Sprintf("[#%s](%s)", stripBrackets(t.Name), TagPath(t.ID))
}

// Title returns a plain-text label for e of at most maxRunes runes: the
// entry title when set, otherwise the text of the first markdown block.
// Square brackets are removed so the label can sit inside a link.
func Title(e model.Entry, maxRunes int) string {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		title = FirstLine(e.Content)
	}
	title = stripBrackets(title)
	if r := []rune(title); len(r) > maxRunes {
		title = strings.TrimSpace(string(r[:maxRunes]))
	}
	if title == "" {
		return FallbackTitle
	}
	return title
}

// FirstLine renders the first heading or paragraph of markdown as plain
// text, with emphasis, links and code markers removed.
func FirstLine(markdown string) string {
	src := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(src))

	var line string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock:
			line = plainText(n, src)
			if line != "" {
				return ast.WalkStop, nil
			}
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock, ast.KindThematicBreak:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return line
}

func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.Write(node.Label(src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

func stripBrackets(s string) string {
	return strings.NewReplacer("[", "", "]", "").Replace(s)
}
