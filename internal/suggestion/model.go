// Package suggestion provides the suggestion usage history domain models and
// the persistent store over them.
package suggestion

import (
	"regexp"
	"strings"
	"time"
)

// DateFormat is the ISO basic calendar date layout used in the date column.
// It sorts lexicographically in chronological order.
const DateFormat = "20060102"

// Suggestion is a normalized word or short phrase the user accepted, together
// with how often it was accepted.
type Suggestion struct {
	ID          int64  `db:"id"`
	Name        string `db:"suggestion_name"`
	Occurrences int    `db:"occurrences"`
}

// Context is one historical usage of a suggestion: the sentence that led to
// it, the calendar date it was accepted, and its part of speech in that
// sentence.
type Context struct {
	Sentence     string
	Date         time.Time
	PartOfSpeech PartOfSpeech
}

// WordDate pairs a suggestion name with a usage date, for recency queries.
type WordDate struct {
	Name string
	Date time.Time
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize trims the text and collapses internal whitespace runs into single
// spaces. Two acceptances that normalize identically are the same suggestion.
func Normalize(text string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
}
