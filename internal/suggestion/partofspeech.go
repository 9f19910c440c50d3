package suggestion

import "strings"

// PartOfSpeech is the grammatical category tag attached to one usage of a
// suggestion. Unknown or unclassified usages carry PartOfSpeechNone.
type PartOfSpeech string

const (
	PartOfSpeechNoun        PartOfSpeech = "noun"
	PartOfSpeechPronoun     PartOfSpeech = "pronoun"
	PartOfSpeechVerb        PartOfSpeech = "verb"
	PartOfSpeechAdjective   PartOfSpeech = "adjective"
	PartOfSpeechAdverb      PartOfSpeech = "adverb"
	PartOfSpeechPreposition PartOfSpeech = "preposition"
	PartOfSpeechConjunction PartOfSpeech = "conjunction"
	PartOfSpeechExclamation PartOfSpeech = "exclamation"
	PartOfSpeechNone        PartOfSpeech = "none"
)

var partsOfSpeech = map[string]PartOfSpeech{
	"noun":        PartOfSpeechNoun,
	"pronoun":     PartOfSpeechPronoun,
	"verb":        PartOfSpeechVerb,
	"adjective":   PartOfSpeechAdjective,
	"adverb":      PartOfSpeechAdverb,
	"preposition": PartOfSpeechPreposition,
	"conjunction": PartOfSpeechConjunction,
	"exclamation": PartOfSpeechExclamation,
	"none":        PartOfSpeechNone,
}

// PartOfSpeechFromString parses a tag name case-insensitively.
// Anything unrecognized maps to PartOfSpeechNone.
func PartOfSpeechFromString(value string) PartOfSpeech {
	if pos, ok := partsOfSpeech[strings.ToLower(strings.TrimSpace(value))]; ok {
		return pos
	}
	return PartOfSpeechNone
}

func (p PartOfSpeech) String() string {
	return string(p)
}
