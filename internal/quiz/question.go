// Package quiz builds multiple-choice assessments from the suggestion usage
// history and scores the answers.
package quiz

import "github.com/tonguetip/tonguetip/internal/suggestion"

// Kind is the question type.
type Kind string

const (
	// KindDefineWord asks for the dictionary definition of a word.
	KindDefineWord Kind = "define_word"
	// KindFinishSentence asks which word completes a sentence the user
	// once used the word in.
	KindFinishSentence Kind = "finish_sentence"
	// KindNativeTranslation shows the word in the user's native language
	// and asks for the English original.
	KindNativeTranslation Kind = "native_translation"
)

// Question is one multiple-choice quiz item. Options always contain Answer
// exactly once, hold at most four entries, and are free of duplicates.
type Question struct {
	Kind         Kind
	Header       string
	Answer       string
	Word         string
	PartOfSpeech suggestion.PartOfSpeech
	Options      []string
}
