// Package inference defines the contract every suggestion backend satisfies
// and the registry used to pick one at request time.
package inference

import (
	"context"

	"github.com/tonguetip/tonguetip/internal/suggestion"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods a suggestion backend implements.
type Client interface {
	// Suggestions produces up to SuggestionCount candidate next words or
	// short phrases for an in-progress conversation.
	Suggestions(ctx context.Context, conversation string) ([]string, error)
	// PartOfSpeech classifies the grammatical role a word plays within a
	// sentence. Backends without classification support return
	// suggestion.PartOfSpeechNone.
	PartOfSpeech(ctx context.Context, sentence string, word string) (suggestion.PartOfSpeech, error)
	Close() error
}

// Backend names selectable through configuration.
const (
	BackendChatGPT    = "ChatGPT"
	BackendGemma      = "Gemma"
	BackendSmartReply = "SmartReply"
)

const (
	// SuggestionCount is how many candidates a backend aims to produce per request.
	SuggestionCount = 8
	// Delimiter separates candidates inside a single model completion.
	Delimiter = "|||"

	DefaultMaxRetryAttempts = 3
)
