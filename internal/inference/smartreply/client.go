// Package smartreply is an offline fallback backend with canned
// conversational replies. It needs no network, no key, and never fails.
package smartreply

import (
	"context"

	"github.com/tonguetip/tonguetip/internal/inference"
	"github.com/tonguetip/tonguetip/internal/suggestion"
)

// replies are generic continuations that fit most casual conversations.
var replies = []string{
	"yes",
	"no",
	"thanks",
	"sounds good",
	"maybe later",
	"I agree",
	"tell me more",
	"see you soon",
}

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

// Suggestions implements the inference.Client interface
func (client *Client) Suggestions(ctx context.Context, conversation string) ([]string, error) {
	suggestions := make([]string, 0, inference.SuggestionCount)
	suggestions = append(suggestions, replies[:min(len(replies), inference.SuggestionCount)]...)
	return suggestions, nil
}

// PartOfSpeech implements the inference.Client interface
func (client *Client) PartOfSpeech(ctx context.Context, sentence string, word string) (suggestion.PartOfSpeech, error) {
	return suggestion.PartOfSpeechNone, nil
}

func (client *Client) Close() error {
	return nil
}
