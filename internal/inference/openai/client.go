// Package openai generates suggestions through the OpenAI chat completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"unicode"

	"resty.dev/v3"

	"github.com/tonguetip/tonguetip/internal/config"
	"github.com/tonguetip/tonguetip/internal/inference"
	"github.com/tonguetip/tonguetip/internal/suggestion"
)

const (
	// High temperature and penalties keep repeated requests for the same
	// conversation from converging on the same eight candidates.
	suggestionTemperature      = 1.1
	suggestionPresencePenalty  = 1.0
	suggestionFrequencyPenalty = 1.0

	classifyTemperature = 0.1
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
	seed             func() int
}

func NewClient(cfg config.OpenAIConfig, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            cfg.Model,
		maxRetryAttempts: retryAttempts,
		seed:             func() int { return rand.Intn(1000000) },
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model            string    `json:"model"`
	Messages         []Message `json:"messages"`
	Temperature      float32   `json:"temperature,omitempty"`
	PresencePenalty  float32   `json:"presence_penalty,omitempty"`
	FrequencyPenalty float32   `json:"frequency_penalty,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

var suggestionSystemPrompt = fmt.Sprintf(`You help a person who struggles to find words mid-conversation.

Given the conversation so far, suggest EXACTLY %d words or very short phrases the person might want to say next. Favor common, everyday vocabulary.

STRICT OUTPUT: respond with the %d suggestions separated by %q and nothing else. No numbering, no explanations, no trailing delimiter.`,
	inference.SuggestionCount, inference.SuggestionCount, inference.Delimiter)

// Suggestions implements the inference.Client interface
func (client *Client) Suggestions(ctx context.Context, conversation string) ([]string, error) {
	var result []string
	if err := inference.Do(ctx, client.maxRetryAttempts, func() error {
		suggestions, err := client.suggestions(ctx, conversation)
		if err != nil {
			return err
		}
		result = suggestions
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func (client *Client) suggestions(ctx context.Context, conversation string) ([]string, error) {
	// The seed prefix varies the prompt so identical conversations still
	// produce fresh candidates.
	requestBody := ChatCompletionRequest{
		Model:            client.model,
		Temperature:      suggestionTemperature,
		PresencePenalty:  suggestionPresencePenalty,
		FrequencyPenalty: suggestionFrequencyPenalty,
		Messages: []Message{
			{Role: RoleSystem, Content: suggestionSystemPrompt},
			{Role: RoleUser, Content: fmt.Sprintf("Seed: %d. Conversation so far: %s", client.seed(), conversation)},
		},
	}

	content, err := client.complete(ctx, requestBody)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(content, inference.Delimiter)
	suggestions := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			suggestions = append(suggestions, part)
		}
	}
	if len(suggestions) != inference.SuggestionCount {
		return nil, fmt.Errorf("malformed completion: expected %d suggestions, got %d in %q",
			inference.SuggestionCount, len(suggestions), content)
	}
	return suggestions, nil
}

// errUnknownTag marks a classification reply that parses into no known tag.
// The message makes IsRetryableError treat it as transient model output.
var errUnknownTag = errors.New("malformed completion: unknown part of speech tag")

// PartOfSpeech implements the inference.Client interface. A reply that does
// not parse into a known tag is retried like any malformed completion; once
// attempts are exhausted the usage stays untagged.
func (client *Client) PartOfSpeech(ctx context.Context, sentence string, word string) (suggestion.PartOfSpeech, error) {
	var result suggestion.PartOfSpeech
	if err := inference.Do(ctx, client.maxRetryAttempts, func() error {
		pos, err := client.partOfSpeech(ctx, sentence, word)
		if err != nil {
			return err
		}
		result = pos
		return nil
	}); err != nil {
		if errors.Is(err, errUnknownTag) {
			return suggestion.PartOfSpeechNone, nil
		}
		return suggestion.PartOfSpeechNone, err
	}
	return result, nil
}

func (client *Client) partOfSpeech(ctx context.Context, sentence string, word string) (suggestion.PartOfSpeech, error) {
	requestBody := ChatCompletionRequest{
		Model:       client.model,
		Temperature: classifyTemperature,
		Messages: []Message{
			{
				Role: RoleSystem,
				Content: `Classify the part of speech a word plays in a sentence.

Answer with exactly one of: noun, pronoun, verb, adjective, adverb, preposition, conjunction, exclamation. One word only, no punctuation.`,
			},
			{
				Role:    RoleUser,
				Content: fmt.Sprintf("Sentence: %s\nWord: %s", sentence, word),
			},
		},
	}

	content, err := client.complete(ctx, requestBody)
	if err != nil {
		return suggestion.PartOfSpeechNone, err
	}

	// Models occasionally decorate the tag with punctuation or markdown
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, content)

	pos := suggestion.PartOfSpeechFromString(cleaned)
	if pos == suggestion.PartOfSpeechNone && !strings.EqualFold(cleaned, "none") {
		return suggestion.PartOfSpeechNone, fmt.Errorf("%w %q", errUnknownTag, content)
	}
	return pos, nil
}

func (client *Client) complete(ctx context.Context, requestBody ChatCompletionRequest) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"request", requestBody,
		"response", responseBody,
	)
	return content, nil
}
