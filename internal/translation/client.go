// Package translation translates quiz words into the user's native language
// through a LibreTranslate compatible endpoint.
package translation

import (
	"context"
	"fmt"

	"resty.dev/v3"

	"github.com/tonguetip/tonguetip/internal/config"
)

//go:generate mockgen -source=client.go -destination=../mocks/translation/mock_translator.go -package=mock_translation

// Translator interface defines text translation between two languages.
type Translator interface {
	// Translate converts text from the source language into the target
	// language. Languages are ISO 639-1 codes.
	Translate(ctx context.Context, text string, source string, target string) (string, error)
	Close() error
}

type Client struct {
	httpClient *resty.Client
	apiKey     string
}

var _ Translator = (*Client)(nil)

func NewClient(cfg config.TranslationConfig) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient: client,
		apiKey:     cfg.APIKey,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type translateRequest struct {
	Query  string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate implements the Translator interface
func (client *Client) Translate(ctx context.Context, text string, source string, target string) (string, error) {
	if source == target {
		return text, nil
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(translateRequest{
			Query:  text,
			Source: source,
			Target: target,
			APIKey: client.apiKey,
		}).
		SetResult(&translateResponse{}).
		Post("/translate")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*translateResponse)
	if responseBody == nil || responseBody.TranslatedText == "" {
		return "", fmt.Errorf("empty translation for %q: %s", text, response.String())
	}
	return responseBody.TranslatedText, nil
}
