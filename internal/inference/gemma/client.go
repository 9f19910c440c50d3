// Package gemma generates suggestions through a locally hosted Gemma
// completion server, downloading the model archive on first use.
package gemma

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"resty.dev/v3"

	"github.com/tonguetip/tonguetip/internal/config"
	"github.com/tonguetip/tonguetip/internal/inference"
	"github.com/tonguetip/tonguetip/internal/suggestion"
)

const (
	// generations is how many independent completions one request runs.
	// Short single-shot generations from a small local model yield a couple
	// of usable words each, so a few rounds fill the candidate list.
	generations = 4

	maxGenerationTokens = 30
	temperature         = 1.0
)

// wordSplitRe separates completion text into candidate words.
var wordSplitRe = regexp.MustCompile(`[.,\s]+`)

type Client struct {
	httpClient       *resty.Client
	cfg              config.GemmaConfig
	maxRetryAttempts uint
	seed             func() int

	ensureOnce sync.Once
	ensureErr  error
}

func NewClient(cfg config.GemmaConfig, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.ServerURL)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		cfg:              cfg,
		maxRetryAttempts: retryAttempts,
		seed:             func() int { return rand.Intn(1000000) },
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// ModelPath returns where the model file is expected on disk.
func (client *Client) ModelPath() string {
	return filepath.Join(client.cfg.ModelDirectory, client.cfg.ModelFile)
}

// EnsureModel downloads and unpacks the model archive unless the model file
// already exists locally. The check runs once per client; Suggestions calls
// it lazily on first use.
func (client *Client) EnsureModel(ctx context.Context) error {
	client.ensureOnce.Do(func() {
		client.ensureErr = client.ensureModel(ctx)
	})
	return client.ensureErr
}

func (client *Client) ensureModel(ctx context.Context) error {
	if _, err := os.Stat(client.ModelPath()); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("os.Stat(%s) > %w", client.ModelPath(), err)
	}

	slog.Default().Info("downloading model archive",
		"url", client.cfg.DownloadURL,
		"directory", client.cfg.ModelDirectory,
	)
	if err := downloadAndExtract(ctx, client.cfg); err != nil {
		return fmt.Errorf("downloadAndExtract() > %w", err)
	}
	if _, err := os.Stat(client.ModelPath()); err != nil {
		return fmt.Errorf("model archive did not contain %s: %w", client.cfg.ModelFile, err)
	}
	return nil
}

type completionRequest struct {
	Prompt      string  `json:"prompt"`
	NPredict    int     `json:"n_predict"`
	Temperature float32 `json:"temperature"`
	Seed        int     `json:"seed"`
}

type completionResponse struct {
	Content string `json:"content"`
}

// Suggestions implements the inference.Client interface
func (client *Client) Suggestions(ctx context.Context, conversation string) ([]string, error) {
	if err := client.EnsureModel(ctx); err != nil {
		return nil, fmt.Errorf("EnsureModel() > %w", err)
	}

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
	prompt := fmt.Sprintf("Suggest common English words someone might say next in this conversation. Words only.\nConversation: %s\nWords:", conversation)

	seen := map[string]struct{}{}
	var suggestions []string
	for i := 0; i < generations && len(suggestions) < inference.SuggestionCount; i++ {
		// A fresh seed per generation keeps the rounds from repeating each other
		content, err := client.complete(ctx, completionRequest{
			Prompt:      prompt,
			NPredict:    maxGenerationTokens,
			Temperature: temperature,
			Seed:        client.seed(),
		})
		if err != nil {
			return nil, err
		}

		for _, word := range wordSplitRe.Split(content, -1) {
			word = strings.TrimSpace(word)
			if word == "" {
				continue
			}
			key := strings.ToLower(word)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			suggestions = append(suggestions, word)
			if len(suggestions) == inference.SuggestionCount {
				break
			}
		}
	}

	if len(suggestions) == 0 {
		return nil, fmt.Errorf("malformed completion: no usable words in %d generations", generations)
	}
	return suggestions, nil
}

// PartOfSpeech implements the inference.Client interface. The local model is
// not reliable enough for grammatical classification, so usages recorded
// through this backend stay untagged.
func (client *Client) PartOfSpeech(ctx context.Context, sentence string, word string) (suggestion.PartOfSpeech, error) {
	return suggestion.PartOfSpeechNone, nil
}

func (client *Client) complete(ctx context.Context, requestBody completionRequest) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&completionResponse{}).
		Post("/completion")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*completionResponse)
	if responseBody == nil || responseBody.Content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("gemma completion",
		"request", requestBody,
		"content", responseBody.Content,
	)
	return responseBody.Content, nil
}
