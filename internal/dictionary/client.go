package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"resty.dev/v3"

	"github.com/tonguetip/tonguetip/internal/config"
)

//go:generate mockgen -source=client.go -destination=../mocks/dictionary/mock_reader.go -package=mock_dictionary

// Reader interface defines dictionary lookups.
type Reader interface {
	// Lookup returns the first entry for a word, or nil when the
	// dictionary has no definitions for it.
	Lookup(ctx context.Context, word string) (*Entry, error)
	Close() error
}

type Client struct {
	httpClient *resty.Client
	fileCache  *FileCache
}

var _ Reader = (*Client)(nil)

func NewClient(cfg config.DictionaryConfig) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)

	return &Client{
		httpClient: client,
		fileCache:  NewFileCache(cfg.CacheDirectory),
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// errNotFound marks a word the dictionary knows nothing about. Not-found
// responses are not cached so later lookups can pick up new words.
var errNotFound = errors.New("word not found")

// Lookup implements the Reader interface
func (client *Client) Lookup(ctx context.Context, word string) (*Entry, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, nil
	}

	contents, err := client.fileCache.cache(word, func() ([]byte, error) {
		return client.fetch(ctx, word)
	})
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fileCache.cache(%s) > %w", word, err)
	}

	var entries []Entry
	if err := json.Unmarshal(contents, &entries); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", word, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	entry := entries[0]
	entry.AudioURL = entry.firstAudio()
	return &entry, nil
}

func (client *Client) fetch(ctx context.Context, word string) ([]byte, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		Get("/entries/en/" + word)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, errNotFound
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	return response.Bytes(), nil
}
