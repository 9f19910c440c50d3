// Package cli contains the interactive terminal runners behind each command.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/tonguetip/tonguetip/internal/config"
	"github.com/tonguetip/tonguetip/internal/inference"
	"github.com/tonguetip/tonguetip/internal/suggestion"
)

const suggestionTimeout = 30 * time.Second

// SuggestRunner drives the suggestion loop: read a conversation line, fetch
// candidates from the configured backend, record the accepted one.
type SuggestRunner struct {
	store       *suggestion.Store
	registry    *inference.Registry
	loadConfig  func() (*config.Config, error)
	stdinReader *bufio.Reader
	writer      io.Writer
	bold        *color.Color
	green       *color.Color
	now         func() time.Time
}

func NewSuggestRunner(
	store *suggestion.Store,
	registry *inference.Registry,
	loadConfig func() (*config.Config, error),
) *SuggestRunner {
	return &SuggestRunner{
		store:       store,
		registry:    registry,
		loadConfig:  loadConfig,
		stdinReader: bufio.NewReader(os.Stdin),
		writer:      os.Stdout,
		bold:        color.New(color.Bold),
		green:       color.New(color.FgGreen),
		now:         time.Now,
	}
}

func (r *SuggestRunner) Run(ctx context.Context) error {
	for {
		if _, err := r.bold.Fprintln(r.writer, "Say something (empty line to quit):"); err != nil {
			return fmt.Errorf("bold.Fprintln > %w", err)
		}
		line, err := r.readLine()
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}

		if err := r.suggestOnce(ctx, line); err != nil {
			return err
		}
	}
}

// suggestOnce handles one conversation line. The backend choice is re-read
// from configuration on every call so option changes apply immediately.
func (r *SuggestRunner) suggestOnce(ctx context.Context, line string) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	client, err := r.registry.New(cfg.Backend.LLMOption)
	if err != nil {
		return fmt.Errorf("registry.New(%s) > %w", cfg.Backend.LLMOption, err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slog.Default().Warn("failed to close backend client", "error", err)
		}
	}()

	suggestions := r.fetch(ctx, client, line)
	if len(suggestions) == 0 {
		fmt.Fprintln(r.writer, "No suggestions right now, keep talking.")
		return nil
	}

	for i, candidate := range suggestions {
		fmt.Fprintf(r.writer, "  %d. %s\n", i+1, candidate)
	}
	fmt.Fprintln(r.writer, "Pick a number to accept, or press enter to skip:")

	choice, err := r.readLine()
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(suggestions) {
		return nil
	}
	word := suggestions[index-1]

	// Classification failures degrade to an untagged usage
	partOfSpeech, err := client.PartOfSpeech(ctx, line, word)
	if err != nil {
		slog.Default().Warn("part of speech classification failed", "word", word, "error", err)
		partOfSpeech = suggestion.PartOfSpeechNone
	}

	if err := r.store.Add(ctx, word, suggestion.Context{
		Sentence:     line,
		Date:         r.now(),
		PartOfSpeech: partOfSpeech,
	}); err != nil {
		return fmt.Errorf("store.Add(%s) > %w", word, err)
	}

	if _, err := r.green.Fprintf(r.writer, "Saved %q (%s)\n", word, partOfSpeech); err != nil {
		return fmt.Errorf("green.Fprintf > %w", err)
	}
	return nil
}

// fetch runs the backend call under a deadline. A late completion lands in
// the buffered channel and is discarded, never blocking the loop or touching
// the store. Failures are absorbed into an empty candidate list.
func (r *SuggestRunner) fetch(ctx context.Context, client inference.Client, conversation string) []string {
	ctx, cancel := context.WithTimeout(ctx, suggestionTimeout)
	defer cancel()

	type fetchResult struct {
		suggestions []string
		err         error
	}
	resultCh := make(chan fetchResult, 1)
	go func() {
		suggestions, err := client.Suggestions(ctx, conversation)
		resultCh <- fetchResult{suggestions: suggestions, err: err}
	}()

	select {
	case <-ctx.Done():
		slog.Default().Warn("suggestion request abandoned", "error", ctx.Err())
		return nil
	case result := <-resultCh:
		if result.err != nil {
			slog.Default().Warn("suggestion request failed", "error", result.err)
			return nil
		}
		return result.suggestions
	}
}

func (r *SuggestRunner) readLine() (string, error) {
	line, err := r.stdinReader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("stdinReader.ReadString > %w", err)
	}
	return strings.TrimSpace(line), nil
}
