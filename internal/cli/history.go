package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/tonguetip/tonguetip/internal/suggestion"
)

// HistoryRunner renders the read-only views over the usage history.
type HistoryRunner struct {
	store  *suggestion.Store
	writer io.Writer
	bold   *color.Color
}

func NewHistoryRunner(store *suggestion.Store) *HistoryRunner {
	return &HistoryRunner{
		store:  store,
		writer: os.Stdout,
		bold:   color.New(color.Bold),
	}
}

// MostUsed lists words by descending acceptance count.
func (r *HistoryRunner) MostUsed(ctx context.Context, limit int) error {
	names, err := r.store.MostUsed(ctx, limit)
	if err != nil {
		return fmt.Errorf("store.MostUsed() > %w", err)
	}
	return r.printNames(names)
}

// Alphabetical lists all words in dictionary order.
func (r *HistoryRunner) Alphabetical(ctx context.Context, limit int) error {
	names, err := r.store.Alphabetical(ctx, limit)
	if err != nil {
		return fmt.Errorf("store.Alphabetical() > %w", err)
	}
	return r.printNames(names)
}

// MostRecent lists words by their latest usage, newest first.
func (r *HistoryRunner) MostRecent(ctx context.Context, limit int) error {
	words, err := r.store.MostRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("store.MostRecent() > %w", err)
	}
	return r.printWordDates(words)
}

// LeastRecent lists words by their earliest usage, oldest first.
func (r *HistoryRunner) LeastRecent(ctx context.Context, limit int) error {
	words, err := r.store.LeastRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("store.LeastRecent() > %w", err)
	}
	return r.printWordDates(words)
}

// Contexts shows every recorded usage of one word.
func (r *HistoryRunner) Contexts(ctx context.Context, word string) error {
	contexts, err := r.store.ContextsFor(ctx, word, 0)
	if err != nil {
		return fmt.Errorf("store.ContextsFor(%s) > %w", word, err)
	}
	if len(contexts) == 0 {
		fmt.Fprintf(r.writer, "No history for %q.\n", word)
		return nil
	}

	if _, err := r.bold.Fprintf(r.writer, "%s\n", word); err != nil {
		return fmt.Errorf("bold.Fprintf > %w", err)
	}
	for _, usage := range contexts {
		fmt.Fprintf(r.writer, "  %s  %-12s %s\n",
			usage.Date.Format("2006-01-02"), usage.PartOfSpeech, usage.Sentence)
	}
	return nil
}

// Index prints the per-word sentence index over the whole history.
func (r *HistoryRunner) Index(ctx context.Context) error {
	index, err := r.store.UsageIndex(ctx)
	if err != nil {
		return fmt.Errorf("store.UsageIndex() > %w", err)
	}

	words := make([]string, 0, len(index))
	for word := range index {
		words = append(words, word)
	}
	sort.Strings(words)

	for _, word := range words {
		if _, err := r.bold.Fprintf(r.writer, "%s\n", word); err != nil {
			return fmt.Errorf("bold.Fprintf > %w", err)
		}
		for _, sentence := range index[word] {
			fmt.Fprintf(r.writer, "  %s\n", sentence)
		}
	}
	return nil
}

// Reset wipes the entire history.
func (r *HistoryRunner) Reset(ctx context.Context) error {
	if err := r.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("store.DeleteAll() > %w", err)
	}
	fmt.Fprintln(r.writer, "History cleared.")
	return nil
}

// LoadDemo replaces the history with the bundled demo data.
func (r *HistoryRunner) LoadDemo(ctx context.Context) error {
	if err := r.store.LoadDemo(ctx); err != nil {
		return fmt.Errorf("store.LoadDemo() > %w", err)
	}
	fmt.Fprintln(r.writer, "Demo history loaded.")
	return nil
}

func (r *HistoryRunner) printNames(names []string) error {
	if len(names) == 0 {
		fmt.Fprintln(r.writer, "No history yet.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(r.writer, name)
	}
	return nil
}

func (r *HistoryRunner) printWordDates(words []suggestion.WordDate) error {
	if len(words) == 0 {
		fmt.Fprintln(r.writer, "No history yet.")
		return nil
	}
	for _, word := range words {
		fmt.Fprintf(r.writer, "%s  %s\n", word.Date.Format("2006-01-02"), word.Name)
	}
	return nil
}
