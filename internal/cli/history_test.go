package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonguetip/tonguetip/internal/metrics"
	"github.com/tonguetip/tonguetip/internal/suggestion"
)

func date(value string) time.Time {
	parsed, err := time.Parse(suggestion.DateFormat, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func newHistoryRunner(store *suggestion.Store, output *bytes.Buffer) *HistoryRunner {
	return &HistoryRunner{
		store:  store,
		writer: output,
		bold:   color.New(color.Bold),
	}
}

func TestHistoryRunner(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()
	ctx := context.Background()

	store := newTestStore(t)
	require.NoError(t, store.Add(ctx, "weekend", suggestion.Context{
		Sentence: "How was your", Date: date("20260701"), PartOfSpeech: suggestion.PartOfSpeechNoun,
	}))
	require.NoError(t, store.Add(ctx, "weekend", suggestion.Context{
		Sentence: "Plans for the", Date: date("20260820"), PartOfSpeech: suggestion.PartOfSpeechNoun,
	}))
	require.NoError(t, store.Add(ctx, "book", suggestion.Context{
		Sentence: "I got a new", Date: date("20260810"), PartOfSpeech: suggestion.PartOfSpeechNoun,
	}))

	t.Run("most used", func(t *testing.T) {
		var output bytes.Buffer
		require.NoError(t, newHistoryRunner(store, &output).MostUsed(ctx, 1))
		assert.Equal(t, "weekend\n", output.String())
	})

	t.Run("alphabetical", func(t *testing.T) {
		var output bytes.Buffer
		require.NoError(t, newHistoryRunner(store, &output).Alphabetical(ctx, 0))
		assert.Equal(t, "book\nweekend\n", output.String())
	})

	t.Run("most recent", func(t *testing.T) {
		var output bytes.Buffer
		require.NoError(t, newHistoryRunner(store, &output).MostRecent(ctx, 0))
		assert.Equal(t, "2026-08-20  weekend\n2026-08-10  book\n", output.String())
	})

	t.Run("least recent", func(t *testing.T) {
		var output bytes.Buffer
		require.NoError(t, newHistoryRunner(store, &output).LeastRecent(ctx, 0))
		assert.Equal(t, "2026-07-01  weekend\n2026-08-10  book\n", output.String())
	})

	t.Run("contexts", func(t *testing.T) {
		var output bytes.Buffer
		require.NoError(t, newHistoryRunner(store, &output).Contexts(ctx, "weekend"))
		assert.Contains(t, output.String(), "How was your")
		assert.Contains(t, output.String(), "Plans for the")
	})

	t.Run("contexts for an unknown word", func(t *testing.T) {
		var output bytes.Buffer
		require.NoError(t, newHistoryRunner(store, &output).Contexts(ctx, "missing"))
		assert.Contains(t, output.String(), `No history for "missing"`)
	})

	t.Run("index", func(t *testing.T) {
		var output bytes.Buffer
		require.NoError(t, newHistoryRunner(store, &output).Index(ctx))
		assert.Contains(t, output.String(), "weekend\n  How was your\n  Plans for the\n")
	})

	t.Run("reset", func(t *testing.T) {
		resetStore := newTestStore(t)
		require.NoError(t, resetStore.Add(ctx, "dog", suggestion.Context{Sentence: "hi", Date: date("20260801")}))

		var output bytes.Buffer
		require.NoError(t, newHistoryRunner(resetStore, &output).Reset(ctx))
		assert.Contains(t, output.String(), "History cleared.")

		total, err := resetStore.TotalUsed(ctx)
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestMetricsRunner_Run(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()
	ctx := context.Background()

	var output bytes.Buffer
	runner := &MetricsRunner{
		aggregator: metrics.NewAggregator(newTestStore(t)),
		writer:     &output,
		bold:       color.New(color.Bold),
	}

	require.NoError(t, runner.Run(ctx))
	assert.Contains(t, output.String(), "Most used word: "+metrics.Placeholder)
	assert.Contains(t, output.String(), "Suggestions used: 0")
}
