package suggestion_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonguetip/tonguetip/internal/database"
	"github.com/tonguetip/tonguetip/internal/suggestion"
)

func newTestStore(t *testing.T) *suggestion.Store {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	require.NoError(t, database.Migrate(context.Background(), db))
	return suggestion.NewStore(db)
}

func date(value string) time.Time {
	parsed, err := time.Parse(suggestion.DateFormat, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestStore_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated acceptances accumulate occurrences and contexts", func(t *testing.T) {
		store := newTestStore(t)
		for i := 0; i < 3; i++ {
			require.NoError(t, store.Add(ctx, "weekend", suggestion.Context{
				Sentence:     "How was your",
				Date:         date("20260801"),
				PartOfSpeech: suggestion.PartOfSpeechNoun,
			}))
		}

		total, err := store.TotalUsed(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, total)

		contexts, err := store.ContextsFor(ctx, "weekend", 0)
		require.NoError(t, err)
		assert.Len(t, contexts, 3)
	})

	t.Run("acceptances are normalized before matching", func(t *testing.T) {
		store := newTestStore(t)
		usage := suggestion.Context{Sentence: "see you", Date: date("20260801")}
		require.NoError(t, store.Add(ctx, "a day", usage))
		require.NoError(t, store.Add(ctx, "  a   day ", usage))

		names, err := store.Alphabetical(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"a day"}, names)

		total, err := store.TotalUsed(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("blank acceptance is rejected", func(t *testing.T) {
		store := newTestStore(t)
		err := store.Add(ctx, "   ", suggestion.Context{Date: date("20260801")})
		assert.ErrorIs(t, err, suggestion.ErrEmptySuggestion)
	})
}

func TestStore_TotalUsed(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	total, err := store.TotalUsed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	usage := suggestion.Context{Sentence: "hello", Date: date("20260801")}
	require.NoError(t, store.Add(ctx, "dog", usage))
	require.NoError(t, store.Add(ctx, "dog", usage))
	require.NoError(t, store.Add(ctx, "cat", usage))

	total, err = store.TotalUsed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestStore_MostUsed(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	usage := suggestion.Context{Sentence: "hi", Date: date("20260801")}

	require.NoError(t, store.Add(ctx, "book", usage))
	require.NoError(t, store.Add(ctx, "weekend", usage))
	require.NoError(t, store.Add(ctx, "weekend", usage))
	require.NoError(t, store.Add(ctx, "movie", usage))

	names, err := store.MostUsed(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"weekend"}, names)

	// ties fall back to insertion order
	names, err = store.MostUsed(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"weekend", "book", "movie"}, names)
}

func TestStore_Alphabetical(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	usage := suggestion.Context{Sentence: "hi", Date: date("20260801")}

	require.NoError(t, store.Add(ctx, "Zebra", usage))
	require.NoError(t, store.Add(ctx, "apple", usage))
	require.NoError(t, store.Add(ctx, "Mango", usage))

	names, err := store.Alphabetical(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "Mango", "Zebra"}, names)

	names, err = store.Alphabetical(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "Mango"}, names)
}

func TestStore_Random(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	usage := suggestion.Context{Sentence: "hi", Date: date("20260801")}

	words := []string{"one", "two", "three", "four", "five"}
	for _, word := range words {
		require.NoError(t, store.Add(ctx, word, usage))
	}

	names, err := store.Random(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, names, 3)
	assert.Subset(t, words, names)

	names, err = store.Random(ctx, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, words, names)
}

func TestStore_Recency(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Add(ctx, "old", suggestion.Context{Sentence: "s", Date: date("20260101")}))
	require.NoError(t, store.Add(ctx, "old", suggestion.Context{Sentence: "s", Date: date("20260810")}))
	require.NoError(t, store.Add(ctx, "middle", suggestion.Context{Sentence: "s", Date: date("20260501")}))
	require.NoError(t, store.Add(ctx, "fresh", suggestion.Context{Sentence: "s", Date: date("20260820")}))

	t.Run("least recent orders by earliest usage ascending", func(t *testing.T) {
		got, err := store.LeastRecent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, suggestion.WordDate{Name: "old", Date: date("20260101")}, got[0])
		assert.Equal(t, suggestion.WordDate{Name: "middle", Date: date("20260501")}, got[1])
		assert.Equal(t, suggestion.WordDate{Name: "fresh", Date: date("20260820")}, got[2])
	})

	t.Run("most recent orders by latest usage descending", func(t *testing.T) {
		got, err := store.MostRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, suggestion.WordDate{Name: "fresh", Date: date("20260820")}, got[0])
		assert.Equal(t, suggestion.WordDate{Name: "old", Date: date("20260810")}, got[1])
	})
}

func TestStore_ContextsFor(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Add(ctx, "weekend", suggestion.Context{
		Sentence:     "How was your",
		Date:         date("20260801"),
		PartOfSpeech: suggestion.PartOfSpeechNoun,
	}))
	require.NoError(t, store.Add(ctx, "weekend", suggestion.Context{
		Sentence:     "What are you doing this",
		Date:         date("20260815"),
		PartOfSpeech: suggestion.PartOfSpeechNoun,
	}))

	t.Run("returns contexts in insertion order", func(t *testing.T) {
		contexts, err := store.ContextsFor(ctx, "weekend", 0)
		require.NoError(t, err)
		assert.Equal(t, []suggestion.Context{
			{Sentence: "How was your", Date: date("20260801"), PartOfSpeech: suggestion.PartOfSpeechNoun},
			{Sentence: "What are you doing this", Date: date("20260815"), PartOfSpeech: suggestion.PartOfSpeechNoun},
		}, contexts)
	})

	t.Run("unknown suggestion yields no contexts", func(t *testing.T) {
		contexts, err := store.ContextsFor(ctx, "unknown", 0)
		require.NoError(t, err)
		assert.Empty(t, contexts)
	})
}

func TestStore_DeleteAll(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	usage := suggestion.Context{Sentence: "hi", Date: date("20260801")}

	require.NoError(t, store.Add(ctx, "dog", usage))
	require.NoError(t, store.Add(ctx, "cat", usage))
	require.NoError(t, store.DeleteAll(ctx))

	total, err := store.TotalUsed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	names, err := store.Alphabetical(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_UsageIndex(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Add(ctx, "a day", suggestion.Context{Sentence: "see you in", Date: date("20260801")}))
	require.NoError(t, store.Add(ctx, "a day", suggestion.Context{Sentence: "once upon", Date: date("20260802")}))
	require.NoError(t, store.Add(ctx, "day", suggestion.Context{Sentence: "what a lovely", Date: date("20260803")}))

	index, err := store.UsageIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"a":   {"once upon", "see you in"},
		"day": {"once upon", "see you in", "what a lovely"},
	}, index)
}

func TestStore_LoadDemo(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Add(ctx, "stale", suggestion.Context{Sentence: "hi", Date: date("20260801")}))
	require.NoError(t, store.LoadDemo(ctx))

	names, err := store.Alphabetical(ctx, 0)
	require.NoError(t, err)
	assert.NotContains(t, names, "stale")
	assert.Contains(t, names, "weekend")
	assert.GreaterOrEqual(t, len(names), 15)

	// weekend appears twice in the demo data
	mostUsed, err := store.MostUsed(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"weekend"}, mostUsed)

	// reloading is idempotent
	require.NoError(t, store.LoadDemo(ctx))
	total, err := store.TotalUsed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 17, total)
}
