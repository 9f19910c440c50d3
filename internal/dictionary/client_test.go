package dictionary

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonguetip/tonguetip/internal/config"
)

const helloResponse = `[
  {
    "word": "hello",
    "phonetic": "həˈləʊ",
    "phonetics": [
      {"text": "həˈləʊ"},
      {"text": "hɛˈləʊ", "audio": "https://example.com/hello.mp3"}
    ],
    "meanings": [
      {
        "partOfSpeech": "exclamation",
        "definitions": [
          {"definition": "Used as a greeting.", "example": "hello there"}
        ]
      },
      {
        "partOfSpeech": "noun",
        "definitions": [
          {"definition": "An utterance of hello."}
        ]
      }
    ]
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.DictionaryConfig{
		BaseURL:        server.URL,
		CacheDirectory: t.TempDir(),
	})
	t.Cleanup(func() {
		assert.NoError(t, client.Close())
	})
	return client
}

func TestClient_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("parses the first entry", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/entries/en/hello", r.URL.Path)
			fmt.Fprint(w, helloResponse)
		})

		entry, err := client.Lookup(ctx, " Hello ")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, "hello", entry.Word)
		assert.Equal(t, "həˈləʊ", entry.Phonetic)
		assert.Equal(t, "https://example.com/hello.mp3", entry.AudioURL)
		assert.Equal(t, "Used as a greeting.", entry.MainDefinition())
		assert.Equal(t, []string{"An utterance of hello."}, entry.DefinitionsFor("noun"))
		assert.Empty(t, entry.DefinitionsFor("verb"))
	})

	t.Run("serves repeated lookups from the cache", func(t *testing.T) {
		requests := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requests++
			fmt.Fprint(w, helloResponse)
		})

		for i := 0; i < 3; i++ {
			entry, err := client.Lookup(ctx, "hello")
			require.NoError(t, err)
			require.NotNil(t, entry)
		}
		assert.Equal(t, 1, requests)
	})

	t.Run("unknown word yields no entry and is not cached", func(t *testing.T) {
		requests := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"title": "No Definitions Found"}`)
		})

		for i := 0; i < 2; i++ {
			entry, err := client.Lookup(ctx, "nonexistentword123456")
			require.NoError(t, err)
			assert.Nil(t, entry)
		}
		assert.Equal(t, 2, requests)
	})

	t.Run("blank word is never sent to the API", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		entry, err := client.Lookup(ctx, "   ")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("server errors are reported", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.Lookup(ctx, "hello")
		assert.ErrorContains(t, err, "response error 500")
	})
}

func TestEntry_MainDefinition(t *testing.T) {
	t.Run("skips empty definitions", func(t *testing.T) {
		entry := Entry{
			Meanings: []Meaning{
				{PartOfSpeech: "noun", Definitions: []Definition{{Definition: ""}}},
				{PartOfSpeech: "verb", Definitions: []Definition{{Definition: "to act"}}},
			},
		}
		assert.Equal(t, "to act", entry.MainDefinition())
	})

	t.Run("empty entry has no definition", func(t *testing.T) {
		assert.Empty(t, Entry{}.MainDefinition())
	})
}
