package suggestion

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tonguetip/tonguetip/internal/database"
)

// ErrEmptySuggestion is returned when an acceptance normalizes to nothing.
var ErrEmptySuggestion = errors.New("suggestion is empty after normalization")

// Store is the durable record of accepted suggestions and their usage
// contexts. All methods are safe for concurrent use; writes are serialized
// through the underlying single-writer connection.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a Store over an already opened and migrated database.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Add records one acceptance of text with its usage context. The suggestion
// row is upserted (created with occurrences=1, or incremented) and a context
// row is inserted, in one transaction. On error nothing is persisted.
func (s *Store) Add(ctx context.Context, text string, usage Context) error {
	name := Normalize(text)
	if name == "" {
		return ErrEmptySuggestion
	}
	sentence := Normalize(usage.Sentence)

	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO suggestion (suggestion_name, occurrences) VALUES (?, 1)
			ON CONFLICT(suggestion_name) DO UPDATE SET occurrences = occurrences + 1`,
			name); err != nil {
			return fmt.Errorf("tx.ExecContext(upsert suggestion) > %w", err)
		}

		var id int64
		if err := tx.GetContext(ctx, &id,
			"SELECT id FROM suggestion WHERE suggestion_name = ?", name); err != nil {
			return fmt.Errorf("tx.GetContext(suggestion id) > %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO suggestion_context (suggestion_key, sentence, date, part_of_speech)
			VALUES (?, ?, ?, ?)`,
			id, sentence, usage.Date.Format(DateFormat), usage.PartOfSpeech.String()); err != nil {
			return fmt.Errorf("tx.ExecContext(insert suggestion_context) > %w", err)
		}
		return nil
	})
}

// TotalUsed returns how many suggestions in total the user accepted.
func (s *Store) TotalUsed(ctx context.Context) (int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(occurrences), 0) FROM suggestion"); err != nil {
		return 0, fmt.Errorf("db.GetContext(total occurrences) > %w", err)
	}
	return total, nil
}

// MostUsed returns suggestion names ordered by descending occurrence count.
// Ties keep insertion order. A limit <= 0 returns all suggestions.
func (s *Store) MostUsed(ctx context.Context, limit int) ([]string, error) {
	query := "SELECT suggestion_name FROM suggestion ORDER BY occurrences DESC, id ASC"
	return s.selectNames(ctx, query, limit)
}

// Alphabetical returns suggestion names in case-insensitive alphabetical
// order. A limit <= 0 returns all suggestions.
func (s *Store) Alphabetical(ctx context.Context, limit int) ([]string, error) {
	query := "SELECT suggestion_name FROM suggestion ORDER BY suggestion_name COLLATE NOCASE ASC"
	return s.selectNames(ctx, query, limit)
}

// Random returns a uniform random sample of suggestion names without
// replacement. A limit <= 0 returns all suggestions in storage order.
func (s *Store) Random(ctx context.Context, limit int) ([]string, error) {
	query := "SELECT suggestion_name FROM suggestion"
	if limit > 0 {
		query += " ORDER BY RANDOM()"
	}
	return s.selectNames(ctx, query, limit)
}

func (s *Store) selectNames(ctx context.Context, query string, limit int) ([]string, error) {
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	var names []string
	if err := s.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(suggestion names) > %w", err)
	}
	return names, nil
}

// LeastRecent returns, per suggestion, the earliest usage date, ordered
// oldest first, so the suggestions the user has gone longest without come
// before more recently needed ones. A limit <= 0 returns all suggestions.
func (s *Store) LeastRecent(ctx context.Context, limit int) ([]WordDate, error) {
	query := `SELECT suggestion_name, MIN(date) AS d
		FROM suggestion JOIN suggestion_context ON suggestion.id = suggestion_context.suggestion_key
		GROUP BY suggestion_context.suggestion_key
		ORDER BY d ASC`
	return s.selectWordDates(ctx, query, limit)
}

// MostRecent returns, per suggestion, the latest usage date, ordered newest
// first. A limit <= 0 returns all suggestions.
func (s *Store) MostRecent(ctx context.Context, limit int) ([]WordDate, error) {
	query := `SELECT suggestion_name, MAX(date) AS d
		FROM suggestion JOIN suggestion_context ON suggestion.id = suggestion_context.suggestion_key
		GROUP BY suggestion_context.suggestion_key
		ORDER BY d DESC`
	return s.selectWordDates(ctx, query, limit)
}

func (s *Store) selectWordDates(ctx context.Context, query string, limit int) ([]WordDate, error) {
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []struct {
		Name string `db:"suggestion_name"`
		Date string `db:"d"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(word dates) > %w", err)
	}

	result := make([]WordDate, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(DateFormat, row.Date)
		if err != nil {
			return nil, fmt.Errorf("time.Parse(%q) > %w", row.Date, err)
		}
		result = append(result, WordDate{Name: row.Name, Date: date})
	}
	return result, nil
}

// ContextsFor returns the historical usage contexts of one suggestion, in
// insertion order. A limit <= 0 returns all contexts; an unknown suggestion
// yields an empty result.
func (s *Store) ContextsFor(ctx context.Context, name string, limit int) ([]Context, error) {
	query := `SELECT sentence, date, part_of_speech
		FROM suggestion JOIN suggestion_context ON suggestion.id = suggestion_context.suggestion_key
		WHERE suggestion_name = ?
		ORDER BY suggestion_context.id ASC`
	args := []any{Normalize(name)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []struct {
		Sentence     string `db:"sentence"`
		Date         string `db:"date"`
		PartOfSpeech string `db:"part_of_speech"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(suggestion contexts) > %w", err)
	}

	contexts := make([]Context, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(DateFormat, row.Date)
		if err != nil {
			return nil, fmt.Errorf("time.Parse(%q) > %w", row.Date, err)
		}
		contexts = append(contexts, Context{
			Sentence:     row.Sentence,
			Date:         date,
			PartOfSpeech: PartOfSpeechFromString(row.PartOfSpeech),
		})
	}
	return contexts, nil
}

// DeleteAll clears the entire usage history in one transaction.
func (s *Store) DeleteAll(ctx context.Context) error {
	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM suggestion_context"); err != nil {
			return fmt.Errorf("tx.ExecContext(delete suggestion_context) > %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM suggestion"); err != nil {
			return fmt.Errorf("tx.ExecContext(delete suggestion) > %w", err)
		}
		return nil
	})
}

// UsageIndex builds a per-word view of the history: each single word of every
// suggestion mapped to the sorted, de-duplicated sentences it was used in.
// Multi-word suggestions contribute each of their words.
func (s *Store) UsageIndex(ctx context.Context) (map[string][]string, error) {
	names, err := s.Random(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("store.Random() > %w", err)
	}

	sentences := make(map[string]map[string]struct{})
	for _, name := range names {
		contexts, err := s.ContextsFor(ctx, name, 0)
		if err != nil {
			return nil, fmt.Errorf("store.ContextsFor(%s) > %w", name, err)
		}
		for _, word := range whitespaceRe.Split(name, -1) {
			if sentences[word] == nil {
				sentences[word] = make(map[string]struct{})
			}
			for _, usage := range contexts {
				sentences[word][usage.Sentence] = struct{}{}
			}
		}
	}

	index := make(map[string][]string, len(sentences))
	for word, set := range sentences {
		list := make([]string, 0, len(set))
		for sentence := range set {
			list = append(list, sentence)
		}
		sort.Strings(list)
		index[word] = list
	}
	return index, nil
}
