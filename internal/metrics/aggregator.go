// Package metrics computes the summary statistics shown on the history
// overview, each a plain query composition over the suggestion store.
package metrics

import (
	"context"
	"fmt"

	"github.com/tonguetip/tonguetip/internal/suggestion"
)

// Placeholder is shown for any metric an empty history cannot answer.
const Placeholder = "You haven't forgotten a word yet!"

const displayDateFormat = "2006-01-02"

// Metric is one human readable statistic.
type Metric struct {
	Title string
	Body  string
}

type historyStore interface {
	TotalUsed(ctx context.Context) (int, error)
	MostUsed(ctx context.Context, limit int) ([]string, error)
	LeastRecent(ctx context.Context, limit int) ([]suggestion.WordDate, error)
	MostRecent(ctx context.Context, limit int) ([]suggestion.WordDate, error)
	Random(ctx context.Context, limit int) ([]string, error)
}

// Aggregator derives the five overview metrics. Each metric is computed
// independently; there is no shared state between them.
type Aggregator struct {
	store historyStore
}

func NewAggregator(store historyStore) *Aggregator {
	return &Aggregator{store: store}
}

// MostUsedWord is the suggestion accepted most often.
func (a *Aggregator) MostUsedWord(ctx context.Context) (Metric, error) {
	metric := Metric{Title: "Most used word", Body: Placeholder}
	names, err := a.store.MostUsed(ctx, 1)
	if err != nil {
		return Metric{}, fmt.Errorf("store.MostUsed() > %w", err)
	}
	if len(names) > 0 {
		metric.Body = names[0]
	}
	return metric, nil
}

// TotalUsed is how many suggestions were accepted in total.
func (a *Aggregator) TotalUsed(ctx context.Context) (Metric, error) {
	total, err := a.store.TotalUsed(ctx)
	if err != nil {
		return Metric{}, fmt.Errorf("store.TotalUsed() > %w", err)
	}
	return Metric{
		Title: "Suggestions used",
		Body:  fmt.Sprintf("%d", total),
	}, nil
}

// LeastRecentWord is the suggestion whose first recorded usage lies furthest
// in the past.
func (a *Aggregator) LeastRecentWord(ctx context.Context) (Metric, error) {
	metric := Metric{Title: "Forgotten the longest", Body: Placeholder}
	words, err := a.store.LeastRecent(ctx, 1)
	if err != nil {
		return Metric{}, fmt.Errorf("store.LeastRecent() > %w", err)
	}
	if len(words) > 0 {
		metric.Body = fmt.Sprintf("%s (%s)", words[0].Name, words[0].Date.Format(displayDateFormat))
	}
	return metric, nil
}

// MostRecentWord is the suggestion used most recently.
func (a *Aggregator) MostRecentWord(ctx context.Context) (Metric, error) {
	metric := Metric{Title: "Most recently used", Body: Placeholder}
	words, err := a.store.MostRecent(ctx, 1)
	if err != nil {
		return Metric{}, fmt.Errorf("store.MostRecent() > %w", err)
	}
	if len(words) > 0 {
		metric.Body = fmt.Sprintf("%s (%s)", words[0].Name, words[0].Date.Format(displayDateFormat))
	}
	return metric, nil
}

// WordOfTheDay is one random word from the history.
func (a *Aggregator) WordOfTheDay(ctx context.Context) (Metric, error) {
	metric := Metric{Title: "Word of the day", Body: Placeholder}
	names, err := a.store.Random(ctx, 1)
	if err != nil {
		return Metric{}, fmt.Errorf("store.Random() > %w", err)
	}
	if len(names) > 0 {
		metric.Body = names[0]
	}
	return metric, nil
}

// All computes every metric in display order.
func (a *Aggregator) All(ctx context.Context) ([]Metric, error) {
	computations := []func(context.Context) (Metric, error){
		a.MostUsedWord,
		a.TotalUsed,
		a.LeastRecentWord,
		a.MostRecentWord,
		a.WordOfTheDay,
	}

	metrics := make([]Metric, 0, len(computations))
	for _, compute := range computations {
		metric, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, metric)
	}
	return metrics, nil
}
