package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/tonguetip/tonguetip/internal/metrics"
)

// MetricsRunner prints the history overview metrics.
type MetricsRunner struct {
	aggregator *metrics.Aggregator
	writer     io.Writer
	bold       *color.Color
}

func NewMetricsRunner(aggregator *metrics.Aggregator) *MetricsRunner {
	return &MetricsRunner{
		aggregator: aggregator,
		writer:     os.Stdout,
		bold:       color.New(color.Bold),
	}
}

func (r *MetricsRunner) Run(ctx context.Context) error {
	all, err := r.aggregator.All(ctx)
	if err != nil {
		return fmt.Errorf("aggregator.All() > %w", err)
	}

	for _, metric := range all {
		if _, err := r.bold.Fprintf(r.writer, "%s: ", metric.Title); err != nil {
			return fmt.Errorf("bold.Fprintf > %w", err)
		}
		fmt.Fprintln(r.writer, metric.Body)
	}
	return nil
}
