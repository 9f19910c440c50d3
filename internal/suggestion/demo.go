package suggestion

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed demo_suggestions.yml
var demoSuggestionsYAML []byte

type demoSuggestion struct {
	Name         string `yaml:"name"`
	Sentence     string `yaml:"sentence"`
	DaysAgo      int    `yaml:"days_ago"`
	PartOfSpeech string `yaml:"part_of_speech"`
}

// LoadDemo replaces the entire history with the bundled demo acceptances,
// dated relative to today.
func (s *Store) LoadDemo(ctx context.Context) error {
	var entries []demoSuggestion
	if err := yaml.Unmarshal(demoSuggestionsYAML, &entries); err != nil {
		return fmt.Errorf("yaml.Unmarshal(demo suggestions) > %w", err)
	}

	if err := s.DeleteAll(ctx); err != nil {
		return fmt.Errorf("store.DeleteAll() > %w", err)
	}

	now := time.Now()
	for _, entry := range entries {
		usage := Context{
			Sentence:     entry.Sentence,
			Date:         now.AddDate(0, 0, -entry.DaysAgo),
			PartOfSpeech: PartOfSpeechFromString(entry.PartOfSpeech),
		}
		if err := s.Add(ctx, entry.Name, usage); err != nil {
			return fmt.Errorf("store.Add(%s) > %w", entry.Name, err)
		}
	}
	return nil
}
