package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/tonguetip/tonguetip/internal/dictionary"
	"github.com/tonguetip/tonguetip/internal/suggestion"
	"github.com/tonguetip/tonguetip/internal/translation"
)

const (
	// RequiredWords is how much history a quiz needs before it can start.
	RequiredWords = 15

	// questionsPerKind partitions the sampled words evenly across kinds.
	questionsPerKind = 5

	// maxOptions bounds an option set: the answer plus up to three distractors.
	maxOptions = 4

	// learningLanguage is the language suggestions are recorded in.
	learningLanguage = "en"
)

// ErrNotEnoughHistory reports that too few suggestions were recorded to fill
// a quiz. It is an expected state, not a fault.
var ErrNotEnoughHistory = errors.New("not enough suggestion history for a quiz")

// historyStore is the slice of the suggestion store a quiz needs.
type historyStore interface {
	Random(ctx context.Context, limit int) ([]string, error)
	ContextsFor(ctx context.Context, name string, limit int) ([]suggestion.Context, error)
}

// Generator samples the usage history and assembles one session's questions.
type Generator struct {
	store          historyStore
	reader         dictionary.Reader
	translator     translation.Translator
	nativeLanguage string
	rng            *rand.Rand
}

func NewGenerator(
	store historyStore,
	reader dictionary.Reader,
	translator translation.Translator,
	nativeLanguage string,
	rng *rand.Rand,
) *Generator {
	return &Generator{
		store:          store,
		reader:         reader,
		translator:     translator,
		nativeLanguage: nativeLanguage,
		rng:            rng,
	}
}

type quizWord struct {
	name         string
	partOfSpeech suggestion.PartOfSpeech
	sentence     string
}

// Generate builds a shuffled question list from a fresh random sample of the
// history. Words without a usable dictionary entry, sentence, or translation
// are skipped rather than failing the whole quiz.
func (g *Generator) Generate(ctx context.Context) ([]Question, error) {
	names, err := g.store.Random(ctx, RequiredWords)
	if err != nil {
		return nil, fmt.Errorf("store.Random() > %w", err)
	}
	if len(names) < RequiredWords {
		return nil, fmt.Errorf("%w: have %d of %d words", ErrNotEnoughHistory, len(names), RequiredWords)
	}

	g.rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})

	words := make([]quizWord, 0, len(names))
	for _, name := range names {
		contexts, err := g.store.ContextsFor(ctx, name, 1)
		if err != nil {
			return nil, fmt.Errorf("store.ContextsFor(%s) > %w", name, err)
		}
		word := quizWord{name: name}
		if len(contexts) > 0 {
			word.partOfSpeech = contexts[0].PartOfSpeech
			word.sentence = contexts[0].Sentence
		}
		words = append(words, word)
	}

	var questions []Question
	for index, word := range words {
		var question *Question
		switch {
		case index < questionsPerKind:
			question = g.defineWordQuestion(ctx, word, words)
		case index < 2*questionsPerKind:
			question = g.finishSentenceQuestion(word, words)
		case g.nativeLanguage != learningLanguage:
			question = g.translationQuestion(ctx, word, words)
		}
		if question != nil {
			questions = append(questions, *question)
		}
	}

	g.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions, nil
}

func (g *Generator) defineWordQuestion(ctx context.Context, word quizWord, words []quizWord) *Question {
	entry, err := g.reader.Lookup(ctx, word.name)
	if err != nil {
		slog.Default().Warn("dictionary lookup failed, skipping question", "word", word.name, "error", err)
		return nil
	}
	if entry == nil {
		return nil
	}
	answer := definitionFor(entry, word.partOfSpeech)
	if answer == "" {
		return nil
	}

	// Distractor options are the definitions of other sampled words
	var distractors []string
	for _, candidate := range g.distractorWords(word, words) {
		candidateEntry, err := g.reader.Lookup(ctx, candidate.name)
		if err != nil {
			slog.Default().Warn("dictionary lookup failed for distractor", "word", candidate.name, "error", err)
			continue
		}
		if candidateEntry == nil {
			continue
		}
		if definition := definitionFor(candidateEntry, candidate.partOfSpeech); definition != "" {
			distractors = append(distractors, definition)
		}
	}

	return &Question{
		Kind:         KindDefineWord,
		Header:       fmt.Sprintf("What does %q mean?", word.name),
		Answer:       answer,
		Word:         word.name,
		PartOfSpeech: word.partOfSpeech,
		Options:      g.buildOptions(answer, distractors),
	}
}

func (g *Generator) finishSentenceQuestion(word quizWord, words []quizWord) *Question {
	if word.sentence == "" {
		return nil
	}

	return &Question{
		Kind:         KindFinishSentence,
		Header:       fmt.Sprintf("%s ...?", word.sentence),
		Answer:       word.name,
		Word:         word.name,
		PartOfSpeech: word.partOfSpeech,
		Options:      g.buildOptions(word.name, wordNames(g.distractorWords(word, words))),
	}
}

func (g *Generator) translationQuestion(ctx context.Context, word quizWord, words []quizWord) *Question {
	translated, err := g.translator.Translate(ctx, word.name, learningLanguage, g.nativeLanguage)
	if err != nil {
		slog.Default().Warn("translation failed, skipping question", "word", word.name, "error", err)
		return nil
	}

	return &Question{
		Kind:         KindNativeTranslation,
		Header:       fmt.Sprintf("Which word means %q?", translated),
		Answer:       word.name,
		Word:         word.name,
		PartOfSpeech: word.partOfSpeech,
		Options:      g.buildOptions(word.name, wordNames(g.distractorWords(word, words))),
	}
}

// definitionFor prefers a definition recorded under the word's own part of
// speech, falling back to the entry's leading definition.
func definitionFor(entry *dictionary.Entry, partOfSpeech suggestion.PartOfSpeech) string {
	if definitions := entry.DefinitionsFor(partOfSpeech.String()); len(definitions) > 0 {
		return definitions[0]
	}
	return entry.MainDefinition()
}

// distractorWords picks up to three other sampled words whose part of speech
// differs from the subject's, at random without replacement.
func (g *Generator) distractorWords(subject quizWord, words []quizWord) []quizWord {
	var candidates []quizWord
	for _, candidate := range words {
		if candidate.name == subject.name {
			continue
		}
		if candidate.partOfSpeech == subject.partOfSpeech {
			continue
		}
		candidates = append(candidates, candidate)
	}

	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > maxOptions-1 {
		candidates = candidates[:maxOptions-1]
	}
	return candidates
}

// buildOptions deduplicates the answer and distractors into a shuffled option
// set of at most maxOptions entries. The answer is always present exactly once.
func (g *Generator) buildOptions(answer string, distractors []string) []string {
	seen := map[string]struct{}{answer: {}}
	options := []string{answer}
	for _, distractor := range distractors {
		if len(options) == maxOptions {
			break
		}
		if distractor == "" {
			continue
		}
		if _, ok := seen[distractor]; ok {
			continue
		}
		seen[distractor] = struct{}{}
		options = append(options, distractor)
	}

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

func wordNames(words []quizWord) []string {
	names := make([]string, 0, len(words))
	for _, word := range words {
		names = append(names, word.name)
	}
	return names
}
