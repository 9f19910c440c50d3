// Package dictionary looks up word definitions through the free Dictionary
// API, caching raw responses on disk.
package dictionary

// Entry is one dictionary entry for a word.
type Entry struct {
	Word      string    `json:"word"`
	Phonetic  string    `json:"phonetic"`
	AudioURL  string    `json:"-"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []Meaning `json:"meanings"`
}

// Meaning groups an entry's definitions under one part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// MainDefinition returns the first definition of the first meaning, which the
// API orders by prevalence. Empty when the entry carries no definitions.
func (e Entry) MainDefinition() string {
	for _, meaning := range e.Meanings {
		for _, definition := range meaning.Definitions {
			if definition.Definition != "" {
				return definition.Definition
			}
		}
	}
	return ""
}

// DefinitionsFor returns every definition text recorded under the given part
// of speech.
func (e Entry) DefinitionsFor(partOfSpeech string) []string {
	var definitions []string
	for _, meaning := range e.Meanings {
		if meaning.PartOfSpeech != partOfSpeech {
			continue
		}
		for _, definition := range meaning.Definitions {
			if definition.Definition != "" {
				definitions = append(definitions, definition.Definition)
			}
		}
	}
	return definitions
}

// firstAudio picks the first phonetic variant that ships a pronunciation clip.
func (e Entry) firstAudio() string {
	for _, phonetic := range e.Phonetics {
		if phonetic.Audio != "" {
			return phonetic.Audio
		}
	}
	return ""
}
