package similarity

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/french"
	"github.com/kljensen/snowball/russian"
	"github.com/kljensen/snowball/spanish"
	"github.com/kljensen/snowball/swedish"
	"github.com/pemistahl/lingua-go"
)

// Only a prefix of long documents is used for language detection.
const detectionSampleRunes = 2000

// stemmers holds the Snowball stemmer for each detectable language.
var stemmers = map[lingua.Language]func(string) string{
	lingua.English: func(w string) string { return english.Stem(w, true) },
	lingua.French:  func(w string) string { return french.Stem(w, true) },
	lingua.Russian: func(w string) string { return russian.Stem(w, true) },
	lingua.Spanish: func(w string) string { return spanish.Stem(w, true) },
	lingua.Swedish: func(w string) string { return swedish.Stem(w, true) },
}

// SupportedLanguages lists the languages a stemmer exists for.
func SupportedLanguages() []lingua.Language {
	return []lingua.Language{lingua.English, lingua.French, lingua.Russian, lingua.Spanish, lingua.Swedish}
}

// ParseLanguages resolves language names such as "english" or "French" to
// supported languages. Empty input yields SupportedLanguages.
func ParseLanguages(names []string) ([]lingua.Language, error) {
	if len(names) == 0 {
		return SupportedLanguages(), nil
	}
	languages := make([]lingua.Language, 0, len(names))
	for _, name := range names {
		lang, ok := lookupLanguage(name)
		if !ok {
			return nil, fmt.Errorf("unsupported stemmer language: %q", name)
		}
		languages = append(languages, lang)
	}
	return languages, nil
}

func lookupLanguage(name string) (lingua.Language, bool) {
	name = strings.TrimSpace(name)
	for _, lang := range SupportedLanguages() {
		if strings.EqualFold(lang.String(), name) {
			return lang, true
		}
	}
	return 0, false
}

// stemmerSelector picks a stemmer from the detected language of a text.
// English is used when detection is inconclusive.
type stemmerSelector struct {
	detector lingua.LanguageDetector
	fixed    lingua.Language
}

func newStemmerSelector(languages []lingua.Language) *stemmerSelector {
	var usable []lingua.Language
	for _, lang := range languages {
		if _, ok := stemmers[lang]; ok {
			usable = append(usable, lang)
		}
	}
	switch len(usable) {
	case 0:
		return &stemmerSelector{fixed: lingua.English}
	case 1:
		// lingua needs at least two candidates.
		return &stemmerSelector{fixed: usable[0]}
	}
	return &stemmerSelector{
		detector: lingua.NewLanguageDetectorBuilder().FromLanguages(usable...).Build(),
	}
}

func (s *stemmerSelector) forText(text string) func(string) string {
	if s.detector == nil {
		return stemmers[s.fixed]
	}
	sample := []rune(text)
	if len(sample) > detectionSampleRunes {
		sample = sample[:detectionSampleRunes]
	}
	lang, ok := s.detector.DetectLanguageOf(string(sample))
	if !ok {
		return stemmers[lingua.English]
	}
	return stemmers[lang]
}
