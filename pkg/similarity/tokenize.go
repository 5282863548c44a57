package similarity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
)

// Tokenizer splits text into word tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// WordTokenizer is a Treebank-style word tokenizer: punctuation and
// contractions become their own tokens, case is preserved.
type WordTokenizer struct{}

func (WordTokenizer) Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		// prose only fails on option errors; fall back to whitespace splitting.
		return strings.Fields(text)
	}

	tokens := doc.Tokens()
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Text != "" {
			words = append(words, tok.Text)
		}
	}
	return words
}

// rougeTokens lowercases text, splits it on every rune that is not a letter or
// digit and stems tokens longer than three runes when stem is non-nil.
func rougeTokens(text string, stem func(string) string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if stem == nil {
		return fields
	}

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 3 {
			f = stem(f)
		}
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
