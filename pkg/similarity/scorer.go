// Package similarity scores generated text against reference text with BLEU
// and ROUGE.
package similarity

import (
	"github.com/pemistahl/lingua-go"
)

// Config holds the NLP settings shared by every comparison in a run.
type Config struct {
	// BLEUMaxOrder is the highest n-gram order used by BLEU.
	BLEUMaxOrder int
	// UseStemmer stems ROUGE tokens with the Snowball stemmer of the detected language.
	UseStemmer bool
	// Languages restricts stemmer language detection. Defaults to SupportedLanguages.
	Languages []lingua.Language
}

func DefaultConfig() Config {
	return Config{
		BLEUMaxOrder: 4,
		UseStemmer:   true,
		Languages:    SupportedLanguages(),
	}
}

// Scores is the result of comparing one reference/hypothesis pair.
type Scores struct {
	BLEU   float64    `json:"bleu" yaml:"bleu"`
	Rouge1 RougeScore `json:"rouge1" yaml:"rouge1"`
	RougeL RougeScore `json:"rougeL" yaml:"rougeL"`
}

// Scorer is immutable after construction and safe for concurrent use.
type Scorer struct {
	tokenizer Tokenizer
	stemmers  *stemmerSelector
	maxOrder  int
}

// NewScorer builds a Scorer using the Treebank-style WordTokenizer.
func NewScorer(cfg Config) *Scorer {
	return NewScorerWithTokenizer(cfg, WordTokenizer{})
}

func NewScorerWithTokenizer(cfg Config, tokenizer Tokenizer) *Scorer {
	maxOrder := cfg.BLEUMaxOrder
	if maxOrder < 1 {
		maxOrder = 4
	}
	s := &Scorer{
		tokenizer: tokenizer,
		maxOrder:  maxOrder,
	}
	if cfg.UseStemmer {
		languages := cfg.Languages
		if len(languages) == 0 {
			languages = SupportedLanguages()
		}
		s.stemmers = newStemmerSelector(languages)
	}
	return s
}

// Score compares hypothesis against reference. BLEU runs on word tokens;
// ROUGE-1 and ROUGE-L run on the raw strings with ROUGE tokenization.
func (s *Scorer) Score(reference, hypothesis string) Scores {
	bleu := SentenceBLEU(s.tokenizer.Tokenize(reference), s.tokenizer.Tokenize(hypothesis), s.maxOrder)

	var stem func(string) string
	if s.stemmers != nil {
		stem = s.stemmers.forText(reference)
	}
	refTokens := rougeTokens(reference, stem)
	hypTokens := rougeTokens(hypothesis, stem)

	return Scores{
		BLEU:   bleu,
		Rouge1: RougeN(refTokens, hypTokens, 1),
		RougeL: RougeL(refTokens, hypTokens),
	}
}
